package touchkit

import (
	"context"
	"image"
	"image/color"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertPose(t *testing.T, name string, got, want Pose) {
	t.Helper()
	assertNear(t, name+".X", got.X, want.X)
	assertNear(t, name+".Y", got.Y, want.Y)
	assertNear(t, name+".Scale", got.Scale, want.Scale)
	assertNear(t, name+".Rotation", got.Rotation, want.Rotation)
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func assertOrder(t *testing.T, got []ElementID, want ...ElementID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

// solid returns a w×h image filled with c.
func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// newTestKit returns a kit with a quiet logger and the default loader, which
// passes FromImage sources straight through.
func newTestKit(t *testing.T, w, h float64) *Kit {
	t.Helper()
	k := NewKit(Options{
		Viewport: Size{Width: w, Height: h},
		Logger:   quietLogger(),
	})
	t.Cleanup(k.Teardown)
	return k
}

func settle(t *testing.T, k *Kit) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := k.Settle(ctx); err != nil {
		t.Fatalf("Settle: %v", err)
	}
}

// addChild adds a w×h child and waits for it to load.
func addChild(t *testing.T, k *Kit, w, h int, opts ChildOptions) ElementID {
	t.Helper()
	opts.Image = FromImage(solid(w, h, color.White))
	id := k.Add(opts)
	settle(t, k)
	if _, err := k.Element(id); err != nil {
		t.Fatalf("child %d not registered: %v", id, err)
	}
	return id
}

// gatedLoader blocks every load until release is closed.
type gatedLoader struct {
	release chan struct{}
	started chan Source
}

func newGatedLoader() *gatedLoader {
	return &gatedLoader{release: make(chan struct{}), started: make(chan Source, 16)}
}

func (g *gatedLoader) Load(ctx context.Context, src Source) (image.Image, error) {
	g.started <- src
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return DefaultLoader{}.Load(ctx, src)
}

// recordingSource is a GestureSource that records notifications.
type recordingSource struct {
	switches []ElementID
	single   []bool
	detached bool
}

func (r *recordingSource) SwitchOperator(id ElementID, singleFinger bool) {
	r.switches = append(r.switches, id)
	r.single = append(r.single, singleFinger)
}

func (r *recordingSource) Detach() { r.detached = true }

// recordingPresenter collects flushed poses and forgotten ids.
type recordingPresenter struct {
	calls     []presented
	forgotten []ElementID
}

type presented struct {
	id    ElementID
	pose  Pose
	scale float64
}

func (p *recordingPresenter) PresentPose(id ElementID, pose Pose, affordanceScale float64) {
	p.calls = append(p.calls, presented{id, pose, affordanceScale})
}

func (p *recordingPresenter) Forget(id ElementID) {
	p.forgotten = append(p.forgotten, id)
}
