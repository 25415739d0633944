package touchkit

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func assertNear32(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-3 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestAnimateTo(t *testing.T) {
	k := newTestKit(t, 400, 400)
	id := addChild(t, k, 100, 100, ChildOptions{})
	e, _ := k.Element(id)

	tw := k.AnimateTo(id, Pose{X: 100, Y: 50, Scale: 2, Rotation: 1}, 1, nil)
	if tw == nil {
		t.Fatal("AnimateTo returned nil")
	}
	k.updateTweens(0.5)
	assertNear32(t, "X", e.Pose.X, 50)
	assertNear32(t, "Y", e.Pose.Y, 25)
	assertNear32(t, "Scale", e.Pose.Scale, 1.5)
	assertNear32(t, "AffordanceScale", e.AffordanceScale, 1/1.5)
	if tw.Done {
		t.Error("tween done halfway")
	}

	k.updateTweens(0.5)
	assertNear32(t, "X", e.Pose.X, 100)
	assertNear32(t, "Rotation", e.Pose.Rotation, 1)
	if !tw.Done || k.Stats().Tweens != 0 {
		t.Errorf("Done = %v, tweens = %d", tw.Done, k.Stats().Tweens)
	}
}

func TestAnimateToEasing(t *testing.T) {
	k := newTestKit(t, 400, 400)
	id := addChild(t, k, 100, 100, ChildOptions{})
	e, _ := k.Element(id)

	k.AnimateTo(id, Pose{X: 100, Scale: 1}, 1, ease.InQuad)
	k.updateTweens(0.5)
	assertNear32(t, "X", e.Pose.X, 25)
}

func TestAnimateToIsClamped(t *testing.T) {
	k := newTestKit(t, 400, 400)
	id := addChild(t, k, 100, 100, ChildOptions{Bounds: DefaultBounds()})
	e, _ := k.Element(id)

	k.AnimateTo(id, Pose{X: 1000, Scale: 10}, 1, nil)
	k.updateTweens(1)
	// Scale pins at 3; a 300px box may then travel to 400-300+100+150.
	assertNear32(t, "Scale", e.Pose.Scale, 3)
	assertNear32(t, "X", e.Pose.X, 350)
}

func TestAnimateToReplaces(t *testing.T) {
	k := newTestKit(t, 400, 400)
	id := addChild(t, k, 100, 100, ChildOptions{})
	e, _ := k.Element(id)

	first := k.AnimateTo(id, Pose{X: 100, Scale: 1}, 1, nil)
	k.AnimateTo(id, Pose{Y: 100, Scale: 1}, 1, nil)
	if n := k.Stats().Tweens; n != 1 {
		t.Fatalf("tweens = %d, want 1", n)
	}
	k.updateTweens(1)
	assertNear32(t, "X", e.Pose.X, 0)
	assertNear32(t, "Y", e.Pose.Y, 100)
	if first.Done {
		t.Error("replaced tween advanced")
	}
}

func TestAnimateToStopsOnClose(t *testing.T) {
	k := newTestKit(t, 400, 400)
	id := addChild(t, k, 100, 100, ChildOptions{})
	tw := k.AnimateTo(id, Pose{X: 100, Scale: 1}, 1, nil)
	k.Close(id)
	k.updateTweens(0.1)
	if !tw.Done || k.Stats().Tweens != 0 {
		t.Errorf("tween survived close")
	}
}

func TestAnimateToStopsOnReset(t *testing.T) {
	k := newTestKit(t, 400, 400)
	id := addChild(t, k, 100, 100, ChildOptions{})
	k.AnimateTo(id, Pose{X: 100, Scale: 1}, 1, nil)
	k.Reset()
	if n := k.Stats().Tweens; n != 0 {
		t.Errorf("tweens = %d after reset", n)
	}
}

func TestAnimateToUnknown(t *testing.T) {
	k := newTestKit(t, 400, 400)
	if tw := k.AnimateTo(7, IdentityPose(), 1, nil); tw != nil {
		t.Error("tween for unknown element")
	}
}

func TestAnimateDrivenByUpdate(t *testing.T) {
	k := NewKit(Options{Viewport: Size{Width: 400, Height: 400}, Logger: quietLogger(), TPS: 10})
	t.Cleanup(k.Teardown)
	id := addChild(t, k, 100, 100, ChildOptions{})
	e, _ := k.Element(id)

	k.AnimateTo(id, Pose{X: 100, Scale: 1}, 1, nil)
	for i := 0; i < 5; i++ {
		k.Update()
	}
	assertNear32(t, "X", e.Pose.X, 50)
	assertNear32(t, "shown.X", e.Shown().X, 50)
}
