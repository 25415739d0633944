package touchkit

import (
	"image/color"
	"testing"
)

func TestLayoutBackgroundContain(t *testing.T) {
	view := Size{Width: 400, Height: 400}
	tests := []struct {
		name    string
		natural Size
		opts    BackgroundOptions
		size    Size
		offset  Vec2
		ratio   float64
	}{
		{"wide", Size{Width: 800, Height: 400}, BackgroundOptions{}, Size{Width: 400, Height: 200}, Vec2{X: 0, Y: 100}, 2},
		{"tall", Size{Width: 100, Height: 200}, BackgroundOptions{}, Size{Width: 200, Height: 400}, Vec2{X: 100, Y: 0}, 0.5},
		{"explicit zero", Size{Width: 800, Height: 400}, BackgroundOptions{Left: "0", Top: "0"}, Size{Width: 400, Height: 200}, Vec2{}, 2},
		{"explicit offset", Size{Width: 100, Height: 200}, BackgroundOptions{Left: "right:0", Top: "5"}, Size{Width: 200, Height: 400}, Vec2{X: 200, Y: 5}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := layoutBackground(tt.natural, view, tt.opts)
			if e.Size != tt.size {
				t.Errorf("Size = %v, want %v", e.Size, tt.size)
			}
			if e.Offset != tt.offset {
				t.Errorf("Offset = %v, want %v", e.Offset, tt.offset)
			}
			assertNear(t, "Ratio", e.Ratio, tt.ratio)
			if e.Policy.Active() {
				t.Error("contain background is bounded")
			}
			if e.Use != (Capabilities{}) {
				t.Errorf("Use = %+v", e.Use)
			}
		})
	}
}

func TestLayoutBackgroundCrop(t *testing.T) {
	view := Size{Width: 400, Height: 400}
	e := layoutBackground(Size{Width: 400, Height: 800}, view, BackgroundOptions{Type: BackgroundCrop})
	if e.Size != (Size{Width: 400, Height: 800}) {
		t.Errorf("Size = %v", e.Size)
	}
	l := e.Policy.Resolved()
	assertNear(t, "MarginX", l.MarginX, 0)
	assertNear(t, "MarginY", l.MarginY, 0.5)
	if l.MinScale != 1 || l.MaxScale != 1 {
		t.Errorf("scale range = [%v, %v]", l.MinScale, l.MaxScale)
	}
	assertNear(t, "Ratio", e.Ratio, 1)
	if e.Use != (Capabilities{Drag: true}) {
		t.Errorf("Use = %+v, want drag only", e.Use)
	}

	use := Capabilities{}
	e = layoutBackground(Size{Width: 400, Height: 800}, view, BackgroundOptions{Type: BackgroundCrop, Use: &use})
	if e.Use.Drag {
		t.Error("Use override ignored")
	}
}

func TestBackgroundReplaceReleasesFocus(t *testing.T) {
	k := newTestKit(t, 400, 400)
	k.Background(BackgroundOptions{Image: FromImage(solid(800, 400, color.White)), Type: BackgroundCrop})
	settle(t, k)
	k.Switch(BackgroundID)

	// Replacing with another crop background keeps it focused and active.
	k.Background(BackgroundOptions{Image: FromImage(solid(400, 800, color.White)), Type: BackgroundCrop})
	settle(t, k)
	bg, _ := k.Registry().Background()
	if op, _ := k.Operator(); op != BackgroundID || !bg.Active {
		t.Errorf("operator = %d, active = %v", op, bg.Active)
	}

	// A contain background cannot be focused.
	k.Background(BackgroundOptions{Image: FromImage(solid(400, 800, color.White))})
	settle(t, k)
	if _, ok := k.Operator(); ok {
		t.Error("contain background kept focus")
	}
}

func TestBackgroundReloadDropsDragBaseline(t *testing.T) {
	k := newTestKit(t, 400, 400)
	k.Background(BackgroundOptions{Image: FromImage(solid(800, 400, color.White)), Type: BackgroundCrop})
	settle(t, k)
	k.Switch(BackgroundID)
	k.Dispatch(GestureEvent{Type: EventDragStart})
	k.Dispatch(GestureEvent{Type: EventDrag, DeltaX: -100})

	k.Background(BackgroundOptions{Image: FromImage(solid(800, 400, color.White)), Type: BackgroundCrop})
	settle(t, k)
	// A move with no fresh start builds on the new background's pose.
	k.Dispatch(GestureEvent{Type: EventDrag, DeltaX: -10})
	bg, ok := k.Registry().Background()
	if !ok {
		t.Fatal("background missing")
	}
	assertNear(t, "X", bg.Pose.X, -10)
}
