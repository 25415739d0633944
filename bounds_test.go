package touchkit

import (
	"math"
	"testing"
)

var (
	box100  = Size{Width: 100, Height: 100}
	view400 = Size{Width: 400, Height: 400}
)

func TestClampNoBounds(t *testing.T) {
	p := Pose{X: -5000, Y: 9000, Scale: 50, Rotation: 7}
	assertPose(t, "none", Clamp(p, NoBounds(), box100, view400), p)
}

func TestClampScale(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		want  float64
	}{
		{"below min", 0.1, 0.4},
		{"at min", 0.4, 0.4},
		{"inside", 1.5, 1.5},
		{"above max", 10, 3},
		{"nan", math.NaN(), 0.4},
		{"negative", -5, 0.4},
		{"+inf", math.Inf(1), 3},
		{"-inf", math.Inf(-1), 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(Pose{X: 150, Y: 150, Scale: tt.scale}, DefaultBounds(), box100, view400)
			assertNear(t, "Scale", got.Scale, tt.want)
		})
	}
}

func TestClampCustomMarginsOnly(t *testing.T) {
	pol := CustomBounds(Limits{MarginX: 0.2, MarginY: 0.2})
	got := Clamp(Pose{X: 10, Y: 10, Scale: 1}, pol, box100, view400)
	assertPose(t, "unscaled", got, Pose{X: 10, Y: 10, Scale: 1})

	got.Scale *= 2
	got = Clamp(got, pol, box100, view400)
	assertNear(t, "pinched", got.Scale, 2)

	l := pol.Resolved()
	if l.MinScale != DefaultLimits.MinScale || l.MaxScale != DefaultLimits.MaxScale {
		t.Errorf("scale range = [%v, %v], want defaults", l.MinScale, l.MaxScale)
	}
	assertNear(t, "MarginX", l.MarginX, 0.2)
}

func TestClampTranslation(t *testing.T) {
	// Default margin 0.5 at scale 1: x in [-50, 350].
	tests := []struct {
		name string
		in   Pose
		want Pose
	}{
		{"inside", Pose{X: 100, Y: 200, Scale: 1}, Pose{X: 100, Y: 200, Scale: 1}},
		{"far left", Pose{X: -1000, Y: 0, Scale: 1}, Pose{X: -50, Y: 0, Scale: 1}},
		{"far right", Pose{X: 1000, Y: 0, Scale: 1}, Pose{X: 350, Y: 0, Scale: 1}},
		{"far bottom", Pose{X: 0, Y: 1000, Scale: 1}, Pose{X: 0, Y: 350, Scale: 1}},
		// scale 2: space = 50, boundary = 100, x in [-50, 350].
		{"scaled", Pose{X: -400, Y: 500, Scale: 2}, Pose{X: -50, Y: 350, Scale: 2}},
		{"rotation passes", Pose{X: 0, Y: 0, Scale: 1, Rotation: 4}, Pose{X: 0, Y: 0, Scale: 1, Rotation: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPose(t, "pose", Clamp(tt.in, DefaultBounds(), box100, view400), tt.want)
		})
	}
}

func TestClampYUsesVerticalMargin(t *testing.T) {
	l := DefaultLimits
	l.MarginX = 0
	l.MarginY = 1
	got := Clamp(Pose{X: -1000, Y: -1000, Scale: 1}, CustomBounds(l), box100, view400)
	assertNear(t, "X", got.X, 0)
	assertNear(t, "Y", got.Y, -100)
}

func TestClampFreeAxis(t *testing.T) {
	l := DefaultLimits
	l.FreeX = true
	got := Clamp(Pose{X: -1000, Y: -1000, Scale: 1}, CustomBounds(l), box100, view400)
	assertNear(t, "X", got.X, -1000)
	assertNear(t, "Y", got.Y, -50)
}

func TestClampInvertedRangeLowerWins(t *testing.T) {
	// 600 wide in a 400 viewport with no margin: lo = 0, hi = -200.
	l := Limits{MinScale: 1, MaxScale: 1}
	wide := Size{Width: 600, Height: 100}
	for _, x := range []float64{-500, -100, 0, 300} {
		got := Clamp(Pose{X: x, Scale: 1}, CustomBounds(l), wide, view400)
		assertNear(t, "X", got.X, 0)
	}
}

func TestClampCropBackground(t *testing.T) {
	// An 800x600 crop background in a 400x400 viewport is laid out at
	// 533.33x400 with marginX = 0.25: x in [-133.33, 0], y pinned to 0.
	e := layoutBackground(Size{Width: 800, Height: 600}, view400, BackgroundOptions{Type: BackgroundCrop})
	tests := []struct {
		in   Pose
		want Pose
	}{
		{Pose{X: 50, Y: 20, Scale: 1}, Pose{X: 0, Y: 0, Scale: 1}},
		{Pose{X: -60, Y: 0, Scale: 1}, Pose{X: -60, Y: 0, Scale: 1}},
		{Pose{X: -500, Y: -20, Scale: 3}, Pose{X: -(800.0/600*400 - 400), Y: 0, Scale: 1}},
	}
	for _, tt := range tests {
		assertPose(t, "crop", Clamp(tt.in, e.Policy, e.Size, view400), tt.want)
	}
}

func TestClampIdempotent(t *testing.T) {
	policies := []BoundingPolicy{NoBounds(), DefaultBounds(), CustomBounds(Limits{MarginX: 0.1, MarginY: 0.9, MinScale: 0.5, MaxScale: 2})}
	poses := []Pose{
		{X: -900, Y: 900, Scale: 0.01},
		{X: 120, Y: 30, Scale: 1.2, Rotation: 1},
		{X: 400, Y: -400, Scale: 9},
	}
	for _, pol := range policies {
		for _, p := range poses {
			once := Clamp(p, pol, box100, view400)
			twice := Clamp(once, pol, box100, view400)
			assertPose(t, "idempotent", twice, once)
		}
	}
}

func TestClampWithinRange(t *testing.T) {
	l := DefaultLimits
	for _, s := range []float64{0.2, 0.5, 1, 2.5, 4} {
		for _, x := range []float64{-1000, -10, 0, 200, 1000} {
			got := Clamp(Pose{X: x, Y: x, Scale: s}, DefaultBounds(), box100, view400)
			if got.Scale < l.MinScale || got.Scale > l.MaxScale {
				t.Fatalf("scale %v out of range", got.Scale)
			}
			space := 100 * (got.Scale - 1) / 2
			boundary := 100 * got.Scale * l.MarginX
			lo, hi := space-boundary, 400-100*got.Scale+space+boundary
			if got.X < lo-epsilon || got.X > hi+epsilon {
				t.Fatalf("x %v outside [%v, %v]", got.X, lo, hi)
			}
		}
	}
}
