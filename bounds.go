package touchkit

import "math"

// BoundsMode selects how an element's pose is constrained.
type BoundsMode uint8

const (
	BoundsNone    BoundsMode = iota // pose is never clamped
	BoundsDefault                   // DefaultLimits
	BoundsCustom                    // caller-supplied Limits
)

// Limits are the parameters of a bounding policy.
//
// MarginX and MarginY, in [0, 1], control how far past the viewport edge an
// element may travel, measured in multiples of its scaled size: 0 keeps it
// flush with the edge, 0.5 lets its center reach the edge, 1 lets it leave
// the viewport entirely. FreeX/FreeY leave that axis unclamped.
type Limits struct {
	MarginX, MarginY   float64
	FreeX, FreeY       bool
	MinScale, MaxScale float64
}

// DefaultLimits is used by BoundsDefault and as the base that partial custom
// limits are merged onto.
var DefaultLimits = Limits{
	MarginX:  0.5,
	MarginY:  0.5,
	MinScale: 0.4,
	MaxScale: 3,
}

// BoundingPolicy constrains the legal range of a pose.
type BoundingPolicy struct {
	Mode   BoundsMode
	Limits Limits
}

// NoBounds returns a policy that never clamps.
func NoBounds() BoundingPolicy { return BoundingPolicy{} }

// DefaultBounds returns a policy using DefaultLimits.
func DefaultBounds() BoundingPolicy { return BoundingPolicy{Mode: BoundsDefault} }

// CustomBounds returns a policy using the given limits. A zero MinScale or
// MaxScale means unset and resolves to the DefaultLimits value.
func CustomBounds(l Limits) BoundingPolicy {
	return BoundingPolicy{Mode: BoundsCustom, Limits: l}
}

// Active reports whether the policy clamps at all.
func (p BoundingPolicy) Active() bool {
	return p.Mode != BoundsNone
}

// Resolved returns the effective limits of the policy.
func (p BoundingPolicy) Resolved() Limits {
	if p.Mode == BoundsDefault {
		return DefaultLimits
	}
	l := p.Limits
	if l.MinScale == 0 {
		l.MinScale = DefaultLimits.MinScale
	}
	if l.MaxScale == 0 {
		l.MaxScale = DefaultLimits.MaxScale
	}
	return l
}

// Clamp maps a proposed pose onto the legal range described by policy for an
// element whose layout box measures size inside viewport. It has no side
// effects. Rotation always passes through.
//
// Scale is clamped first; the position range then accounts for the element
// growing or shrinking around its own center:
//
//	space    = size * (scale-1) / 2
//	boundary = size * scale * margin
//	min      = space - boundary
//	max      = viewport - size*scale + space + boundary
func Clamp(p Pose, policy BoundingPolicy, size, viewport Size) Pose {
	if !policy.Active() {
		return p
	}
	l := policy.Resolved()

	if math.IsNaN(p.Scale) || p.Scale < l.MinScale {
		p.Scale = l.MinScale
	}
	if p.Scale > l.MaxScale {
		p.Scale = l.MaxScale
	}

	if !l.FreeX {
		p.X = clampAxis(p.X, size.Width, p.Scale, l.MarginX, viewport.Width)
	}
	if !l.FreeY {
		p.Y = clampAxis(p.Y, size.Height, p.Scale, l.MarginY, viewport.Height)
	}
	return p
}

// clampAxis clamps one translation component. The lower bound wins when the
// range is inverted (an element wider than the viewport with a small margin).
func clampAxis(v, size, scale, margin, viewport float64) float64 {
	space := size * (scale - 1) / 2
	boundary := size * scale * margin
	lo := space - boundary
	hi := viewport - size*scale + space + boundary
	if v >= hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
