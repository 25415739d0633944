package touchkit

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default outline highlight.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair in viewport pixels unless stated otherwise.
type Size struct {
	Width, Height float64
}

// Ratio returns Width / Height, or 0 for a zero height.
func (s Size) Ratio() float64 {
	if s.Height == 0 {
		return 0
	}
	return s.Width / s.Height
}

// Pose is an element's position, scale, and rotation (radians). X and Y are
// the translation of the element's layout box; scale and rotation apply about
// the box center.
type Pose struct {
	X, Y     float64
	Scale    float64
	Rotation float64
}

// IdentityPose returns the untransformed pose.
func IdentityPose() Pose {
	return Pose{Scale: 1}
}

// ElementID identifies an element within a registry generation. Child ids are
// sequential from 0; the background uses BackgroundID.
type ElementID int

const (
	// BackgroundID is the reserved id of the background element.
	BackgroundID ElementID = -1
	// NoElement denotes "nothing focused" wherever an ElementID is expected.
	NoElement ElementID = -2
)

// Kind distinguishes the background from movable children.
type Kind uint8

const (
	KindChild      Kind = iota // freely manipulable overlay image
	KindBackground             // singleton backdrop; draggable only in crop mode
)

// BackgroundType selects how the background fills the viewport.
type BackgroundType uint8

const (
	// BackgroundContain fits the whole image inside the viewport, like
	// background-size: contain. The offset is static.
	BackgroundContain BackgroundType = iota
	// BackgroundCrop fills the viewport and crops the overflow. The visible
	// region is chosen by dragging the background.
	BackgroundCrop
)

// String returns "contain" or "crop".
func (t BackgroundType) String() string {
	if t == BackgroundCrop {
		return "crop"
	}
	return "contain"
}

// Capabilities is the set of gestures an element responds to.
type Capabilities struct {
	Drag         bool
	Pinch        bool
	Rotate       bool
	SinglePinch  bool
	SingleRotate bool
}

// Allows reports whether move events of the given gesture kind may change the
// element's pose. Touch events never do.
func (c Capabilities) Allows(kind GestureKind) bool {
	switch kind {
	case GestureDrag:
		return c.Drag
	case GesturePinch:
		return c.Pinch
	case GestureRotate:
		return c.Rotate
	case GestureSinglePinch:
		return c.SinglePinch
	case GestureSingleRotate:
		return c.SingleRotate
	default:
		return false
	}
}

// SingleFinger reports whether the element shows the single-finger affordance.
func (c Capabilities) SingleFinger() bool {
	return c.SinglePinch || c.SingleRotate
}

// GestureKind groups the start/move/end events of one gesture.
type GestureKind uint8

const (
	GestureTouch        GestureKind = iota // raw contact begin/move/end
	GestureDrag                            // one or more fingers translating
	GesturePinch                           // two-finger scale
	GestureRotate                          // two-finger rotation
	GestureSinglePinch                     // one finger on the affordance, scaling
	GestureSingleRotate                    // one finger on the affordance, rotating
)

// Phase is the sub-phase of a gesture event.
type Phase uint8

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
)

// EventType identifies one named gesture event.
type EventType uint8

const (
	EventTouchStart EventType = iota
	EventTouchMove
	EventTouchEnd
	EventDragStart
	EventDrag
	EventDragEnd
	EventPinchStart
	EventPinch
	EventPinchEnd
	EventRotateStart
	EventRotate
	EventRotateEnd
	EventSinglePinchStart
	EventSinglePinch
	EventSinglePinchEnd
	EventSingleRotateStart
	EventSingleRotate
	EventSingleRotateEnd

	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	"touchstart", "touchmove", "touchend",
	"dragstart", "drag", "dragend",
	"pinchstart", "pinch", "pinchend",
	"rotatestart", "rotate", "rotatend",
	"singlePinchstart", "singlePinch", "singlePinchend",
	"singleRotatestart", "singleRotate", "singleRotatend",
}

// String returns the event name used by gesture collaborators, e.g. "pinchstart".
func (e EventType) String() string {
	if e >= eventTypeCount {
		return "unknown"
	}
	return eventNames[e]
}

// ParseEventType maps an event name back to its EventType.
func ParseEventType(name string) (EventType, bool) {
	for i, n := range eventNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

// Kind returns the gesture the event belongs to.
func (e EventType) Kind() GestureKind {
	return GestureKind(e / 3)
}

// Phase returns the event's sub-phase.
func (e EventType) Phase() Phase {
	return Phase(e % 3)
}
