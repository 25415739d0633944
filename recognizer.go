package touchkit

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
)

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
	// consumed pointers took part in a pinch or single-finger gesture and
	// neither drag nor tap on release.
	consumed bool
}

// --- Two-finger state ---

type pinchState struct {
	active    bool
	pointer0  int
	pointer1  int
	prevDist  float64
	prevAngle float64
}

// --- Single-finger state ---

// singleState tracks a press on the single-finger affordance. Scale and
// rotation are measured from the operator's center to the pointer.
type singleState struct {
	active    bool
	pointer   int
	center    Vec2
	prevDist  float64
	prevAngle float64
}

// syntheticPointerEvent is one injected pointer event in viewport coordinates.
type syntheticPointerEvent struct {
	pointer int
	x, y    float64
	pressed bool
}

// Recognizer turns raw pointer input into the kit's named gesture events.
// One pointer past the dead zone drags; two pointers pinch and rotate; a
// press on the operator's single-finger affordance scales and rotates around
// the operator's center. A press and release without movement is a tap.
//
// Input arrives through Poll (ebiten mouse and touch), Feed, or the inject
// queue, all on the kit's goroutine.
type Recognizer struct {
	kit *Kit

	pointers [maxPointers]pointerState
	pinch    pinchState
	single   singleState
	deadZone float64

	operator     ElementID
	singleFinger bool
	detached     bool

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticPointerEvent
}

// NewRecognizer creates a recognizer that dispatches into k.
func NewRecognizer(k *Kit) *Recognizer {
	return &Recognizer{kit: k, deadZone: defaultDragDeadZone, operator: NoElement}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (r *Recognizer) SetDragDeadZone(pixels float64) {
	r.deadZone = pixels
}

// SwitchOperator records the new operator and resets the single-finger
// reference point.
func (r *Recognizer) SwitchOperator(id ElementID, singleFinger bool) {
	r.operator = id
	r.singleFinger = singleFinger
	if r.single.active {
		r.endSingle()
	}
}

// Detach stops recognition. Held pointers are dropped without end events.
func (r *Recognizer) Detach() {
	r.detached = true
	r.pointers = [maxPointers]pointerState{}
	r.pinch = pinchState{}
	r.single = singleState{}
	r.injectQueue = nil
}

// Detached reports whether Detach was called.
func (r *Recognizer) Detached() bool { return r.detached }

// Poll reads ebiten mouse (pointer 0) and touch (pointers 1-9) state. Call it
// once per frame from the game's Update, before Kit.Update.
func (r *Recognizer) Poll() {
	if r.detached || len(r.injectQueue) > 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	r.Feed(0, float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	r.pollTouches()
}

func (r *Recognizer) pollTouches() {
	touchIDs := ebiten.AppendTouchIDs(r.prevTouchIDs[:0])
	r.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := r.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		r.Feed(slot, float64(tx), float64(ty), true)
	}

	for i := 1; i < maxPointers; i++ {
		if r.touchUsed[i] && !activeSlots[i] {
			ps := &r.pointers[i]
			if ps.down {
				r.Feed(i, ps.lastX, ps.lastY, false)
			}
			r.touchUsed[i] = false
			r.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9). Returns -1 if full.
func (r *Recognizer) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if r.touchUsed[i] && r.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !r.touchUsed[i] {
			r.touchUsed[i] = true
			r.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// Feed runs the pointer state machine for one pointer sample in viewport
// coordinates. Out-of-range pointer ids are ignored.
func (r *Recognizer) Feed(pointer int, x, y float64, pressed bool) {
	if r.detached || pointer < 0 || pointer >= maxPointers {
		return
	}
	ps := &r.pointers[pointer]

	switch {
	case pressed && !ps.down:
		*ps = pointerState{down: true, startX: x, startY: y, lastX: x, lastY: y}
		r.emit(EventTouchStart, pointer, x, y)
		if !r.pinch.active && !r.single.active && r.singleFinger {
			if hit := r.kit.HitTest(x, y); hit.Part == HitSingleAffordance {
				r.beginSingle(pointer, x, y)
			}
		}

	case !pressed && ps.down:
		switch {
		case r.single.active && r.single.pointer == pointer:
			r.endSingle()
		case ps.dragging:
			r.emitDelta(EventDragEnd, pointer, x, y, x-ps.lastX, y-ps.lastY)
		case !ps.consumed:
			r.kit.Tap(x, y)
		}
		r.emit(EventTouchEnd, pointer, x, y)
		*ps = pointerState{lastX: x, lastY: y}

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			break
		}
		r.emit(EventTouchMove, pointer, x, y)
		switch {
		case r.single.active && r.single.pointer == pointer:
			r.moveSingle(x, y)
		case ps.consumed || r.pinch.active:
		default:
			if !ps.dragging {
				dx := x - ps.startX
				dy := y - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > r.deadZone {
					ps.dragging = true
					r.emitDelta(EventDragStart, pointer, x, y, 0, 0)
				}
			}
			if ps.dragging {
				r.emitDelta(EventDrag, pointer, x, y, x-ps.lastX, y-ps.lastY)
			}
		}
		ps.lastX = x
		ps.lastY = y

	default:
		ps.lastX = x
		ps.lastY = y
	}

	r.detectPinch()
}

// --- Two-finger detection ---

func (r *Recognizer) detectPinch() {
	var p0, p1, count int
	for i := 0; i < maxPointers; i++ {
		if !r.pointers[i].down {
			continue
		}
		if r.single.active && r.single.pointer == i {
			continue
		}
		switch count {
		case 0:
			p0 = i
		case 1:
			p1 = i
		}
		count++
	}

	if count != 2 {
		if r.pinch.active {
			ps0 := &r.pointers[r.pinch.pointer0]
			r.pinch.active = false
			r.emit(EventPinchEnd, r.pinch.pointer0, ps0.lastX, ps0.lastY)
			r.emit(EventRotateEnd, r.pinch.pointer0, ps0.lastX, ps0.lastY)
		}
		return
	}

	ps0 := &r.pointers[p0]
	ps1 := &r.pointers[p1]
	cx := (ps0.lastX + ps1.lastX) / 2
	cy := (ps0.lastY + ps1.lastY) / 2
	dx := ps1.lastX - ps0.lastX
	dy := ps1.lastY - ps0.lastY
	dist := math.Sqrt(dx*dx + dy*dy)
	angle := math.Atan2(dy, dx)

	if !r.pinch.active || r.pinch.pointer0 != p0 || r.pinch.pointer1 != p1 {
		// A drag in progress on either finger ends where the pinch begins.
		for _, id := range [2]int{p0, p1} {
			ps := &r.pointers[id]
			if ps.dragging {
				ps.dragging = false
				r.emitDelta(EventDragEnd, id, ps.lastX, ps.lastY, 0, 0)
			}
			ps.consumed = true
		}
		r.pinch = pinchState{active: true, pointer0: p0, pointer1: p1, prevDist: dist, prevAngle: angle}
		r.emit(EventPinchStart, p0, cx, cy)
		r.emit(EventRotateStart, p0, cx, cy)
		return
	}

	if dist > 0 && r.pinch.prevDist > 0 && dist != r.pinch.prevDist {
		r.kit.Dispatch(GestureEvent{Type: EventPinch, PointerID: p0, X: cx, Y: cy, Scale: dist / r.pinch.prevDist})
	}
	if d := wrapAngle(angle - r.pinch.prevAngle); d != 0 {
		r.kit.Dispatch(GestureEvent{Type: EventRotate, PointerID: p0, X: cx, Y: cy, Rotation: d})
	}
	r.pinch.prevDist = dist
	r.pinch.prevAngle = angle
}

// --- Single-finger gestures ---

func (r *Recognizer) beginSingle(pointer int, x, y float64) {
	center, ok := r.kit.OperatorCenter()
	if !ok {
		return
	}
	dx, dy := x-center.X, y-center.Y
	r.single = singleState{
		active:    true,
		pointer:   pointer,
		center:    center,
		prevDist:  math.Sqrt(dx*dx + dy*dy),
		prevAngle: math.Atan2(dy, dx),
	}
	r.pointers[pointer].consumed = true
	r.emit(EventSinglePinchStart, pointer, x, y)
	r.emit(EventSingleRotateStart, pointer, x, y)
}

func (r *Recognizer) moveSingle(x, y float64) {
	s := &r.single
	dx, dy := x-s.center.X, y-s.center.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	angle := math.Atan2(dy, dx)
	if dist > 0 && s.prevDist > 0 && dist != s.prevDist {
		r.kit.Dispatch(GestureEvent{Type: EventSinglePinch, PointerID: s.pointer, X: x, Y: y, Scale: dist / s.prevDist})
	}
	if d := wrapAngle(angle - s.prevAngle); d != 0 {
		r.kit.Dispatch(GestureEvent{Type: EventSingleRotate, PointerID: s.pointer, X: x, Y: y, Rotation: d})
	}
	s.prevDist = dist
	s.prevAngle = angle
}

func (r *Recognizer) endSingle() {
	s := r.single
	r.single = singleState{}
	ps := r.pointers[s.pointer]
	r.emit(EventSinglePinchEnd, s.pointer, ps.lastX, ps.lastY)
	r.emit(EventSingleRotateEnd, s.pointer, ps.lastX, ps.lastY)
}

// --- Dispatch helpers ---

func (r *Recognizer) emit(t EventType, pointer int, x, y float64) {
	r.kit.Dispatch(GestureEvent{Type: t, PointerID: pointer, X: x, Y: y, Scale: 1})
}

func (r *Recognizer) emitDelta(t EventType, pointer int, x, y, dx, dy float64) {
	r.kit.Dispatch(GestureEvent{Type: t, PointerID: pointer, X: x, Y: y, DeltaX: dx, DeltaY: dy, Scale: 1})
}

// wrapAngle maps a radian difference into (-π, π].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// --- Injection ---

// InjectPress queues a press of pointer 0 at (x, y). Each queued event is
// consumed by one Kit.Update.
func (r *Recognizer) InjectPress(x, y float64) {
	r.InjectPointer(0, x, y, true)
}

// InjectMove queues a move of held pointer 0 to (x, y).
func (r *Recognizer) InjectMove(x, y float64) {
	r.InjectPointer(0, x, y, true)
}

// InjectRelease queues a release of pointer 0 at (x, y).
func (r *Recognizer) InjectRelease(x, y float64) {
	r.InjectPointer(0, x, y, false)
}

// InjectPointer queues one sample for any pointer, for multi-touch scripts.
func (r *Recognizer) InjectPointer(pointer int, x, y float64, pressed bool) {
	r.injectQueue = append(r.injectQueue, syntheticPointerEvent{pointer: pointer, x: x, y: y, pressed: pressed})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (r *Recognizer) InjectClick(x, y float64) {
	r.InjectPress(x, y)
	r.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves, and release at (toX, toY). The sequence consumes
// frames frames; the minimum is 2.
func (r *Recognizer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	r.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		r.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	r.InjectRelease(toX, toY)
}

// Pending returns the number of queued injected events.
func (r *Recognizer) Pending() int { return len(r.injectQueue) }

// processInjected pops one queued event and feeds it. Returns true if an
// event was consumed.
func (r *Recognizer) processInjected() bool {
	if r.detached || len(r.injectQueue) == 0 {
		return false
	}
	evt := r.injectQueue[0]
	copy(r.injectQueue, r.injectQueue[1:])
	r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]
	r.Feed(evt.pointer, evt.x, evt.y, evt.pressed)
	return true
}
