package touchkit

import "github.com/google/uuid"

// GestureEvent is one named gesture event from the gesture collaborator.
// Move events carry a delta: DeltaX/DeltaY for drag, Scale (multiplicative)
// for pinch and singlePinch, Rotation (radians) for rotate and singleRotate.
type GestureEvent struct {
	Type      EventType
	PointerID int
	X, Y      float64 // pointer position in viewport space

	DeltaX, DeltaY float64
	Scale          float64
	Rotation       float64

	// Set by the kit before observers see the event.
	KitID    uuid.UUID
	Operator ElementID
}

// Observer receives every routed gesture event, whether or not it changed a
// pose. The ecs package bridges it into a Donburi world.
type Observer interface {
	ObserveGesture(ev GestureEvent)
}

// EventHandlers has one callback slot per named gesture event. Nil slots are
// no-ops.
type EventHandlers struct {
	TouchStart, TouchMove, TouchEnd                  func(GestureEvent)
	DragStart, Drag, DragEnd                         func(GestureEvent)
	PinchStart, Pinch, PinchEnd                      func(GestureEvent)
	RotateStart, Rotate, RotateEnd                   func(GestureEvent)
	SinglePinchStart, SinglePinch, SinglePinchEnd    func(GestureEvent)
	SingleRotateStart, SingleRotate, SingleRotateEnd func(GestureEvent)
}

func (h *EventHandlers) slot(t EventType) func(GestureEvent) {
	switch t {
	case EventTouchStart:
		return h.TouchStart
	case EventTouchMove:
		return h.TouchMove
	case EventTouchEnd:
		return h.TouchEnd
	case EventDragStart:
		return h.DragStart
	case EventDrag:
		return h.Drag
	case EventDragEnd:
		return h.DragEnd
	case EventPinchStart:
		return h.PinchStart
	case EventPinch:
		return h.Pinch
	case EventPinchEnd:
		return h.PinchEnd
	case EventRotateStart:
		return h.RotateStart
	case EventRotate:
		return h.Rotate
	case EventRotateEnd:
		return h.RotateEnd
	case EventSinglePinchStart:
		return h.SinglePinchStart
	case EventSinglePinch:
		return h.SinglePinch
	case EventSinglePinchEnd:
		return h.SinglePinchEnd
	case EventSingleRotateStart:
		return h.SingleRotateStart
	case EventSingleRotate:
		return h.SingleRotate
	case EventSingleRotateEnd:
		return h.SingleRotateEnd
	}
	return nil
}

// --- Runtime handler registry ---

type gestureHandler struct {
	id uint32
	fn func(GestureEvent)
}

type handlerRegistry struct {
	byType [eventTypeCount][]gestureHandler
	nextID uint32
}

// CallbackHandle allows removing a callback registered with OnGesture.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = gestureHandler{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

// OnGesture registers an additional callback for one event type, after the
// EventHandlers slot.
func (k *Kit) OnGesture(t EventType, fn func(GestureEvent)) CallbackHandle {
	if t >= eventTypeCount {
		return CallbackHandle{}
	}
	k.handlers.nextID++
	id := k.handlers.nextID
	k.handlers.byType[t] = append(k.handlers.byType[t], gestureHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &k.handlers, event: t}
}

// SetObserver sets the optional observer bridge.
func (k *Kit) SetObserver(obs Observer) {
	k.observer = obs
}

// --- Routing ---

// baseline is the pose gesture deltas accumulate onto. It is not clamped:
// dragging past a bound and back only moves the element once the
// accumulated value re-enters the legal range.
type baseline struct {
	id    ElementID
	pose  Pose
	valid bool
}

// Dispatch routes one gesture event. Start events snapshot the operator's
// pose; move events accumulate their delta onto it, clamp, persist, and
// schedule a visual update. Nothing changes while frozen, without an
// operator, or when the operator lacks the capability. Every event is
// forwarded to the handlers and observer regardless.
func (k *Kit) Dispatch(ev GestureEvent) {
	if k.torn {
		return
	}
	ev.KitID = k.id
	op, focused := k.focus.Operator()
	ev.Operator = op
	if focused && !k.focus.Frozen() {
		switch ev.Type.Phase() {
		case PhaseStart:
			k.snapshot(op)
		case PhaseMove:
			k.applyDelta(op, ev)
		}
	}
	k.notify(ev)
}

func (k *Kit) snapshot(id ElementID) {
	e, err := k.reg.Get(id)
	if err != nil {
		k.base = baseline{}
		return
	}
	k.base = baseline{id: id, pose: e.Pose, valid: true}
}

func (k *Kit) applyDelta(id ElementID, ev GestureEvent) {
	kind := ev.Type.Kind()
	if kind == GestureTouch {
		return
	}
	e, err := k.reg.Get(id)
	if err != nil {
		return
	}
	if !e.Use.Allows(kind) {
		k.logger.Debug("ignoring gesture", "event", ev.Type, "element", id, "err", ErrInvalidCapability)
		return
	}
	if !k.base.valid || k.base.id != id {
		k.snapshot(id)
	}

	switch kind {
	case GestureDrag:
		k.base.pose.X += ev.DeltaX
		k.base.pose.Y += ev.DeltaY
	case GesturePinch, GestureSinglePinch:
		k.base.pose.Scale *= ev.Scale
	case GestureRotate, GestureSingleRotate:
		k.base.pose.Rotation += ev.Rotation
	}
	k.commitPose(e, Clamp(k.base.pose, e.Policy, e.Size, k.viewport))
}

// commitPose persists pose, refreshes the affordance counter-scale, and
// queues the visual update.
func (k *Kit) commitPose(e *Element, pose Pose) {
	e.Pose = pose
	if pose.Scale != 0 {
		e.AffordanceScale = 1 / pose.Scale
	}
	k.frames.push(e.ID, pose)
}

func (k *Kit) notify(ev GestureEvent) {
	if fn := k.events.slot(ev.Type); fn != nil {
		fn(ev)
	}
	for _, h := range k.handlers.byType[ev.Type] {
		h.fn(ev)
	}
	if k.observer != nil {
		k.observer.ObserveGesture(ev)
	}
}
