package touchkit

// GestureSource is the gesture-recognition collaborator. The kit tells it
// whenever the operator changes so it can reset its single-finger reference
// point, and detaches it on teardown.
type GestureSource interface {
	SwitchOperator(id ElementID, singleFinger bool)
	Detach()
}

// Focus tracks the single active element (the operator). Frozen overlays
// either focus state: it hides the active presentation and suppresses focus
// changes while remembering the operator for Unfreeze.
type Focus struct {
	reg      *Registry
	source   GestureSource
	operator ElementID
	frozen   bool
	detached bool
}

// NewFocus creates an unfocused controller over reg. source may be nil.
func NewFocus(reg *Registry, source GestureSource) *Focus {
	return &Focus{reg: reg, source: source, operator: NoElement}
}

// Operator returns the operator id and whether one is set.
func (f *Focus) Operator() (ElementID, bool) {
	return f.operator, f.operator != NoElement
}

// Frozen reports whether focus is frozen.
func (f *Focus) Frozen() bool {
	return f.frozen
}

// SwitchTo makes id the operator, or clears focus for NoElement. It is a
// no-op when frozen, detached, or when id is not registered, and reports
// whether the switch happened.
func (f *Focus) SwitchTo(id ElementID) bool {
	if f.frozen || f.detached {
		return false
	}
	var target *Element
	if id != NoElement {
		e, err := f.reg.Get(id)
		if err != nil {
			return false
		}
		target = e
	}

	f.clearActive()
	if f.source != nil {
		single := target != nil && target.Use.SingleFinger()
		f.source.SwitchOperator(id, single)
	}
	f.operator = id
	if target != nil {
		target.Active = true
	}
	return true
}

// Release drops focus if id is the operator. Used when an element is removed.
func (f *Focus) Release(id ElementID) {
	if f.operator != id {
		return
	}
	f.operator = NoElement
	if f.source != nil && !f.detached {
		f.source.SwitchOperator(NoElement, false)
	}
}

// Freeze hides the active presentation and suppresses focus changes without
// forgetting the operator.
func (f *Focus) Freeze() {
	f.clearActive()
	f.frozen = true
}

// Unfreeze restores the active presentation of the remembered operator.
func (f *Focus) Unfreeze() {
	f.frozen = false
	if f.detached {
		return
	}
	if e, err := f.reg.Get(f.operator); err == nil {
		e.Active = true
	}
}

// Reset returns to unfocused and unfrozen. The registry is reset separately.
func (f *Focus) Reset() {
	f.operator = NoElement
	f.frozen = false
	if f.source != nil && !f.detached {
		f.source.SwitchOperator(NoElement, false)
	}
}

// Detach clears the active presentation, releases the operator, and detaches
// the gesture source. Subsequent switches are no-ops.
func (f *Focus) Detach() {
	if f.detached {
		return
	}
	f.clearActive()
	f.operator = NoElement
	f.detached = true
	if f.source != nil {
		f.source.Detach()
	}
}

// Detached reports whether Detach was called.
func (f *Focus) Detached() bool {
	return f.detached
}

func (f *Focus) clearActive() {
	f.reg.ForEach(func(e *Element) { e.Active = false })
}
