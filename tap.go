package touchkit

// HitPart identifies what a viewport point landed on.
type HitPart uint8

const (
	HitNothing          HitPart = iota // empty viewport area
	HitBackground                      // the background image
	HitChild                           // a child's body
	HitClose                           // the operator's close affordance
	HitSingleAffordance                // the operator's single-finger affordance
)

// Hit is the result of a hit test.
type Hit struct {
	ID   ElementID
	Part HitPart
}

// HitTest finds what is under (x, y), topmost first: the operator's
// affordances, then children in draw order, then the background.
// Affordances only exist on the active (highlighted) operator.
func (k *Kit) HitTest(x, y float64) Hit {
	if op, ok := k.focus.Operator(); ok {
		if e, err := k.reg.Get(op); err == nil && e.Active {
			if e.Close && e.Kind == KindChild && k.affordanceContains(e, x, y, e.Size.Width, 0) {
				return Hit{ID: op, Part: HitClose}
			}
			if e.Use.SingleFinger() && k.affordanceContains(e, x, y, e.Size.Width, e.Size.Height) {
				return Hit{ID: op, Part: HitSingleAffordance}
			}
		}
	}

	order := k.DrawOrder()
	for i := len(order) - 1; i >= 0; i-- {
		e, err := k.reg.Get(order[i])
		if err != nil {
			continue
		}
		if boxContains(e, x, y) {
			return Hit{ID: e.ID, Part: HitChild}
		}
	}

	if bg, ok := k.reg.Background(); ok && boxContains(bg, x, y) {
		return Hit{ID: BackgroundID, Part: HitBackground}
	}
	return Hit{ID: NoElement, Part: HitNothing}
}

// Tap handles a tap at (x, y) the way the container's click handling does:
// the close affordance removes its element, a child is focused and raised,
// a crop background is focused, anything else clears focus. Taps are
// ignored while frozen or after Teardown.
func (k *Kit) Tap(x, y float64) Hit {
	hit := k.HitTest(x, y)
	if k.torn || k.focus.Frozen() {
		return hit
	}
	switch hit.Part {
	case HitClose:
		k.Close(hit.ID)
	case HitSingleAffordance:
		// The recognizer owns presses on this icon.
	case HitChild:
		k.Switch(hit.ID)
		k.stack.RaiseToTop(hit.ID)
	case HitBackground:
		bg, _ := k.reg.Background()
		if bg.Background == BackgroundCrop {
			k.Switch(BackgroundID)
		} else {
			k.Switch(NoElement)
		}
	default:
		k.Switch(NoElement)
	}
	return hit
}

// boxContains reports whether a viewport point lies inside e's transformed
// layout box.
func boxContains(e *Element, x, y float64) bool {
	lx, ly := worldToLocal(e, x, y)
	return lx >= 0 && lx <= e.Size.Width && ly >= 0 && ly <= e.Size.Height
}

// affordanceContains tests a square affordance centered on the local point
// (ax, ay). The square keeps its on-screen size under scaling, so its local
// half-extent is divided by the element scale.
func (k *Kit) affordanceContains(e *Element, x, y, ax, ay float64) bool {
	lx, ly := worldToLocal(e, x, y)
	half := k.affordanceSize / 2 * e.AffordanceScale
	return lx >= ax-half && lx <= ax+half && ly >= ay-half && ly <= ay+half
}

// OperatorCenter returns the viewport-space center of the operator. The
// recognizer measures single-finger gestures against it.
func (k *Kit) OperatorCenter() (Vec2, bool) {
	op, ok := k.focus.Operator()
	if !ok {
		return Vec2{}, false
	}
	e, err := k.reg.Get(op)
	if err != nil {
		return Vec2{}, false
	}
	return boxCenter(e), true
}
