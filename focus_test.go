package touchkit

import "testing"

func newFocusFixture() (*Registry, *Focus, *recordingSource) {
	reg := NewRegistry()
	reg.AddChild(&Element{})
	reg.AddChild(&Element{Use: Capabilities{SingleRotate: true}})
	reg.SetBackground(&Element{Background: BackgroundCrop})
	src := &recordingSource{}
	return reg, NewFocus(reg, src), src
}

func activeIDs(reg *Registry) []ElementID {
	var ids []ElementID
	reg.ForEach(func(e *Element) {
		if e.Active {
			ids = append(ids, e.ID)
		}
	})
	return ids
}

func TestFocusSwitchTo(t *testing.T) {
	reg, f, src := newFocusFixture()

	if !f.SwitchTo(0) {
		t.Fatal("SwitchTo(0) = false")
	}
	if op, ok := f.Operator(); !ok || op != 0 {
		t.Errorf("Operator = %d, %v", op, ok)
	}
	assertOrder(t, activeIDs(reg), 0)

	f.SwitchTo(1)
	assertOrder(t, activeIDs(reg), 1)
	assertOrder(t, src.switches, 0, 1)
	if src.single[0] || !src.single[1] {
		t.Errorf("single-finger flags = %v", src.single)
	}

	f.SwitchTo(NoElement)
	if _, ok := f.Operator(); ok {
		t.Error("operator set after SwitchTo(NoElement)")
	}
	if len(activeIDs(reg)) != 0 {
		t.Errorf("active after clear: %v", activeIDs(reg))
	}
}

func TestFocusSwitchToUnknown(t *testing.T) {
	reg, f, src := newFocusFixture()
	f.SwitchTo(0)
	if f.SwitchTo(42) {
		t.Error("SwitchTo(42) = true")
	}
	if op, _ := f.Operator(); op != 0 {
		t.Errorf("operator changed to %d", op)
	}
	assertOrder(t, activeIDs(reg), 0)
	if len(src.switches) != 1 {
		t.Errorf("source notified for unknown id: %v", src.switches)
	}
}

func TestFocusAtMostOneActive(t *testing.T) {
	reg, f, _ := newFocusFixture()
	for _, id := range []ElementID{0, 1, BackgroundID, 1, 0, NoElement, BackgroundID} {
		f.SwitchTo(id)
		if n := len(activeIDs(reg)); n > 1 {
			t.Fatalf("after SwitchTo(%d): %d active", id, n)
		}
	}
}

func TestFocusFreezeUnfreeze(t *testing.T) {
	reg, f, _ := newFocusFixture()
	f.SwitchTo(1)

	f.Freeze()
	if !f.Frozen() {
		t.Fatal("not frozen")
	}
	if len(activeIDs(reg)) != 0 {
		t.Error("active presentation visible while frozen")
	}
	if f.SwitchTo(0) {
		t.Error("SwitchTo succeeded while frozen")
	}
	if op, _ := f.Operator(); op != 1 {
		t.Errorf("operator = %d, want 1 remembered", op)
	}

	f.Unfreeze()
	assertOrder(t, activeIDs(reg), 1)
	if !f.SwitchTo(0) {
		t.Error("SwitchTo failed after Unfreeze")
	}
}

func TestFocusRelease(t *testing.T) {
	_, f, src := newFocusFixture()
	f.SwitchTo(0)
	f.Release(1)
	if op, _ := f.Operator(); op != 0 {
		t.Errorf("Release(other) cleared operator")
	}
	f.Release(0)
	if _, ok := f.Operator(); ok {
		t.Error("Release(operator) kept operator")
	}
	if last := src.switches[len(src.switches)-1]; last != NoElement {
		t.Errorf("source last switch = %d, want NoElement", last)
	}
}

func TestFocusDetach(t *testing.T) {
	reg, f, src := newFocusFixture()
	f.SwitchTo(0)
	f.Detach()
	if !src.detached {
		t.Error("source not detached")
	}
	if _, ok := f.Operator(); ok {
		t.Error("operator kept after Detach")
	}
	if len(activeIDs(reg)) != 0 {
		t.Error("active presentation kept after Detach")
	}
	if f.SwitchTo(1) {
		t.Error("SwitchTo succeeded after Detach")
	}
}
