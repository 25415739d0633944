package touchkit

import (
	"errors"
	"testing"
)

func TestRegistrySequentialIDs(t *testing.T) {
	r := NewRegistry()
	for want := ElementID(0); want < 3; want++ {
		if got := r.AddChild(&Element{}); got != want {
			t.Fatalf("AddChild = %d, want %d", got, want)
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
	e, err := r.Get(1)
	if err != nil || e.ID != 1 || e.Kind != KindChild {
		t.Errorf("Get(1) = %+v, %v", e, err)
	}
}

func TestRegistryGetMissing(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get(4); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(4) err = %v, want ErrNotFound", err)
	}
	if _, err := r.Get(BackgroundID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(BackgroundID) err = %v, want ErrNotFound", err)
	}
	if err := r.SetPose(4, IdentityPose()); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetPose err = %v, want ErrNotFound", err)
	}
}

func TestRegistryBackground(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Background(); ok {
		t.Fatal("empty registry has a background")
	}
	first := &Element{}
	r.SetBackground(first)
	second := &Element{}
	r.SetBackground(second)

	bg, ok := r.Background()
	if !ok || bg != second {
		t.Fatal("SetBackground did not replace")
	}
	if bg.ID != BackgroundID || bg.Kind != KindBackground {
		t.Errorf("background = %+v", bg)
	}
	if r.Len() != 0 {
		t.Errorf("background counted as child")
	}
	got, err := r.Get(BackgroundID)
	if err != nil || got != second {
		t.Errorf("Get(BackgroundID) = %v, %v", got, err)
	}
}

func TestRegistryForEachOrder(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 5; i++ {
		r.AddChild(&Element{})
	}
	r.Remove(2)
	r.SetBackground(&Element{})

	var got []ElementID
	r.ForEach(func(e *Element) { got = append(got, e.ID) })
	assertOrder(t, got, BackgroundID, 0, 1, 3, 4)
}

func TestRegistryResetRestartsIDs(t *testing.T) {
	r := NewRegistry()
	r.AddChild(&Element{})
	r.AddChild(&Element{})
	r.SetBackground(&Element{})
	gen := r.Generation()

	r.Reset()
	if r.Len() != 0 {
		t.Errorf("Len after Reset = %d", r.Len())
	}
	if _, ok := r.Background(); ok {
		t.Error("background survived Reset")
	}
	if r.Generation() != gen+1 {
		t.Errorf("Generation = %d, want %d", r.Generation(), gen+1)
	}
	if id := r.AddChild(&Element{}); id != 0 {
		t.Errorf("first id after Reset = %d, want 0", id)
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	id := r.AddChild(&Element{})
	if !r.Remove(id) {
		t.Error("Remove existing = false")
	}
	if r.Remove(id) {
		t.Error("Remove twice = true")
	}
	if r.Remove(BackgroundID) {
		t.Error("Remove missing background = true")
	}
}
