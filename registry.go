package touchkit

import (
	"fmt"
	"image"
	"sort"
)

// Element is one manipulable visual unit. The registry owns every Element;
// other components hold ids and look elements up when needed.
type Element struct {
	ID     ElementID
	Kind   Kind
	Use    Capabilities
	Policy BoundingPolicy

	// Pose is the persisted pose. It changes only through the kit, which
	// runs every proposal through Clamp first.
	Pose Pose

	// Size is the measured layout box in viewport pixels (before Pose).
	Size Size
	// Natural is the source image size in pixels.
	Natural Size
	Image   image.Image

	// Close reports whether the element shows a close affordance.
	Close bool
	// AffordanceScale is 1/Pose.Scale, applied to fixed-size affordance
	// icons so they keep their size while the element scales.
	AffordanceScale float64
	// Active is the "focused" presentation flag.
	Active bool

	// Background-only fields.
	Background BackgroundType
	Offset     Vec2    // static top-left of the layout box
	Ratio      float64 // source pixels per displayed pixel

	shown Pose // last pose flushed to the screen
}

// HasAffordance reports whether the element carries any fixed-size icon.
func (e *Element) HasAffordance() bool {
	return e.Close || e.Use.SingleFinger()
}

// Shown returns the pose last presented on screen.
func (e *Element) Shown() Pose {
	return e.shown
}

// Registry maps element ids to elements. It is the single source of truth
// for which elements exist. A Registry is not safe for concurrent use.
type Registry struct {
	children   map[ElementID]*Element
	background *Element
	nextID     ElementID
	generation uint64
}

// NewRegistry creates an empty registry at generation 1.
func NewRegistry() *Registry {
	return &Registry{
		children:   make(map[ElementID]*Element),
		generation: 1,
	}
}

// Reserve returns the next sequential child id without registering anything.
func (r *Registry) Reserve() ElementID {
	id := r.nextID
	r.nextID++
	return id
}

// AddChild assigns the next sequential id to e and registers it.
func (r *Registry) AddChild(e *Element) ElementID {
	id := r.Reserve()
	r.Insert(id, e)
	return id
}

// Insert registers e under a previously reserved id.
func (r *Registry) Insert(id ElementID, e *Element) {
	e.ID = id
	e.Kind = KindChild
	r.children[id] = e
}

// SetBackground fills the background slot, replacing any previous background.
func (r *Registry) SetBackground(e *Element) {
	e.ID = BackgroundID
	e.Kind = KindBackground
	r.background = e
}

// Background returns the background element, if loaded.
func (r *Registry) Background() (*Element, bool) {
	return r.background, r.background != nil
}

// Get returns the element for id. BackgroundID resolves to the background.
func (r *Registry) Get(id ElementID) (*Element, error) {
	if id == BackgroundID {
		if r.background == nil {
			return nil, fmt.Errorf("get background: %w", ErrNotFound)
		}
		return r.background, nil
	}
	e, ok := r.children[id]
	if !ok {
		return nil, fmt.Errorf("get element %d: %w", id, ErrNotFound)
	}
	return e, nil
}

// Remove unregisters id and reports whether it existed.
func (r *Registry) Remove(id ElementID) bool {
	if id == BackgroundID {
		had := r.background != nil
		r.background = nil
		return had
	}
	if _, ok := r.children[id]; !ok {
		return false
	}
	delete(r.children, id)
	return true
}

// SetPose persists pose for id.
func (r *Registry) SetPose(id ElementID, pose Pose) error {
	e, err := r.Get(id)
	if err != nil {
		return err
	}
	e.Pose = pose
	return nil
}

// ForEach visits the background (if any) and then every child in id order.
func (r *Registry) ForEach(fn func(*Element)) {
	if r.background != nil {
		fn(r.background)
	}
	ids := make([]ElementID, 0, len(r.children))
	for id := range r.children {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fn(r.children[id])
	}
}

// Len returns the number of registered children (background excluded).
func (r *Registry) Len() int {
	return len(r.children)
}

// Generation identifies the current registry contents. Reset advances it so
// completions captured under an older generation can be recognized as stale.
func (r *Registry) Generation() uint64 {
	return r.generation
}

// Reset discards every element, restarts id assignment, and advances the
// generation.
func (r *Registry) Reset() {
	clear(r.children)
	r.background = nil
	r.nextID = 0
	r.generation++
}
