package touchkit

import (
	"context"
	"image"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	defaultAffordanceSize = 30.0
	defaultTPS            = 60
	loadResultBuffer      = 16
)

// Options configures a Kit. Only Viewport is required.
type Options struct {
	// Viewport is the fixed container size. It is never remeasured.
	Viewport Size

	// Events holds one observer callback slot per gesture event.
	Events EventHandlers

	// Loader loads element images. Defaults to DefaultLoader.
	Loader Loader

	// Renderer creates the rendering collaborator used by ExportImage.
	// Defaults to NewImageRenderer.
	Renderer RendererFactory

	// Gestures is the gesture collaborator. When nil the kit creates a
	// Recognizer bound to itself, available through Kit.Recognizer.
	Gestures GestureSource

	// Presenter, if set, receives coalesced pose updates at every Update.
	Presenter Presenter

	// Logger overrides the default stderr logger.
	Logger *log.Logger

	// OnLoadError receives a *LoadError when an element image fails to
	// load. The element is never registered; retrying is up to the caller.
	OnLoadError func(id ElementID, err error)

	// AffordanceSize is the on-screen side of the close and single-finger
	// icons. Defaults to 30.
	AffordanceSize float64

	// Highlight tints the active element's outline. Defaults to ColorWhite.
	Highlight Color

	// TPS is the number of Update calls per second, used to advance tweens.
	// Defaults to 60.
	TPS int
}

// BackgroundOptions describes the background element.
type BackgroundOptions struct {
	Image Source
	Type  BackgroundType

	// Left and Top fix the contain-mode offset. Unset values center the
	// image on the free axis. Ignored in crop mode.
	Left, Top Length

	// Use overrides the background's capabilities. Crop backgrounds default
	// to drag only.
	Use *Capabilities
}

// Placement is a child's initial pose in layout terms.
type Placement struct {
	X, Y     Length
	Scale    float64 // zero means 1
	Rotation float64
}

// ChildOptions describes a child element.
type ChildOptions struct {
	Image Source
	// Width resolves against the viewport width; height follows the image
	// aspect ratio. Unset uses the image's natural width.
	Width  Length
	Use    Capabilities
	Bounds BoundingPolicy
	Pos    Placement
	// Close shows a close affordance while the element is active.
	Close bool
}

// Kit is one container of overlaid elements: a background plus children,
// a z-order stack, and a focus controller, driven by gesture events and
// exported into a single flattened image. Each Kit is independent. A Kit is
// not safe for concurrent use; all methods must be called from the goroutine
// that owns it (the game loop), image loads excepted.
type Kit struct {
	id       uuid.UUID
	viewport Size

	reg    *Registry
	stack  ZStack
	focus  *Focus
	frames frameQueue
	base   baseline

	events     EventHandlers
	handlers   handlerRegistry
	observer   Observer
	presenter  Presenter
	loader     Loader
	renderer   RendererFactory
	recognizer *Recognizer

	logger      *log.Logger
	debug       bool
	onLoadError func(ElementID, error)

	affordanceSize float64
	highlight      Color
	tps            int

	ctx      context.Context
	cancel   context.CancelFunc
	results  chan loadResult
	inflight int
	torn     bool

	tweens   []*PoseTween
	script   *ScriptRunner
	textures textureCache
}

// NewKit creates a kit for a viewport of the given size.
// Panics if the viewport is not positive in both dimensions.
func NewKit(opts Options) *Kit {
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		panic("touchkit: viewport must be positive")
	}
	ctx, cancel := context.WithCancel(context.Background())
	k := &Kit{
		id:             uuid.New(),
		viewport:       opts.Viewport,
		reg:            NewRegistry(),
		events:         opts.Events,
		presenter:      opts.Presenter,
		loader:         opts.Loader,
		renderer:       opts.Renderer,
		onLoadError:    opts.OnLoadError,
		affordanceSize: opts.AffordanceSize,
		highlight:      opts.Highlight,
		tps:            opts.TPS,
		ctx:            ctx,
		cancel:         cancel,
		results:        make(chan loadResult, loadResultBuffer),
	}
	if k.loader == nil {
		k.loader = DefaultLoader{}
	}
	if k.renderer == nil {
		k.renderer = NewImageRenderer
	}
	if k.affordanceSize <= 0 {
		k.affordanceSize = defaultAffordanceSize
	}
	if k.highlight == (Color{}) {
		k.highlight = ColorWhite
	}
	if k.tps <= 0 {
		k.tps = defaultTPS
	}
	k.logger = opts.Logger
	if k.logger == nil {
		k.logger = newLogger(k.id)
	}

	source := opts.Gestures
	if source == nil {
		k.recognizer = NewRecognizer(k)
		source = k.recognizer
	}
	k.focus = NewFocus(k.reg, source)
	return k
}

// ID returns the kit's instance id.
func (k *Kit) ID() uuid.UUID { return k.id }

// Viewport returns the container size.
func (k *Kit) Viewport() Size { return k.viewport }

// Registry exposes the element registry for inspection.
func (k *Kit) Registry() *Registry { return k.reg }

// Recognizer returns the built-in gesture recognizer, or nil when a custom
// GestureSource was supplied.
func (k *Kit) Recognizer() *Recognizer { return k.recognizer }

// Element returns the element registered under id.
func (k *Kit) Element(id ElementID) (*Element, error) {
	return k.reg.Get(id)
}

// Operator returns the focused element id and whether one is set.
func (k *Kit) Operator() (ElementID, bool) {
	return k.focus.Operator()
}

// Frozen reports whether the kit is frozen.
func (k *Kit) Frozen() bool { return k.focus.Frozen() }

// TornDown reports whether Teardown was called.
func (k *Kit) TornDown() bool { return k.torn }

// Order returns the back-to-front child order. The returned slice MUST NOT
// be mutated.
func (k *Kit) Order() []ElementID {
	return k.stack.Order()
}

// DrawOrder returns the on-screen order: the stack order with the
// highlighted operator drawn above everything else. The stack itself is
// unchanged.
func (k *Kit) DrawOrder() []ElementID {
	order := append([]ElementID(nil), k.stack.Order()...)
	op, ok := k.focus.Operator()
	if !ok || op == BackgroundID {
		return order
	}
	if e, err := k.reg.Get(op); err != nil || !e.Active {
		return order
	}
	for i, id := range order {
		if id == op {
			copy(order[i:], order[i+1:])
			order[len(order)-1] = op
			break
		}
	}
	return order
}

// Add loads a child and returns its id. The id is assigned immediately; the
// element is registered, stacked on top, and focused once its image has
// loaded. Returns NoElement after Teardown.
func (k *Kit) Add(opts ChildOptions) ElementID {
	if k.torn {
		k.logger.Warn("add ignored", "err", ErrTornDown)
		return NoElement
	}
	id := k.reg.Reserve()
	k.load(id, opts.Image, func(img image.Image) {
		natural := imageSize(img)
		size, pose := k.layoutChild(natural, opts)
		e := &Element{
			Use:             opts.Use,
			Policy:          opts.Bounds,
			Size:            size,
			Natural:         natural,
			Image:           img,
			Close:           opts.Close,
			AffordanceScale: 1,
		}
		k.reg.Insert(id, e)
		k.stack.Insert(id)
		k.focus.SwitchTo(id)
		pose = Clamp(pose, e.Policy, size, k.viewport)
		e.shown = pose
		k.commitPose(e, pose)
		k.logger.Debug("element added", "element", id, "size", size, "pose", pose)
	})
	return id
}

// Switch focuses id, or clears focus for NoElement. It does not change the
// stacking order. Only crop backgrounds can be focused. Ignored while frozen
// or after Teardown; reports whether focus changed.
func (k *Kit) Switch(id ElementID) bool {
	if k.torn {
		return false
	}
	if id == BackgroundID {
		bg, ok := k.reg.Background()
		if !ok || bg.Background != BackgroundCrop {
			return false
		}
	}
	if !k.focus.SwitchTo(id) {
		return false
	}
	k.base = baseline{}
	k.logger.Debug("switched operator", "element", id)
	return true
}

// Raise moves a child to the top of the stack.
func (k *Kit) Raise(id ElementID) {
	k.stack.RaiseToTop(id)
}

// Freeze suspends (true) or resumes (false) all gesture effects and focus
// changes. Unfreezing restores the operator's active presentation.
func (k *Kit) Freeze(frozen bool) {
	if frozen {
		k.focus.Freeze()
	} else {
		k.focus.Unfreeze()
	}
	k.logger.Debug("freeze", "frozen", frozen)
}

// Close removes a child as its close affordance does. Unknown ids and the
// background are silent no-ops.
func (k *Kit) Close(id ElementID) bool {
	if id == BackgroundID || !k.reg.Remove(id) {
		return false
	}
	k.stack.Remove(id)
	k.focus.Release(id)
	k.frames.drop(id)
	k.textures.drop(id)
	k.forget(id)
	if k.base.id == id {
		k.base = baseline{}
	}
	k.logger.Debug("element closed", "element", id)
	return true
}

// Reset discards every element and returns to unfocused, unfrozen state.
// Loads still in flight complete as no-ops. The viewport is kept.
func (k *Kit) Reset() {
	k.reg.ForEach(func(e *Element) { k.forget(e.ID) })
	k.reg.Reset()
	k.stack.Clear()
	k.focus.Reset()
	k.frames.clear()
	k.base = baseline{}
	k.tweens = nil
	k.textures.clear()
	k.logger.Debug("reset", "generation", k.reg.Generation())
}

// Teardown detaches the gesture collaborator, releases the operator, and
// cancels pending loads. Elements keep their last poses for export.
func (k *Kit) Teardown() {
	if k.torn {
		return
	}
	k.focus.Detach()
	k.cancel()
	k.torn = true
	k.logger.Debug("teardown")
}

// Update runs one frame: applies finished loads, advances the script and
// injected input, steps tweens, and flushes coalesced pose updates.
func (k *Kit) Update() {
	if k.torn {
		return
	}
	k.drainLoads()
	if k.script != nil {
		k.script.step(k)
	}
	if k.recognizer != nil {
		k.recognizer.processInjected()
	}
	k.updateTweens(1 / float32(k.tps))
	k.flushFrames()
}

// forget tells the presenter, if it keeps per-element state, that id is gone.
func (k *Kit) forget(id ElementID) {
	if f, ok := k.presenter.(Forgetter); ok {
		f.Forget(id)
	}
}

// flushFrames presents every queued pose.
func (k *Kit) flushFrames() {
	k.frames.flush(func(id ElementID, pose Pose) {
		e, err := k.reg.Get(id)
		if err != nil {
			return
		}
		e.shown = pose
		if k.presenter != nil {
			k.presenter.PresentPose(id, pose, e.AffordanceScale)
		}
	})
}

func (k *Kit) layoutChild(natural Size, opts ChildOptions) (Size, Pose) {
	width := natural.Width
	if opts.Width.IsSet() {
		w, ok := opts.Width.Resolve(k.viewport.Width, 0)
		if !ok {
			k.logger.Debug("malformed length", "width", opts.Width)
		}
		width = w
	}
	var height float64
	if r := natural.Ratio(); r > 0 {
		height = width / r
	}
	size := Size{Width: width, Height: height}

	scale := opts.Pos.Scale
	if scale == 0 {
		scale = 1
	}
	x, okX := opts.Pos.X.Resolve(k.viewport.Width, width)
	y, okY := opts.Pos.Y.Resolve(k.viewport.Height, height)
	if !okX || !okY {
		k.logger.Debug("malformed length", "x", opts.Pos.X, "y", opts.Pos.Y)
	}
	return size, Pose{
		X:        x + (scale-1)*width/2,
		Y:        y + (scale-1)*height/2,
		Scale:    scale,
		Rotation: opts.Pos.Rotation,
	}
}

func imageSize(img image.Image) Size {
	b := img.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}
