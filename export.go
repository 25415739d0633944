package touchkit

import (
	"fmt"
	"image"
)

// BackgroundLayer describes the background for a composition, in output
// pixels. For contain backgrounds Left/Top is where the image is placed;
// for crop backgrounds it is the top-left of the visible source region, so
// the image is drawn at (-Left, -Top).
type BackgroundLayer struct {
	Image         image.Image
	Type          BackgroundType
	Left, Top     float64
	Width, Height float64
}

// Layer is one child in a composition, in output pixels. Pose scale and
// rotation apply about the center of the Width-wide box.
type Layer struct {
	ID    ElementID
	Image image.Image
	Width float64
	Pose  Pose
}

// CompositionRequest is the ordered description of the current arrangement,
// scaled to the background's source resolution. Layers are back to front.
type CompositionRequest struct {
	Width, Height float64
	Ratio         float64
	Background    BackgroundLayer
	Layers        []Layer
}

// Renderer is the rendering collaborator that flattens a composition.
type Renderer interface {
	Background(bg BackgroundLayer)
	Add(layers []Layer)
	Draw(fn func(encoded []byte, err error))
}

// RendererFactory creates a Renderer for an output canvas of the given size.
type RendererFactory func(width, height float64) Renderer

// Compose resolves the current arrangement into a composition request. It
// fails with ErrMissingBackground until the background has loaded. Pending
// pose updates are flushed first so the result matches the screen.
func (k *Kit) Compose() (CompositionRequest, error) {
	bg, ok := k.reg.Background()
	if !ok {
		return CompositionRequest{}, fmt.Errorf("compose: %w", ErrMissingBackground)
	}
	k.flushFrames()

	ratio := bg.Ratio
	req := CompositionRequest{
		Width:  k.viewport.Width * ratio,
		Height: k.viewport.Height * ratio,
		Ratio:  ratio,
		Background: BackgroundLayer{
			Image:  bg.Image,
			Type:   bg.Background,
			Width:  bg.Size.Width * ratio,
			Height: bg.Size.Height * ratio,
		},
	}
	if bg.Background == BackgroundCrop {
		req.Background.Left = -bg.Pose.X * ratio
		req.Background.Top = -bg.Pose.Y * ratio
	} else {
		req.Background.Left = bg.Offset.X * ratio
		req.Background.Top = bg.Offset.Y * ratio
	}

	order := k.stack.Order()
	req.Layers = make([]Layer, 0, len(order))
	for _, id := range order {
		e, err := k.reg.Get(id)
		if err != nil {
			continue
		}
		pose := e.Pose
		pose.X *= ratio
		pose.Y *= ratio
		req.Layers = append(req.Layers, Layer{
			ID:    id,
			Image: e.Image,
			Width: e.Size.Width * ratio,
			Pose:  pose,
		})
	}
	return req, nil
}

// ExportImage composes the arrangement and hands it to a new renderer. fn
// receives the encoded image, or ErrMissingBackground / the renderer's error.
func (k *Kit) ExportImage(fn func(encoded []byte, err error)) {
	req, err := k.Compose()
	if err != nil {
		k.logger.Warn("export failed", "err", err)
		fn(nil, err)
		return
	}
	k.logger.Debug("exporting", "width", req.Width, "height", req.Height, "layers", len(req.Layers))
	r := k.renderer(req.Width, req.Height)
	r.Background(req.Background)
	r.Add(req.Layers)
	r.Draw(fn)
}
