package touchkit

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ImageRenderer is the default rendering collaborator. It composites the
// background and layers onto an RGBA canvas with affine resampling and
// encodes the result as PNG.
type ImageRenderer struct {
	// Fill is painted before the background. Defaults to transparent.
	Fill color.Color
	// Interpolator resamples every image. Defaults to draw.BiLinear.
	Interpolator draw.Interpolator

	width, height int
	bg            *BackgroundLayer
	layers        []Layer
}

// NewImageRenderer returns an ImageRenderer for a canvas of the given size,
// rounded to whole pixels. It satisfies RendererFactory.
func NewImageRenderer(width, height float64) Renderer {
	return &ImageRenderer{
		width:  int(math.Round(width)),
		height: int(math.Round(height)),
	}
}

// Background sets the background layer.
func (r *ImageRenderer) Background(bg BackgroundLayer) {
	r.bg = &bg
}

// Add appends layers in back-to-front order.
func (r *ImageRenderer) Add(layers []Layer) {
	r.layers = append(r.layers, layers...)
}

// Draw renders and PNG-encodes the canvas, then calls fn.
func (r *ImageRenderer) Draw(fn func(encoded []byte, err error)) {
	img, err := r.Render()
	if err != nil {
		fn(nil, err)
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		fn(nil, fmt.Errorf("encode png: %w", err))
		return
	}
	fn(buf.Bytes(), nil)
}

// Render composites the canvas without encoding it.
func (r *ImageRenderer) Render() (*image.RGBA, error) {
	if r.width <= 0 || r.height <= 0 {
		return nil, fmt.Errorf("render: invalid canvas %dx%d", r.width, r.height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	if r.Fill != nil {
		draw.Draw(dst, dst.Bounds(), &image.Uniform{C: r.Fill}, image.Point{}, draw.Src)
	}
	interp := r.Interpolator
	if interp == nil {
		interp = draw.BiLinear
	}

	if r.bg != nil && r.bg.Image != nil {
		x, y := r.bg.Left, r.bg.Top
		if r.bg.Type == BackgroundCrop {
			x, y = -x, -y
		}
		m := multiplyAffine(translateAffine(x, y), fitAffine(r.bg.Image, r.bg.Width, r.bg.Height))
		interp.Transform(dst, toAff3(m), r.bg.Image, r.bg.Image.Bounds(), draw.Over, nil)
	}

	for _, l := range r.layers {
		if l.Image == nil || l.Width <= 0 {
			continue
		}
		b := l.Image.Bounds()
		height := l.Width * float64(b.Dy()) / float64(b.Dx())
		box := Size{Width: l.Width, Height: height}
		m := multiplyAffine(poseTransform(Vec2{}, box, l.Pose), fitAffine(l.Image, box.Width, box.Height))
		interp.Transform(dst, toAff3(m), l.Image, b, draw.Over, nil)
	}
	return dst, nil
}

// fitAffine maps an image's pixel space onto a w×h box at the origin.
func fitAffine(img image.Image, w, h float64) [6]float64 {
	b := img.Bounds()
	sx := w / float64(b.Dx())
	sy := h / float64(b.Dy())
	return multiplyAffine(scaleAffine(sx, sy), translateAffine(-float64(b.Min.X), -float64(b.Min.Y)))
}

// toAff3 converts an [a, b, c, d, tx, ty] matrix to x/image's row-major form.
func toAff3(m [6]float64) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}
