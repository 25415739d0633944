package touchkit

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

const outlineWidth = 2.0 // screen pixels

var (
	closeIconColor  = Color{0.9, 0.25, 0.25, 1}
	singleIconColor = Color{0.25, 0.55, 0.95, 1}
)

// textureCache holds the GPU images uploaded for element images. Entries are
// created on first draw and dropped when their element goes away.
type textureCache struct {
	images map[ElementID]*ebiten.Image
	pixel  *ebiten.Image
}

func (c *textureCache) get(e *Element) *ebiten.Image {
	if e.Image == nil {
		return nil
	}
	if img, ok := c.images[e.ID]; ok {
		return img
	}
	if c.images == nil {
		c.images = make(map[ElementID]*ebiten.Image)
	}
	img := ebiten.NewImageFromImage(e.Image)
	c.images[e.ID] = img
	return img
}

// whitePixel returns a lazily created 1×1 white image for outlines and icons.
func (c *textureCache) whitePixel() *ebiten.Image {
	if c.pixel == nil {
		c.pixel = ebiten.NewImage(1, 1)
		c.pixel.Fill(color.White)
	}
	return c.pixel
}

func (c *textureCache) drop(id ElementID) {
	if img, ok := c.images[id]; ok {
		img.Deallocate()
		delete(c.images, id)
	}
}

func (c *textureCache) clear() {
	for id := range c.images {
		c.drop(id)
	}
}

// affineGeoM converts a [6]float64 affine matrix into an ebiten.GeoM.
func affineGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// Draw renders the kit onto screen: the background, the children in draw
// order at their last presented poses, and the active element's outline
// and affordances.
func (k *Kit) Draw(screen *ebiten.Image) {
	if bg, ok := k.reg.Background(); ok {
		k.drawElement(screen, bg)
	}
	for _, id := range k.DrawOrder() {
		if e, err := k.reg.Get(id); err == nil {
			k.drawElement(screen, e)
		}
	}
	op, ok := k.focus.Operator()
	if !ok {
		return
	}
	if e, err := k.reg.Get(op); err == nil && e.Active {
		k.drawActive(screen, e)
	}
}

func (k *Kit) drawElement(screen *ebiten.Image, e *Element) {
	img := k.textures.get(e)
	if img == nil || e.Natural.Width == 0 || e.Natural.Height == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(e.Size.Width/e.Natural.Width, e.Size.Height/e.Natural.Height)
	op.GeoM.Concat(affineGeoM(elementTransform(e, true)))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, &op)
}

// drawActive outlines the operator and draws its affordance icons. The
// outline and icons keep their on-screen size regardless of element scale.
func (k *Kit) drawActive(screen *ebiten.Image, e *Element) {
	px := k.textures.whitePixel()
	m := affineGeoM(elementTransform(e, true))
	t := outlineWidth * e.AffordanceScale
	w, h := e.Size.Width, e.Size.Height

	edges := [4][4]float64{
		{0, 0, w, t},
		{0, h - t, w, t},
		{0, 0, t, h},
		{w - t, 0, t, h},
	}
	for _, r := range edges {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(r[2], r[3])
		op.GeoM.Translate(r[0], r[1])
		op.GeoM.Concat(m)
		op.ColorScale.ScaleWithColor(k.highlight.toRGBA())
		screen.DrawImage(px, &op)
	}

	if e.Close && e.Kind == KindChild {
		k.drawIcon(screen, e, m, w, 0, closeIconColor)
	}
	if e.Use.SingleFinger() {
		k.drawIcon(screen, e, m, w, h, singleIconColor)
	}
}

func (k *Kit) drawIcon(screen *ebiten.Image, e *Element, m ebiten.GeoM, lx, ly float64, c Color) {
	side := k.affordanceSize * e.AffordanceScale
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(side, side)
	op.GeoM.Translate(lx, ly)
	op.GeoM.Concat(m)
	op.ColorScale.ScaleWithColor(c.toRGBA())
	screen.DrawImage(k.textures.whitePixel(), &op)
}
