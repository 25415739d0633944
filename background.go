package touchkit

import "image"

// Background loads and installs the background. The background appears once
// its image has loaded, replacing any previous one.
func (k *Kit) Background(opts BackgroundOptions) {
	if k.torn {
		k.logger.Warn("background ignored", "err", ErrTornDown)
		return
	}
	k.load(BackgroundID, opts.Image, func(img image.Image) {
		e := layoutBackground(imageSize(img), k.viewport, opts)
		e.Image = img
		k.reg.SetBackground(e)
		if op, _ := k.focus.Operator(); op == BackgroundID {
			k.base = baseline{}
			if e.Background != BackgroundCrop {
				k.focus.Release(BackgroundID)
			} else if !k.focus.Frozen() {
				e.Active = true
			}
		}
		k.textures.drop(BackgroundID)
		k.logger.Debug("background loaded", "type", e.Background, "size", e.Size, "ratio", e.Ratio)
	})
}

// layoutBackground computes the background's layout box, offset, resolution
// ratio, and (for crop) its bounding policy.
func layoutBackground(natural, viewport Size, opts BackgroundOptions) *Element {
	iratio := natural.Ratio()
	pw, ph := viewport.Width, viewport.Height
	pratio := viewport.Ratio()

	e := &Element{
		Background:      opts.Type,
		Natural:         natural,
		Pose:            IdentityPose(),
		AffordanceScale: 1,
	}
	e.shown = e.Pose

	switch opts.Type {
	case BackgroundCrop:
		var marginX, marginY float64
		if iratio > pratio {
			e.Size = Size{Width: ph * iratio, Height: ph}
			marginX = (e.Size.Width - pw) / e.Size.Width
			e.Ratio = natural.Height / e.Size.Height
		} else {
			e.Size = Size{Width: pw, Height: pw / iratio}
			marginY = (e.Size.Height - ph) / e.Size.Height
			e.Ratio = natural.Width / e.Size.Width
		}
		e.Policy = CustomBounds(Limits{
			MarginX:  marginX,
			MarginY:  marginY,
			MinScale: 1,
			MaxScale: 1,
		})
		e.Use = Capabilities{Drag: true}
	default:
		if iratio > pratio {
			e.Size = Size{Width: pw, Height: pw / iratio}
			e.Ratio = natural.Width / e.Size.Width
		} else {
			e.Size = Size{Width: ph * iratio, Height: ph}
			e.Ratio = natural.Height / e.Size.Height
		}
		e.Offset = Vec2{X: (pw - e.Size.Width) / 2, Y: (ph - e.Size.Height) / 2}
		if opts.Left.IsSet() {
			e.Offset.X, _ = opts.Left.Resolve(pw, e.Size.Width)
		}
		if opts.Top.IsSet() {
			e.Offset.Y, _ = opts.Top.Resolve(ph, e.Size.Height)
		}
	}
	if opts.Use != nil {
		e.Use = *opts.Use
	}
	return e
}
