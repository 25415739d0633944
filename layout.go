package touchkit

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Layout is a declarative kit arrangement read from TOML:
//
//	[viewport]
//	width = 400
//	height = 600
//
//	[background]
//	image = "beach.jpg"
//	type = "crop"
//
//	[[child]]
//	image = "hat.png"
//	width = "40%"
//	x = "center"
//	y = "top:20"
//	use = ["drag", "pinch", "rotate"]
//	limit = { x = 0.2, maxScale = 2 }
//	close = true
//
// Relative image paths resolve against Dir.
type Layout struct {
	Viewport   LayoutViewport    `toml:"viewport"`
	Background *LayoutBackground `toml:"background"`
	Children   []LayoutChild     `toml:"child"`

	// Dir is the base directory for relative image paths. LoadLayoutFile
	// sets it to the file's directory.
	Dir string `toml:"-"`
}

type LayoutViewport struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type LayoutBackground struct {
	Image string       `toml:"image"`
	Type  string       `toml:"type"`
	Left  layoutLength `toml:"left"`
	Top   layoutLength `toml:"top"`
	Use   []string     `toml:"use"`
}

type LayoutChild struct {
	Image    string       `toml:"image"`
	Width    layoutLength `toml:"width"`
	X        layoutLength `toml:"x"`
	Y        layoutLength `toml:"y"`
	Scale    float64      `toml:"scale"`
	Rotation float64      `toml:"rotation"`
	Use      []string     `toml:"use"`
	Limit    layoutLimit  `toml:"limit"`
	Close    bool         `toml:"close"`
}

// layoutLength accepts either a number or a Length string.
type layoutLength Length

func (l *layoutLength) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*l = layoutLength(x)
	case int64:
		*l = layoutLength(strconv.FormatInt(x, 10))
	case float64:
		*l = layoutLength(Px(x))
	default:
		return fmt.Errorf("length: unsupported value %v", v)
	}
	return nil
}

// layoutLimit accepts a bool (default limits or none) or a table merged onto
// DefaultLimits. Axis keys take a margin, or false to leave the axis free.
type layoutLimit struct {
	policy BoundingPolicy
}

func (l *layoutLimit) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case bool:
		if x {
			l.policy = DefaultBounds()
		} else {
			l.policy = NoBounds()
		}
		return nil
	case map[string]any:
		lim := DefaultLimits
		for key, val := range x {
			var err error
			switch key {
			case "x":
				lim.MarginX, lim.FreeX, err = limitMargin(val)
			case "y":
				lim.MarginY, lim.FreeY, err = limitMargin(val)
			case "minScale":
				lim.MinScale, err = tomlFloat(val)
			case "maxScale":
				lim.MaxScale, err = tomlFloat(val)
			default:
				err = fmt.Errorf("unknown key %q", key)
			}
			if err != nil {
				return fmt.Errorf("limit: %w", err)
			}
		}
		l.policy = CustomBounds(lim)
		return nil
	}
	return fmt.Errorf("limit: unsupported value %v", v)
}

func limitMargin(v any) (margin float64, free bool, err error) {
	if b, ok := v.(bool); ok {
		if b {
			return 0, false, fmt.Errorf("axis margin must be a number or false")
		}
		return 0, true, nil
	}
	m, err := tomlFloat(v)
	return m, false, err
}

func tomlFloat(v any) (float64, error) {
	switch x := v.(type) {
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	}
	return 0, fmt.Errorf("expected a number, got %v", v)
}

// LoadLayout parses a TOML layout.
func LoadLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := toml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadLayoutFile reads and parses a TOML layout file.
func LoadLayoutFile(path string) (*Layout, error) {
	var l Layout
	if _, err := toml.DecodeFile(path, &l); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	l.Dir = filepath.Dir(path)
	return &l, nil
}

func (l *Layout) validate() error {
	if l.Viewport.Width <= 0 || l.Viewport.Height <= 0 {
		return fmt.Errorf("parse layout: viewport must be positive, got %vx%v", l.Viewport.Width, l.Viewport.Height)
	}
	if l.Background != nil {
		if _, err := parseBackgroundType(l.Background.Type); err != nil {
			return err
		}
		if _, err := parseCapabilities(l.Background.Use); err != nil {
			return err
		}
	}
	for i, c := range l.Children {
		if c.Image == "" {
			return fmt.Errorf("parse layout: child %d: missing image", i)
		}
		if _, err := parseCapabilities(c.Use); err != nil {
			return fmt.Errorf("parse layout: child %d: %w", i, err)
		}
	}
	return nil
}

// Size returns the layout's viewport.
func (l *Layout) Size() Size {
	return Size{Width: l.Viewport.Width, Height: l.Viewport.Height}
}

// Apply issues the layout's Background and Add calls on k, in file order.
// It returns the child ids.
func (l *Layout) Apply(k *Kit) []ElementID {
	if bg := l.Background; bg != nil {
		typ, _ := parseBackgroundType(bg.Type)
		opts := BackgroundOptions{
			Image: FromFile(l.resolve(bg.Image)),
			Type:  typ,
			Left:  Length(bg.Left),
			Top:   Length(bg.Top),
		}
		if len(bg.Use) > 0 {
			use, _ := parseCapabilities(bg.Use)
			opts.Use = &use
		}
		k.Background(opts)
	}
	ids := make([]ElementID, 0, len(l.Children))
	for _, c := range l.Children {
		use, _ := parseCapabilities(c.Use)
		ids = append(ids, k.Add(ChildOptions{
			Image:  FromFile(l.resolve(c.Image)),
			Width:  Length(c.Width),
			Use:    use,
			Bounds: c.Limit.policy,
			Pos: Placement{
				X:        Length(c.X),
				Y:        Length(c.Y),
				Scale:    c.Scale,
				Rotation: c.Rotation,
			},
			Close: c.Close,
		}))
	}
	return ids
}

func (l *Layout) resolve(path string) string {
	if l.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.Dir, path)
}

func parseBackgroundType(s string) (BackgroundType, error) {
	switch s {
	case "", "contain":
		return BackgroundContain, nil
	case "crop":
		return BackgroundCrop, nil
	}
	return BackgroundContain, fmt.Errorf("parse layout: unknown background type %q", s)
}

// parseCapabilities maps gesture names to Capabilities.
func parseCapabilities(names []string) (Capabilities, error) {
	var c Capabilities
	for _, n := range names {
		switch n {
		case "drag":
			c.Drag = true
		case "pinch":
			c.Pinch = true
		case "rotate":
			c.Rotate = true
		case "singlePinch":
			c.SinglePinch = true
		case "singleRotate":
			c.SingleRotate = true
		default:
			return c, fmt.Errorf("unknown gesture %q: %w", n, ErrInvalidCapability)
		}
	}
	return c, nil
}
