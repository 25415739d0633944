package touchkit

import (
	"strconv"
	"strings"
)

// Length is a layout value resolved against the viewport along one axis.
// Accepted forms:
//
//	"250"        absolute pixels
//	"250px"      absolute pixels
//	"50%"        percentage of the viewport axis
//	"left:250"   offset from the left (or "top:250" from the top)
//	"right:10"   offset from the right edge to the element's far edge
//	"bottom:10"  likewise from the bottom
//	"center"     centered on the axis
//
// The empty Length means "unset"; callers choose the fallback.
type Length string

// Px returns an absolute pixel Length.
func Px(v float64) Length {
	return Length(strconv.FormatFloat(v, 'f', -1, 64))
}

// IsSet reports whether the length was given.
func (l Length) IsSet() bool {
	return strings.TrimSpace(string(l)) != ""
}

// Resolve converts l to pixels. parent is the viewport extent along the axis
// and child the element's extent (used by right/bottom/center). ok is false
// for malformed values, which resolve to 0.
func (l Length) Resolve(parent, child float64) (v float64, ok bool) {
	s := strings.TrimSpace(string(l))
	if s == "" {
		return 0, true
	}
	if anchor, val, found := strings.Cut(s, ":"); found {
		n, ok := parseNumber(strings.TrimSuffix(strings.TrimSpace(val), "px"))
		if !ok {
			return 0, false
		}
		switch strings.TrimSpace(anchor) {
		case "left", "top":
			return n, true
		case "right", "bottom":
			return parent - n - child, true
		default:
			return 0, false
		}
	}
	switch {
	case s == "center":
		return (parent - child) / 2, true
	case strings.HasSuffix(s, "px"):
		return parseNumber(strings.TrimSuffix(s, "px"))
	case strings.HasSuffix(s, "%"):
		n, ok := parseNumber(strings.TrimSuffix(s, "%"))
		return parent * n / 100, ok
	default:
		return parseNumber(s)
	}
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
