package vg

import (
	"fmt"
	"strconv"

	"github.com/gogpu/vg/internal/color"
)

// Color is a straight-alpha sRGB color.
// Each component is in the range [0, 1].
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{}
)

// RGBA creates a color from sRGB components in [0, 1].
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Hex parses "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
func Hex(s string) (Color, error) {
	if s != "" && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float32(v>>24&0xff) / 255,
		G: float32(v>>16&0xff) / 255,
		B: float32(v>>8&0xff) / 255,
		A: float32(v&0xff) / 255,
	}, nil
}

// ToLinearPremul converts the color to linear light with premultiplied
// alpha, the form consumed by the renderer.
func (c Color) ToLinearPremul() [4]float32 {
	return color.FromSRGB(c.R, c.G, c.B, c.A)
}
