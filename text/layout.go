package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Glyph is a positioned glyph. X and Y are in pixels relative to the layout
// origin; Y is the baseline.
type Glyph struct {
	GID  GlyphID
	X, Y float32
}

// TextLayout is the result of laying out a string at a given size.
// Scale converts font units to pixels.
type TextLayout struct {
	Scale  float32
	Glyphs []Glyph
}

type layoutOptions struct {
	shaper Shaper
}

// LayoutOption configures Layout.
type LayoutOption func(*layoutOptions)

// WithShaper selects the shaper used for each line.
func WithShaper(s Shaper) LayoutOption {
	return func(o *layoutOptions) {
		if s != nil {
			o.shaper = s
		}
	}
}

// Layout positions the glyphs of s at the given pixel size. The text is
// NFC-normalized first. The origin is the top-left corner of the first line,
// so the first baseline sits at the scaled ascender. Each '\n' starts a new
// line one line height further down.
func (f *Font) Layout(s string, size float32, opts ...LayoutOption) TextLayout {
	o := layoutOptions{shaper: BuiltinShaper{}}
	for _, opt := range opts {
		opt(&o)
	}

	scale := size / f.upem
	out := TextLayout{Scale: scale}
	baseline := scale * f.metrics.Ascender
	step := scale * f.metrics.LineHeight

	for i, line := range strings.Split(norm.NFC.String(s), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		y := baseline + float32(i)*step
		for _, g := range o.shaper.Shape(f, line, size) {
			g.Y += y
			out.Glyphs = append(out.Glyphs, g)
		}
	}
	return out
}
