package text

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// GlyphID is a glyph index within a font. Zero is the missing glyph.
type GlyphID uint16

// Metrics are vertical font metrics in font units.
// Descender is positive below the baseline.
type Metrics struct {
	Ascender   float32
	Descender  float32
	LineGap    float32
	LineHeight float32
}

// Font is a parsed OpenType or TrueType font.
//
// A Font is not safe for concurrent use.
type Font struct {
	data    []byte
	sfnt    *opentype.Font
	buf     sfnt.Buffer
	upem    float32
	ppem    fixed.Int26_6
	metrics Metrics
}

// Parse parses font data. The slice is retained and must not be modified.
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &FontError{Err: err}
	}

	upem := float32(f.UnitsPerEm())
	if upem <= 0 {
		return nil, &FontError{Err: errors.New("units per em is zero")}
	}
	ft := &Font{
		data: data,
		sfnt: f,
		upem: upem,
		// Loading at ppem = unitsPerEm yields coordinates in font units.
		ppem: fixed.Int26_6(f.UnitsPerEm()) << 6,
	}

	m, err := f.Metrics(&ft.buf, ft.ppem, font.HintingNone)
	if err != nil {
		return nil, &FontError{Err: fmt.Errorf("metrics: %w", err)}
	}
	asc, desc := fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
	height := fixedToFloat(m.Height)
	ft.metrics = Metrics{
		Ascender:   asc,
		Descender:  desc,
		LineGap:    max(height-asc-desc, 0),
		LineHeight: max(height, asc+desc),
	}
	return ft, nil
}

// UnitsPerEm returns the size of the em square in font units.
func (f *Font) UnitsPerEm() float32 { return f.upem }

// Metrics returns the vertical metrics in font units.
func (f *Font) Metrics() Metrics { return f.metrics }

// Data returns the raw font data.
func (f *Font) Data() []byte { return f.data }

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int { return f.sfnt.NumGlyphs() }

// GlyphIndex maps r to a glyph. It returns 0 when the font has no glyph for r.
func (f *Font) GlyphIndex(r rune) GlyphID {
	gid, err := f.sfnt.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(gid)
}

// Advance returns the horizontal advance of gid in font units.
func (f *Font) Advance(gid GlyphID) float32 {
	adv, err := f.sfnt.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), f.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

// Kern returns the kerning adjustment between a and b in font units.
// Fonts without a kern table report 0.
func (f *Font) Kern(a, b GlyphID) float32 {
	k, err := f.sfnt.Kern(&f.buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), f.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(k)
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
