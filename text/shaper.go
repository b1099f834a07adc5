package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Shaper converts a single line of text into positioned glyphs.
// Positions are in pixels relative to the line origin on the baseline.
type Shaper interface {
	Shape(f *Font, line string, size float32) []Glyph
}

// BuiltinShaper maps runes through the font's cmap and advances by glyph
// advance plus pair kerning. Runes the font has no glyph for are skipped.
type BuiltinShaper struct{}

// Shape implements Shaper.
func (BuiltinShaper) Shape(f *Font, line string, size float32) []Glyph {
	scale := size / f.upem
	glyphs := make([]Glyph, 0, len(line))
	var x float32
	var prev GlyphID
	for _, r := range line {
		gid := f.GlyphIndex(r)
		if gid == 0 {
			continue
		}
		if prev != 0 {
			x += scale * f.Kern(prev, gid)
		}
		glyphs = append(glyphs, Glyph{GID: gid, X: x})
		x += scale * f.Advance(gid)
		prev = gid
	}
	return glyphs
}

// GoTextShaper shapes with the HarfBuzz port from go-text/typesetting,
// which adds ligatures, contextual forms and GPOS positioning.
//
// GoTextShaper is safe for concurrent use.
type GoTextShaper struct {
	shaperPool sync.Pool

	mu    sync.Mutex
	fonts map[*Font]*font.Font
}

// NewGoTextShaper creates a GoTextShaper.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		fonts: make(map[*Font]*font.Font),
	}
}

// Shape implements Shaper. Left-to-right horizontal runs only; if the font
// cannot be parsed by go-text the built-in shaper is used instead.
func (s *GoTextShaper) Shape(f *Font, line string, size float32) []Glyph {
	gf, err := s.font(f)
	if err != nil {
		return BuiltinShaper{}.Shape(f, line, size)
	}

	runes := []rune(line)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(gf),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.shaperPool.Put(hb)

	glyphs := make([]Glyph, 0, len(out.Glyphs))
	var x float32
	for _, g := range out.Glyphs {
		// go-text offsets point up; vg's Y points down.
		glyphs = append(glyphs, Glyph{
			GID: GlyphID(g.GlyphID), //nolint:gosec // sfnt glyph indices are 16-bit
			X:   x + fixedToFloat(g.XOffset),
			Y:   -fixedToFloat(g.YOffset),
		})
		x += fixedToFloat(g.Advance)
	}
	return glyphs
}

func (s *GoTextShaper) font(f *Font) (*font.Font, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gf, ok := s.fonts[f]; ok {
		return gf, nil
	}
	face, err := font.ParseTTF(bytes.NewReader(f.data))
	if err != nil {
		return nil, err
	}
	s.fonts[f] = face.Font
	return face.Font, nil
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
