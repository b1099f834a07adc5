package text

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func loadGoRegular(t *testing.T) *Font {
	t.Helper()
	f, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("Parse(goregular) error: %v", err)
	}
	return f
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("Parse(nil) error = %v, want ErrEmptyFontData", err)
	}

	_, err := Parse([]byte("definitely not a font"))
	var fe *FontError
	if !errors.As(err, &fe) {
		t.Fatalf("Parse(garbage) error = %v, want *FontError", err)
	}
	if fe.Unwrap() == nil {
		t.Error("FontError must wrap the parser error")
	}
}

func TestFont_Metrics(t *testing.T) {
	f := loadGoRegular(t)
	if f.UnitsPerEm() != 2048 {
		t.Errorf("UnitsPerEm() = %v, want 2048", f.UnitsPerEm())
	}
	m := f.Metrics()
	if m.Ascender <= 0 || m.Descender <= 0 {
		t.Errorf("Metrics() = %+v, want positive ascender and descender", m)
	}
	if m.LineHeight < m.Ascender+m.Descender {
		t.Errorf("LineHeight %v < ascender+descender", m.LineHeight)
	}
}

func TestFont_GlyphIndexAndAdvance(t *testing.T) {
	f := loadGoRegular(t)
	a := f.GlyphIndex('A')
	if a == 0 {
		t.Fatal("GlyphIndex('A') = 0")
	}
	if f.GlyphIndex('\uE000') != 0 {
		t.Error("private use rune must map to glyph 0")
	}
	if adv := f.Advance(a); adv <= 0 || adv > f.UnitsPerEm() {
		t.Errorf("Advance('A') = %v", adv)
	}
}

type recordingSink struct {
	moves, lines, quads, cubics int

	minY, maxY float32
}

func (s *recordingSink) see(y float32) {
	s.minY = min(s.minY, y)
	s.maxY = max(s.maxY, y)
}

func (s *recordingSink) MoveTo(_, y float32) {
	s.moves++
	s.see(y)
}

func (s *recordingSink) LineTo(_, y float32) {
	s.lines++
	s.see(y)
}

func (s *recordingSink) QuadTo(_, cy, _, y float32) {
	s.quads++
	s.see(cy)
	s.see(y)
}

func (s *recordingSink) CubicTo(_, _, _, _, _, y float32) {
	s.cubics++
	s.see(y)
}

func TestFont_Outline(t *testing.T) {
	f := loadGoRegular(t)

	var o recordingSink
	if err := f.Outline(f.GlyphIndex('O'), &o); err != nil {
		t.Fatalf("Outline('O') error: %v", err)
	}
	if o.moves != 2 {
		t.Errorf("'O' has %d contours, want 2", o.moves)
	}
	if o.quads == 0 {
		t.Error("'O' must contain quadratic segments")
	}
	// Y points down: the glyph body lies above the baseline, at negative Y.
	if o.minY >= 0 || o.minY < -f.Metrics().Ascender {
		t.Errorf("'O' top = %v, want in [-ascender, 0)", o.minY)
	}

	var space recordingSink
	if err := f.Outline(f.GlyphIndex(' '), &space); err != nil {
		t.Fatalf("Outline(' ') error: %v", err)
	}
	if space.moves != 0 {
		t.Errorf("space has %d contours, want 0", space.moves)
	}
}
