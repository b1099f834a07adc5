package text

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLayout_Basic(t *testing.T) {
	f := loadGoRegular(t)
	const size = 32
	l := f.Layout("AB", size)

	scale := float32(size) / f.UnitsPerEm()
	if l.Scale != scale {
		t.Errorf("Scale = %v, want %v", l.Scale, scale)
	}
	a, b := f.GlyphIndex('A'), f.GlyphIndex('B')
	want := []Glyph{
		{GID: a, X: 0, Y: scale * f.Metrics().Ascender},
		{GID: b, X: scale*f.Advance(a) + scale*f.Kern(a, b), Y: scale * f.Metrics().Ascender},
	}
	if diff := cmp.Diff(want, l.Glyphs); diff != "" {
		t.Errorf("Layout(\"AB\") mismatch (-want +got):\n%s", diff)
	}
}

func TestLayout_Newline(t *testing.T) {
	f := loadGoRegular(t)
	l := f.Layout("a\nb", 10)
	if len(l.Glyphs) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(l.Glyphs))
	}
	if l.Glyphs[1].X != 0 {
		t.Errorf("second line X = %v, want 0", l.Glyphs[1].X)
	}
	dy := l.Glyphs[1].Y - l.Glyphs[0].Y
	if want := l.Scale * f.Metrics().LineHeight; dy != want {
		t.Errorf("line step = %v, want %v", dy, want)
	}
}

func TestLayout_Normalizes(t *testing.T) {
	f := loadGoRegular(t)
	composed := f.Layout("\u00e9", 16)
	decomposed := f.Layout("e\u0301", 16)
	if diff := cmp.Diff(composed, decomposed); diff != "" {
		t.Errorf("NFC layout mismatch (-composed +decomposed):\n%s", diff)
	}
}

func TestLayout_SkipsMissingGlyphs(t *testing.T) {
	f := loadGoRegular(t)
	l := f.Layout("a\uE000b", 16)
	if len(l.Glyphs) != 2 {
		t.Errorf("got %d glyphs, want 2", len(l.Glyphs))
	}
}

func TestGoTextShaper(t *testing.T) {
	f := loadGoRegular(t)
	s := NewGoTextShaper()
	l := f.Layout("Hello", 20, WithShaper(s))
	if len(l.Glyphs) != 5 {
		t.Fatalf("got %d glyphs, want 5", len(l.Glyphs))
	}
	builtin := f.Layout("Hello", 20)
	for i := range l.Glyphs {
		if l.Glyphs[i].GID != builtin.Glyphs[i].GID {
			t.Errorf("glyph %d = %d, builtin %d", i, l.Glyphs[i].GID, builtin.Glyphs[i].GID)
		}
		if i > 0 && l.Glyphs[i].X <= l.Glyphs[i-1].X {
			t.Errorf("glyph %d does not advance: %v <= %v", i, l.Glyphs[i].X, l.Glyphs[i-1].X)
		}
	}
	// Shaping twice reuses the parsed font.
	s.Shape(f, "x", 12)
	if len(s.fonts) != 1 {
		t.Errorf("cached fonts = %d, want 1", len(s.fonts))
	}
}
