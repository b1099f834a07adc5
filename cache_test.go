package vg

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/vg/text"
)

func mustPanicWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic = %v, want error wrapping %v", r, target)
		}
	}()
	fn()
}

func TestCache_Keys(t *testing.T) {
	c := NewCache()
	p1, p2 := c.AddPath(), c.AddPath()
	f1, f2 := c.AddFont(), c.AddFont()
	if p1 == 0 || p2 <= p1 {
		t.Errorf("path keys %d, %d not increasing from 1", p1, p2)
	}
	if f1 == 0 || f2 <= f1 {
		t.Errorf("font keys %d, %d not increasing from 1", f1, f2)
	}
	c.Reset()
	if p3 := c.AddPath(); p3 <= p2 {
		t.Errorf("key %d reused after Reset", p3)
	}
}

func TestCache_PlaceIdempotent(t *testing.T) {
	c := NewCache()
	a := NewPathBuilder().Rect(0, 0, 1, 1).Build()
	b := NewPathBuilder().Circle(0, 0, 1).Build()
	ka, kb := c.AddPath(), c.AddPath()

	pa, fresh := c.Place(ka, a)
	if !fresh || pa.Start != 0 || pa.Len() != a.Len() {
		t.Fatalf("first Place = %+v, %v", pa, fresh)
	}
	pb, fresh := c.Place(kb, b)
	if !fresh || pb.Start != pa.End {
		t.Fatalf("second path placed at %+v, want start %d", pb, pa.End)
	}
	again, fresh := c.Place(ka, a)
	if fresh || again != pa {
		t.Errorf("repeat Place = %+v, %v; want %+v, false", again, fresh, pa)
	}

	s := c.Stats()
	if s.Placements != 2 || s.UsedTexels != a.Len()+b.Len() {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestCache_Overflow(t *testing.T) {
	c := NewCache(WithArenaCapacity(8))
	p := NewPathBuilder().Rect(0, 0, 1, 1).Build() // 5 texels
	c.Place(c.AddPath(), p)
	mustPanicWith(t, ErrArenaOverflow, func() {
		c.Place(c.AddPath(), p)
	})
}

func TestCache_InvalidKey(t *testing.T) {
	c := NewCache()
	mustPanicWith(t, ErrInvalidKey, func() {
		c.Place(0, NewPathBuilder().Rect(0, 0, 1, 1).Build())
	})
}

func TestCache_ResetStartsEpoch(t *testing.T) {
	c := NewCache()
	k := c.AddPath()
	p := NewPathBuilder().Rect(0, 0, 1, 1).Build()
	c.Place(k, p)
	c.Reset()
	if c.Epoch() != 1 || c.Stats().UsedTexels != 0 {
		t.Fatalf("after Reset: epoch %d, stats %+v", c.Epoch(), c.Stats())
	}
	pl, fresh := c.Place(k, p)
	if !fresh || pl.Start != 0 {
		t.Errorf("Place after Reset = %+v, %v; want fresh at 0", pl, fresh)
	}
}

func TestCache_GlyphBuiltOnce(t *testing.T) {
	f, err := text.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	c := NewCache()
	key := c.AddFont()
	gid := f.GlyphIndex('g')

	p1, err := c.Glyph(key, f, gid)
	if err != nil {
		t.Fatal(err)
	}
	p2, _ := c.Glyph(key, f, gid)
	if p1 != p2 {
		t.Error("glyph path rebuilt on second lookup")
	}
	if p1.IsEmpty() {
		t.Fatal("glyph 'g' has an empty path")
	}
	assertMonotone(t, p1.Segments())
	if c.Stats().GlyphPaths != 1 {
		t.Errorf("GlyphPaths = %d, want 1", c.Stats().GlyphPaths)
	}
}
