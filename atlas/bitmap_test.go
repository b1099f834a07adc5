package atlas

import (
	"image"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/text"
)

type recordingUploader struct {
	calls int
	rect  image.Rectangle
	pix   []byte
}

func (u *recordingUploader) UpdateTexture(x, y, w, h int, pix []byte) {
	u.calls++
	u.rect = image.Rect(x, y, x+w, y+h)
	u.pix = pix
}

func newBitmapCache(t *testing.T, size int) (*BitmapCache, *text.Font, vg.FontKey) {
	t.Helper()
	f, err := text.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	outlines := vg.NewCache()
	c, err := NewBitmapCache(Config{Width: size, Height: size}, outlines)
	if err != nil {
		t.Fatal(err)
	}
	return c, f, outlines.AddFont()
}

func TestGlyphKey(t *testing.T) {
	a := GlyphKey(1, 2, 16)
	if a == GlyphKey(1, 2, 17) || a == GlyphKey(2, 2, 16) || a == GlyphKey(1, 3, 16) {
		t.Error("GlyphKey collision")
	}
}

func TestBitmapCache_RasterizesOnce(t *testing.T) {
	c, f, key := newBitmapCache(t, 256)
	c.BeginFrame()

	gid := f.GlyphIndex('A')
	b1, ok := c.Glyph(key, f, gid, 32)
	if !ok {
		t.Fatal("Glyph('A') not placed")
	}
	if b1.Rect.W < 10 || b1.Rect.H < 10 {
		t.Errorf("bitmap too small: %+v", b1.Rect)
	}
	// 'A' sits on the baseline, so its bitmap starts above it.
	if b1.Origin.Y >= 0 {
		t.Errorf("Origin = %v, want negative y", b1.Origin)
	}

	var covered int
	for y := b1.Rect.Y; y < b1.Rect.Y+b1.Rect.H; y++ {
		for x := b1.Rect.X; x < b1.Rect.X+b1.Rect.W; x++ {
			if c.Pix()[y*256+x] > 0 {
				covered++
			}
		}
	}
	if covered == 0 {
		t.Fatal("glyph bitmap is blank")
	}

	b2, ok := c.Glyph(key, f, gid, 32)
	if !ok || b2 != b1 {
		t.Errorf("second lookup = %+v, want %+v", b2, b1)
	}
	if c.Atlas().Stats().Glyphs != 1 {
		t.Errorf("atlas glyphs = %d, want 1", c.Atlas().Stats().Glyphs)
	}
	if _, ok := c.Glyph(key, f, f.GlyphIndex(' '), 32); ok {
		t.Error("space must not be placed")
	}
}

func TestBitmapCache_Flush(t *testing.T) {
	c, f, key := newBitmapCache(t, 128)
	c.BeginFrame()
	b, _ := c.Glyph(key, f, f.GlyphIndex('x'), 20)

	var up recordingUploader
	c.Flush(&up)
	want := image.Rect(b.Rect.X, b.Rect.Y, b.Rect.X+b.Rect.W, b.Rect.Y+b.Rect.H)
	if up.calls != 1 || up.rect != want {
		t.Fatalf("upload %d calls rect %v, want 1 call %v", up.calls, up.rect, want)
	}
	if len(up.pix) != want.Dx()*want.Dy() {
		t.Errorf("uploaded %d bytes, want %d", len(up.pix), want.Dx()*want.Dy())
	}

	c.Flush(&up)
	if up.calls != 1 {
		t.Error("clean cache must not upload")
	}
}

func TestBitmapCache_OriginAfterEviction(t *testing.T) {
	ref, f, key := newBitmapCache(t, 1024)
	ref.BeginFrame()
	small, _, _ := newBitmapCache(t, 64)

	// One letter per frame in a 64px atlas forces evictions; every glyph
	// must still report the origin it was rasterized with.
	for _, ch := range "abcdefghijklmnopqrstuvwxyzabc" {
		small.BeginFrame()
		gid := f.GlyphIndex(ch)
		want, ok := ref.Glyph(key, f, gid, 20)
		if !ok {
			t.Fatalf("reference Glyph(%q) not placed", ch)
		}
		got, ok := small.Glyph(key, f, gid, 20)
		if !ok {
			t.Fatalf("Glyph(%q) not placed", ch)
		}
		if got.Origin != want.Origin {
			t.Errorf("Glyph(%q).Origin = %v, want %v", ch, got.Origin, want.Origin)
		}
	}
	s := small.Atlas().Stats()
	if s.Evictions == 0 {
		t.Error("expected evictions")
	}
	if s.Glyphs >= 26 {
		t.Errorf("atlas holds %d glyphs, want evicted ones dropped", s.Glyphs)
	}
}
