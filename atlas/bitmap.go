package atlas

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/text"
)

// TextureUploader receives dirty regions of the coverage texture.
// pix holds width×height 8-bit coverage values, row by row.
type TextureUploader interface {
	UpdateTexture(x, y, width, height int, pix []byte)
}

// GlyphKey packs a font, glyph and pixel size into an atlas ID.
func GlyphKey(font vg.FontKey, gid text.GlyphID, pixelSize int) ID {
	return ID(font)<<32 | ID(gid)<<16 | ID(min(max(pixelSize, 0), math.MaxUint16))
}

// Bitmap is a rasterized glyph in the atlas. Origin is the offset from the
// glyph origin on the baseline to the top-left corner of Rect, in pixels.
type Bitmap struct {
	Rect   Rect
	Origin vg.Vec2
}

// bitmapPadding is the empty border kept around every glyph bitmap.
const bitmapPadding = 1

// BitmapCache rasterizes glyph outlines into an 8-bit coverage texture and
// keeps them placed with an Atlas. Glyph outlines come from a vg.Cache, so
// each glyph is tessellated once regardless of size.
//
// A BitmapCache is not safe for concurrent use.
type BitmapCache struct {
	atlas   *Atlas
	outline *vg.Cache
	pix     []byte
	stride  int
	dirty   image.Rectangle
	raster  vector.Rasterizer
	mask    *image.Alpha
}

// NewBitmapCache creates a cache with a texture of the configured size.
func NewBitmapCache(cfg Config, outlines *vg.Cache) (*BitmapCache, error) {
	a, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &BitmapCache{
		atlas:   a,
		outline: outlines,
		pix:     make([]byte, cfg.Width*cfg.Height),
		stride:  cfg.Width,
	}, nil
}

// Atlas returns the underlying packer.
func (c *BitmapCache) Atlas() *Atlas { return c.atlas }

// Pix returns the full coverage texture.
func (c *BitmapCache) Pix() []byte { return c.pix }

// BeginFrame advances the atlas generation. Call once per frame.
func (c *BitmapCache) BeginFrame() { c.atlas.UpdateCounter() }

// Glyph returns the bitmap of gid at the given pixel size, rasterizing it on
// first use. It returns false when the glyph has no outline or the atlas
// cannot make room for it in this frame.
func (c *BitmapCache) Glyph(key vg.FontKey, font *text.Font, gid text.GlyphID, size float32) (Bitmap, bool) {
	px := int(math.Round(float64(size)))
	id := GlyphKey(key, gid, px)
	if r, origin, ok := c.atlas.entry(id); ok {
		return Bitmap{Rect: r, Origin: origin}, true
	}

	path, err := c.outline.Glyph(key, font, gid)
	if err != nil || path.IsEmpty() {
		return Bitmap{}, false
	}

	scale := float32(px) / font.UnitsPerEm()
	lo := path.Offset().Mul(scale)
	hi := path.Offset().Add(path.Size()).Mul(scale)
	x0 := int(math.Floor(float64(lo.X))) - bitmapPadding
	y0 := int(math.Floor(float64(lo.Y))) - bitmapPadding
	w := int(math.Ceil(float64(hi.X))) + bitmapPadding - x0
	h := int(math.Ceil(float64(hi.Y))) + bitmapPadding - y0

	origin := vg.V2(float32(x0), float32(y0))
	r, ok := c.atlas.insert(id, w, h, origin)
	if !ok {
		vg.Logger().Warn("atlas: no room for glyph", "glyph", gid, "size", px, "w", w, "h", h)
		return Bitmap{}, false
	}
	c.rasterize(path, r, scale, origin)
	return Bitmap{Rect: r, Origin: origin}, true
}

func (c *BitmapCache) rasterize(path *vg.Path, r Rect, scale float32, origin vg.Vec2) {
	c.raster.Reset(r.W, r.H)
	c.raster.DrawOp = draw.Src
	at := func(p vg.Vec2) (float32, float32) {
		q := p.Mul(scale).Sub(origin)
		return q.X, q.Y
	}

	var pen vg.Vec2
	for i, s := range path.Segments() {
		if i == 0 || s.P1 != pen {
			if i > 0 {
				c.raster.ClosePath()
			}
			c.raster.MoveTo(at(s.P1))
		}
		bx, by := at(s.P2)
		cx, cy := at(s.P3)
		c.raster.QuadTo(bx, by, cx, cy)
		pen = s.P3
	}
	c.raster.ClosePath()

	if c.mask == nil || c.mask.Rect.Dx() < r.W || c.mask.Rect.Dy() < r.H {
		c.mask = image.NewAlpha(image.Rect(0, 0, max(r.W, 64), max(r.H, 64)))
	}
	bounds := image.Rect(0, 0, r.W, r.H)
	c.raster.Draw(c.mask, bounds, image.Opaque, image.Point{})

	for y := range r.H {
		src := c.mask.Pix[y*c.mask.Stride : y*c.mask.Stride+r.W]
		copy(c.pix[(r.Y+y)*c.stride+r.X:], src)
	}
	c.dirty = c.dirty.Union(image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H))
}

// Dirty returns the region changed since the last Flush.
func (c *BitmapCache) Dirty() image.Rectangle { return c.dirty }

// Flush uploads the dirty region, if any, and clears it.
func (c *BitmapCache) Flush(up TextureUploader) {
	if c.dirty.Empty() {
		return
	}
	d := c.dirty
	buf := make([]byte, 0, d.Dx()*d.Dy())
	for y := d.Min.Y; y < d.Max.Y; y++ {
		buf = append(buf, c.pix[y*c.stride+d.Min.X:y*c.stride+d.Max.X]...)
	}
	up.UpdateTexture(d.Min.X, d.Min.Y, d.Dx(), d.Dy(), buf)
	vg.Logger().Debug("atlas: flushed", "rect", d.String())
	c.dirty = image.Rectangle{}
}
