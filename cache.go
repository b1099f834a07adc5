package vg

import (
	"fmt"

	"github.com/gogpu/vg/text"
)

// MaxArenaTexels is the capacity of the shared curve arena. Placement end
// offsets are stored in 16-bit vertex attributes, so the arena cannot grow
// beyond this.
const MaxArenaTexels = 65535

// PathKey identifies a path registered with a Cache. Zero means none.
type PathKey uint32

// FontKey identifies a font registered with a Cache. Zero means none.
type FontKey uint32

// Placement is the texel range [Start, End) a path occupies in the arena.
type Placement struct {
	Start, End uint16
}

// Len returns the number of texels in the placement.
func (p Placement) Len() int { return int(p.End) - int(p.Start) }

type resourceKind uint8

const (
	kindPath resourceKind = iota + 1
	kindGlyph
	kindRect
)

type resourceKey struct {
	kind  resourceKind
	id    uint32
	glyph text.GlyphID
}

type glyphKey struct {
	font  FontKey
	glyph text.GlyphID
}

// CacheStats is a snapshot of Cache usage.
type CacheStats struct {
	Placements int
	GlyphPaths int
	UsedTexels int
	Capacity   int
	Epoch      uint64
}

// Cache hands out resource keys and places path geometry into the shared
// curve arena. Within an epoch a placement is never moved or evicted, so each
// key is uploaded at most once.
//
// A Cache is not safe for concurrent use.
type Cache struct {
	nextPath   uint32
	nextFont   uint32
	placements map[resourceKey]Placement
	glyphs     map[glyphKey]*Path
	rect       *Path
	free       int
	epoch      uint64
	opts       cacheOptions
}

// NewCache creates an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	o := defaultCacheOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache{
		placements: make(map[resourceKey]Placement),
		glyphs:     make(map[glyphKey]*Path),
		opts:       o,
	}
}

// AddPath registers a new path identity. Keys are never reused.
func (c *Cache) AddPath() PathKey {
	c.nextPath++
	return PathKey(c.nextPath)
}

// AddFont registers a new font identity. Keys are never reused.
func (c *Cache) AddFont() FontKey {
	c.nextFont++
	return FontKey(c.nextFont)
}

// Place returns the arena range of the path registered under key. On the
// first call for a key in the current epoch the range is reserved and fresh
// is true: the caller must upload path.Buffer() at Start exactly once.
//
// Place panics with an error wrapping ErrArenaOverflow when the arena cannot
// hold the path, and with ErrInvalidKey for the zero key.
func (c *Cache) Place(key PathKey, path *Path) (p Placement, fresh bool) {
	if key == 0 {
		panic(fmt.Errorf("place path: %w", ErrInvalidKey))
	}
	return c.place(resourceKey{kind: kindPath, id: uint32(key)}, path)
}

func (c *Cache) place(key resourceKey, path *Path) (Placement, bool) {
	if p, ok := c.placements[key]; ok {
		return p, false
	}
	n := path.Len()
	if c.free+n > c.opts.capacity {
		panic(fmt.Errorf("%w: %d texels in use, %d requested, capacity %d",
			ErrArenaOverflow, c.free, n, c.opts.capacity))
	}
	p := Placement{Start: uint16(c.free), End: uint16(c.free + n)} //nolint:gosec // bounded by capacity
	c.free += n
	c.placements[key] = p
	Logger().Debug("vg: placed path",
		"kind", key.kind, "id", key.id, "start", p.Start, "len", n)
	return p, n > 0
}

// Glyph returns the untransformed outline path of gid in font, building it
// on first use. Glyph paths are in font units and independent of size.
func (c *Cache) Glyph(key FontKey, font *text.Font, gid text.GlyphID) (*Path, error) {
	gk := glyphKey{font: key, glyph: gid}
	if p, ok := c.glyphs[gk]; ok {
		return p, nil
	}
	b := NewPathBuilder(WithEncoding(c.opts.encoding))
	if err := font.Outline(gid, outlineSink{b}); err != nil {
		return nil, fmt.Errorf("vg: glyph %d: %w", gid, err)
	}
	p := b.Build()
	c.glyphs[gk] = p
	return p, nil
}

func (c *Cache) placeGlyph(key FontKey, gid text.GlyphID, path *Path) (Placement, bool) {
	if key == 0 {
		panic(fmt.Errorf("place glyph: %w", ErrInvalidKey))
	}
	return c.place(resourceKey{kind: kindGlyph, id: uint32(key), glyph: gid}, path)
}

// unitRect returns the 1x1 rectangle used by DrawRect.
func (c *Cache) unitRect() *Path {
	if c.rect == nil {
		c.rect = NewPathBuilder(WithEncoding(c.opts.encoding)).
			LineTo(0, 1).
			LineTo(1, 1).
			LineTo(1, 0).
			Build()
	}
	return c.rect
}

func (c *Cache) placeRect() (Placement, bool) {
	return c.place(resourceKey{kind: kindRect}, c.unitRect())
}

// Reset starts a new epoch: every placement and glyph path is dropped and
// the arena is empty again. Keys stay valid and are placed (and uploaded)
// again on their next use.
func (c *Cache) Reset() {
	clear(c.placements)
	clear(c.glyphs)
	c.free = 0
	c.epoch++
	Logger().Debug("vg: cache reset", "epoch", c.epoch)
}

// Epoch returns the number of Reset calls so far.
func (c *Cache) Epoch() uint64 { return c.epoch }

// Stats returns current usage counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Placements: len(c.placements),
		GlyphPaths: len(c.glyphs),
		UsedTexels: c.free,
		Capacity:   c.opts.capacity,
		Epoch:      c.epoch,
	}
}

// outlineSink adapts a PathBuilder to text.OutlineSink.
type outlineSink struct {
	b *PathBuilder
}

func (s outlineSink) MoveTo(x, y float32)         { s.b.MoveTo(x, y) }
func (s outlineSink) LineTo(x, y float32)         { s.b.LineTo(x, y) }
func (s outlineSink) QuadTo(cx, cy, x, y float32) { s.b.QuadTo(cx, cy, x, y) }
func (s outlineSink) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	s.b.CubicTo(c1x, c1y, c2x, c2y, x, y)
}
