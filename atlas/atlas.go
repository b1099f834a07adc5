// Package atlas packs rasterized glyph bitmaps into a fixed-size texture.
//
// Glyphs are placed in rows whose heights are powers of two, capped at the
// atlas height. When the
// texture is full, the contiguous run of rows with the oldest average use
// is evicted. Recency is tracked per frame: call UpdateCounter once at the
// start of every frame, and rows used in the current frame are never
// evicted.
package atlas

import (
	"slices"

	"github.com/gogpu/vg"
)

// ID identifies a glyph bitmap in the atlas.
type ID uint64

// Rect is a pixel rectangle inside the atlas.
type Rect struct {
	X, Y, W, H int
}

type glyph struct {
	x, width, height int
	id               ID
	origin           vg.Vec2
}

type row struct {
	y, height int
	nextX     int
	lastUsed  uint64
	glyphs    []glyph
}

type location struct {
	row, glyph int
}

// Stats is a snapshot of atlas usage.
type Stats struct {
	Rows       int
	Glyphs     int
	Evictions  int
	UsedHeight int
	Counter    uint64
}

// Atlas is a row-based rectangle packer with LRU eviction.
//
// An Atlas is not safe for concurrent use.
type Atlas struct {
	width, height int

	rows     []*row // slab; nil entries are free
	freeRows []int
	byHeight []int // row indices sorted by height
	nextY    int
	lookup   map[ID]location
	counter  uint64

	evictions int
}

// New creates an atlas of the configured size.
func New(cfg Config) (*Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Atlas{
		width:  cfg.Width,
		height: cfg.Height,
		lookup: make(map[ID]location),
	}, nil
}

// Size returns the atlas dimensions.
func (a *Atlas) Size() (width, height int) { return a.width, a.height }

// UpdateCounter advances the generation. Call once per frame before any
// Insert or Get.
func (a *Atlas) UpdateCounter() { a.counter++ }

// Get returns the rectangle of a cached glyph and marks its row as used.
func (a *Atlas) Get(id ID) (Rect, bool) {
	r, _, ok := a.entry(id)
	return r, ok
}

// entry is Get plus the origin stored with the glyph.
func (a *Atlas) entry(id ID) (Rect, vg.Vec2, bool) {
	loc, ok := a.lookup[id]
	if !ok {
		return Rect{}, vg.Vec2{}, false
	}
	r := a.rows[loc.row]
	r.lastUsed = a.counter
	g := r.glyphs[loc.glyph]
	return Rect{X: g.x, Y: r.y, W: g.width, H: g.height}, g.origin, true
}

// Insert places a width×height bitmap and returns its rectangle. It
// returns false when the glyph is larger than the atlas or when no space
// can be freed without evicting rows used in the current generation.
// Inserting an id that is already present returns its existing rectangle.
func (a *Atlas) Insert(id ID, width, height int) (Rect, bool) {
	return a.insert(id, width, height, vg.Vec2{})
}

// insert places a glyph and records origin with it, so the origin is
// dropped together with the glyph on eviction.
func (a *Atlas) insert(id ID, width, height int, origin vg.Vec2) (Rect, bool) {
	if r, ok := a.Get(id); ok {
		return r, true
	}
	if width <= 0 || height <= 0 || width > a.width || height > a.height {
		return Rect{}, false
	}

	ri, ok := a.findRow(width, height)
	if !ok {
		return Rect{}, false
	}
	r := a.rows[ri]
	x := r.nextX
	r.glyphs = append(r.glyphs, glyph{x: x, width: width, height: height, id: id, origin: origin})
	r.nextX += width
	r.lastUsed = a.counter
	a.lookup[id] = location{row: ri, glyph: len(r.glyphs) - 1}
	return Rect{X: x, Y: r.y, W: width, H: height}, true
}

func (a *Atlas) findRow(width, height int) (int, bool) {
	rowHeight := min(nextPow2(height), a.height)

	// Index of the first row with height >= rowHeight.
	start, _ := slices.BinarySearchFunc(a.byHeight, 2*rowHeight-1, func(ri, target int) int {
		return 2*a.rows[ri].height - target
	})

	i := start
	for ; i < len(a.byHeight) && a.rows[a.byHeight[i]].height == rowHeight; i++ {
		if a.fits(a.byHeight[i], width) {
			return a.byHeight[i], true
		}
	}
	if ri, ok := a.tryAddRow(i, rowHeight); ok {
		return ri, true
	}
	for _, ri := range a.byHeight[start:] {
		if a.fits(ri, width) {
			return ri, true
		}
	}
	if ri, ok := a.tryAddRow(i, rowHeight); ok {
		return ri, true
	}
	return a.tryOverwriteRows(rowHeight)
}

func (a *Atlas) fits(ri, width int) bool {
	return width <= a.width-a.rows[ri].nextX
}

func (a *Atlas) tryAddRow(index, rowHeight int) (int, bool) {
	if rowHeight > a.height-a.nextY {
		return 0, false
	}
	ri := a.allocRow(&row{y: a.nextY, height: rowHeight})
	a.nextY += rowHeight
	a.byHeight = slices.Insert(a.byHeight, index, ri)
	return ri, true
}

// tryOverwriteRows evicts the contiguous run of rows, ordered by y, that
// covers rowHeight with the lowest average last use. Runs containing a row
// used in the current generation are skipped.
func (a *Atlas) tryOverwriteRows(rowHeight int) (int, bool) {
	byY := slices.Clone(a.byHeight)
	slices.SortFunc(byY, func(i, j int) int { return a.rows[i].y - a.rows[j].y })

	best, bestRows, bestHeight := -1, 0, 0
	var bestAvg float64
	for i := range byY {
		n, h := 0, 0
		var sum uint64
		protected := false
		for h < rowHeight && i+n < len(byY) {
			r := a.rows[byY[i+n]]
			if r.lastUsed == a.counter {
				protected = true
				break
			}
			n++
			h += r.height
			sum += r.lastUsed
		}
		if protected || h < rowHeight {
			continue
		}
		avg := float64(sum) / float64(n)
		if best < 0 || avg < bestAvg {
			best, bestRows, bestHeight, bestAvg = i, n, h, avg
		}
	}
	if best < 0 {
		return 0, false
	}

	y := a.rows[byY[best]].y
	for _, ri := range byY[best : best+bestRows] {
		for _, g := range a.rows[ri].glyphs {
			delete(a.lookup, g.id)
		}
		a.byHeight = slices.DeleteFunc(a.byHeight, func(v int) bool { return v == ri })
		a.freeRow(ri)
	}
	a.evictions++
	vg.Logger().Debug("atlas: evicted rows",
		"rows", bestRows, "y", y, "height", bestHeight, "generation", a.counter)

	ri := a.addRow(&row{y: y, height: rowHeight})
	if bestHeight > rowHeight {
		a.addRow(&row{y: y + rowHeight, height: bestHeight - rowHeight})
	}
	return ri, true
}

// addRow inserts r into the slab and the height index.
func (a *Atlas) addRow(r *row) int {
	ri := a.allocRow(r)
	idx, _ := slices.BinarySearchFunc(a.byHeight, r.height, func(ri, target int) int {
		return a.rows[ri].height - target
	})
	a.byHeight = slices.Insert(a.byHeight, idx, ri)
	return ri
}

func (a *Atlas) allocRow(r *row) int {
	if n := len(a.freeRows); n > 0 {
		ri := a.freeRows[n-1]
		a.freeRows = a.freeRows[:n-1]
		a.rows[ri] = r
		return ri
	}
	a.rows = append(a.rows, r)
	return len(a.rows) - 1
}

func (a *Atlas) freeRow(ri int) {
	a.rows[ri] = nil
	a.freeRows = append(a.freeRows, ri)
}

// Reset empties the atlas. The generation counter is kept.
func (a *Atlas) Reset() {
	a.rows = a.rows[:0]
	a.freeRows = a.freeRows[:0]
	a.byHeight = a.byHeight[:0]
	a.nextY = 0
	clear(a.lookup)
}

// Stats returns usage counters.
func (a *Atlas) Stats() Stats {
	s := Stats{Glyphs: len(a.lookup), Evictions: a.evictions, Counter: a.counter}
	for _, ri := range a.byHeight {
		s.Rows++
		s.UsedHeight += a.rows[ri].height
	}
	return s
}

// nextPow2 rounds x up to a power of two. x must be positive.
func nextPow2(x int) int {
	p := 1
	for p < x {
		p <<= 1
	}
	return p
}
