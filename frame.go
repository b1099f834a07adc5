package vg

import (
	"fmt"

	"github.com/gogpu/vg/text"
)

// MaxFrameVertices is the number of vertices addressable by 16-bit indices.
const MaxFrameVertices = 1 << 16

// Frame records the quads of one frame and submits them to a Renderer in a
// single Draw call. A Frame uses its Cache and Renderer exclusively until
// Finish; it is not safe for concurrent use.
//
// Example:
//
//	f := vg.NewFrame(cache, renderer, 800, 600)
//	f.Clear(vg.White)
//	f.DrawPath(key, path, vg.V2(10, 10), vg.Identity(), vg.Black)
//	f.Finish()
type Frame struct {
	cache    *Cache
	renderer Renderer
	width    float32
	height   float32
	vertices []Vertex
	indices  []uint16
	opts     frameOptions
	finished bool
}

// NewFrame starts a frame for a target of width×height device pixels.
func NewFrame(cache *Cache, renderer Renderer, width, height float32, opts ...FrameOption) *Frame {
	o := defaultFrameOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Frame{
		cache:    cache,
		renderer: renderer,
		width:    width,
		height:   height,
		opts:     o,
	}
}

func (f *Frame) check() {
	if f.finished {
		panic(ErrFrameFinished)
	}
}

// Clear fills the target with color.
func (f *Frame) Clear(color Color) {
	f.check()
	f.renderer.Clear(color.ToLinearPremul())
}

// DrawPath draws path placed at position under transform. The path geometry
// is uploaded on its first draw only. Empty paths and singular transforms
// draw nothing.
func (f *Frame) DrawPath(key PathKey, path *Path, position Vec2, transform Mat2x2, color Color) {
	f.check()
	if path.IsEmpty() || transform.Det() == 0 {
		return
	}
	p, fresh := f.cache.Place(key, path)
	if fresh {
		f.renderer.Upload(p.Start, path.Buffer())
	}
	f.emit(path, p, position, transform, color)
}

// DrawRect draws an axis-aligned rectangle of the given dimensions in the
// transform's local space.
func (f *Frame) DrawRect(position, dimensions Vec2, transform Mat2x2, color Color) {
	f.check()
	t := transform.Mul(ScaleMat(dimensions.X, dimensions.Y))
	if t.Det() == 0 {
		return
	}
	rect := f.cache.unitRect()
	p, fresh := f.cache.placeRect()
	if fresh {
		f.renderer.Upload(p.Start, rect.Buffer())
	}
	f.emit(rect, p, position, t, color)
}

// DrawText lays out s with font at size and draws every glyph that has an
// outline. Position is the top-left corner of the first line.
func (f *Frame) DrawText(key FontKey, font *text.Font, size float32, s string, position Vec2, transform Mat2x2, color Color) {
	f.check()
	f.DrawLayout(key, font, font.Layout(s, size), position, transform, color)
}

// DrawLayout draws a layout produced by font.Layout or a text.Shaper.
func (f *Frame) DrawLayout(key FontKey, font *text.Font, layout text.TextLayout, position Vec2, transform Mat2x2, color Color) {
	f.check()
	glyphTransform := transform.Scale(layout.Scale)
	if glyphTransform.Det() == 0 {
		return
	}
	for _, g := range layout.Glyphs {
		path, err := f.cache.Glyph(key, font, g.GID)
		if err != nil {
			Logger().Warn("vg: skipping glyph", "glyph", g.GID, "err", err)
			continue
		}
		if path.IsEmpty() {
			continue
		}
		p, fresh := f.cache.placeGlyph(key, g.GID, path)
		if fresh {
			f.renderer.Upload(p.Start, path.Buffer())
		}
		at := position.Add(transform.Apply(V2(g.X, g.Y)))
		f.emit(path, p, at, glyphTransform, color)
	}
}

func (f *Frame) emit(path *Path, p Placement, position Vec2, transform Mat2x2, color Color) {
	n := len(f.vertices)
	if n+4 > MaxFrameVertices {
		panic(fmt.Errorf("%w: %d vertices", ErrFrameOverflow, n+4))
	}

	s := f.opts.scale
	q := path.Quad(position.Mul(s), transform.Scale(s))
	col := color.ToLinearPremul()
	rng := [2]uint16{p.Start, p.End}
	for i := range q.Vertices {
		ndc := q.Vertices[i].PixelToNDC(f.width, f.height)
		f.vertices = append(f.vertices, Vertex{
			Pos:  [2]float32{ndc.X, ndc.Y},
			Col:  col,
			UV:   [2]float32{q.UV[i].X, q.UV[i].Y},
			Path: rng,
		})
	}
	i := uint16(n) //nolint:gosec // n+4 <= 65536
	f.indices = append(f.indices, i, i+1, i+2, i, i+2, i+3)
}

// VertexCount returns the number of vertices recorded so far.
func (f *Frame) VertexCount() int { return len(f.vertices) }

// IndexCount returns the number of indices recorded so far.
func (f *Frame) IndexCount() int { return len(f.indices) }

// Finish submits the recorded geometry in one Draw call and releases the
// frame. Any later use of the frame panics with ErrFrameFinished.
func (f *Frame) Finish() {
	f.check()
	f.finished = true
	Logger().Debug("vg: frame finished",
		"vertices", len(f.vertices), "indices", len(f.indices))
	f.renderer.Draw(f.vertices, f.indices)
	f.vertices, f.indices = nil, nil
	f.cache, f.renderer = nil, nil
}
