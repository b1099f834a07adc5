package vg

import "math"

// Texel is one 64-bit entry of the curve arena: four 16-bit unsigned
// fixed-point values.
//
//	move: [0, 0, x, y]
//	quad: [cx, cy, ex, ey]   start point is the previous end point
//	node: [65535, 1, split, lowLen]   EncodingBands only
type Texel [4]uint16

// Fixed-point limits. Coordinates are stored in [QuantMin, QuantMax];
// 0 and 65535 are reserved for markers.
const (
	QuantMin   = 1
	QuantMax   = 65534
	quantSteps = QuantMax - QuantMin // 65533

	markerMove = 0
	markerNode = 65535
)

// Path is an immutable shape: a bounding box plus a list of monotone
// quadratic segments and their texel encoding relative to the box.
type Path struct {
	offset   Vec2
	size     Vec2
	segments []Segment
	buffer   []Texel
	encoding Encoding
}

func newPath(segments []Segment, o pathOptions) *Path {
	p := &Path{segments: segments, encoding: o.encoding}
	p.offset, p.size = bounds(segments)
	if p.size.X <= 0 || p.size.Y <= 0 {
		return p
	}

	q := p.quantize()
	switch o.encoding {
	case EncodingBands:
		p.buffer = encodeBands(nil, q, o.maxLeafSegments, 0)
	default:
		p.buffer = encodeFlat(nil, q)
	}
	return p
}

// bounds returns the bounding box of all control and end points.
// A box with non-finite components collapses to zero at the origin.
func bounds(segments []Segment) (offset, size Vec2) {
	inf := float32(math.Inf(1))
	lo := V2(inf, inf)
	hi := V2(-inf, -inf)
	for _, s := range segments {
		lo = lo.Min(s.P1).Min(s.P2).Min(s.P3)
		hi = hi.Max(s.P1).Max(s.P2).Max(s.P3)
	}
	if !lo.IsFinite() || !hi.IsFinite() {
		return Vec2{}, Vec2{}
	}
	return lo, hi.Sub(lo)
}

// Offset returns the bounding box origin.
func (p *Path) Offset() Vec2 { return p.offset }

// Size returns the bounding box extent.
func (p *Path) Size() Vec2 { return p.size }

// Segments returns the monotone segments in path coordinates.
// The returned slice must not be modified.
func (p *Path) Segments() []Segment { return p.segments }

// Buffer returns the encoded texels. The returned slice must not be modified.
func (p *Path) Buffer() []Texel { return p.buffer }

// Len returns the number of texels in the encoded buffer.
func (p *Path) Len() int { return len(p.buffer) }

// IsEmpty reports whether the path has nothing to draw.
func (p *Path) IsEmpty() bool { return p == nil || len(p.buffer) == 0 }

// Encoding returns the layout of the texel buffer.
func (p *Path) Encoding() Encoding { return p.encoding }

// Quad is the screen-space quadrilateral that covers a transformed path,
// with texture coordinates mapping the path bounding box to [0,1]².
// Corners are ordered top-left, top-right, bottom-right, bottom-left in
// path space.
type Quad struct {
	Vertices [4]Vec2
	UV       [4]Vec2
}

// Quad returns the oriented bounding quad of the path placed at position
// under transform. The quad is dilated by half a pixel along both edge
// normals, and the UVs by the matching amount, so coverage at the edges
// has room to fade out.
//
// The result is only meaningful for non-empty paths and invertible
// transforms.
func (p *Path) Quad(position Vec2, transform Mat2x2) Quad {
	o := position.Add(transform.Apply(p.offset))
	v1 := transform.Apply(V2(p.size.X, 0))
	v2 := transform.Apply(V2(0, p.size.Y))
	n1 := v1.Normalize()
	n2 := v2.Normalize()

	d := 0.5 / abs32(n1.Cross(n2))
	d1 := n1.Mul(d)
	d2 := n2.Mul(d)
	dx := d / v1.Length()
	dy := d / v2.Length()

	return Quad{
		Vertices: [4]Vec2{
			o.Sub(d1).Sub(d2),
			o.Add(v1).Add(d1).Sub(d2),
			o.Add(v1).Add(d1).Add(v2).Add(d2),
			o.Sub(d1).Add(v2).Add(d2),
		},
		UV: [4]Vec2{
			V2(-dx, -dy),
			V2(1+dx, -dy),
			V2(1+dx, 1+dy),
			V2(-dx, 1+dy),
		},
	}
}
