package vg

import "math"

// closeEpsilon is the distance below which a subpath counts as closed.
const closeEpsilon = 1e-6

// maxArcStep is the largest angle covered by one quadratic in ArcTo.
const maxArcStep = math.Pi / 4

// PathBuilder accumulates drawing commands and produces an immutable Path.
// All drawing methods return the builder for chaining.
//
// The zero value is ready to use and builds flat-encoded paths.
//
// Example:
//
//	path := vg.NewPathBuilder().
//	    MoveTo(0, 0).
//	    LineTo(10, 0).
//	    QuadTo(15, 5, 10, 10).
//	    Build()
type PathBuilder struct {
	segments []Segment
	first    Vec2
	last     Vec2
	opts     pathOptions
	inited   bool
}

// NewPathBuilder creates a builder configured by opts.
func NewPathBuilder(opts ...PathOption) *PathBuilder {
	b := &PathBuilder{opts: defaultPathOptions(), inited: true}
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b
}

func (b *PathBuilder) options() pathOptions {
	if !b.inited {
		b.opts = defaultPathOptions()
		b.inited = true
	}
	return b.opts
}

// MoveTo starts a new subpath at (x, y), closing the previous one first.
// A move that is followed by another move leaves nothing behind.
func (b *PathBuilder) MoveTo(x, y float32) *PathBuilder {
	b.Close()
	b.first = V2(x, y)
	b.last = b.first
	return b
}

// LineTo draws a straight line, stored as a quadratic with a midpoint control.
func (b *PathBuilder) LineTo(x, y float32) *PathBuilder {
	p := V2(x, y)
	b.segments = append(b.segments, Segment{b.last, Lerp(0.5, b.last, p), p})
	b.last = p
	return b
}

// QuadTo draws a quadratic Bézier with control (cx, cy) ending at (x, y).
func (b *PathBuilder) QuadTo(cx, cy, x, y float32) *PathBuilder {
	p := V2(x, y)
	b.segments = append(b.segments, Segment{b.last, V2(cx, cy), p})
	b.last = p
	return b
}

// CubicTo draws a cubic Bézier, approximated by two quadratics.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *PathBuilder {
	p := V2(x, y)
	quads := cubicToQuads(b.last, V2(c1x, c1y), V2(c2x, c2y), p)
	b.segments = append(b.segments, quads[0], quads[1])
	b.last = p
	return b
}

// ArcTo draws a circular arc of the given radius from the current point to
// (x, y). The radius is raised to half the chord when it is too small to
// reach. largeArc selects the longer of the two candidate arcs and winding
// selects the direction: true sweeps with increasing angle, which is
// clockwise on screen since Y points down.
func (b *PathBuilder) ArcTo(radius float32, largeArc, winding bool, x, y float32) *PathBuilder {
	end := V2(x, y)
	toMid := end.Sub(b.last).Mul(0.5)
	midLen := toMid.Length()
	radius = max(radius, midLen)
	toCenterLen := float32(math.Sqrt(float64(max(radius*radius-midLen*midLen, 0))))

	centerDir := float32(1)
	if largeArc == winding {
		centerDir = -1
	}
	toCenter := V2(-1, 0)
	if midLen != 0 {
		toCenter = V2(-toMid.Y, toMid.X).Normalize()
	}
	center := b.last.Add(toMid).Add(toCenter.Mul(centerDir * toCenterLen))

	start := b.last.Sub(center)
	startAngle := math.Atan2(float64(start.Y), float64(start.X))
	stop := end.Sub(center)
	endAngle := math.Atan2(float64(stop.Y), float64(stop.X))
	switch {
	case winding && endAngle < startAngle:
		endAngle += 2 * math.Pi
	case !winding && endAngle > startAngle:
		endAngle -= 2 * math.Pi
	}

	sweep := endAngle - startAngle
	n := min(max(int(math.Ceil(math.Abs(sweep)/maxArcStep)), 1), 8)
	for i := 1; i <= n; i++ {
		angle := startAngle + float64(i)/float64(n)*sweep
		sin, cos := math.Sincos(angle)
		normal := V2(float32(cos), float32(sin))
		point := center.Add(normal.Mul(radius))
		if i == n {
			point = end
		}

		tangent := V2(-normal.Y, normal.X)
		back := b.last.Sub(point)
		dist := back.Length()
		control := point
		if dot := tangent.Dot(back.Normalize()); dist > 0 && dot != 0 {
			control = point.Add(tangent.Mul(0.5 * dist / dot))
		}
		b.QuadTo(control.X, control.Y, point.X, point.Y)
	}
	return b
}

// Close ends the current subpath with a line back to its first point,
// unless the current point already coincides with it.
func (b *PathBuilder) Close() *PathBuilder {
	if b.first.Distance(b.last) > closeEpsilon {
		b.LineTo(b.first.X, b.first.Y)
	}
	b.last = b.first
	return b
}

// Rect adds a closed axis-aligned rectangle.
func (b *PathBuilder) Rect(x, y, w, h float32) *PathBuilder {
	return b.MoveTo(x, y).
		LineTo(x+w, y).
		LineTo(x+w, y+h).
		LineTo(x, y+h).
		Close()
}

// Circle adds a closed circle made of two half-circle arcs.
func (b *PathBuilder) Circle(cx, cy, r float32) *PathBuilder {
	return b.MoveTo(cx+r, cy).
		ArcTo(r, false, true, cx-r, cy).
		ArcTo(r, false, true, cx+r, cy).
		Close()
}

// Len returns the number of segments recorded so far, before monotonization.
func (b *PathBuilder) Len() int {
	return len(b.segments)
}

// Reset discards all recorded commands and keeps the options.
func (b *PathBuilder) Reset() *PathBuilder {
	b.segments = b.segments[:0]
	b.first = Vec2{}
	b.last = Vec2{}
	return b
}

// Build closes the open subpath, splits every segment into monotone pieces
// and encodes the result. The builder can keep recording afterwards; later
// commands do not affect the returned Path.
func (b *PathBuilder) Build() *Path {
	b.Close()
	o := b.options()

	monotone := make([]Segment, 0, len(b.segments)+len(b.segments)/2)
	for _, s := range b.segments {
		monotone = appendMonotone(monotone, s)
	}
	return newPath(monotone, o)
}
