package vg

import (
	"math"
	"slices"
)

// qsegment is a segment in fixed-point texel coordinates.
type qsegment struct {
	p1, p2, p3 [2]uint16
}

func (s qsegment) minY() uint16 { return min(s.p1[1], s.p3[1]) }
func (s qsegment) maxY() uint16 { return max(s.p1[1], s.p3[1]) }

// Quantize maps v into fixed point relative to a box with the given offset
// and size, one axis at a time.
func Quantize(v, offset, size float32) uint16 {
	q := math.Round(float64(quantSteps)*float64(v-offset)/float64(size)) + QuantMin
	return uint16(min(max(q, QuantMin), QuantMax))
}

// Dequantize is the inverse of Quantize.
func Dequantize(q uint16, offset, size float32) float32 {
	return offset + float32(int(q)-QuantMin)/quantSteps*size
}

func (p *Path) quantize() []qsegment {
	conv := func(v Vec2) [2]uint16 {
		return [2]uint16{
			Quantize(v.X, p.offset.X, p.size.X),
			Quantize(v.Y, p.offset.Y, p.size.Y),
		}
	}
	q := make([]qsegment, len(p.segments))
	for i, s := range p.segments {
		q[i] = qsegment{conv(s.P1), conv(s.P2), conv(s.P3)}
	}
	return q
}

// encodeFlat appends a move/quad run. A move texel is emitted at the start
// and wherever a segment does not begin at the previous end point.
func encodeFlat(dst []Texel, segs []qsegment) []Texel {
	var prev [2]uint16
	for i, s := range segs {
		if i == 0 || s.p1 != prev {
			dst = append(dst, Texel{markerMove, markerMove, s.p1[0], s.p1[1]})
		}
		dst = append(dst, Texel{s.p2[0], s.p2[1], s.p3[0], s.p3[1]})
		prev = s.p3
	}
	return dst
}

// encodeBands appends a band tree over segs. Segments whose y range
// straddles a split are written to both children.
func encodeBands(dst []Texel, segs []qsegment, maxLeaf, depth int) []Texel {
	if len(segs) <= maxLeaf || depth >= maxBandDepth {
		return encodeFlat(dst, segs)
	}

	mids := make([]int, len(segs))
	for i, s := range segs {
		mids[i] = (int(s.minY()) + int(s.maxY())) / 2
	}
	slices.Sort(mids)
	split := uint16(mids[len(mids)/2]) //nolint:gosec // midpoint of two uint16

	var low, high []qsegment
	for _, s := range segs {
		if s.minY() < split {
			low = append(low, s)
		}
		if s.maxY() > split {
			high = append(high, s)
		}
	}
	if len(low) == len(segs) || len(high) == len(segs) {
		return encodeFlat(dst, segs)
	}

	lowBuf := encodeBands(nil, low, maxLeaf, depth+1)
	if len(lowBuf) > math.MaxUint16 {
		return encodeFlat(dst, segs)
	}
	dst = append(dst, Texel{markerNode, 1, split, uint16(len(lowBuf))})
	dst = append(dst, lowBuf...)
	return encodeBands(dst, high, maxLeaf, depth+1)
}

func isMove(t Texel) bool { return t[0] == markerMove && t[1] == markerMove }
func isNode(t Texel) bool { return t[0] == markerNode && t[1] == 1 }

// DecodeTexels decodes an encoded buffer back into segments in the box
// given by offset and size. For band-encoded buffers every leaf is decoded
// in order, so segments straddling a split appear more than once.
func DecodeTexels(texels []Texel, offset, size Vec2) []Segment {
	deq := func(x, y uint16) Vec2 {
		return V2(Dequantize(x, offset.X, size.X), Dequantize(y, offset.Y, size.Y))
	}
	var out []Segment
	var cur Vec2
	for _, t := range texels {
		switch {
		case isNode(t):
			// Leaves follow their node directly, so a linear scan visits them all.
		case isMove(t):
			cur = deq(t[2], t[3])
		default:
			end := deq(t[2], t[3])
			out = append(out, Segment{cur, deq(t[0], t[1]), end})
			cur = end
		}
	}
	return out
}

// LeafFor returns the texel run that must be evaluated for scanline y
// (in texel units). For flat buffers this is the whole buffer.
func LeafFor(texels []Texel, y float32) []Texel {
	for len(texels) > 0 && isNode(texels[0]) {
		split, lowLen := texels[0][2], int(texels[0][3])
		if lowLen > len(texels)-1 {
			return nil
		}
		if y < float32(split) {
			texels = texels[1 : 1+lowLen]
		} else {
			texels = texels[1+lowLen:]
		}
	}
	return texels
}

// TexelCoverage evaluates non-zero fill coverage of an encoded buffer at
// (x, y) in texel units. Each crossing of the horizontal ray to the right
// contributes its direction, weighted by a linear ramp of half-width rx
// around the crossing. With rx <= 0 the result is exactly 0 or 1.
func TexelCoverage(texels []Texel, x, y, rx float32) float32 {
	var acc float64
	px, py := float64(x), float64(y)
	var cur [2]float64
	for _, t := range LeafFor(texels, y) {
		if isMove(t) {
			cur = [2]float64{float64(t[2]), float64(t[3])}
			continue
		}
		c := [2]float64{float64(t[0]), float64(t[1])}
		e := [2]float64{float64(t[2]), float64(t[3])}
		s := cur
		cur = e

		y0, y1 := min(s[1], e[1]), max(s[1], e[1])
		if py < y0 || py >= y1 {
			continue
		}
		dir := 1.0
		if e[1] < s[1] {
			dir = -1
		}
		tt := solveMonotone(s[1], c[1], e[1], py)
		xc := (1-tt)*(1-tt)*s[0] + 2*(1-tt)*tt*c[0] + tt*tt*e[0]

		if rx <= 0 {
			if xc > px {
				acc += dir
			}
			continue
		}
		acc += dir * min(max((xc-px)/(2*float64(rx))+0.5, 0), 1)
	}
	return float32(min(math.Abs(acc), 1))
}

// TexelWinding returns the non-zero winding number of an encoded buffer at
// (x, y) in texel units.
func TexelWinding(texels []Texel, x, y float32) int {
	w := 0
	var cur [2]float64
	px, py := float64(x), float64(y)
	for _, t := range LeafFor(texels, y) {
		if isMove(t) {
			cur = [2]float64{float64(t[2]), float64(t[3])}
			continue
		}
		s, c := cur, [2]float64{float64(t[0]), float64(t[1])}
		e := [2]float64{float64(t[2]), float64(t[3])}
		cur = e
		if py < min(s[1], e[1]) || py >= max(s[1], e[1]) {
			continue
		}
		tt := solveMonotone(s[1], c[1], e[1], py)
		if (1-tt)*(1-tt)*s[0]+2*(1-tt)*tt*c[0]+tt*tt*e[0] > px {
			if e[1] > s[1] {
				w++
			} else {
				w--
			}
		}
	}
	return w
}

// solveMonotone returns t in [0,1] with B(t) = v for a quadratic that is
// monotone on this axis.
func solveMonotone(a, b, c, v float64) float64 {
	qa := a - 2*b + c
	qb := 2 * (b - a)
	qc := a - v
	var t float64
	if math.Abs(qa) < 1e-9 {
		if qb == 0 {
			return 0
		}
		t = -qc / qb
	} else {
		disc := math.Sqrt(max(qb*qb-4*qa*qc, 0))
		t = (-qb + disc) / (2 * qa)
		if t < -1e-9 || t > 1+1e-9 {
			t = (-qb - disc) / (2 * qa)
		}
	}
	return min(max(t, 0), 1)
}

// toTexelSpace maps a point in path coordinates to texel units.
func (p *Path) toTexelSpace(pt Vec2) (x, y float32) {
	x = QuantMin + quantSteps*(pt.X-p.offset.X)/p.size.X
	y = QuantMin + quantSteps*(pt.Y-p.offset.Y)/p.size.Y
	return x, y
}

// Winding returns the non-zero winding number of the path at pt, evaluated
// on the encoded buffer.
func (p *Path) Winding(pt Vec2) int {
	if p.IsEmpty() {
		return 0
	}
	x, y := p.toTexelSpace(pt)
	return TexelWinding(p.buffer, x, y)
}

// Coverage returns the anti-aliased fill coverage at pt with a horizontal
// filter of the given radius, both in path coordinates.
func (p *Path) Coverage(pt Vec2, radius float32) float32 {
	if p.IsEmpty() {
		return 0
	}
	x, y := p.toTexelSpace(pt)
	return TexelCoverage(p.buffer, x, y, radius*quantSteps/p.size.X)
}
