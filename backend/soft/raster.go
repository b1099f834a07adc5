package soft

import (
	"math"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/internal/color"
)

// point is a vertex in pixel space with its attributes.
type point struct {
	x, y float64
	v    vg.Vertex
}

func (r *Renderer) toPixel(v vg.Vertex) point {
	return point{
		x: (float64(v.Pos[0]) + 1) / 2 * float64(r.width),
		y: (1 - float64(v.Pos[1])) / 2 * float64(r.height),
		v: v,
	}
}

func edge(a, b point, x, y float64) float64 {
	return (b.x-a.x)*(y-a.y) - (b.y-a.y)*(x-a.x)
}

// owns reports whether pixels exactly on edge a->b belong to this
// triangle. Adjacent triangles traverse a shared edge in opposite
// directions, so exactly one of them owns it.
func owns(a, b point) bool {
	dy, dx := b.y-a.y, b.x-a.x
	return dy > 0 || (dy == 0 && dx < 0)
}

// rampRadius is half of fwidth(u) in texel space: the horizontal
// anti-aliasing radius for a pixel whose u changes by dudx per pixel in x
// and dudy per pixel in y.
func rampRadius(dudx, dudy float64) float32 {
	return float32(0.5 * (math.Abs(dudx) + math.Abs(dudy)) * float64(vg.QuantMax-vg.QuantMin))
}

func (r *Renderer) triangle(a, b, c vg.Vertex) {
	p0, p1, p2 := r.toPixel(a), r.toPixel(b), r.toPixel(c)
	area := edge(p0, p1, p2.x, p2.y)
	if area == 0 || math.IsNaN(area) {
		return
	}
	if area < 0 {
		p1, p2 = p2, p1
		area = -area
	}
	r.triangles++

	x0 := max(int(math.Floor(min(p0.x, p1.x, p2.x))), 0)
	y0 := max(int(math.Floor(min(p0.y, p1.y, p2.y))), 0)
	x1 := min(int(math.Ceil(max(p0.x, p1.x, p2.x))), r.width-1)
	y1 := min(int(math.Ceil(max(p0.y, p1.y, p2.y))), r.height-1)

	// UV is affine over the triangle, so its screen-space derivative is
	// constant.
	weights := func(x, y float64) (w0, w1, w2 float64) {
		return edge(p1, p2, x, y) / area, edge(p2, p0, x, y) / area, edge(p0, p1, x, y) / area
	}
	uAt := func(x, y float64) float64 {
		w0, w1, w2 := weights(x, y)
		return w0*float64(p0.v.UV[0]) + w1*float64(p1.v.UV[0]) + w2*float64(p2.v.UV[0])
	}
	dudx := uAt(p0.x+1, p0.y) - uAt(p0.x, p0.y)
	dudy := uAt(p0.x, p0.y+1) - uAt(p0.x, p0.y)
	rx := rampRadius(dudx, dudy)

	start, end := int(p0.v.Path[0]), int(p0.v.Path[1])
	if end > len(r.arena) || start > end {
		return
	}
	texels := r.arena[start:end]

	own0, own1, own2 := owns(p1, p2), owns(p2, p0), owns(p0, p1)
	for py := y0; py <= y1; py++ {
		cy := float64(py) + 0.5
		for px := x0; px <= x1; px++ {
			cx := float64(px) + 0.5
			e0, e1, e2 := edge(p1, p2, cx, cy), edge(p2, p0, cx, cy), edge(p0, p1, cx, cy)
			if !inside(e0, own0) || !inside(e1, own1) || !inside(e2, own2) {
				continue
			}
			w0, w1, w2 := e0/area, e1/area, e2/area
			u := w0*float64(p0.v.UV[0]) + w1*float64(p1.v.UV[0]) + w2*float64(p2.v.UV[0])
			v := w0*float64(p0.v.UV[1]) + w1*float64(p1.v.UV[1]) + w2*float64(p2.v.UV[1])

			tx := float32(vg.QuantMin + u*(vg.QuantMax-vg.QuantMin))
			ty := float32(vg.QuantMin + v*(vg.QuantMax-vg.QuantMin))
			cov := vg.TexelCoverage(texels, tx, ty, rx)
			if cov == 0 {
				continue
			}

			var src color.Linear
			for k := range src {
				ck := w0*float64(p0.v.Col[k]) + w1*float64(p1.v.Col[k]) + w2*float64(p2.v.Col[k])
				src[k] = float32(ck) * cov
			}
			i := py*r.width + px
			r.pix[i] = color.Over(src, r.pix[i])
		}
	}
}

func inside(e float64, owned bool) bool {
	return e > 0 || (e == 0 && owned)
}
