// Package soft is a CPU implementation of vg.Renderer.
//
// It keeps its own copy of the curve arena and evaluates coverage per pixel
// with vg.TexelCoverage, the same computation the GPU fragment stage does.
// It is slow and meant for tests, headless rendering and reference output.
package soft

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/internal/color"
)

// Renderer rasterizes vg frames into a linear premultiplied buffer.
type Renderer struct {
	width, height int
	pix           []color.Linear
	arena         []vg.Texel

	draws     int
	uploads   int
	triangles int
}

var _ vg.Renderer = (*Renderer)(nil)

// New creates a renderer with a width x height target cleared to
// transparent.
func New(width, height int) *Renderer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("soft: invalid target size %dx%d", width, height))
	}
	return &Renderer{
		width:  width,
		height: height,
		pix:    make([]color.Linear, width*height),
		arena:  make([]vg.Texel, vg.MaxArenaTexels+1),
	}
}

// Size returns the target dimensions in pixels.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Clear fills the target with c.
func (r *Renderer) Clear(c [4]float32) {
	for i := range r.pix {
		r.pix[i] = color.Linear(c)
	}
}

// Upload copies texels into the arena at offset.
func (r *Renderer) Upload(offset uint16, texels []vg.Texel) {
	if int(offset)+len(texels) > len(r.arena) {
		panic(fmt.Errorf("%w: upload of %d texels at %d", vg.ErrArenaOverflow, len(texels), offset))
	}
	copy(r.arena[offset:], texels)
	r.uploads++
	vg.Logger().Debug("soft: upload", "offset", offset, "texels", len(texels))
}

// Draw rasterizes an indexed triangle list.
func (r *Renderer) Draw(vertices []vg.Vertex, indices []uint16) {
	r.draws++
	for i := 0; i+2 < len(indices); i += 3 {
		r.triangle(vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]])
	}
}

// At returns the linear premultiplied value of pixel (x, y).
func (r *Renderer) At(x, y int) [4]float32 {
	return r.pix[y*r.width+x]
}

// Image encodes the target as 8-bit sRGB with straight alpha.
func (r *Renderer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	for i, c := range r.pix {
		cr, cg, cb, ca := c.ToSRGB8()
		img.Pix[i*4+0] = cr
		img.Pix[i*4+1] = cg
		img.Pix[i*4+2] = cb
		img.Pix[i*4+3] = ca
	}
	return img
}

// WritePNG encodes the target as PNG.
func (r *Renderer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.Image()); err != nil {
		return fmt.Errorf("soft: encode png: %w", err)
	}
	return nil
}

// Stats reports how many calls the renderer has served.
type Stats struct {
	Draws     int
	Uploads   int
	Triangles int
}

// Stats returns the call counters.
func (r *Renderer) Stats() Stats {
	return Stats{Draws: r.draws, Uploads: r.uploads, Triangles: r.triangles}
}
