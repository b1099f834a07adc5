package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/vg/atlas"
)

// AtlasTexture is a single-channel texture that receives glyph bitmaps
// from an atlas.BitmapCache.
type AtlasTexture struct {
	tex           uint32
	width, height int
}

var _ atlas.TextureUploader = (*AtlasTexture)(nil)

// NewAtlasTexture allocates an R8 texture of the given size.
func NewAtlasTexture(width, height int) *AtlasTexture {
	t := &AtlasTexture{width: width, height: height}
	gl.GenTextures(1, &t.tex)
	gl.BindTexture(gl.TEXTURE_2D, t.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(width), int32(height), 0,
		gl.RED, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// ID returns the OpenGL texture name.
func (t *AtlasTexture) ID() uint32 { return t.tex }

// UpdateTexture writes a w x h block of 8-bit coverage at (x, y).
func (t *AtlasTexture) UpdateTexture(x, y, w, h int, pix []byte) {
	if w == 0 || h == 0 || len(pix) == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, t.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(x), int32(y), int32(w), int32(h),
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Delete releases the texture.
func (t *AtlasTexture) Delete() {
	if t.tex != 0 {
		gl.DeleteTextures(1, &t.tex)
		t.tex = 0
	}
}
