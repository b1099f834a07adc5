// Package color implements the sRGB transfer functions used to turn
// user-facing sRGB colors into the linear, premultiplied values consumed
// by GPU blending.
//
// sRGB is the encoding of colors handed to the library, but blending is
// performed in linear light with premultiplied alpha (ONE, ONE_MINUS_SRC_ALPHA).
package color

// Linear is a linear-light RGBA color with premultiplied alpha.
// Alpha is always linear (never gamma-encoded).
type Linear [4]float32

// Premultiply converts linear straight-alpha components to premultiplied.
func Premultiply(r, g, b, a float32) Linear {
	return Linear{r * a, g * a, b * a, a}
}

// Unpremultiply returns straight-alpha components.
// A fully transparent color yields all zeros.
func (c Linear) Unpremultiply() (r, g, b, a float32) {
	if c[3] == 0 {
		return 0, 0, 0, 0
	}
	return c[0] / c[3], c[1] / c[3], c[2] / c[3], c[3]
}

// Over composites src over dst, both premultiplied.
func Over(src, dst Linear) Linear {
	k := 1 - src[3]
	return Linear{
		src[0] + dst[0]*k,
		src[1] + dst[1]*k,
		src[2] + dst[2]*k,
		src[3] + dst[3]*k,
	}
}
