package color

import "math"

// linearToSRGB8 maps 12-bit linear values to 8-bit sRGB.
// 4096 entries keep the error within one 8-bit step.
var linearToSRGB8 [4096]uint8

func init() {
	for i := range linearToSRGB8 {
		l := float64(i) / 4095
		var s float64
		if l < 0.0031308 {
			s = l * 12.92
		} else {
			s = 1.055*math.Pow(l, 1.0/2.4) - 0.055
		}
		linearToSRGB8[i] = uint8(min(max(int(s*255+0.5), 0), 255)) //nolint:gosec // clamped to [0,255]
	}
}

// LinearToSRGB8 converts a linear component to an 8-bit sRGB value using a
// lookup table. Input outside [0,1] is clamped.
func LinearToSRGB8(l float32) uint8 {
	if !(l > 0) {
		return 0
	}
	if l >= 1 {
		return 255
	}
	return linearToSRGB8[int(l*4095+0.5)]
}

// ToSRGB8 un-premultiplies c and encodes it as 8-bit sRGB with straight alpha.
func (c Linear) ToSRGB8() (r, g, b, a uint8) {
	lr, lg, lb, la := c.Unpremultiply()
	return LinearToSRGB8(lr), LinearToSRGB8(lg), LinearToSRGB8(lb), uint8(min(max(la, 0), 1)*255 + 0.5)
}
