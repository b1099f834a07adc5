package color

import "math"

// SRGBToLinear converts an sRGB component in [0,1] to linear light.
// Values below 0.04045 use the linear toe, the rest the 2.4 power segment.
func SRGBToLinear(s float32) float32 {
	if s < 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow(float64((s+0.055)/1.055), 2.4))
}

// LinearToSRGB converts a linear component in [0,1] back to sRGB.
// The toe threshold in linear light is 0.0031308.
func LinearToSRGB(l float32) float32 {
	if l < 0.0031308 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}

// FromSRGB converts straight-alpha sRGB components into a linear
// premultiplied color.
func FromSRGB(r, g, b, a float32) Linear {
	return Premultiply(SRGBToLinear(r), SRGBToLinear(g), SRGBToLinear(b), a)
}
