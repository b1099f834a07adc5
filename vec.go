package vg

import "math"

// Vec2 is a 2D point or displacement in float32 precision.
// Positions are in pixels with the origin at the top-left corner and
// Y increasing downward.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns the negation of the vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float32 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z-component of the 3D cross product with z=0.
func (v Vec2) Cross(w Vec2) float32 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the length of the vector.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Distance returns the distance between two points.
func (v Vec2) Distance(w Vec2) float32 {
	return v.Sub(w).Length()
}

// Normalize returns a unit vector in the same direction.
// Returns the zero vector if v has zero length; callers that divide by
// the result must guard degenerate edges themselves.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// Min returns the component-wise minimum of two vectors.
func (v Vec2) Min(w Vec2) Vec2 {
	return Vec2{X: min(v.X, w.X), Y: min(v.Y, w.Y)}
}

// Max returns the component-wise maximum of two vectors.
func (v Vec2) Max(w Vec2) Vec2 {
	return Vec2{X: max(v.X, w.X), Y: max(v.Y, w.Y)}
}

// Approx reports whether two vectors are equal within epsilon per component.
func (v Vec2) Approx(w Vec2, epsilon float32) bool {
	return abs32(v.X-w.X) <= epsilon && abs32(v.Y-w.Y) <= epsilon
}

// IsFinite reports whether both components are finite.
func (v Vec2) IsFinite() bool {
	return isFinite32(v.X) && isFinite32(v.Y)
}

// PixelToNDC maps a pixel position inside a viewport of the given size to
// normalized device coordinates. Pixel Y grows downward, NDC Y grows upward.
func (v Vec2) PixelToNDC(width, height float32) Vec2 {
	return Vec2{
		X: 2 * (v.X/width - 0.5),
		Y: 2 * (1 - v.Y/height - 0.5),
	}
}

// Lerp performs linear interpolation between two points.
// t=0 returns a, t=1 returns b.
func Lerp(t float32, a, b Vec2) Vec2 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func isFinite32(x float32) bool {
	return !math.IsInf(float64(x), 0) && !math.IsNaN(float64(x))
}
