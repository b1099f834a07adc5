package vg

import "math"

// Mat2x2 is a 2D linear transformation in row-major order:
//
//	| A  B |
//	| C  D |
//
// This represents the transformation:
//
//	x' = A*x + B*y
//	y' = C*x + D*y
//
// Translation is never folded into the matrix; draw calls take a separate
// position so that the quad geometry can be computed from the linear part.
type Mat2x2 struct {
	A, B float32
	C, D float32
}

// M2 is a convenience function to create a Mat2x2 from its rows.
func M2(a, b, c, d float32) Mat2x2 {
	return Mat2x2{A: a, B: b, C: c, D: d}
}

// Identity returns the identity transformation.
func Identity() Mat2x2 {
	return Mat2x2{A: 1, D: 1}
}

// ScaleMat creates a scaling transformation.
func ScaleMat(sx, sy float32) Mat2x2 {
	return Mat2x2{A: sx, D: sy}
}

// RotateMat creates a rotation (angle in radians). With Y pointing down,
// positive angles rotate clockwise on screen.
func RotateMat(angle float32) Mat2x2 {
	sin, cos := math.Sincos(float64(angle))
	return Mat2x2{
		A: float32(cos), B: float32(-sin),
		C: float32(sin), D: float32(cos),
	}
}

// Mul returns the composition m*n (n is applied first).
func (m Mat2x2) Mul(n Mat2x2) Mat2x2 {
	return Mat2x2{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
	}
}

// Scale returns the matrix with every coefficient multiplied by s.
func (m Mat2x2) Scale(s float32) Mat2x2 {
	return Mat2x2{A: m.A * s, B: m.B * s, C: m.C * s, D: m.D * s}
}

// Apply transforms a vector.
func (m Mat2x2) Apply(v Vec2) Vec2 {
	return Vec2{
		X: m.A*v.X + m.B*v.Y,
		Y: m.C*v.X + m.D*v.Y,
	}
}

// Column returns the image of the i-th basis vector (0 for X, 1 for Y).
func (m Mat2x2) Column(i int) Vec2 {
	if i == 0 {
		return Vec2{X: m.A, Y: m.C}
	}
	return Vec2{X: m.B, Y: m.D}
}

// Det returns the determinant.
func (m Mat2x2) Det() float32 {
	return m.A*m.D - m.B*m.C
}

// IsIdentity reports whether m is the identity transformation.
func (m Mat2x2) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 && m.D == 1
}
