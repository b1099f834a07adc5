package vg

// Segment is a quadratic Bézier from P1 through control P2 to P3.
// Straight lines are stored with the control point at the midpoint.
type Segment struct {
	P1, P2, P3 Vec2
}

// Eval returns the point at parameter t.
func (s Segment) Eval(t float32) Vec2 {
	return Lerp(t, Lerp(t, s.P1, s.P2), Lerp(t, s.P2, s.P3))
}

// SplitAt subdivides the segment at t using De Casteljau's algorithm.
func (s Segment) SplitAt(t float32) (Segment, Segment) {
	p12 := Lerp(t, s.P1, s.P2)
	p23 := Lerp(t, s.P2, s.P3)
	p := Lerp(t, p12, p23)
	return Segment{s.P1, p12, p}, Segment{p, p23, s.P3}
}

// IsMonotone reports whether the segment is monotone in both x and y.
func (s Segment) IsMonotone() bool {
	return monotone(s.P1.X, s.P2.X, s.P3.X) && monotone(s.P1.Y, s.P2.Y, s.P3.Y)
}

func monotone(a, b, c float32) bool {
	return (a <= b && b <= c) || (c <= b && b <= a)
}

// stationary returns the parameter where the derivative of a quadratic
// with coefficients a, b, c on one axis vanishes.
func stationary(a, b, c float32) float32 {
	return (a - b) / (a - 2*b + c)
}

// appendMonotone appends s to dst split into one to three pieces, each
// monotone in both axes.
func appendMonotone(dst []Segment, s Segment) []Segment {
	var splits [2]float32
	n := 0
	if !monotone(s.P1.X, s.P2.X, s.P3.X) {
		splits[n] = stationary(s.P1.X, s.P2.X, s.P3.X)
		n++
	}
	if !monotone(s.P1.Y, s.P2.Y, s.P3.Y) {
		splits[n] = stationary(s.P1.Y, s.P2.Y, s.P3.Y)
		n++
	}

	switch {
	case n == 0:
		return append(dst, s)
	case n == 1 || splits[0] == splits[1]:
		a, b := s.SplitAt(splits[0])
		return append(dst, clampControl(a), clampControl(b))
	default:
		t1, t2 := min(splits[0], splits[1]), max(splits[0], splits[1])
		a, rest := s.SplitAt(t1)
		b, c := rest.SplitAt((t2 - t1) / (1 - t1))
		return append(dst, clampControl(a), clampControl(b), clampControl(c))
	}
}

// clampControl pulls the control point into the box spanned by the end
// points. After an exact split the control already lies there; rounding can
// push it out by an ulp.
func clampControl(s Segment) Segment {
	s.P2.X = min(max(s.P2.X, min(s.P1.X, s.P3.X)), max(s.P1.X, s.P3.X))
	s.P2.Y = min(max(s.P2.Y, min(s.P1.Y, s.P3.Y)), max(s.P1.Y, s.P3.Y))
	return s
}

// cubicToQuads approximates a cubic Bézier by two quadratics, splitting at
// t=0.5 and using the control point (3(c1+c2) - p0 - p3)/4 for each half.
func cubicToQuads(p0, c1, c2, p3 Vec2) [2]Segment {
	p01 := Lerp(0.5, p0, c1)
	p12 := Lerp(0.5, c1, c2)
	p23 := Lerp(0.5, c2, p3)
	a := Lerp(0.5, p01, p12)
	b := Lerp(0.5, p12, p23)
	m := Lerp(0.5, a, b)

	approx := func(q0, q1, q2, q3 Vec2) Segment {
		ctrl := q1.Add(q2).Mul(3).Sub(q0).Sub(q3).Mul(0.25)
		return Segment{q0, ctrl, q3}
	}
	return [2]Segment{approx(p0, p01, a, m), approx(m, b, p23, p3)}
}
