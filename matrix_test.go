package vg

import (
	"math"
	"testing"
)

func TestMat2x2_Apply(t *testing.T) {
	m := M2(1, 2, 3, 4)
	if got := m.Apply(V2(1, 1)); got != V2(3, 7) {
		t.Errorf("Apply = %v, want (3, 7)", got)
	}
	if got := m.Column(0); got != V2(1, 3) {
		t.Errorf("Column(0) = %v", got)
	}
	if got := m.Column(1); got != V2(2, 4) {
		t.Errorf("Column(1) = %v", got)
	}
	if got := m.Det(); got != -2 {
		t.Errorf("Det = %v, want -2", got)
	}
}

func TestMat2x2_Mul(t *testing.T) {
	m := M2(1, 2, 3, 4)
	n := ScaleMat(2, 3)
	v := V2(5, -1)
	if got, want := m.Mul(n).Apply(v), m.Apply(n.Apply(v)); got != want {
		t.Errorf("(m*n)v = %v, m(nv) = %v", got, want)
	}
	if got := Identity().Mul(m).Mul(Identity()); got != m {
		t.Errorf("identity composition = %+v, want %+v", got, m)
	}
	if got := m.Scale(2); got != M2(2, 4, 6, 8) {
		t.Errorf("Scale = %+v", got)
	}
}

func TestRotateMat(t *testing.T) {
	r := RotateMat(math.Pi / 2)
	if got := r.Apply(V2(1, 0)); !got.Approx(V2(0, 1), 1e-6) {
		t.Errorf("rotate (1,0) by 90° = %v, want (0, 1)", got)
	}
	if d := r.Det(); abs32(d-1) > 1e-6 {
		t.Errorf("rotation Det = %v", d)
	}
}
