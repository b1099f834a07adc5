package color

import (
	"math"
	"testing"
)

func floatNear(a, b, epsilon float32) bool {
	return float32(math.Abs(float64(a-b))) <= epsilon
}

func TestSRGBToLinear_Segments(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"zero", 0, 0},
		{"one", 1, 1},
		{"toe", 0.04, 0.04 / 12.92},
		{"mid", 0.5, 0.21404114},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SRGBToLinear(tt.in); !floatNear(got, tt.want, 1e-6) {
				t.Errorf("SRGBToLinear(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundTripSRGBLinear(t *testing.T) {
	for i := 0; i <= 100; i++ {
		s := float32(i) / 100
		if got := LinearToSRGB(SRGBToLinear(s)); !floatNear(got, s, 1e-5) {
			t.Errorf("round trip %v = %v", s, got)
		}
	}
}

func TestFromSRGB_Premultiplies(t *testing.T) {
	c := FromSRGB(1, 0.5, 0, 0.5)
	if !floatNear(c[0], 0.5, 1e-6) {
		t.Errorf("R = %v, want 0.5", c[0])
	}
	if !floatNear(c[1], 0.5*0.21404114, 1e-6) {
		t.Errorf("G = %v", c[1])
	}
	if c[2] != 0 || c[3] != 0.5 {
		t.Errorf("B, A = %v, %v", c[2], c[3])
	}
}

func TestLinearToSRGB8_MatchesReference(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		l := float32(i) / 1000
		want := int(LinearToSRGB(l)*255 + 0.5)
		got := int(LinearToSRGB8(l))
		if d := got - want; d < -1 || d > 1 {
			t.Errorf("LinearToSRGB8(%v) = %d, want %d", l, got, want)
		}
	}
	if LinearToSRGB8(-1) != 0 || LinearToSRGB8(2) != 255 {
		t.Error("out of range input must clamp")
	}
}

func TestOver(t *testing.T) {
	dst := Linear{0, 0, 1, 1}
	src := Premultiply(1, 0, 0, 0.5)
	got := Over(src, dst)
	want := Linear{0.5, 0, 0.5, 1}
	for i := range got {
		if !floatNear(got[i], want[i], 1e-6) {
			t.Errorf("Over()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUnpremultiply_Transparent(t *testing.T) {
	r, g, b, a := Linear{}.Unpremultiply()
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("got %v %v %v %v", r, g, b, a)
	}
}
