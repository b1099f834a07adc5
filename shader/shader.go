// Package shader holds the GPU programs that evaluate path coverage from
// the curve arena.
//
// The vertex stage passes the quad through; the fragment stage maps the
// interpolated UV into texel space, walks the band tree (if any) to the
// leaf covering its scanline and sums the signed crossings of monotone
// quadratics to the right of the fragment, with a one-pixel horizontal
// ramp for anti-aliasing.
package shader

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// Curve texture dimensions. Width*Height equals the arena capacity plus one.
const (
	CurveTextureWidth  = 256
	CurveTextureHeight = 256
)

// GLSL 4.10 sources for the OpenGL backend.
var (
	//go:embed curve.vert.glsl
	VertexGLSL string

	//go:embed curve.frag.glsl
	FragmentGLSL string
)

// WGSL is the WebGPU version of the pipeline, with entry points vs_main
// and fs_main and the curve texture at group 0, binding 0.
//
//go:embed curve.wgsl
var WGSL string

// SPIRV compiles WGSL to SPIR-V words (little-endian).
func SPIRV() ([]uint32, error) {
	b, err := naga.Compile(WGSL)
	if err != nil {
		return nil, fmt.Errorf("shader: compile wgsl: %w", err)
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("shader: spir-v length %d is not a multiple of 4", len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words, nil
}
