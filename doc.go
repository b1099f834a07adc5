// Package vg renders 2D vector paths and text on the GPU by evaluating
// quadratic Bézier coverage per fragment.
//
// # Overview
//
// A path is flattened into monotone quadratic segments (cubics are
// approximated, arcs are decomposed into quadratics) and encoded as a short
// run of 16-bit texels relative to its bounding box. Each path is drawn as a
// single screen-space quad; the fragment stage walks the path's texels and
// sums signed crossings to produce anti-aliased non-zero coverage. No
// tessellation is needed and paths scale freely under any linear transform.
//
// # Quick Start
//
//	cache := vg.NewCache()
//	key := cache.AddPath()
//
//	var b vg.PathBuilder
//	b.Circle(50, 50, 40)
//	circle := b.Build()
//
//	f := vg.NewFrame(cache, renderer, 800, 600)
//	f.Clear(vg.Black)
//	f.DrawPath(key, circle, vg.V2(10, 10), vg.Identity(), vg.RGBA(1, 0.5, 0, 1))
//	f.Finish()
//
// # Resources
//
// The Cache owns the curve arena, a 65535-texel buffer shared by all paths
// and glyphs. A path is uploaded to the Renderer on its first draw and
// reused by every later frame. The arena is append-only; Cache.Reset starts
// a new epoch when it fills up.
//
// # Backends
//
// A Renderer needs three calls: Clear, Draw and Upload. Package
// backend/opengl implements them with OpenGL 4.1 and package backend/soft
// on the CPU. Shader sources live in package shader.
//
// # Text
//
// Fonts are parsed and laid out by package text. Frame.DrawText places one
// quad per glyph, building each glyph path once per font. Package atlas
// offers a rasterized alternative for small sizes.
//
// # Logging
//
// The package is silent by default. Call SetLogger to receive debug output
// about placements, uploads and frame submission.
package vg
