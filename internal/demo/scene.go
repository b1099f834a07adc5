// Package demo builds the scene shared by the example commands.
package demo

import (
	"fmt"
	"math"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/text"
)

// Scene owns the resources drawn by Draw. It registers its keys with the
// cache it is created for, so a scene must not be shared between caches.
type Scene struct {
	font     *text.Font
	fontKey  vg.FontKey
	star     *vg.Path
	starKey  vg.PathKey
	badge    *vg.Path
	badgeKey vg.PathKey
}

// NewScene parses the Go Regular font and builds the scene paths.
func NewScene(cache *vg.Cache) (*Scene, error) {
	f, err := text.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	return &Scene{
		font:     f,
		fontKey:  cache.AddFont(),
		star:     star(5, 60, 25),
		starKey:  cache.AddPath(),
		badge:    badge(),
		badgeKey: cache.AddPath(),
	}, nil
}

// Font returns the scene font.
func (s *Scene) Font() *text.Font { return s.font }

// FontKey returns the cache key of the scene font.
func (s *Scene) FontKey() vg.FontKey { return s.fontKey }

// WarmGlyphs starts a new atlas frame and rasterizes the glyphs of label
// at size into c, so they stay resident for this frame. It returns the
// number of glyphs placed; glyphs without an outline are skipped.
func (s *Scene) WarmGlyphs(c *atlas.BitmapCache, label string, size float32) int {
	c.BeginFrame()
	placed := 0
	for _, g := range s.font.Layout(label, size).Glyphs {
		if _, ok := c.Glyph(s.fontKey, s.font, g.GID, size); ok {
			placed++
		}
	}
	return placed
}

// Draw records the scene into f. Time t (seconds) drives the rotation.
func (s *Scene) Draw(f *vg.Frame, t float32) {
	f.Clear(vg.RGBA(0.12, 0.12, 0.14, 1))

	f.DrawRect(vg.V2(20, 20), vg.V2(360, 4), vg.Identity(), vg.RGBA(0.9, 0.5, 0.1, 1))
	f.DrawRect(vg.V2(300, 180), vg.V2(60, 60), vg.RotateMat(t), vg.RGBA(0.2, 0.6, 1, 0.8))

	f.DrawPath(s.starKey, s.star, vg.V2(110, 160), vg.RotateMat(-t/2), vg.RGBA(1, 0.85, 0.2, 1))
	f.DrawPath(s.badgeKey, s.badge, vg.V2(200, 110), vg.Identity(), vg.RGBA(0.3, 0.9, 0.4, 0.9))

	f.DrawText(s.fontKey, s.font, 32, "Hello, vg!", vg.V2(24, 36), vg.Identity(), vg.White)
	f.DrawText(s.fontKey, s.font, 14, "quadratic curves\nin a texture", vg.V2(24, 260),
		vg.Identity(), vg.RGBA(0.8, 0.8, 0.8, 1))
}

// star is centered on the origin so rotations spin it in place.
func star(points int, outer, inner float32) *vg.Path {
	var b vg.PathBuilder
	for i := range 2 * points {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/float64(points) - math.Pi/2
		x, y := r*float32(math.Cos(a)), r*float32(math.Sin(a))
		if i == 0 {
			b.MoveTo(x, y)
		} else {
			b.LineTo(x, y)
		}
	}
	return b.Close().Build()
}

// badge is a rounded rectangle with a circular hole.
func badge() *vg.Path {
	const w, h, r = 140, 90, 16
	var b vg.PathBuilder
	b.MoveTo(r, 0).
		LineTo(w-r, 0).
		ArcTo(r, false, true, w, r).
		LineTo(w, h-r).
		ArcTo(r, false, true, w-r, h).
		LineTo(r, h).
		ArcTo(r, false, true, 0, h-r).
		LineTo(0, r).
		ArcTo(r, false, true, r, 0).
		Close()
	// Opposite direction so the non-zero rule cuts it out.
	b.MoveTo(w/2+20, h/2).
		ArcTo(20, false, false, w/2-20, h/2).
		ArcTo(20, false, false, w/2+20, h/2).
		Close()
	return b.Build()
}
