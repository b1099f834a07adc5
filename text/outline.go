package text

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// OutlineSink receives glyph outline commands in font units, Y down.
// Contours are implicitly closed by the next MoveTo or the end of the glyph.
type OutlineSink interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	QuadTo(cx, cy, x, y float32)
	CubicTo(c1x, c1y, c2x, c2y, x, y float32)
}

// Outline streams the outline of gid to sink. Glyphs without contours,
// such as the space, produce no calls.
func (f *Font) Outline(gid GlyphID, sink OutlineSink) error {
	segs, err := f.sfnt.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), f.ppem, nil)
	if err != nil {
		return fmt.Errorf("text: load glyph %d: %w", gid, err)
	}
	for _, s := range segs {
		a := s.Args
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			sink.MoveTo(pt(a[0]))
		case sfnt.SegmentOpLineTo:
			sink.LineTo(pt(a[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(a[0])
			x, y := pt(a[1])
			sink.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(a[0])
			c2x, c2y := pt(a[1])
			x, y := pt(a[2])
			sink.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	return nil
}

func pt(p fixed.Point26_6) (x, y float32) {
	return fixedToFloat(p.X), fixedToFloat(p.Y)
}
