// Package text supplies glyph outlines, metrics and line layout for vg.
//
// Fonts are parsed with golang.org/x/image/font/opentype. Outlines are
// streamed in font units with Y pointing down, so they can be fed to a path
// builder directly and scaled at draw time:
//
//	f, err := text.Parse(goregular.TTF)
//	if err != nil {
//	    return err
//	}
//	layout := f.Layout("Hello", 24)
//
// Layout uses the built-in shaper (cmap lookup, advances and kerning).
// For ligatures and complex scripts pass WithShaper(NewGoTextShaper()).
package text
