package shader

// RowSpan is a run of texels that lies on one row of the curve texture.
type RowSpan struct {
	X, Y int
	N    int
	Src  int // index into the uploaded slice
}

// ArenaRows splits the arena range [offset, offset+n) into per-row spans,
// the unit both backends upload in.
func ArenaRows(offset, n int) []RowSpan {
	var spans []RowSpan
	src := 0
	for n > 0 {
		x := offset % CurveTextureWidth
		k := min(n, CurveTextureWidth-x)
		spans = append(spans, RowSpan{X: x, Y: offset / CurveTextureWidth, N: k, Src: src})
		offset += k
		src += k
		n -= k
	}
	return spans
}
