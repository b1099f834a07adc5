package vg

// Vertex is the interleaved record emitted per quad corner.
type Vertex struct {
	// Pos is the corner position in normalized device coordinates.
	Pos [2]float32
	// Col is a linear, premultiplied RGBA color.
	Col [4]float32
	// UV maps the path bounding box to [0,1]²; values outside that range
	// belong to the anti-aliasing guard band.
	UV [2]float32
	// Path is the arena range [start, end) of the curve texels.
	Path [2]uint16
}

// Renderer is the capability interface a graphics backend implements.
// The core keeps no graphics handles; it only issues these calls.
type Renderer interface {
	// Clear fills the target with a linear premultiplied color.
	Clear(color [4]float32)

	// Draw renders an indexed triangle list.
	Draw(vertices []Vertex, indices []uint16)

	// Upload writes texels into the curve arena starting at offset.
	Upload(offset uint16, texels []Texel)
}
