package vg

import "github.com/gogpu/gputypes"

// VertexStride is the size of Vertex in bytes.
const VertexStride = 36

// Vertex attribute offsets in bytes.
const (
	offsetPos  = 0
	offsetCol  = 8
	offsetUV   = 24
	offsetPath = 32
)

// IndexFormat is the index buffer format used by Frame.
const IndexFormat = gputypes.IndexFormatUint16

// VertexLayout describes Vertex for pipeline creation on a WebGPU host.
// Shader locations: 0 position, 1 color, 2 uv, 3 path range.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: offsetPos, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x4, Offset: offsetCol, ShaderLocation: 1},
				{Format: gputypes.VertexFormatFloat32x2, Offset: offsetUV, ShaderLocation: 2},
				{Format: gputypes.VertexFormatUint16x2, Offset: offsetPath, ShaderLocation: 3},
			},
		},
	}
}

// VertexAttrib describes one Vertex field for APIs without gputypes,
// such as OpenGL.
type VertexAttrib struct {
	Location   uint32
	Components int32
	Offset     uintptr
	Integer    bool
}

// VertexAttribs lists the Vertex attributes in shader location order.
func VertexAttribs() []VertexAttrib {
	return []VertexAttrib{
		{Location: 0, Components: 2, Offset: offsetPos},
		{Location: 1, Components: 4, Offset: offsetCol},
		{Location: 2, Components: 2, Offset: offsetUV},
		{Location: 3, Components: 2, Offset: offsetPath, Integer: true},
	}
}
