package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/vg"
)

// texelSize is the size of one RGBA16Uint texel in bytes.
const texelSize = 8

// encodeTexels packs texels as little-endian RGBA16Uint rows.
func encodeTexels(texels []vg.Texel) []byte {
	buf := make([]byte, len(texels)*texelSize)
	for i, t := range texels {
		o := i * texelSize
		binary.LittleEndian.PutUint16(buf[o:], t[0])
		binary.LittleEndian.PutUint16(buf[o+2:], t[1])
		binary.LittleEndian.PutUint16(buf[o+4:], t[2])
		binary.LittleEndian.PutUint16(buf[o+6:], t[3])
	}
	return buf
}

// encodeVertices serializes vertices in the vg.VertexLayout format.
func encodeVertices(vertices []vg.Vertex) []byte {
	buf := make([]byte, len(vertices)*vg.VertexStride)
	for i := range vertices {
		writeVertex(buf[i*vg.VertexStride:], &vertices[i])
	}
	return buf
}

func writeVertex(buf []byte, v *vg.Vertex) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Pos[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Pos[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Col[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.Col[1]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.Col[2]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(v.Col[3]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(v.UV[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(v.UV[1]))
	binary.LittleEndian.PutUint16(buf[32:34], v.Path[0])
	binary.LittleEndian.PutUint16(buf[34:36], v.Path[1])
}

// encodeIndices serializes uint16 indices, padded to a multiple of four
// bytes as buffer writes require.
func encodeIndices(indices []uint16) []byte {
	n := len(indices) * 2
	buf := make([]byte, (n+3)&^3)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}
