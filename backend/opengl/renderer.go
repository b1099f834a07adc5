// Package opengl provides an OpenGL 4.1 backend for vg.
//
// A current OpenGL 4.1 core context must be bound (and gl.Init called) on
// the calling goroutine before NewRenderer, and every method must be called
// from that goroutine.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/shader"
)

// Renderer implements vg.Renderer using OpenGL.
type Renderer struct {
	program  uint32
	vao, vbo uint32
	ebo      uint32
	curves   uint32
	curveLoc int32
	width    int
	height   int
}

var _ vg.Renderer = (*Renderer)(nil)

// NewRenderer compiles the curve pipeline and allocates the curve arena
// texture.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{width: width, height: height}

	var err error
	r.program, err = createShaderProgram(shader.VertexGLSL+"\x00", shader.FragmentGLSL+"\x00")
	if err != nil {
		return nil, fmt.Errorf("opengl: create shader: %w", err)
	}
	r.curveLoc = gl.GetUniformLocation(r.program, gl.Str("u_curves\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	stride := int32(unsafe.Sizeof(vg.Vertex{}))
	for _, a := range vg.VertexAttribs() {
		if a.Integer {
			gl.VertexAttribIPointerWithOffset(a.Location, a.Components, gl.UNSIGNED_SHORT, stride, a.Offset)
		} else {
			gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, stride, a.Offset)
		}
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.BindVertexArray(0)

	r.curves = createCurveTexture()

	vg.Logger().Debug("opengl: renderer created", "width", width, "height", height)
	return r, nil
}

// createCurveTexture allocates the RGBA16UI arena texture. Integer
// textures must use nearest filtering.
func createCurveTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16UI,
		shader.CurveTextureWidth, shader.CurveTextureHeight, 0,
		gl.RGBA_INTEGER, gl.UNSIGNED_SHORT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Resize updates the viewport size.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Clear fills the framebuffer with a linear premultiplied color.
func (r *Renderer) Clear(c [4]float32) {
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Upload writes texels into the arena texture starting at offset. Ranges
// that wrap a texture row are split into one update per row.
func (r *Renderer) Upload(offset uint16, texels []vg.Texel) {
	if len(texels) == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, r.curves)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 2)
	for _, s := range shader.ArenaRows(int(offset), len(texels)) {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0,
			int32(s.X), int32(s.Y), int32(s.N), 1,
			gl.RGBA_INTEGER, gl.UNSIGNED_SHORT, gl.Ptr(&texels[s.Src]))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	vg.Logger().Debug("opengl: upload", "offset", offset, "texels", len(texels))
}

// Draw renders an indexed triangle list with premultiplied blending.
func (r *Renderer) Draw(vertices []vg.Vertex, indices []uint16) {
	if len(vertices) == 0 || len(indices) == 0 {
		return
	}

	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(r.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.curves)
	gl.Uniform1i(r.curveLoc, 0)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(unsafe.Sizeof(vg.Vertex{})),
		gl.Ptr(vertices), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2,
		gl.Ptr(indices), gl.STREAM_DRAW)

	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(indices)), gl.UNSIGNED_SHORT, 0)

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

// Delete releases OpenGL resources.
func (r *Renderer) Delete() {
	if r.curves != 0 {
		gl.DeleteTextures(1, &r.curves)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link failed: %s", string(log))
	}
	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	s := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(s, 1, csource, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(s, logLength, nil, &log[0])
		gl.DeleteShader(s)
		return 0, fmt.Errorf("compile failed: %s", string(log))
	}
	return s, nil
}
