// Package wgpu provides a WebGPU backend for vg on top of the gogpu HAL.
//
// The renderer shares the host's device through a gpucontext.DeviceProvider
// that also exposes its HAL device and queue. Frames are drawn into a
// caller-supplied texture view (usually the current surface texture):
//
//	r, err := wgpu.New(provider)
//	...
//	r.SetTarget(view, width, height)
//	f := vg.NewFrame(cache, r, float32(width), float32(height))
//	...
//	f.Finish()
package wgpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/shader"
)

var (
	// ErrNilProvider is returned by New when the provider is nil.
	ErrNilProvider = errors.New("wgpu: nil device provider")

	// ErrNoHAL is returned by New when the provider does not expose HAL
	// device and queue handles.
	ErrNoHAL = errors.New("wgpu: provider does not expose HAL types")

	// ErrNoTarget is recorded when Clear or Draw runs before SetTarget.
	ErrNoTarget = errors.New("wgpu: no render target")
)

// fenceTimeout bounds how long a submit waits for the GPU.
const fenceTimeout = 5 * time.Second

// halProvider is the HAL side of gpucontext.HalProvider.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Renderer implements vg.Renderer on a HAL device.
//
// vg.Renderer methods do not return errors; the first GPU failure is kept
// and reported by Err.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	curves    hal.Texture
	curveView hal.TextureView
	bindGroup hal.BindGroup

	target        hal.TextureView
	width, height uint32

	err error
}

var _ vg.Renderer = (*Renderer)(nil)

// New creates the curve pipeline and the 256x256 RGBA16Uint arena texture
// on the provider's device. The pipeline renders to the provider's surface
// format.
func New(provider gpucontext.DeviceProvider) (*Renderer, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}

	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}

	r := &Renderer{device: device, queue: queue, format: format}
	if err := r.createPipeline(); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.createCurveTexture(); err != nil {
		r.Destroy()
		return nil, err
	}
	vg.Logger().Debug("wgpu: renderer created", "format", format)
	return r, nil
}

func (r *Renderer) createPipeline() error {
	module, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "vg_curve_shader",
		Source: hal.ShaderSource{WGSL: shader.WGSL},
	})
	if err != nil {
		return fmt.Errorf("wgpu: compile curve shader: %w", err)
	}
	r.shader = module

	// Binding 0: curve arena (texture_2d<u32>, fragment). Integer
	// textures are read with textureLoad, so there is no sampler.
	bindLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "vg_curve_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeUint,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	r.bindLayout = bindLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "vg_curve_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "vg_curve_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    vg.VertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline: %w", err)
	}
	r.pipeline = pipeline
	return nil
}

func (r *Renderer) createCurveTexture() error {
	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label: "vg_curve_arena",
		Size: hal.Extent3D{
			Width:              shader.CurveTextureWidth,
			Height:             shader.CurveTextureHeight,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA16Uint,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create curve texture: %w", err)
	}
	r.curves = tex

	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "vg_curve_arena_view",
		Format:        gputypes.TextureFormatRGBA16Uint,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create curve texture view: %w", err)
	}
	r.curveView = view

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "vg_curve_bind",
		Layout: r.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: r.curveView.NativeHandle()}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

// SetTarget sets the texture view the next passes render into. The view
// must have the provider's surface format.
func (r *Renderer) SetTarget(view hal.TextureView, width, height uint32) {
	r.target = view
	r.width = width
	r.height = height
}

// Size returns the current target size in pixels.
func (r *Renderer) Size() (width, height uint32) { return r.width, r.height }

// Err returns the first GPU error since the renderer was created.
func (r *Renderer) Err() error { return r.err }

func (r *Renderer) fail(err error) {
	vg.Logger().Error("wgpu: render failed", "err", err)
	if r.err == nil {
		r.err = err
	}
}

// Clear fills the target with a linear premultiplied color.
func (r *Renderer) Clear(c [4]float32) {
	if r.target == nil {
		r.fail(ErrNoTarget)
		return
	}
	value := gputypes.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
	if err := r.submit("vg_clear", gputypes.LoadOpClear, value, nil); err != nil {
		r.fail(err)
	}
}

// Upload writes texels into the arena texture starting at offset, one
// WriteTexture per texture row touched.
func (r *Renderer) Upload(offset uint16, texels []vg.Texel) {
	if len(texels) == 0 {
		return
	}
	if int(offset)+len(texels) > vg.MaxArenaTexels+1 {
		panic(fmt.Errorf("%w: upload of %d texels at %d", vg.ErrArenaOverflow, len(texels), offset))
	}
	data := encodeTexels(texels)
	for _, s := range shader.ArenaRows(int(offset), len(texels)) {
		r.queue.WriteTexture(
			&hal.ImageCopyTexture{
				Texture:  r.curves,
				MipLevel: 0,
				Origin:   hal.Origin3D{X: uint32(s.X), Y: uint32(s.Y), Z: 0},
				Aspect:   gputypes.TextureAspectAll,
			},
			data[s.Src*texelSize:(s.Src+s.N)*texelSize],
			&hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(s.N * texelSize),
				RowsPerImage: 1,
			},
			&hal.Extent3D{Width: uint32(s.N), Height: 1, DepthOrArrayLayers: 1},
		)
	}
	vg.Logger().Debug("wgpu: upload", "offset", offset, "texels", len(texels))
}

// Draw renders an indexed triangle list over the current target contents.
func (r *Renderer) Draw(vertices []vg.Vertex, indices []uint16) {
	if len(vertices) == 0 || len(indices) == 0 {
		return
	}
	if r.target == nil {
		r.fail(ErrNoTarget)
		return
	}

	vertBuf, err := r.createAndUploadBuffer("vg_vertices", encodeVertices(vertices),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		r.fail(err)
		return
	}
	defer r.device.DestroyBuffer(vertBuf)

	idxBuf, err := r.createAndUploadBuffer("vg_indices", encodeIndices(indices),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		r.fail(err)
		return
	}
	defer r.device.DestroyBuffer(idxBuf)

	indexCount := uint32(len(indices)) //nolint:gosec // frames hold at most 65536 vertices
	err = r.submit("vg_draw", gputypes.LoadOpLoad, gputypes.Color{}, func(rp hal.RenderPassEncoder) {
		rp.SetPipeline(r.pipeline)
		rp.SetBindGroup(0, r.bindGroup, nil)
		rp.SetVertexBuffer(0, vertBuf, 0)
		rp.SetIndexBuffer(idxBuf, vg.IndexFormat, 0)
		rp.DrawIndexed(indexCount, 1, 0, 0, 0)
	})
	if err != nil {
		r.fail(err)
	}
}

// submit records one render pass on the target, submits it and waits for
// the GPU so per-draw buffers can be released.
func (r *Renderer) submit(label string, load gputypes.LoadOp, clearValue gputypes.Color, record func(hal.RenderPassEncoder)) error {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       r.target,
				LoadOp:     load,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: clearValue,
			},
		},
	})
	if record != nil {
		record(rp)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// Destroy releases GPU resources. The device itself belongs to the
// provider and is left alone.
func (r *Renderer) Destroy() {
	if r.device == nil {
		return
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.curveView != nil {
		r.device.DestroyTextureView(r.curveView)
		r.curveView = nil
	}
	if r.curves != nil {
		r.device.DestroyTexture(r.curves)
		r.curves = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.bindLayout != nil {
		r.device.DestroyBindGroupLayout(r.bindLayout)
		r.bindLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
	r.target = nil
}
