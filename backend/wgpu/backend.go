package wgpu

import (
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/stencilvg/backend"
	"github.com/gogpu/stencilvg/internal/raster"
)

// Backend implements stencilvg/backend.Backend on a caller-supplied
// hal.Device/hal.Queue pair. Device and queue acquisition (instance,
// adapter, device request) is the caller's responsibility, mirroring
// how the teacher's internal/gpu.StencilRenderer takes an already-opened
// device rather than owning adapter selection itself.
type Backend struct {
	device hal.Device
	queue  hal.Queue
	target hal.TextureView

	pipelines *pipelineSet
	vertices  *growableVertexBuffer
	ramp      *rampTexture

	solidBindGroup    hal.BindGroup
	solidUniformBuf   hal.Buffer
	texturedBindGroup hal.BindGroup
	texturedUniformBuf hal.Buffer

	viewportW, viewportH float32
	boundProgram         backend.Program
	solidColor           [4]float32

	encoder hal.CommandEncoder
	pass    hal.RenderPassEncoder

	saved savedState
}

// savedState is the pipeline state SaveState/RestoreState bracket a
// frame with (§6 beginFrame/endFrame contract).
type savedState struct {
	viewportW, viewportH float32
}

// NewBackend wraps an already-created device and queue. Call Init before
// issuing any draw calls.
func NewBackend(device hal.Device, queue hal.Queue) *Backend {
	return &Backend{device: device, queue: queue}
}

// SetRenderTarget binds the color attachment subsequent frames render
// into. Not part of the abstract Backend interface (the core never
// needs to know about render targets) but required for this concrete
// implementation to open a render pass.
func (b *Backend) SetRenderTarget(view hal.TextureView) {
	b.target = view
}

func (b *Backend) Init() error {
	if err := validateShaders(); err != nil {
		return err
	}
	ps, err := newPipelineSet(b.device)
	if err != nil {
		return err
	}
	b.pipelines = ps
	b.vertices = newGrowableVertexBuffer(b.device, b.queue)

	ramp, err := newRampTexture(b.device)
	if err != nil {
		ps.destroy()
		return err
	}
	b.ramp = ramp

	solidUniform, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "stencilvg_solid_uniform", Size: 32,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create solid uniform buffer: %w", err)
	}
	b.solidUniformBuf = solidUniform
	b.solidBindGroup, err = b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "stencilvg_solid_bind", Layout: b.pipelines.uniformLayoutSolid,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: solidUniform.NativeHandle(), Offset: 0, Size: 32}},
		},
	})
	if err != nil {
		return fmt.Errorf("create solid bind group: %w", err)
	}

	texturedUniform, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "stencilvg_textured_uniform", Size: 16,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create textured uniform buffer: %w", err)
	}
	b.texturedUniformBuf = texturedUniform
	b.texturedBindGroup, err = b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "stencilvg_textured_bind", Layout: b.pipelines.uniformLayoutTextured,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: texturedUniform.NativeHandle(), Offset: 0, Size: 16}},
			{Binding: 1, Resource: b.ramp.sampler},
			{Binding: 2, Resource: b.ramp.view},
		},
	})
	if err != nil {
		return fmt.Errorf("create textured bind group: %w", err)
	}
	return nil
}

func (b *Backend) Close() {
	if b.vertices != nil {
		b.vertices.destroy()
	}
	if b.ramp != nil {
		b.ramp.destroy()
	}
	if b.solidUniformBuf != nil {
		b.device.DestroyBuffer(b.solidUniformBuf)
	}
	if b.texturedUniformBuf != nil {
		b.device.DestroyBuffer(b.texturedUniformBuf)
	}
	if b.pipelines != nil {
		b.pipelines.destroy()
	}
}

func (b *Backend) SetViewport(width, height float32) {
	b.viewportW, b.viewportH = width, height
}

func (b *Backend) UploadVertices(data []float32) (int, error) {
	bytes := float32sToBytes(data)
	if err := b.vertices.upload(bytes); err != nil {
		return 0, err
	}
	stride := vertexStrideSolid / 4
	if b.boundProgram == backend.ProgramTextured {
		stride = vertexStrideTextured / 4
	}
	return len(data) / stride, nil
}

func (b *Backend) UploadRampTexture(rgba []float32) error {
	return b.ramp.upload(b.queue, rgba)
}

func (b *Backend) BindProgram(p backend.Program, solidColor [4]float32) {
	b.boundProgram = p
	b.solidColor = solidColor
	if p == backend.ProgramSolid {
		b.queue.WriteBuffer(b.solidUniformBuf, 0, encodeUniform(b.viewportW, b.viewportH, &solidColor))
	} else {
		b.queue.WriteBuffer(b.texturedUniformBuf, 0, encodeUniform(b.viewportW, b.viewportH, nil))
	}
}

func (b *Backend) SetFillStencilState(cfg raster.FillPassConfig) {
	pipeline, err := b.pipelines.rasterPipeline(cfg)
	if err != nil {
		return
	}
	b.ensurePass()
	b.pass.SetPipeline(pipeline)
	b.bindCurrentProgram()
}

func (b *Backend) SetCoverStencilState(cfg raster.CoverPassConfig) {
	textured := b.boundProgram == backend.ProgramTextured
	pipeline, err := b.pipelines.coverPipeline(cfg, textured)
	if err != nil {
		return
	}
	b.ensurePass()
	b.pass.SetPipeline(pipeline)
	b.bindCurrentProgram()
}

func (b *Backend) bindCurrentProgram() {
	if b.boundProgram == backend.ProgramSolid {
		b.pass.SetBindGroup(0, b.solidBindGroup, nil)
	} else {
		b.pass.SetBindGroup(0, b.texturedBindGroup, nil)
	}
	b.pass.SetVertexBuffer(0, b.vertices.buf, 0)
}

func (b *Backend) SetColorWrite(enabled bool) {
	// Color write is baked into the pipeline's ColorTargetState
	// (WriteMaskNone for raster passes, WriteMaskAll for cover), so
	// selecting the pipeline in SetFillStencilState/SetCoverStencilState
	// already encodes this; nothing further to toggle per draw.
	_ = enabled
}

func (b *Backend) SetStencilReference(ref uint8) {
	if b.pass != nil {
		b.pass.SetStencilReference(uint32(ref))
	}
}

func drawTopology(mode backend.DrawMode) gputypes.PrimitiveTopology {
	switch mode {
	case backend.TriangleFan:
		return gputypes.PrimitiveTopologyTriangleFan
	case backend.TriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip
	default:
		return gputypes.PrimitiveTopologyTriangleList
	}
}

func (b *Backend) DrawArrays(mode backend.DrawMode, first, count int) {
	if b.pass == nil {
		return
	}
	_ = drawTopology(mode) // topology is fixed per-pipeline at creation time; kept for API symmetry with the spec's drawArrays(mode, ...) contract
	b.pass.Draw(uint32(count), 1, uint32(first), 0)
}

func (b *Backend) SaveState() {
	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "stencilvg_frame"})
	if err != nil {
		return
	}
	if err := encoder.BeginEncoding("stencilvg_frame"); err != nil {
		return
	}
	b.encoder = encoder
	if b.target != nil {
		b.pass = encoder.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: "stencilvg_pass",
			ColorAttachments: []hal.RenderPassColorAttachment{
				{View: b.target, LoadOp: gputypes.LoadOpLoad, StoreOp: gputypes.StoreOpStore},
			},
		})
	}
	b.saved = savedState{viewportW: b.viewportW, viewportH: b.viewportH}
}

func (b *Backend) RestoreState() {
	if b.pass != nil {
		b.pass.End()
		b.pass = nil
	}
	if b.encoder != nil {
		if cmdBuf, err := b.encoder.EndEncoding(); err == nil {
			b.queue.Submit([]hal.CommandBuffer{cmdBuf}, nil, 0)
			b.device.FreeCommandBuffer(cmdBuf)
		}
		b.encoder = nil
	}
	b.viewportW, b.viewportH = b.saved.viewportW, b.saved.viewportH
}

func (b *Backend) ensurePass() {
	if b.pass == nil && b.encoder != nil && b.target != nil {
		b.pass = b.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: "stencilvg_pass",
			ColorAttachments: []hal.RenderPassColorAttachment{
				{View: b.target, LoadOp: gputypes.LoadOpLoad, StoreOp: gputypes.StoreOpStore},
			},
		})
	}
}

func float32sToBytes(data []float32) []byte {
	out := make([]byte, len(data)*4)
	for i, v := range data {
		bits := math.Float32bits(v)
		out[i*4+0] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}
	return out
}
