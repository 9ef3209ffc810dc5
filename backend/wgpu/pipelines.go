package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/stencilvg/internal/raster"
)

// stencilFormat is the depth/stencil attachment format every pipeline in
// this backend shares, matching the teacher's stencil_pipeline.go.
const stencilFormat = gputypes.TextureFormatDepth24PlusStencil8

// colorFormat is the color attachment format the solid and textured
// programs render into.
const colorFormat = gputypes.TextureFormatBGRA8Unorm

func stencilOp(op raster.StencilOp) hal.StencilOperation {
	switch op {
	case raster.OpZero:
		return hal.StencilOperationZero
	case raster.OpReplace:
		return hal.StencilOperationReplace
	case raster.OpInvert:
		return hal.StencilOperationInvert
	case raster.OpIncrementWrap:
		return hal.StencilOperationIncrementWrap
	case raster.OpDecrementWrap:
		return hal.StencilOperationDecrementWrap
	default:
		return hal.StencilOperationKeep
	}
}

func compareFunc(f raster.CompareFunc) gputypes.CompareFunction {
	switch f {
	case raster.CompareEqual:
		return gputypes.CompareFunctionEqual
	case raster.CompareNotEqual:
		return gputypes.CompareFunctionNotEqual
	default:
		return gputypes.CompareFunctionAlways
	}
}

// depthStencilForFill builds the DepthStencilState for a fill-raster or
// stroke-raster write pass from a raster.FillPassConfig (§4.G). Non-zero
// fill and non-zero clip-mask passes configure asymmetric front/back ops
// so winding accumulates; the other passes use the same op on both faces.
func depthStencilForFill(cfg raster.FillPassConfig) *hal.DepthStencilState {
	cmp := compareFunc(cfg.CompareFunc)
	return &hal.DepthStencilState{
		Format:            stencilFormat,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront: hal.StencilFaceState{
			Compare: cmp, FailOp: hal.StencilOperationKeep, DepthFailOp: hal.StencilOperationKeep,
			PassOp: stencilOp(cfg.FrontOp),
		},
		StencilBack: hal.StencilFaceState{
			Compare: cmp, FailOp: hal.StencilOperationKeep, DepthFailOp: hal.StencilOperationKeep,
			PassOp: stencilOp(cfg.BackOp),
		},
		StencilReadMask:  cfg.CompareMask,
		StencilWriteMask: cfg.WriteMask,
	}
}

func depthStencilForCover(cfg raster.CoverPassConfig) *hal.DepthStencilState {
	face := hal.StencilFaceState{
		Compare: compareFunc(cfg.CompareFunc), FailOp: hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep, PassOp: stencilOp(cfg.PassOp),
	}
	return &hal.DepthStencilState{
		Format:            stencilFormat,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront:      face,
		StencilBack:       face,
		StencilReadMask:   cfg.CompareMask,
		StencilWriteMask:  cfg.WriteMask,
	}
}

func cullMode(cull bool) gputypes.CullMode {
	if cull {
		return gputypes.CullModeBack
	}
	return gputypes.CullModeNone
}

// pipelineSet holds every render pipeline the backend can select between:
// raster and cover pipelines are both built lazily, one per distinct
// stencil configuration requested so far, and cached.
type pipelineSet struct {
	device hal.Device

	solidShader   hal.ShaderModule
	texturedShader hal.ShaderModule

	uniformLayoutSolid    hal.BindGroupLayout
	uniformLayoutTextured hal.BindGroupLayout
	pipeLayoutSolid       hal.PipelineLayout
	pipeLayoutTextured    hal.PipelineLayout

	rasterPipelines map[rasterKey]hal.RenderPipeline
	coverPipelines  map[coverKey]hal.RenderPipeline
}

type rasterKey struct {
	frontOp, backOp raster.StencilOp
	cull            bool
	cmp             raster.CompareFunc
	mask            uint8
	writeMask       uint8
}

type coverKey struct {
	textured bool
	cfg      raster.CoverPassConfig
}

func newPipelineSet(device hal.Device) (*pipelineSet, error) {
	solidShader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "stencilvg_solid", Source: hal.ShaderSource{WGSL: solidShaderSource},
	})
	if err != nil {
		return nil, fmt.Errorf("compile solid.wgsl: %w", err)
	}
	texturedShader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "stencilvg_ramp", Source: hal.ShaderSource{WGSL: rampShaderSource},
	})
	if err != nil {
		return nil, fmt.Errorf("compile ramp.wgsl: %w", err)
	}

	solidLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "stencilvg_solid_uniforms",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create solid bind group layout: %w", err)
	}
	texturedLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "stencilvg_ramp_uniforms",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageVertex,
				Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageFragment,
				Sampler: &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}},
			{Binding: 2, Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType: gputypes.TextureSampleTypeFloat, ViewDimension: gputypes.TextureViewDimension1D,
				}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create textured bind group layout: %w", err)
	}

	solidPipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "stencilvg_solid_layout", BindGroupLayouts: []hal.BindGroupLayout{solidLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("create solid pipeline layout: %w", err)
	}
	texturedPipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "stencilvg_textured_layout", BindGroupLayouts: []hal.BindGroupLayout{texturedLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("create textured pipeline layout: %w", err)
	}

	return &pipelineSet{
		device: device,

		solidShader: solidShader, texturedShader: texturedShader,
		uniformLayoutSolid: solidLayout, uniformLayoutTextured: texturedLayout,
		pipeLayoutSolid: solidPipeLayout, pipeLayoutTextured: texturedPipeLayout,

		rasterPipelines: make(map[rasterKey]hal.RenderPipeline),
		coverPipelines:  make(map[coverKey]hal.RenderPipeline),
	}, nil
}

// rasterPipeline returns (building and caching if needed) the
// color-write-disabled pipeline for a fill or stroke raster pass.
func (ps *pipelineSet) rasterPipeline(cfg raster.FillPassConfig) (hal.RenderPipeline, error) {
	key := rasterKey{cfg.FrontOp, cfg.BackOp, cfg.CullBackFace, cfg.CompareFunc, cfg.CompareMask, cfg.WriteMask}
	if p, ok := ps.rasterPipelines[key]; ok {
		return p, nil
	}
	p, err := ps.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "stencilvg_raster",
		Layout: ps.pipeLayoutSolid,
		Vertex: hal.VertexState{
			Module: ps.solidShader, EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{solidVertexLayout()},
		},
		Fragment: &hal.FragmentState{
			Module: ps.solidShader, EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{Format: colorFormat, WriteMask: gputypes.ColorWriteMaskNone}},
		},
		DepthStencil: depthStencilForFill(cfg),
		Primitive:    gputypes.PrimitiveState{Topology: gputypes.PrimitiveTopologyTriangleList, CullMode: cullMode(cfg.CullBackFace)},
		Multisample:  gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return nil, fmt.Errorf("create raster pipeline: %w", err)
	}
	ps.rasterPipelines[key] = p
	return p, nil
}

// coverPipeline returns the color-write-enabled pipeline for a cover
// pass, solid or textured.
func (ps *pipelineSet) coverPipeline(cfg raster.CoverPassConfig, textured bool) (hal.RenderPipeline, error) {
	key := coverKey{textured, cfg}
	if p, ok := ps.coverPipelines[key]; ok {
		return p, nil
	}
	shader, layout, vertexLayout := ps.solidShader, ps.pipeLayoutSolid, solidVertexLayout()
	if textured {
		shader, layout, vertexLayout = ps.texturedShader, ps.pipeLayoutTextured, texturedVertexLayout()
	}
	p, err := ps.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "stencilvg_cover",
		Layout: layout,
		Vertex: hal.VertexState{
			Module: shader, EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{vertexLayout},
		},
		Fragment: &hal.FragmentState{
			Module: shader, EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format: colorFormat, Blend: blendPremultipliedState(), WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		DepthStencil: depthStencilForCover(cfg),
		Primitive:    gputypes.PrimitiveState{Topology: gputypes.PrimitiveTopologyTriangleFan, CullMode: gputypes.CullModeNone},
		Multisample:  gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return nil, fmt.Errorf("create cover pipeline: %w", err)
	}
	ps.coverPipelines[key] = p
	return p, nil
}

func blendPremultipliedState() *gputypes.BlendState {
	b := gputypes.BlendStatePremultiplied()
	return &b
}

func solidVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: vertexStrideSolid,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		},
	}
}

func texturedVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: vertexStrideTextured,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32, Offset: 8, ShaderLocation: 1},
		},
	}
}

func (ps *pipelineSet) destroy() {
	for _, p := range ps.rasterPipelines {
		ps.device.DestroyRenderPipeline(p)
	}
	for _, p := range ps.coverPipelines {
		ps.device.DestroyRenderPipeline(p)
	}
	ps.device.DestroyPipelineLayout(ps.pipeLayoutSolid)
	ps.device.DestroyPipelineLayout(ps.pipeLayoutTextured)
	ps.device.DestroyBindGroupLayout(ps.uniformLayoutSolid)
	ps.device.DestroyBindGroupLayout(ps.uniformLayoutTextured)
	ps.device.DestroyShaderModule(ps.solidShader)
	ps.device.DestroyShaderModule(ps.texturedShader)
}
