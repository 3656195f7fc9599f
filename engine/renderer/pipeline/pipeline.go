package pipeline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-raymarch/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// FullScreenVertexCount is the number of vertices drawn per frame: two triangles covering the surface,
// generated in the vertex stage from the vertex index alone.
const FullScreenVertexCount = 6

// ErrPipelineBuilt is returned by Build when the pipeline already holds a GPU render pipeline.
var ErrPipelineBuilt = errors.New("pipeline already built")

// pipeline is the implementation of the Pipeline interface.
// It holds the underlying WebGPU render pipeline and the fixed-function state used to create it.
type pipeline struct {
	mu *sync.Mutex

	// pipelineKey is the unique identifier for this pipeline, used as the label of GPU objects
	pipelineKey string

	// shader provides both the vertex and fragment entry points
	shader shader.Shader

	renderPipeline *wgpu.RenderPipeline
	pipelineLayout *wgpu.PipelineLayout
	module         *wgpu.ShaderModule
	built          bool

	// The following properties configure the pipeline during creation and can be set with the builder options.

	label      string
	cullMode   wgpu.CullMode
	blendState *wgpu.BlendState
}

// Pipeline defines the interface for the single render pipeline of the viewer: one shader module with
// a vertex and a fragment entry point, no vertex buffers, no depth/stencil and one colour target of the
// surface format. A pipeline is built exactly once per device.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader returns the shader the pipeline is created from.
	//
	// Returns:
	//   - shader.Shader: the pipeline's shader
	Shader() shader.Shader

	// Pipeline returns the underlying render pipeline, or nil before Build.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU render pipeline
	Pipeline() *wgpu.RenderPipeline

	// Built reports whether Build has succeeded and Release has not been called since.
	//
	// Returns:
	//   - bool: true if the pipeline holds GPU objects
	Built() bool

	// Build compiles the shader module, creates the pipeline layout from the given bind group layouts
	// and creates the render pipeline targeting the given surface format.
	//
	// Parameters:
	//   - device: the device that owns the new GPU objects
	//   - format: the surface texture format of the single colour target
	//   - layouts: bind group layouts in group order
	//
	// Returns:
	//   - error: ErrPipelineBuilt if already built, or the wrapped device error
	Build(device *wgpu.Device, format wgpu.TextureFormat, layouts []*wgpu.BindGroupLayout) error

	// Release frees the GPU objects and returns the pipeline to the unbuilt state, so it can be built
	// again after a device is re-acquired.
	Release()

	// Label returns the prefix used for the labels of the pipeline's GPU objects.
	// Defaults to the pipeline key.
	Label() string

	// BlendEnabled returns whether the colour target blends with the cleared surface.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode
}

var _ Pipeline = &pipeline{}

// NewPipeline creates an unbuilt Pipeline for the given shader.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - s: the shader providing the vertex and fragment entry points
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, s shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		mu:          &sync.Mutex{},
		pipelineKey: pipelineKey,
		label:       pipelineKey,
		shader:      s,
		cullMode:    wgpu.CullModeNone,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderPipeline
}

func (p *pipeline) Built() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.built
}

func (p *pipeline) Build(device *wgpu.Device, format wgpu.TextureFormat, layouts []*wgpu.BindGroupLayout) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.built {
		return ErrPipelineBuilt
	}
	if p.shader == nil {
		return fmt.Errorf("pipeline %s: no shader set", p.pipelineKey)
	}
	if format == wgpu.TextureFormatUndefined {
		return fmt.Errorf("pipeline %s: surface format is undefined", p.pipelineKey)
	}
	if device == nil {
		return fmt.Errorf("pipeline %s: no device", p.pipelineKey)
	}

	module, err := device.CreateShaderModule(p.shader.Module())
	if err != nil {
		return fmt.Errorf("pipeline %s: failed to create shader module: %w", p.pipelineKey, err)
	}

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.label + " Layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		module.Release()
		return fmt.Errorf("pipeline %s: failed to create pipeline layout: %w", p.pipelineKey, err)
	}

	desc := p.renderPipelineDescriptor(module, layout, format)
	created, err := device.CreateRenderPipeline(&desc)
	if err != nil {
		layout.Release()
		module.Release()
		return fmt.Errorf("pipeline %s: failed to create render pipeline: %w", p.pipelineKey, err)
	}

	p.module = module
	p.pipelineLayout = layout
	p.renderPipeline = created
	p.built = true
	return nil
}

func (p *pipeline) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
	if p.pipelineLayout != nil {
		p.pipelineLayout.Release()
		p.pipelineLayout = nil
	}
	if p.module != nil {
		p.module.Release()
		p.module = nil
	}
	p.built = false
}

// renderPipelineDescriptor assembles the fixed render pipeline state: vertex entry without
// vertex buffers, a counter-clockwise triangle list, one colour target of the surface format,
// no depth/stencil and a single sample.
func (p *pipeline) renderPipelineDescriptor(module *wgpu.ShaderModule, layout *wgpu.PipelineLayout, format wgpu.TextureFormat) wgpu.RenderPipelineDescriptor {
	target := wgpu.ColorTargetState{
		Format:    format,
		Blend:     p.blendState,
		WriteMask: wgpu.ColorWriteMaskAll,
	}

	return wgpu.RenderPipelineDescriptor{
		Label:  p.label + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.shader.VertexEntryPoint(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.shader.FragmentEntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
}

func (p *pipeline) Label() string {
	return p.label
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendState != nil
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}
