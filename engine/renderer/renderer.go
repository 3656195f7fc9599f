package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-raymarch/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/renderer/uniform"
	"github.com/cogentcore/webgpu/wgpu"
)

// FrameTarget is the part of a DeviceContext the Renderer draws through.
type FrameTarget interface {
	Device() *wgpu.Device
	Queue() *wgpu.Queue
	Format() wgpu.TextureFormat
	Configure(width, height uint32) SurfaceConfig
	CurrentTargetView() (*wgpu.TextureView, error)
	Present()
	DiscardFrame()
}

// DrawPipeline is the part of a pipeline.Pipeline the Renderer binds each frame.
type DrawPipeline interface {
	PipelineKey() string
	Built() bool
	Pipeline() *wgpu.RenderPipeline
}

// BindGroupSource supplies a bind group and the slot it is bound to, such as a uniform.Channel.
type BindGroupSource interface {
	Binding() uniform.BindingSpec
	BindGroup() *wgpu.BindGroup
}

var _ DrawPipeline = pipeline.Pipeline(nil)
var _ BindGroupSource = uniform.Channel(nil)
var _ FrameTarget = DeviceContext(nil)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	target     FrameTarget
	pipeline   DrawPipeline
	bindGroups []BindGroupSource

	clearColor  wgpu.Color
	vertexCount uint32
	frames      uint64
}

// Renderer encodes and submits the single full-screen draw of a frame.
//
// Each RenderFrame acquires the drawable view, clears it, binds the pipeline and every bind group
// source at its group index, draws the full-screen quad and presents. Uniform uploads are not part
// of the frame: whatever bytes sit in the bound buffers at submission time are what the frame renders.
type Renderer interface {
	// RenderFrame records and submits one frame and presents it.
	//
	// Returns:
	//   - error: the acquisition error (a *common.SurfaceLostError when the surface is gone) or an encoding error
	RenderFrame() error

	// Configure applies a new physical surface configuration. Must not be called while a frame is in flight.
	//
	// Parameters:
	//   - cfg: the configuration to apply
	//
	// Returns:
	//   - SurfaceConfig: the configuration actually applied
	Configure(cfg SurfaceConfig) SurfaceConfig

	// Format returns the texture format of the presentation surface.
	//
	// Returns:
	//   - wgpu.TextureFormat: the surface format
	Format() wgpu.TextureFormat

	// ClearColor returns the colour the frame is cleared to before drawing.
	//
	// Returns:
	//   - wgpu.Color: the clear colour
	ClearColor() wgpu.Color

	// Frames returns the number of frames submitted so far.
	//
	// Returns:
	//   - uint64: the submitted frame count
	Frames() uint64
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing the given pipeline into the target.
// The default clear colour is opaque black and the draw covers the full-screen quad.
//
// Parameters:
//   - target: the frame target, normally a DeviceContext
//   - p: the render pipeline to bind; it must be built before the first frame
//   - opts: functional options such as WithBindGroup
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(target FrameTarget, p DrawPipeline, opts ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		target:      target,
		pipeline:    p,
		clearColor:  wgpu.Color{A: 1},
		vertexCount: pipeline.FullScreenVertexCount,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *renderer) RenderFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pipeline == nil || !r.pipeline.Built() {
		return fmt.Errorf("render pipeline not built")
	}

	view, err := r.target.CurrentTargetView()
	if err != nil {
		return err
	}

	encoder, err := r.target.Device().CreateCommandEncoder(nil)
	if err != nil {
		r.target.DiscardFrame()
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	descriptor := r.renderPassDescriptor(view)
	pass := encoder.BeginRenderPass(&descriptor)
	pass.SetPipeline(r.pipeline.Pipeline())
	for _, src := range r.bindGroups {
		pass.SetBindGroup(src.Binding().Group, src.BindGroup(), nil)
	}
	pass.Draw(r.vertexCount, 1, 0, 0)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		r.target.DiscardFrame()
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}

	r.target.Queue().Submit(commandBuffer)

	commandBuffer.Release()
	encoder.Release()

	r.target.Present()
	r.frames++
	return nil
}

// renderPassDescriptor describes the single colour pass of a frame: cleared to the clear colour, stored, no depth.
func (r *renderer) renderPassDescriptor(view *wgpu.TextureView) wgpu.RenderPassDescriptor {
	return wgpu.RenderPassDescriptor{
		Label: "Raymarch Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clearColor,
			},
		},
	}
}

func (r *renderer) Configure(cfg SurfaceConfig) SurfaceConfig {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.target.Configure(cfg.Width, cfg.Height)
}

func (r *renderer) Format() wgpu.TextureFormat {
	return r.target.Format()
}

func (r *renderer) ClearColor() wgpu.Color {
	return r.clearColor
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.frames
}
