package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithBindGroup registers a bind group source that is bound at its group index every frame.
// Sources are bound in registration order.
//
// Parameters:
//   - src: the bind group source, typically a uniform.Channel
//
// Returns:
//   - RendererBuilderOption: a function that applies the bind group option to a renderer
func WithBindGroup(src BindGroupSource) RendererBuilderOption {
	return func(r *renderer) {
		if src != nil {
			r.bindGroups = append(r.bindGroups, src)
		}
	}
}

// WithClearColor sets the colour the drawable is cleared to before the draw.
//
// Parameters:
//   - c: the clear colour (defaults to opaque black)
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear colour option to a renderer
func WithClearColor(c wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithVertexCount overrides the number of vertices drawn per frame.
//
// Parameters:
//   - count: the vertex count, ignored when zero
//
// Returns:
//   - RendererBuilderOption: a function that applies the vertex count option to a renderer
func WithVertexCount(count uint32) RendererBuilderOption {
	return func(r *renderer) {
		if count > 0 {
			r.vertexCount = count
		}
	}
}
