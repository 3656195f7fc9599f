package pipeline

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option for configuring a Pipeline before it is built.
// Options only affect the state captured by the next Build call.
type PipelineBuilderOption func(*pipeline)

// AlphaBlend is the straight-alpha blend state enabled by WithAlphaBlending.
var AlphaBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// WithLabel sets the prefix of the debug labels given to the shader module, layout and render pipeline.
// An empty label keeps the pipeline key.
//
// Parameters:
//   - label: the label prefix
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithLabel(label string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.label = common.Coalesce(label, p.label)
	}
}

// WithAlphaBlending blends the raymarched colour over the clear colour using the fragment alpha.
// The default writes the fragment colour unblended; the raymarch shader always outputs alpha 1.
//
// Parameters:
//   - enabled: whether to blend with AlphaBlend
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithAlphaBlending(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		if !enabled {
			p.blendState = nil
			return
		}
		blend := AlphaBlend
		p.blendState = &blend
	}
}

// WithCullMode sets the face culling of the full-screen triangles. Defaults to wgpu.CullModeNone.
// Both triangles are wound counter-clockwise, so CullModeBack still draws the full surface.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// ParseCullMode maps "none", "front" or "back" (case-insensitive) to a cull mode.
//
// Parameters:
//   - name: the cull mode name
//
// Returns:
//   - wgpu.CullMode: the cull mode, CullModeNone when unrecognised
//   - bool: true if name was recognised
func ParseCullMode(name string) (wgpu.CullMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return wgpu.CullModeNone, true
	case "front":
		return wgpu.CullModeFront, true
	case "back":
		return wgpu.CullModeBack, true
	}
	return wgpu.CullModeNone, false
}
