package uniform

import (
	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// ChannelBuilderOption is a functional option used to configure a Channel during construction.
type ChannelBuilderOption func(*channel)

// WithLabel sets the debug label used for the channel's GPU objects.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - ChannelBuilderOption: a function that sets the label
func WithLabel(label string) ChannelBuilderOption {
	return func(c *channel) {
		c.label = common.Coalesce(label, c.label)
	}
}

// WithLayoutDescriptor creates the bind group layout from the given descriptor instead of the
// generated one. The descriptor is usually the one the shader parser derived for the group, so the
// layout used by the pipeline and the layout used by the bind group are guaranteed to agree.
//
// Parameters:
//   - desc: the bind group layout descriptor for the uniform group
//
// Returns:
//   - ChannelBuilderOption: a function that sets the layout descriptor
func WithLayoutDescriptor(desc wgpu.BindGroupLayoutDescriptor) ChannelBuilderOption {
	return func(c *channel) {
		c.layoutDescriptor = &desc
	}
}
