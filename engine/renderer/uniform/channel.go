package uniform

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// BindingSpec identifies where the uniform buffer is bound in the shader.
type BindingSpec struct {
	Group   uint32
	Binding uint32
}

// queueWriter is the part of *wgpu.Queue the channel needs for per-frame uploads.
type queueWriter interface {
	WriteBuffer(buffer *wgpu.Buffer, bufferOffset uint64, data []byte) error
}

// channel is the implementation of the Channel interface.
type channel struct {
	mu *sync.Mutex

	label string
	spec  BindingSpec
	size  int

	queue queueWriter

	// layoutDescriptor overrides the generated layout, typically with the one parsed from the shader
	layoutDescriptor *wgpu.BindGroupLayoutDescriptor

	// GPU allocated resources, released by Release.
	buffer          *wgpu.Buffer
	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout

	writes uint64
}

// Channel owns the single uniform buffer, its bind group layout and its bind group, and streams
// full-buffer replacements to the GPU queue. The buffer size is fixed at creation.
//
// Ordering: a write is queued and becomes visible to work submitted after it. The render loop
// submits frame N before writing frame N+1's bytes, so each frame renders with the values
// written at the end of the previous frame (or the initial bytes for the first frame).
type Channel interface {
	// Size returns the fixed byte size of the uniform buffer.
	//
	// Returns:
	//   - int: the buffer size in bytes
	Size() int

	// Binding returns where the buffer is bound in the shader.
	//
	// Returns:
	//   - BindingSpec: the group and binding index
	Binding() BindingSpec

	// Label returns the debug label used for the GPU objects.
	Label() string

	// Write replaces the entire buffer contents. The write is queued, not awaited.
	//
	// Parameters:
	//   - b: the new contents, exactly Size() bytes
	//
	// Returns:
	//   - error: *common.SizeMismatchError if len(b) != Size(), or the wrapped queue error
	Write(b []byte) error

	// Writes returns the number of successful writes since creation.
	//
	// Returns:
	//   - uint64: the write count
	Writes() uint64

	// Buffer returns the GPU uniform buffer.
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil after Release
	Buffer() *wgpu.Buffer

	// BindGroup returns the bind group to set at Binding().Group during the render pass.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil after Release
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the pipeline layout must be created with.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil after Release
	BindGroupLayout() *wgpu.BindGroupLayout

	// Release frees the buffer, bind group and bind group layout.
	Release()
}

var _ Channel = &channel{}

// NewChannel creates the uniform buffer initialised with the given bytes, a bind group layout
// describing one uniform buffer visible to the vertex and fragment stages, and the bind group
// binding the buffer at spec.
//
// Parameters:
//   - device: the device that owns the new GPU objects
//   - queue: the queue used for subsequent writes
//   - initial: the initial buffer contents; its length fixes the buffer size
//   - spec: the group and binding index of the buffer
//   - opts: functional options to configure the channel
//
// Returns:
//   - Channel: the created channel
//   - error: an error if the layout does not match or a GPU object cannot be created
func NewChannel(device *wgpu.Device, queue *wgpu.Queue, initial []byte, spec BindingSpec, opts ...ChannelBuilderOption) (Channel, error) {
	if len(initial) == 0 {
		return nil, fmt.Errorf("uniform channel: initial contents are empty")
	}
	if device == nil || queue == nil {
		return nil, fmt.Errorf("uniform channel: device and queue are required")
	}

	c := &channel{
		mu:    &sync.Mutex{},
		label: "Uniforms",
		spec:  spec,
		size:  len(initial),
		queue: queue,
	}
	for _, opt := range opts {
		opt(c)
	}

	desc := c.layoutDescriptorFor()
	if err := checkLayout(desc, spec, c.size); err != nil {
		return nil, fmt.Errorf("uniform channel %s: %w", c.label, err)
	}

	layout, err := device.CreateBindGroupLayout(&desc)
	if err != nil {
		return nil, fmt.Errorf("uniform channel %s: failed to create bind group layout: %w", c.label, err)
	}

	buf, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    c.label + " Buffer",
		Contents: initial,
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		layout.Release()
		return nil, fmt.Errorf("uniform channel %s: failed to create buffer: %w", c.label, err)
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  c.label + " Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: spec.Binding,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		buf.Release()
		layout.Release()
		return nil, fmt.Errorf("uniform channel %s: failed to create bind group: %w", c.label, err)
	}

	c.bindGroupLayout = layout
	c.buffer = buf
	c.bindGroup = bindGroup
	return c, nil
}

func (c *channel) Size() int {
	return c.size
}

func (c *channel) Binding() BindingSpec {
	return c.spec
}

func (c *channel) Label() string {
	return c.label
}

func (c *channel) Write(b []byte) error {
	if len(b) != c.size {
		return &common.SizeMismatchError{Expected: c.size, Actual: len(b)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.queue.WriteBuffer(c.buffer, 0, b); err != nil {
		return fmt.Errorf("uniform channel %s: write failed: %w", c.label, err)
	}
	c.writes++
	return nil
}

func (c *channel) Writes() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}

func (c *channel) Buffer() *wgpu.Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer
}

func (c *channel) BindGroup() *wgpu.BindGroup {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroup
}

func (c *channel) BindGroupLayout() *wgpu.BindGroupLayout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupLayout
}

func (c *channel) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bindGroup != nil {
		c.bindGroup.Release()
		c.bindGroup = nil
	}
	if c.buffer != nil {
		c.buffer.Release()
		c.buffer = nil
	}
	if c.bindGroupLayout != nil {
		c.bindGroupLayout.Release()
		c.bindGroupLayout = nil
	}
}

// layoutDescriptorFor returns the descriptor override, or a single uniform buffer entry at the
// channel's binding sized to the buffer.
func (c *channel) layoutDescriptorFor() wgpu.BindGroupLayoutDescriptor {
	if c.layoutDescriptor != nil {
		desc := *c.layoutDescriptor
		desc.Label = c.label + " Bind Group Layout"
		return desc
	}

	entry := wgpu.BindGroupLayoutEntry{
		Binding:    c.spec.Binding,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	entry.Buffer.MinBindingSize = uint64(c.size)

	return wgpu.BindGroupLayoutDescriptor{
		Label:   c.label + " Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{entry},
	}
}

// checkLayout verifies the descriptor holds exactly one uniform buffer entry at spec.Binding
// whose minimum binding size, when declared, matches the buffer size.
func checkLayout(desc wgpu.BindGroupLayoutDescriptor, spec BindingSpec, size int) error {
	if len(desc.Entries) != 1 {
		return fmt.Errorf("layout must declare exactly one entry, got %d", len(desc.Entries))
	}
	entry := desc.Entries[0]
	if entry.Binding != spec.Binding {
		return fmt.Errorf("layout entry is bound at %d, expected %d", entry.Binding, spec.Binding)
	}
	if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
		return fmt.Errorf("binding %d is not a uniform buffer", entry.Binding)
	}
	if entry.Buffer.MinBindingSize != 0 && entry.Buffer.MinBindingSize != uint64(size) {
		return &common.SizeMismatchError{Expected: int(entry.Buffer.MinBindingSize), Actual: size}
	}
	return nil
}
