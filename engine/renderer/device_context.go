package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrFrameInFlight is returned when a drawable view is requested while the previous one has not been presented.
var ErrFrameInFlight = errors.New("previous frame surface not yet presented")

// ErrSurfaceNotConfigured is returned when a drawable view is requested before the surface was configured.
var ErrSurfaceNotConfigured = errors.New("surface not configured")

// deviceContext is the implementation of the DeviceContext interface.
type deviceContext struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	format wgpu.TextureFormat
	config SurfaceConfig
	// base carries the size-independent surface settings resolved from the capabilities.
	base wgpu.SurfaceConfiguration

	presentMode          PresentMode
	forceFallbackAdapter bool
	deviceLabel          string

	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

// DeviceContext owns the GPU handles bound to one presentation surface.
//
// It acquires the adapter, device and queue once, configures the surface for the current
// physical size and hands out exactly one drawable view per frame. A second view cannot be
// requested until the current one is presented or discarded.
type DeviceContext interface {
	// Device returns the logical GPU device.
	//
	// Returns:
	//   - *wgpu.Device: the device
	Device() *wgpu.Device

	// Queue returns the submission queue of the device.
	//
	// Returns:
	//   - *wgpu.Queue: the queue
	Queue() *wgpu.Queue

	// Adapter returns the adapter the device was requested from.
	//
	// Returns:
	//   - *wgpu.Adapter: the adapter
	Adapter() *wgpu.Adapter

	// Surface returns the presentation surface.
	//
	// Returns:
	//   - *wgpu.Surface: the surface
	Surface() *wgpu.Surface

	// Format returns the preferred surface format, the first format reported by the surface capabilities.
	//
	// Returns:
	//   - wgpu.TextureFormat: the surface format
	Format() wgpu.TextureFormat

	// PresentMode returns the present mode used when configuring the surface.
	//
	// Returns:
	//   - PresentMode: the present mode
	PresentMode() PresentMode

	// Config returns the most recently applied surface configuration.
	//
	// Returns:
	//   - SurfaceConfig: the configuration, empty before the first Configure
	Config() SurfaceConfig

	// Configure (re)configures the surface for the given physical size. Zero sizes are clamped to 1.
	// Calling it repeatedly with the same size is harmless.
	//
	// Parameters:
	//   - width: the physical width in pixels
	//   - height: the physical height in pixels
	//
	// Returns:
	//   - SurfaceConfig: the applied configuration
	Configure(width, height uint32) SurfaceConfig

	// CurrentTargetView acquires the drawable texture for this frame and returns a view of it.
	// Acquisition failures are reported as *common.SurfaceLostError.
	//
	// Returns:
	//   - *wgpu.TextureView: the view to render into
	//   - error: ErrFrameInFlight, ErrSurfaceNotConfigured or a *common.SurfaceLostError
	CurrentTargetView() (*wgpu.TextureView, error)

	// Present presents the acquired drawable and releases the frame's view. No-op when nothing was acquired.
	Present()

	// DiscardFrame releases the acquired drawable without presenting it. No-op when nothing was acquired.
	DiscardFrame()

	// Release frees every GPU handle held by the context.
	Release()
}

var _ DeviceContext = &deviceContext{}

// NewDeviceContext acquires an instance, a surface for the descriptor, an adapter compatible with
// that surface, a device and its queue. A missing adapter, device or surface format is reported as
// *common.UnsupportedError; callers treat that as permanent and do not retry.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor of the host window
//   - opts: functional options applied before acquisition
//
// Returns:
//   - DeviceContext: the acquired context
//   - error: a *common.UnsupportedError when WebGPU cannot be used on this device
func NewDeviceContext(surfaceDescriptor *wgpu.SurfaceDescriptor, opts ...DeviceContextBuilderOption) (ctx DeviceContext, err error) {
	d := &deviceContext{
		mu:          &sync.Mutex{},
		presentMode: PresentModeVSync,
		deviceLabel: "Main Device",
	}
	for _, opt := range opts {
		opt(d)
	}

	defer func() {
		if err != nil {
			d.Release()
			ctx = nil
		}
	}()

	if surfaceDescriptor == nil {
		return nil, &common.UnsupportedError{Stage: "surface", Err: errors.New("nil surface descriptor")}
	}

	d.instance = wgpu.CreateInstance(nil)
	if d.instance == nil {
		return nil, &common.UnsupportedError{Stage: "instance"}
	}
	d.surface = d.instance.CreateSurface(surfaceDescriptor)
	if d.surface == nil {
		return nil, &common.UnsupportedError{Stage: "surface"}
	}

	d.adapter, err = d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: d.forceFallbackAdapter,
		CompatibleSurface:    d.surface,
	})
	if err != nil || d.adapter == nil {
		return nil, &common.UnsupportedError{Stage: "adapter", Err: err}
	}

	d.device, err = d.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: d.deviceLabel,
	})
	if err != nil || d.device == nil {
		return nil, &common.UnsupportedError{Stage: "device", Err: err}
	}
	d.queue = d.device.GetQueue()

	capabilities := d.surface.GetCapabilities(d.adapter)
	if len(capabilities.Formats) == 0 {
		return nil, &common.UnsupportedError{Stage: "surface format"}
	}
	if len(capabilities.AlphaModes) == 0 {
		return nil, &common.UnsupportedError{Stage: "surface alpha mode"}
	}
	d.format = capabilities.Formats[0]
	d.base = wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      d.format,
		PresentMode: wgpuPresentMode(d.presentMode),
		AlphaMode:   capabilities.AlphaModes[0],
	}

	return d, nil
}

func (d *deviceContext) Device() *wgpu.Device {
	return d.device
}

func (d *deviceContext) Queue() *wgpu.Queue {
	return d.queue
}

func (d *deviceContext) Adapter() *wgpu.Adapter {
	return d.adapter
}

func (d *deviceContext) Surface() *wgpu.Surface {
	return d.surface
}

func (d *deviceContext) Format() wgpu.TextureFormat {
	return d.format
}

func (d *deviceContext) PresentMode() PresentMode {
	return d.presentMode
}

func (d *deviceContext) Config() SurfaceConfig {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.config
}

func (d *deviceContext) Configure(width, height uint32) SurfaceConfig {
	d.mu.Lock()
	defer d.mu.Unlock()

	cfg := SurfaceConfig{Format: d.format, Width: max(width, 1), Height: max(height, 1)}
	d.surface.Configure(d.adapter, d.device, d.surfaceConfiguration(cfg))
	d.config = cfg
	return cfg
}

// surfaceConfiguration builds the native configuration for the given physical size.
func (d *deviceContext) surfaceConfiguration(cfg SurfaceConfig) *wgpu.SurfaceConfiguration {
	native := d.base
	native.Format = cfg.Format
	native.Width = cfg.Width
	native.Height = cfg.Height
	return &native
}

func (d *deviceContext) CurrentTargetView() (*wgpu.TextureView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Acquiring a second surface image before presenting the first is a
	// validation error in wgpu-native.
	if d.frameSurface != nil {
		return nil, ErrFrameInFlight
	}
	if d.config.Empty() {
		return nil, ErrSurfaceNotConfigured
	}

	surfaceTexture, err := d.surface.GetCurrentTexture()
	if err != nil {
		return nil, &common.SurfaceLostError{Err: err}
	}
	if surfaceTexture == nil {
		return nil, &common.SurfaceLostError{}
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return nil, &common.SurfaceLostError{Err: fmt.Errorf("failed to create surface view: %w", err)}
	}

	d.frameSurface = surfaceTexture
	d.frameView = view
	return view, nil
}

func (d *deviceContext) Present() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frameSurface == nil {
		return
	}

	d.surface.Present()
	d.releaseFrame()
}

func (d *deviceContext) DiscardFrame() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.releaseFrame()
}

// releaseFrame drops the view and texture of the in-flight frame. Caller holds mu.
func (d *deviceContext) releaseFrame() {
	if d.frameView != nil {
		d.frameView.Release()
		d.frameView = nil
	}
	if d.frameSurface != nil {
		d.frameSurface.Release()
		d.frameSurface = nil
	}
}

func (d *deviceContext) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.releaseFrame()
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.surface != nil {
		d.surface.Release()
		d.surface = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
	d.config = SurfaceConfig{}
}
