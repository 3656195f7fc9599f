package renderer

import (
	"sync"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeviceContext(opts ...DeviceContextBuilderOption) *deviceContext {
	d := &deviceContext{
		mu:          &sync.Mutex{},
		presentMode: PresentModeVSync,
		deviceLabel: "Main Device",
		format:      wgpu.TextureFormatRGBA8UnormSrgb,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.base = wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      d.format,
		PresentMode: wgpuPresentMode(d.presentMode),
	}
	return d
}

func TestNewDeviceContextNilDescriptor(t *testing.T) {
	ctx, err := NewDeviceContext(nil)
	require.Error(t, err)
	assert.Nil(t, ctx)
	assert.Contains(t, err.Error(), "webgpu not supported")
}

func TestDeviceContextOptions(t *testing.T) {
	d := newTestDeviceContext(
		WithPresentMode(PresentModeUncapped),
		WithForceFallbackAdapter(true),
		WithDeviceLabel(""),
	)

	assert.Equal(t, PresentModeUncapped, d.PresentMode())
	assert.True(t, d.forceFallbackAdapter)
	assert.Equal(t, "Main Device", d.deviceLabel)

	WithDeviceLabel("Viewer Device")(d)
	assert.Equal(t, "Viewer Device", d.deviceLabel)
}

func TestSurfaceConfiguration(t *testing.T) {
	d := newTestDeviceContext(WithPresentMode(PresentModeUncapped))

	native := d.surfaceConfiguration(SurfaceConfig{Format: d.Format(), Width: 1280, Height: 720})
	assert.Equal(t, uint32(1280), native.Width)
	assert.Equal(t, uint32(720), native.Height)
	assert.Equal(t, wgpu.TextureFormatRGBA8UnormSrgb, native.Format)
	assert.Equal(t, wgpu.TextureUsageRenderAttachment, native.Usage)
	assert.Equal(t, wgpu.PresentModeImmediate, native.PresentMode)

	assert.Equal(t, uint32(0), d.base.Width, "base configuration is not mutated")
}

func TestCurrentTargetViewRequiresConfiguration(t *testing.T) {
	d := newTestDeviceContext()

	view, err := d.CurrentTargetView()
	assert.Nil(t, view)
	assert.ErrorIs(t, err, ErrSurfaceNotConfigured)
}

func TestCurrentTargetViewRejectsSecondAcquire(t *testing.T) {
	d := newTestDeviceContext()
	d.config = SurfaceConfig{Format: d.format, Width: 4, Height: 4}
	d.frameSurface = &wgpu.Texture{}
	defer func() { d.frameSurface = nil }()

	view, err := d.CurrentTargetView()
	assert.Nil(t, view)
	assert.ErrorIs(t, err, ErrFrameInFlight)
}

func TestPresentWithoutFrameIsNoop(t *testing.T) {
	d := newTestDeviceContext()

	assert.NotPanics(t, func() {
		d.Present()
		d.DiscardFrame()
	})
	assert.True(t, d.Config().Empty())
}
