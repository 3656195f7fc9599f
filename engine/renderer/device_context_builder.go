package renderer

import "github.com/Carmen-Shannon/oxy-raymarch/common"

// DeviceContextBuilderOption is a functional option applied to a device context during construction via NewDeviceContext.
type DeviceContextBuilderOption func(*deviceContext)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - DeviceContextBuilderOption: a function that applies the present mode option to a device context
func WithPresentMode(mode PresentMode) DeviceContextBuilderOption {
	return func(d *deviceContext) {
		d.presentMode = mode
	}
}

// WithForceFallbackAdapter forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - DeviceContextBuilderOption: a function that applies the fallback adapter option to a device context
func WithForceFallbackAdapter(force bool) DeviceContextBuilderOption {
	return func(d *deviceContext) {
		d.forceFallbackAdapter = force
	}
}

// WithDeviceLabel sets the debug label of the requested device.
//
// Parameters:
//   - label: the device label, ignored when empty
//
// Returns:
//   - DeviceContextBuilderOption: a function that applies the label option to a device context
func WithDeviceLabel(label string) DeviceContextBuilderOption {
	return func(d *deviceContext) {
		d.deviceLabel = common.Coalesce(label, d.deviceLabel)
	}
}
