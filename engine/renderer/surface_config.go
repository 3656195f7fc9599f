package renderer

import (
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceConfig is the physical configuration applied to the presentation surface.
type SurfaceConfig struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32
}

// NewSurfaceConfig derives the physical surface size from a logical size and device pixel ratio.
// Each physical dimension is round(logical * dpr), never smaller than 1.
// A non-positive or non-finite dpr is treated as 1.
//
// Parameters:
//   - format: the texture format the surface presents in
//   - logicalWidth: the logical width of the drawing area
//   - logicalHeight: the logical height of the drawing area
//   - dpr: the device pixel ratio (content scale) of the display
//
// Returns:
//   - SurfaceConfig: the resulting physical configuration
func NewSurfaceConfig(format wgpu.TextureFormat, logicalWidth, logicalHeight int, dpr float64) SurfaceConfig {
	if dpr <= 0 || math.IsNaN(dpr) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	return SurfaceConfig{
		Format: format,
		Width:  physicalExtent(logicalWidth, dpr),
		Height: physicalExtent(logicalHeight, dpr),
	}
}

func physicalExtent(logical int, dpr float64) uint32 {
	v := math.Round(float64(logical) * dpr)
	if v < 1 {
		return 1
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

// Empty reports whether the configuration has not been populated yet.
func (c SurfaceConfig) Empty() bool {
	return c.Width == 0 || c.Height == 0
}
