package renderer

import (
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewSurfaceConfig(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		dpr           float64
		wantW, wantH  uint32
	}{
		{"unit scale", 800, 600, 1, 800, 600},
		{"retina", 800, 600, 2, 1600, 1200},
		{"fractional rounds", 101, 33, 1.5, 152, 50},
		{"zero clamps to one", 0, 0, 1, 1, 1},
		{"negative clamps to one", -20, 10, 1, 1, 10},
		{"tiny scale clamps to one", 1, 1, 0.25, 1, 1},
		{"zero dpr treated as one", 640, 480, 0, 640, 480},
		{"nan dpr treated as one", 640, 480, math.NaN(), 640, 480},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewSurfaceConfig(wgpu.TextureFormatRGBA8Unorm, tt.width, tt.height, tt.dpr)
			assert.Equal(t, tt.wantW, cfg.Width)
			assert.Equal(t, tt.wantH, cfg.Height)
			assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, cfg.Format)
			assert.False(t, cfg.Empty())
		})
	}
}

func TestSurfaceConfigEmpty(t *testing.T) {
	assert.True(t, SurfaceConfig{}.Empty())
	assert.True(t, SurfaceConfig{Width: 10}.Empty())
	assert.False(t, SurfaceConfig{Width: 10, Height: 1}.Empty())
}
