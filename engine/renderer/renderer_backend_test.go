package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestParsePresentMode(t *testing.T) {
	tests := []struct {
		in   string
		want PresentMode
		ok   bool
	}{
		{"vsync", PresentModeVSync, true},
		{"FIFO", PresentModeVSync, true},
		{" uncapped ", PresentModeUncapped, true},
		{"Immediate", PresentModeUncapped, true},
		{"mailbox", PresentModeVSync, false},
		{"", PresentModeVSync, false},
	}

	for _, tt := range tests {
		got, ok := ParsePresentMode(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestPresentModeMapping(t *testing.T) {
	assert.Equal(t, wgpu.PresentModeFifo, wgpuPresentMode(PresentModeVSync))
	assert.Equal(t, wgpu.PresentModeImmediate, wgpuPresentMode(PresentModeUncapped))
	assert.Equal(t, wgpu.PresentModeFifo, wgpuPresentMode(PresentMode(42)))

	assert.Equal(t, "vsync", PresentModeVSync.String())
	assert.Equal(t, "uncapped", PresentModeUncapped.String())
}

func TestParseLogLevel(t *testing.T) {
	level, ok := parseLogLevel("warn")
	assert.True(t, ok)
	assert.Equal(t, wgpu.LogLevelWarn, level)

	level, ok = parseLogLevel("TRACE")
	assert.True(t, ok)
	assert.Equal(t, wgpu.LogLevelTrace, level)

	_, ok = parseLogLevel("verbose")
	assert.False(t, ok)

	_, ok = parseLogLevel("")
	assert.False(t, ok)
}
