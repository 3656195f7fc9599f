package renderer

import (
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// LogLevelEnv names the environment variable read at start-up to set the wgpu-native log level.
const LogLevelEnv = "WGPU_LOG_LEVEL"

func init() {
	if level, ok := parseLogLevel(os.Getenv(LogLevelEnv)); ok {
		wgpu.SetLogLevel(level)
	}
}

// parseLogLevel maps a case-insensitive level name onto the wgpu-native log level.
// Unknown or empty names leave the native default untouched.
func parseLogLevel(name string) (wgpu.LogLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "OFF":
		return wgpu.LogLevelOff, true
	case "ERROR":
		return wgpu.LogLevelError, true
	case "WARN":
		return wgpu.LogLevelWarn, true
	case "INFO":
		return wgpu.LogLevelInfo, true
	case "DEBUG":
		return wgpu.LogLevelDebug, true
	case "TRACE":
		return wgpu.LogLevelTrace, true
	}
	return wgpu.LogLevelOff, false
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, pacing frames
	// to the display cadence. This is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// String returns the configuration name of the present mode.
func (m PresentMode) String() string {
	switch m {
	case PresentModeUncapped:
		return "uncapped"
	default:
		return "vsync"
	}
}

// ParsePresentMode resolves a configuration name ("vsync" or "uncapped") to a PresentMode.
//
// Parameters:
//   - name: the case-insensitive mode name
//
// Returns:
//   - PresentMode: the matching mode, PresentModeVSync when not recognised
//   - bool: whether the name was recognised
func ParsePresentMode(name string) (PresentMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vsync", "fifo":
		return PresentModeVSync, true
	case "uncapped", "immediate":
		return PresentModeUncapped, true
	}
	return PresentModeVSync, false
}

// wgpuPresentMode maps a PresentMode onto the surface present mode used when configuring.
func wgpuPresentMode(mode PresentMode) wgpu.PresentMode {
	switch mode {
	case PresentModeUncapped:
		return wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		return wgpu.PresentModeFifo
	}
}
