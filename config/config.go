package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/renderer"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/scene"
	"github.com/pelletier/go-toml/v2"
)

// PathEnv names the environment variable holding the path of the TOML configuration file.
const PathEnv = "OXY_RAYMARCH_CONFIG"

// Config is the complete viewer configuration as read from TOML.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Scene    SceneConfig    `toml:"scene"`
	Input    InputConfig    `toml:"input"`
	Log      LogConfig      `toml:"log"`
	Profiler ProfilerConfig `toml:"profiler"`
}

// WindowConfig describes the host window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RendererConfig selects how the GPU device and surface are acquired and how the raymarch pass is drawn.
type RendererConfig struct {
	// PresentMode is "vsync" or "uncapped".
	PresentMode          string `toml:"present_mode"`
	ForceFallbackAdapter bool   `toml:"force_fallback_adapter"`
	// RefreshRate overrides the display refresh rate in Hz; 0 uses the monitor's rate.
	RefreshRate int `toml:"refresh_rate"`
	// AlphaBlending blends the raymarched colour over the clear colour.
	AlphaBlending bool `toml:"alpha_blending"`
	// CullMode is "none", "front" or "back".
	CullMode string `toml:"cull_mode"`
}

// SceneConfig holds the initial orbit and shape parameters.
// Only the shape parameters are re-applied on hot reload; the camera is never moved.
type SceneConfig struct {
	Azimuth     float32 `toml:"azimuth"`
	Polar       float32 `toml:"polar"`
	Distance    float32 `toml:"distance"`
	ShapeA      string  `toml:"shape_a"`
	ShapeB      string  `toml:"shape_b"`
	Operation   string  `toml:"operation"`
	Speed       float32 `toml:"speed"`
	SmoothValue float32 `toml:"smooth_value"`
}

// InputConfig tunes pointer and wheel handling.
type InputConfig struct {
	DragSensitivity  float32 `toml:"drag_sensitivity"`
	WheelSensitivity float32 `toml:"wheel_sensitivity"`
	WheelLinePixels  float64 `toml:"wheel_line_pixels"`
}

// LogConfig selects the structured log level: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level"`
}

// ProfilerConfig enables periodic frame statistics.
type ProfilerConfig struct {
	Enabled    bool `toml:"enabled"`
	IntervalMS int  `toml:"interval_ms"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-raymarch",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			PresentMode: renderer.PresentModeVSync.String(),
			CullMode:    "none",
		},
		Scene: SceneConfig{
			Azimuth:     scene.DefaultAzimuth,
			Polar:       scene.DefaultPolar,
			Distance:    scene.DefaultDistance,
			ShapeA:      scene.DefaultShapeA.String(),
			ShapeB:      scene.DefaultShapeB.String(),
			Operation:   scene.DefaultOperation.String(),
			Speed:       scene.DefaultSpeed,
			SmoothValue: scene.DefaultSmoothValue,
		},
		Input: InputConfig{
			DragSensitivity:  camera.DefaultDragSensitivity,
			WheelSensitivity: camera.DefaultWheelSensitivity,
			WheelLinePixels:  100,
		},
		Log: LogConfig{
			Level: "info",
		},
		Profiler: ProfilerConfig{
			Enabled:    false,
			IntervalMS: 1000,
		},
	}
}

// Load reads the TOML file at path over Default and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the loaded configuration
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML bytes over Default and validates the result.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the decoded configuration
//   - error: a decode or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown configuration keys:\n%s", strict.String())
		}
		return Config{}, fmt.Errorf("failed to decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate rejects values the viewer cannot honour. Every problem is reported, not just the first.
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if _, ok := renderer.ParsePresentMode(c.Renderer.PresentMode); !ok {
		errs = append(errs, fmt.Errorf("unknown renderer.present_mode %q", c.Renderer.PresentMode))
	}
	if _, ok := pipeline.ParseCullMode(c.Renderer.CullMode); !ok {
		errs = append(errs, fmt.Errorf("unknown renderer.cull_mode %q", c.Renderer.CullMode))
	}
	if c.Renderer.RefreshRate < 0 {
		errs = append(errs, fmt.Errorf("renderer.refresh_rate must not be negative, got %d", c.Renderer.RefreshRate))
	}
	if _, ok := scene.ParseShape(c.Scene.ShapeA); !ok {
		errs = append(errs, fmt.Errorf("unknown scene.shape_a %q", c.Scene.ShapeA))
	}
	if _, ok := scene.ParseShape(c.Scene.ShapeB); !ok {
		errs = append(errs, fmt.Errorf("unknown scene.shape_b %q", c.Scene.ShapeB))
	}
	if _, ok := scene.ParseOperation(c.Scene.Operation); !ok {
		errs = append(errs, fmt.Errorf("unknown scene.operation %q", c.Scene.Operation))
	}
	if c.Scene.Distance < camera.MinDistance {
		errs = append(errs, fmt.Errorf("scene.distance must be at least %v, got %v", camera.MinDistance, c.Scene.Distance))
	}
	if c.Scene.Speed < 0 || c.Scene.Speed > scene.MaxSpeed {
		errs = append(errs, fmt.Errorf("scene.speed must be within [0, %v], got %v", scene.MaxSpeed, c.Scene.Speed))
	}
	if c.Scene.SmoothValue < 0 || c.Scene.SmoothValue > scene.MaxSmoothValue {
		errs = append(errs, fmt.Errorf("scene.smooth_value must be within [0, %v], got %v", scene.MaxSmoothValue, c.Scene.SmoothValue))
	}
	if c.Input.DragSensitivity <= 0 || c.Input.WheelSensitivity <= 0 || c.Input.WheelLinePixels <= 0 {
		errs = append(errs, errors.New("input sensitivities and wheel_line_pixels must be positive"))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Profiler.IntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("profiler.interval_ms must be positive, got %d", c.Profiler.IntervalMS))
	}

	return errors.Join(errs...)
}

// SlogLevel parses the configured level name.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log.level %q: %w", c.Level, err)
	}
	return level, nil
}

// Interval returns the profiler reporting interval.
func (c ProfilerConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// Mode returns the parsed present mode, VSync when unrecognised.
func (c RendererConfig) Mode() renderer.PresentMode {
	mode, _ := renderer.ParsePresentMode(c.PresentMode)
	return mode
}

// RefreshInterval returns the configured frame interval, or fallback when no rate override is set.
func (c RendererConfig) RefreshInterval(fallback time.Duration) time.Duration {
	if c.RefreshRate <= 0 {
		return fallback
	}
	return time.Second / time.Duration(c.RefreshRate)
}

// PipelineOptions converts the renderer section into options for pipeline.NewPipeline.
func (c RendererConfig) PipelineOptions() []pipeline.PipelineBuilderOption {
	cull, _ := pipeline.ParseCullMode(c.CullMode)
	return []pipeline.PipelineBuilderOption{
		pipeline.WithAlphaBlending(c.AlphaBlending),
		pipeline.WithCullMode(cull),
	}
}

// StateOptions converts the scene section into options for scene.NewState.
func (c SceneConfig) StateOptions() []scene.StateBuilderOption {
	a, b, op := c.parsed()
	return []scene.StateBuilderOption{
		scene.WithOrbit(c.Azimuth, c.Polar, c.Distance),
		scene.WithShapes(a, b),
		scene.WithOperation(op),
		scene.WithSpeed(c.Speed),
		scene.WithSmoothValue(c.SmoothValue),
	}
}

// Apply pushes the shape, operation, speed and smoothing parameters into a live state.
// The camera orbit is deliberately left alone so a reload never jumps the view.
//
// Parameters:
//   - state: the state to update
func (c SceneConfig) Apply(state scene.State) {
	a, b, op := c.parsed()
	state.SetShapes(a, b)
	state.SetOperation(op)
	state.SetSpeed(c.Speed)
	state.SetSmoothValue(c.SmoothValue)
}

func (c SceneConfig) parsed() (scene.Shape, scene.Shape, scene.Operation) {
	a, ok := scene.ParseShape(c.ShapeA)
	if !ok {
		a = scene.DefaultShapeA
	}
	b, ok := scene.ParseShape(c.ShapeB)
	if !ok {
		b = scene.DefaultShapeB
	}
	op, ok := scene.ParseOperation(c.Operation)
	if !ok {
		op = scene.DefaultOperation
	}
	return a, b, op
}

// CameraOptions converts the input section into options for camera.NewCameraController.
func (c InputConfig) CameraOptions() []camera.CameraControllerOption {
	return []camera.CameraControllerOption{
		camera.WithDragSensitivity(c.DragSensitivity),
		camera.WithWheelSensitivity(c.WheelSensitivity),
	}
}
