package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/Carmen-Shannon/oxy-raymarch/config"
	"github.com/Carmen-Shannon/oxy-raymarch/engine"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/profiler"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/renderer"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/renderer/uniform"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/scene"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/profile"
)

// cpuProfileEnv enables a CPU profile written to the working directory when set to "1".
const cpuProfileEnv = "OXY_RAYMARCH_CPU_PROFILE"

func init() {
	// GLFW and wgpu-native must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	level := &slog.LevelVar{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	configPath := os.Getenv(config.PathEnv)
	cfg, err := loadConfig(configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("path", configPath), slog.Any("err", err))
		return 1
	}
	if lvl, err := cfg.Log.SlogLevel(); err == nil {
		level.Set(lvl)
	}

	if os.Getenv(cpuProfileEnv) == "1" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	state := scene.NewState(cfg.Scene.StateOptions()...)

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithWheelLinePixels(cfg.Input.WheelLinePixels),
	)
	if err != nil {
		logger.Error("failed to open window", slog.Any("err", err))
		return 1
	}
	defer win.Close()

	ctx, err := renderer.NewDeviceContext(win.SurfaceDescriptor(),
		renderer.WithPresentMode(cfg.Renderer.Mode()),
		renderer.WithForceFallbackAdapter(cfg.Renderer.ForceFallbackAdapter),
	)
	if err != nil {
		var unsupported *common.UnsupportedError
		if errors.As(err, &unsupported) {
			state.MarkUnsupported()
			logger.Error("WebGPU is not supported on this device", slog.Any("err", err))
			return 1
		}
		logger.Error("failed to acquire GPU device", slog.Any("err", err))
		return 1
	}
	defer ctx.Release()

	r, ch, p, err := buildRenderer(ctx, state, cfg.Renderer.PipelineOptions()...)
	if err != nil {
		logger.Error("failed to build render pipeline", slog.Any("err", err))
		return 1
	}
	defer ch.Release()
	defer p.Release()

	scheduler := engine.NewFrameScheduler(cfg.Renderer.RefreshInterval(win.RefreshInterval()), win.PollEvents)

	opts := []engine.EngineBuilderOption{
		engine.WithScheduler(scheduler),
		engine.WithLogger(logger),
	}
	if cfg.Profiler.Enabled {
		opts = append(opts, engine.WithProfiler(profiler.NewProfiler(
			profiler.WithInterval(cfg.Profiler.Interval()),
			profiler.WithLogger(logger),
		)))
	}
	eng := engine.NewEngine(state, r, ch, opts...)

	controller := camera.NewCameraController(state, cfg.Input.CameraOptions()...)
	engine.AttachWindow(win, eng, controller, engine.NewKeyBindings(state, logger))

	if configPath != "" {
		watcher, err := config.Watch(configPath,
			func(next config.Config) {
				scheduler.Post(func() {
					next.Scene.Apply(state)
					if lvl, err := next.Log.SlogLevel(); err == nil {
						level.Set(lvl)
					}
					logger.Info("configuration reloaded", slog.String("path", configPath))
				})
			},
			func(err error) {
				logger.Warn("configuration reload failed", slog.Any("err", err))
			},
		)
		if err != nil {
			logger.Warn("configuration hot reload disabled", slog.Any("err", err))
		} else {
			defer watcher.Close()
		}
	}

	logger.Info("render loop starting",
		slog.String("present_mode", ctx.PresentMode().String()),
		slog.Int("width", win.Width()),
		slog.Int("height", win.Height()),
		slog.Float64("dpr", win.DevicePixelRatio()),
	)

	if err := eng.Run(nil); err != nil {
		logger.Error("render loop failed", slog.Any("err", err))
		return 1
	}
	return 0
}

// loadConfig reads the configuration at path. An empty path yields the defaults; a path that
// does not exist yet is seeded with the defaults so it can be edited while the viewer runs.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return config.Config{}, err
	}

	cfg = config.Default()
	data, err := cfg.Marshal()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to encode default configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return config.Config{}, fmt.Errorf("failed to write default configuration: %w", err)
	}
	return cfg, nil
}

// buildRenderer validates the raymarch shader, creates the uniform channel at the binding the
// shader declares and builds the single render pipeline bound to it.
func buildRenderer(ctx renderer.DeviceContext, state scene.State, opts ...pipeline.PipelineBuilderOption) (renderer.Renderer, uniform.Channel, pipeline.Pipeline, error) {
	sh, err := shader.NewRaymarchShader()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := sh.Validate(); err != nil {
		return nil, nil, nil, err
	}

	initial := state.Uniforms()
	payload := initial.Marshal()
	group, binding, err := sh.UniformBinding(string(shader.AnnotationArgUniforms), scene.UniformsStructName, len(payload))
	if err != nil {
		return nil, nil, nil, err
	}

	ch, err := uniform.NewChannel(ctx.Device(), ctx.Queue(), payload,
		uniform.BindingSpec{Group: uint32(group), Binding: uint32(binding)},
		uniform.WithLabel("Raymarch Uniforms"),
		uniform.WithLayoutDescriptor(sh.BindGroupLayoutDescriptor(group)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	p := pipeline.NewPipeline(shader.RaymarchKey, sh, opts...)
	if err := p.Build(ctx.Device(), ctx.Format(), []*wgpu.BindGroupLayout{ch.BindGroupLayout()}); err != nil {
		ch.Release()
		return nil, nil, nil, err
	}

	r := renderer.NewRenderer(ctx, p, renderer.WithBindGroup(ch))
	return r, ch, p, nil
}
