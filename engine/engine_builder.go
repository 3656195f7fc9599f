package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-raymarch/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithScheduler sets the frame scheduler the engine runs on. Defaults to a 60Hz scheduler without host polling.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScheduler(s FrameScheduler) EngineBuilderOption {
	return func(e *engine) {
		e.scheduler = s
	}
}

// WithProfiler enables frame statistics; the profiler is ticked once per completed frame.
//
// Parameters:
//   - p: the profiler, nil disables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithLogger sets the structured logger used for loop lifecycle events.
//
// Parameters:
//   - logger: the logger, nil keeps slog.Default()
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithFrameDelta overrides the fixed animation time step applied per frame.
// Values <= 0 are ignored and FrameDelta is kept.
//
// Parameters:
//   - dt: the per-frame time step in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameDelta(dt float32) EngineBuilderOption {
	return func(e *engine) {
		if dt > 0 {
			e.dt = dt
		}
	}
}
