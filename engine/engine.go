package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-raymarch/engine/profiler"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/renderer"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// FrameDelta is the fixed animation time step applied per frame, independent of wall-clock time.
const FrameDelta float32 = 0.016

// FrameRenderer records, submits and presents one frame. Implemented by renderer.Renderer.
type FrameRenderer interface {
	RenderFrame() error
	Configure(cfg renderer.SurfaceConfig) renderer.SurfaceConfig
	Format() wgpu.TextureFormat
}

// UniformWriter replaces the uniform bytes the next frame renders with. Implemented by uniform.Channel.
type UniformWriter interface {
	Write(b []byte) error
}

var _ FrameRenderer = renderer.Renderer(nil)

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	state     scene.State
	renderer  FrameRenderer
	uniforms  UniformWriter
	scheduler FrameScheduler
	profiler  *profiler.Profiler
	logger    *slog.Logger

	dt      float32
	running bool
	frames  uint64
	err     error

	pendingConfig *renderer.SurfaceConfig
}

// Engine drives the per-frame update-and-submit cycle.
//
// Each tick applies any pending surface configuration, renders the frame with the uniform bytes
// already on the GPU, advances the animation clock, then writes the next frame's uniform payload.
// Frame N therefore renders with the values written at the end of frame N-1, or the initial
// payload for the first frame. Ticks run on the scheduler goroutine and re-schedule themselves
// until Stop is called or a tick fails.
type Engine interface {
	// State returns the scene state the engine animates and uploads.
	//
	// Returns:
	//   - scene.State: the shared state
	State() scene.State

	// Scheduler returns the frame scheduler the engine runs on.
	//
	// Returns:
	//   - FrameScheduler: the scheduler
	Scheduler() FrameScheduler

	// Start enters the running state and requests the first frame. No-op while running or after a failure.
	Start()

	// Stop leaves the running state; the frame in flight completes but no further frame is requested.
	Stop()

	// Running reports whether frames are still being scheduled.
	Running() bool

	// Run starts the engine if needed and drives the scheduler until the engine stops, quit is
	// closed, the host closes or a tick fails.
	//
	// Parameters:
	//   - quit: closing this channel ends the loop (nil never fires)
	//
	// Returns:
	//   - error: the error that stopped the loop, nil for a normal shutdown
	Run(quit <-chan struct{}) error

	// Tick runs one frame of the loop. Normally invoked by the scheduler.
	//
	// Returns:
	//   - error: the render or uniform upload error that stopped the loop
	Tick() error

	// Resize records a new drawable geometry. The state's surface size and aspect ratio update
	// immediately; the surface itself is reconfigured at the start of the next tick.
	//
	// Parameters:
	//   - logicalWidth: the logical width of the drawing area
	//   - logicalHeight: the logical height of the drawing area
	//   - dpr: the device pixel ratio
	Resize(logicalWidth, logicalHeight int, dpr float64)

	// Frames returns the number of completed ticks.
	//
	// Returns:
	//   - uint64: completed tick count
	Frames() uint64

	// Err returns the error that stopped the loop, if any.
	//
	// Returns:
	//   - error: the fatal error or nil
	Err() error
}

var _ Engine = &engine{}

// NewEngine creates a new Engine bound to the given state, renderer and uniform writer.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - state: the scene state to animate and upload
//   - r: the frame renderer
//   - uniforms: the uniform writer the payload is streamed to
//   - options: functional options (scheduler, profiler, logger, time step)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(state scene.State, r FrameRenderer, uniforms UniformWriter, options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:       &sync.Mutex{},
		state:    state,
		renderer: r,
		uniforms: uniforms,
		logger:   slog.Default(),
		dt:       FrameDelta,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.scheduler == nil {
		e.scheduler = NewFrameScheduler(0, nil)
	}

	return e
}

func (e *engine) State() scene.State {
	return e.state
}

func (e *engine) Scheduler() FrameScheduler {
	return e.scheduler
}

func (e *engine) Start() {
	e.mu.Lock()
	if e.running || e.err != nil {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.logger.Debug("render loop started")
	e.scheduler.RequestFrame(e.frame)
}

func (e *engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.running = false
}

func (e *engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.running
}

func (e *engine) Run(quit <-chan struct{}) error {
	e.Start()
	e.scheduler.Run(quit, e.Running)
	e.Stop()

	return e.Err()
}

// frame is the scheduler callback for one tick.
func (e *engine) frame() {
	if !e.Running() {
		return
	}
	_ = e.Tick()
}

func (e *engine) Tick() error {
	e.applyPendingConfig()

	if err := e.renderer.RenderFrame(); err != nil {
		return e.fail(fmt.Errorf("failed to render frame: %w", err))
	}

	e.state.Advance(e.dt)
	payload := e.state.Uniforms()
	if err := e.uniforms.Write(payload.Marshal()); err != nil {
		return e.fail(fmt.Errorf("failed to write uniforms: %w", err))
	}

	e.mu.Lock()
	e.frames++
	running := e.running
	e.mu.Unlock()

	if e.profiler != nil {
		e.profiler.Tick()
	}

	if running {
		e.scheduler.RequestFrame(e.frame)
	}
	return nil
}

// fail records err as the reason the loop stopped and leaves the running state.
func (e *engine) fail(err error) error {
	e.mu.Lock()
	e.running = false
	if e.err == nil {
		e.err = err
	}
	e.mu.Unlock()

	e.logger.Error("render loop stopped", slog.Any("err", err))
	return err
}

func (e *engine) Resize(logicalWidth, logicalHeight int, dpr float64) {
	cfg := renderer.NewSurfaceConfig(e.renderer.Format(), logicalWidth, logicalHeight, dpr)

	aspect := float32(0)
	if logicalWidth > 0 && logicalHeight > 0 {
		aspect = float32(logicalWidth) / float32(logicalHeight)
	}
	e.state.SetSurface(cfg.Width, cfg.Height, aspect)

	e.mu.Lock()
	e.pendingConfig = &cfg
	e.mu.Unlock()
}

// applyPendingConfig reconfigures the surface if a resize arrived since the last tick.
// It runs before the drawable is acquired, so no in-flight pass ever sees a reconfigured surface.
func (e *engine) applyPendingConfig() {
	e.mu.Lock()
	cfg := e.pendingConfig
	e.pendingConfig = nil
	e.mu.Unlock()

	if cfg == nil {
		return
	}

	applied := e.renderer.Configure(*cfg)
	e.logger.Debug("surface configured",
		slog.Int("width", int(applied.Width)),
		slog.Int("height", int(applied.Height)),
	)
}

func (e *engine) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.frames
}

func (e *engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.err
}
