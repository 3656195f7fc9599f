package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
	"github.com/chewxy/math32"
)

// Defaults for a freshly created State.
const (
	DefaultAzimuth     float32 = math32.Pi / 2
	DefaultPolar       float32 = math32.Pi / 2
	DefaultDistance    float32 = 6.0
	DefaultSmoothValue float32 = 0.2
	DefaultSpeed       float32 = 0.5
	DefaultShapeA              = ShapeSphere
	DefaultShapeB              = ShapeTorus
	DefaultOperation           = OperationSmoothUnion
)

// Bounds for the user-tunable animation parameters.
const (
	MaxSpeed       float32 = 10
	MaxSmoothValue float32 = 1
)

// State is the single source of truth for everything the raymarch shader consumes.
// The camera controller, the key bindings and the render loop all mutate the same State;
// the render loop snapshots it into a Uniforms payload once per frame.
// Thread-safe for concurrent access.
type State interface {
	camera.OrbitTarget

	// CameraPosition returns the Cartesian camera position derived from the current orbit.
	// There is no setter; the position only changes through SetOrbit.
	//
	// Returns:
	//   - [4]float32: the camera position with w = 0
	CameraPosition() [4]float32

	// PointerDown reports whether a pointer drag is in progress.
	PointerDown() bool

	// Time returns the accumulated animation time.
	Time() float32

	// Advance moves the animation clock forward by dt scaled by the current speed.
	//
	// Parameters:
	//   - dt: the fixed per-frame time step
	Advance(dt float32)

	// Speed returns the animation speed multiplier.
	Speed() float32

	// SetSpeed sets the animation speed multiplier, clamped to [0, MaxSpeed].
	//
	// Parameters:
	//   - speed: the new speed multiplier
	SetSpeed(speed float32)

	// TogglePause freezes the animation clock by setting the speed to 0, or restores the
	// speed that was active before the pause.
	//
	// Returns:
	//   - bool: true if the state is paused after the call
	TogglePause() bool

	// SmoothValue returns the user-facing blend smoothing value.
	SmoothValue() float32

	// SetSmoothValue sets the blend smoothing value, clamped to [0, MaxSmoothValue].
	//
	// Parameters:
	//   - value: the new smoothing value
	SetSmoothValue(value float32)

	// Shapes returns the two shapes being combined.
	//
	// Returns:
	//   - Shape: the first shape
	//   - Shape: the second shape
	Shapes() (Shape, Shape)

	// SetShapes replaces both shapes. Out-of-range values wrap modulo ShapeCount.
	//
	// Parameters:
	//   - a: the first shape
	//   - b: the second shape
	SetShapes(a, b Shape)

	// Operation returns the combine operation.
	Operation() Operation

	// SetOperation replaces the combine operation. Out-of-range values wrap modulo OperationCount.
	//
	// Parameters:
	//   - op: the new operation
	SetOperation(op Operation)

	// AspectRatio returns the surface aspect ratio (logical width / logical height).
	AspectRatio() float32

	// SurfaceSize returns the physical surface size in pixels.
	//
	// Returns:
	//   - uint32: width in pixels
	//   - uint32: height in pixels
	SurfaceSize() (uint32, uint32)

	// SetSurface records a new surface geometry. The orbit is left untouched.
	// Non-positive or NaN aspect ratios are ignored and the previous ratio is kept.
	//
	// Parameters:
	//   - width: physical width in pixels
	//   - height: physical height in pixels
	//   - aspect: logical width / logical height
	SetSurface(width, height uint32, aspect float32)

	// Supported reports whether WebGPU initialization has not failed. Once false it stays false.
	Supported() bool

	// MarkUnsupported permanently flags the state as unsupported.
	MarkUnsupported()

	// Uniforms snapshots the state into the layout uploaded to the GPU.
	//
	// Returns:
	//   - Uniforms: the current uniform payload
	Uniforms() Uniforms
}

// stateImpl is the implementation of the State interface.
type stateImpl struct {
	mu *sync.Mutex

	// Orbit camera
	azimuth        float32
	polar          float32
	distance       float32
	cameraPosition [4]float32
	pointerDown    bool

	// Animation
	time        float32
	speed       float32
	pausedSpeed float32
	smoothValue float32
	shapeA      Shape
	shapeB      Shape
	operation   Operation

	// Surface
	aspectRatio   float32
	surfaceWidth  uint32
	surfaceHeight uint32

	unsupported bool
}

var _ State = &stateImpl{}

// NewState creates a State with the default orbit and animation parameters.
// Options are applied after the defaults and are subject to the same clamping as the setters.
//
// Parameters:
//   - options: functional options to configure the initial state
//
// Returns:
//   - State: the newly created state
func NewState(options ...StateBuilderOption) State {
	s := &stateImpl{
		mu:          &sync.Mutex{},
		azimuth:     DefaultAzimuth,
		polar:       DefaultPolar,
		distance:    DefaultDistance,
		speed:       DefaultSpeed,
		smoothValue: DefaultSmoothValue,
		shapeA:      DefaultShapeA,
		shapeB:      DefaultShapeB,
		operation:   DefaultOperation,
		aspectRatio: 1,
	}

	for _, option := range options {
		option(s)
	}

	s.setOrbit(s.azimuth, s.polar, s.distance)
	s.speed = common.Clamp(s.speed, 0, MaxSpeed)
	s.smoothValue = common.Clamp(s.smoothValue, 0, MaxSmoothValue)
	s.shapeA, s.shapeB = wrapShape(s.shapeA), wrapShape(s.shapeB)
	s.operation = wrapOperation(s.operation)
	return s
}

func (s *stateImpl) Orbit() (float32, float32, float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.azimuth, s.polar, s.distance
}

func (s *stateImpl) SetOrbit(azimuth, polar, distance float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setOrbit(azimuth, polar, distance)
}

// setOrbit clamps the orbit and re-derives the camera position. Non-finite azimuth and distance
// values, and a NaN polar angle, keep the current value. Caller must hold mu.
func (s *stateImpl) setOrbit(azimuth, polar, distance float32) {
	if !finite(azimuth) {
		azimuth = s.azimuth
	}
	if math32.IsNaN(polar) {
		polar = s.polar
	}
	if !finite(distance) {
		distance = s.distance
	}
	s.azimuth = azimuth
	s.polar = camera.ClampPolar(polar)
	s.distance = camera.ClampDistance(distance)
	s.cameraPosition = camera.Project(s.azimuth, s.polar, s.distance)
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func (s *stateImpl) CameraPosition() [4]float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cameraPosition
}

func (s *stateImpl) PointerDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointerDown
}

func (s *stateImpl) SetPointerDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointerDown = down
}

func (s *stateImpl) Time() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.time
}

func (s *stateImpl) Advance(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.time += dt * s.speed
}

func (s *stateImpl) Speed() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

func (s *stateImpl) SetSpeed(speed float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if math32.IsNaN(speed) {
		return
	}
	s.speed = common.Clamp(speed, 0, MaxSpeed)
}

func (s *stateImpl) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.speed > 0 {
		s.pausedSpeed = s.speed
		s.speed = 0
		return true
	}
	s.speed = s.pausedSpeed
	if s.speed == 0 {
		s.speed = DefaultSpeed
	}
	s.pausedSpeed = 0
	return false
}

func (s *stateImpl) SmoothValue() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.smoothValue
}

func (s *stateImpl) SetSmoothValue(value float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if math32.IsNaN(value) {
		return
	}
	s.smoothValue = common.Clamp(value, 0, MaxSmoothValue)
}

func (s *stateImpl) Shapes() (Shape, Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shapeA, s.shapeB
}

func (s *stateImpl) SetShapes(a, b Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shapeA, s.shapeB = wrapShape(a), wrapShape(b)
}

func (s *stateImpl) Operation() Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.operation
}

func (s *stateImpl) SetOperation(op Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operation = wrapOperation(op)
}

func (s *stateImpl) AspectRatio() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aspectRatio
}

func (s *stateImpl) SurfaceSize() (uint32, uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surfaceWidth, s.surfaceHeight
}

func (s *stateImpl) SetSurface(width, height uint32, aspect float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surfaceWidth = width
	s.surfaceHeight = height
	if aspect > 0 && !math32.IsInf(aspect, 0) {
		s.aspectRatio = aspect
	}
}

func (s *stateImpl) Supported() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.unsupported
}

func (s *stateImpl) MarkUnsupported() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsupported = true
}

func (s *stateImpl) Uniforms() Uniforms {
	s.mu.Lock()
	defer s.mu.Unlock()
	var click float32
	if s.pointerDown {
		click = 1
	}
	return Uniforms{
		MouseClickData: click,
		SmoothValue:    s.smoothValue * SmoothScale,
		Time:           s.time,
		AspectRatio:    s.aspectRatio,
		CameraPosition: s.cameraPosition,
		ShapeA:         int32(s.shapeA),
		ShapeB:         int32(s.shapeB),
		Operation:      int32(s.operation),
	}
}

func wrapShape(s Shape) Shape {
	return Shape(common.Wrap(int32(s), int32(ShapeCount)))
}

func wrapOperation(o Operation) Operation {
	return Operation(common.Wrap(int32(o), int32(OperationCount)))
}
