package camera

import (
	"sync"
)

const (
	// DefaultDragSensitivity is the orbit rotation in radians per pixel of drag.
	DefaultDragSensitivity float32 = 0.005
	// DefaultWheelSensitivity is the distance change per pixel of wheel delta.
	DefaultWheelSensitivity float32 = 0.002
)

// cameraControllerImpl is the single implementation of CameraController.
// Drag bookkeeping lives here; orbit parameters live on the OrbitTarget.
type cameraControllerImpl struct {
	mu *sync.Mutex

	target OrbitTarget

	dragSensitivity  float32
	wheelSensitivity float32

	// Drag state for the captured pointer
	dragging  bool
	pointerID int
	lastX     float64
	lastY     float64
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller that drives the given orbit target.
//
// Parameters:
//   - target: the state holding the orbit parameters
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(target OrbitTarget, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:               &sync.Mutex{},
		target:           target,
		dragSensitivity:  DefaultDragSensitivity,
		wheelSensitivity: DefaultWheelSensitivity,
	}

	for _, option := range options {
		option(cc)
	}

	return cc
}

func (cc *cameraControllerImpl) PointerDown(pointerID int, x, y float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dragging = true
	cc.pointerID = pointerID
	cc.lastX = x
	cc.lastY = y
	cc.target.SetPointerDown(true)
}

func (cc *cameraControllerImpl) PointerMove(pointerID int, x, y float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.dragging || pointerID != cc.pointerID {
		return
	}

	dx := float32(x - cc.lastX)
	dy := float32(y - cc.lastY)
	cc.lastX = x
	cc.lastY = y

	azimuth, polar, distance := cc.target.Orbit()
	azimuth += dx * cc.dragSensitivity
	polar = ClampPolar(polar - dy*cc.dragSensitivity)
	cc.target.SetOrbit(azimuth, polar, distance)
}

func (cc *cameraControllerImpl) PointerUp(pointerID int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.dragging || pointerID != cc.pointerID {
		return
	}
	cc.dragging = false
	cc.lastX = 0
	cc.lastY = 0
	cc.target.SetPointerDown(false)
}

func (cc *cameraControllerImpl) Wheel(deltaY float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	azimuth, polar, distance := cc.target.Orbit()
	distance = ClampDistance(distance + float32(deltaY)*cc.wheelSensitivity)
	cc.target.SetOrbit(azimuth, polar, distance)
}

func (cc *cameraControllerImpl) Dragging() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dragging
}

func (cc *cameraControllerImpl) DragSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dragSensitivity
}

func (cc *cameraControllerImpl) WheelSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.wheelSensitivity
}
