package camera_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/scene"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestDragRotatesAzimuth(t *testing.T) {
	state := scene.NewState()
	cc := camera.NewCameraController(state)

	cc.PointerDown(0, 100, 100)
	assert.True(t, state.PointerDown())
	assert.True(t, cc.Dragging())

	cc.PointerMove(0, 200, 100)

	az, polar, dist := state.Orbit()
	assert.InDelta(t, math32.Pi/2+0.5, az, 1e-5)
	assert.InDelta(t, math32.Pi/2, polar, 1e-6)
	assert.Equal(t, float32(6), dist)

	pos := state.CameraPosition()
	want := camera.Project(az, polar, dist)
	assert.Equal(t, want, pos)
}

func TestMoveWithoutPointerDownIsIgnored(t *testing.T) {
	state := scene.NewState()
	cc := camera.NewCameraController(state)

	cc.PointerMove(0, 500, 500)
	az, polar, _ := state.Orbit()
	assert.Equal(t, scene.DefaultAzimuth, az)
	assert.Equal(t, scene.DefaultPolar, polar)

	cc.PointerDown(0, 0, 0)
	cc.PointerUp(0)
	cc.PointerMove(0, 500, 500)
	az, _, _ = state.Orbit()
	assert.Equal(t, scene.DefaultAzimuth, az)
	assert.False(t, state.PointerDown())
}

func TestMoveFromOtherPointerIsIgnored(t *testing.T) {
	state := scene.NewState()
	cc := camera.NewCameraController(state)

	cc.PointerDown(1, 0, 0)
	cc.PointerMove(2, 100, 100)
	az, _, _ := state.Orbit()
	assert.Equal(t, scene.DefaultAzimuth, az)

	cc.PointerUp(2)
	assert.True(t, cc.Dragging())
	cc.PointerUp(1)
	assert.False(t, cc.Dragging())
}

func TestDragUsesPreviousEventAsOrigin(t *testing.T) {
	state := scene.NewState()
	cc := camera.NewCameraController(state)

	cc.PointerDown(0, 0, 0)
	cc.PointerMove(0, 50, 0)
	cc.PointerMove(0, 100, 0)

	az, _, _ := state.Orbit()
	assert.InDelta(t, math32.Pi/2+0.5, az, 1e-5)
}

func TestPolarClampUnderAnyDrag(t *testing.T) {
	state := scene.NewState()
	cc := camera.NewCameraController(state)
	rng := rand.New(rand.NewPCG(1, 2))

	cc.PointerDown(0, 0, 0)
	x, y := 0.0, 0.0
	for range 2000 {
		x += (rng.Float64() - 0.5) * 400
		y += (rng.Float64() - 0.5) * 400
		cc.PointerMove(0, x, y)

		_, polar, _ := state.Orbit()
		assert.GreaterOrEqual(t, polar, camera.MinPolar)
		assert.LessOrEqual(t, polar, camera.MaxPolar)
	}
}

func TestWheelZoom(t *testing.T) {
	state := scene.NewState()
	cc := camera.NewCameraController(state)

	cc.Wheel(50)
	_, _, dist := state.Orbit()
	assert.InDelta(t, 6.1, dist, 1e-5)
	assert.InDelta(t, 6.1, state.CameraPosition()[2], 1e-4)
}

func TestDistanceFloorUnderAnyWheel(t *testing.T) {
	state := scene.NewState()
	cc := camera.NewCameraController(state)
	rng := rand.New(rand.NewPCG(3, 4))

	for range 2000 {
		cc.Wheel((rng.Float64() - 0.7) * 5000)
		_, _, dist := state.Orbit()
		assert.GreaterOrEqual(t, dist, camera.MinDistance)
	}

	cc.Wheel(-1e9)
	_, _, dist := state.Orbit()
	assert.Equal(t, camera.MinDistance, dist)
}

func TestOverflowingWheelKeepsDistance(t *testing.T) {
	state := scene.NewState()
	cc := camera.NewCameraController(state)

	cc.Wheel(math.MaxFloat64)
	_, _, dist := state.Orbit()
	assert.Equal(t, scene.DefaultDistance, dist)

	pos := state.CameraPosition()
	assert.InDelta(t, 0, pos[0], 1e-5)
	assert.InDelta(t, 0, pos[1], 1e-5)
	assert.InDelta(t, 6, pos[2], 1e-5)
}

func TestSensitivityOptions(t *testing.T) {
	state := scene.NewState()
	cc := camera.NewCameraController(state,
		camera.WithDragSensitivity(0.01),
		camera.WithWheelSensitivity(0.1),
		camera.WithDragSensitivity(-1),
	)
	assert.Equal(t, float32(0.01), cc.DragSensitivity())
	assert.Equal(t, float32(0.1), cc.WheelSensitivity())

	cc.Wheel(10)
	_, _, dist := state.Orbit()
	assert.InDelta(t, 7, dist, 1e-5)
}
