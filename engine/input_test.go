package engine

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/scene"
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyBindingsCycleShapesAndOperation(t *testing.T) {
	state := scene.NewState()
	keys := NewKeyBindings(state, nil)

	require.True(t, keys.KeyDown(common.Key1))
	a, b := state.Shapes()
	assert.Equal(t, scene.ShapeBox, a)
	assert.Equal(t, scene.ShapeTorus, b)

	keys.KeyDown(common.Key2)
	keys.KeyDown(common.Key2)
	keys.KeyDown(common.Key2)
	_, b = state.Shapes()
	assert.Equal(t, scene.ShapeSphere, b, "shape B wraps after the last shape")

	keys.KeyDown(common.KeyO)
	assert.Equal(t, scene.OperationSmoothSubtraction, state.Operation())
}

func TestKeyBindingsSpeedAndSmoothing(t *testing.T) {
	state := scene.NewState()
	keys := NewKeyBindings(state, nil)

	keys.KeyDown(common.KeyEqual)
	assert.InDelta(t, 0.6, state.Speed(), 1e-5)
	for range 10 {
		keys.KeyDown(common.KeyMinus)
	}
	assert.Equal(t, float32(0), state.Speed(), "speed is clamped at zero")

	keys.KeyDown(common.KeyRightBrkt)
	assert.InDelta(t, 0.25, state.SmoothValue(), 1e-5)
	keys.KeyDown(common.KeyLeftBrkt)
	keys.KeyDown(common.KeyLeftBrkt)
	assert.InDelta(t, 0.15, state.SmoothValue(), 1e-5)
}

func TestKeyBindingsPauseAndReset(t *testing.T) {
	state := scene.NewState(scene.WithSpeed(2))
	keys := NewKeyBindings(state, nil)

	keys.KeyDown(common.KeySpace)
	assert.Equal(t, float32(0), state.Speed())
	keys.KeyDown(common.KeySpace)
	assert.Equal(t, float32(2), state.Speed())

	state.SetOrbit(1, 1, 10)
	keys.KeyDown(common.KeyR)
	az, polar, dist := state.Orbit()
	assert.Equal(t, scene.DefaultAzimuth, az)
	assert.Equal(t, scene.DefaultPolar, polar)
	assert.Equal(t, scene.DefaultDistance, dist)
}

func TestKeyBindingsRepeatOnlySteps(t *testing.T) {
	state := scene.NewState(scene.WithSpeed(1))
	keys := NewKeyBindings(state, nil)

	for _, key := range []uint32{common.KeySpace, common.KeyO, common.Key1, common.Key2, common.KeyR, common.KeyP} {
		assert.False(t, keys.KeyRepeat(key))
	}
	assert.Equal(t, float32(1), state.Speed(), "held space does not toggle pause")
	a, b := state.Shapes()
	assert.Equal(t, scene.DefaultShapeA, a)
	assert.Equal(t, scene.DefaultShapeB, b)
	assert.Equal(t, scene.DefaultOperation, state.Operation())

	assert.True(t, keys.KeyRepeat(common.KeyEqual))
	assert.True(t, keys.KeyRepeat(common.KeyEqual))
	assert.InDelta(t, 1.2, state.Speed(), 1e-5)
	assert.True(t, keys.KeyRepeat(common.KeyLeftBrkt))
	assert.InDelta(t, 0.15, state.SmoothValue(), 1e-5)
}

func TestKeyBindingsLogScene(t *testing.T) {
	var buf bytes.Buffer
	keys := NewKeyBindings(scene.NewState(), slog.New(slog.NewTextHandler(&buf, nil)))

	assert.True(t, keys.KeyDown(common.KeyP))
	assert.Contains(t, buf.String(), "shape_a=sphere")
	assert.Contains(t, buf.String(), "operation=smooth_union")
}

func TestKeyBindingsUnbound(t *testing.T) {
	state := scene.NewState()
	keys := NewKeyBindings(state, nil)

	assert.False(t, keys.Bound(common.KeyEsc))
	assert.False(t, keys.KeyDown(common.KeyEsc))
	assert.True(t, keys.Bound(common.KeySpace))
	assert.Equal(t, scene.DefaultSpeed, state.Speed())
}

type fakeWindow struct {
	width, height int
	dpr           float64

	onResize      func(int, int, float64)
	onScroll      func(float64)
	onKeyDown     func(uint32)
	onKeyRepeat   func(uint32)
	onPointerDown func(int, float64, float64)
	onPointerUp   func(int)
	onPointerMove func(int, float64, float64)
}

func (w *fakeWindow) SetResizeCallback(cb func(int, int, float64))          { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(cb func(float64))                    { w.onScroll = cb }
func (w *fakeWindow) SetKeyDownCallback(cb func(uint32))                    { w.onKeyDown = cb }
func (w *fakeWindow) SetKeyUpCallback(func(uint32))                         {}
func (w *fakeWindow) SetKeyRepeatCallback(cb func(uint32))                  { w.onKeyRepeat = cb }
func (w *fakeWindow) SetPointerDownCallback(cb func(int, float64, float64)) { w.onPointerDown = cb }
func (w *fakeWindow) SetPointerUpCallback(cb func(int))                     { w.onPointerUp = cb }
func (w *fakeWindow) SetPointerMoveCallback(cb func(int, float64, float64)) { w.onPointerMove = cb }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor            { return nil }
func (w *fakeWindow) IsRunning() bool                                       { return true }
func (w *fakeWindow) PollEvents() bool                                      { return true }
func (w *fakeWindow) Close() error                                          { return nil }
func (w *fakeWindow) Width() int                                            { return w.width }
func (w *fakeWindow) Height() int                                           { return w.height }
func (w *fakeWindow) DevicePixelRatio() float64                             { return w.dpr }
func (w *fakeWindow) RefreshInterval() time.Duration                        { return time.Second / 60 }

func TestAttachWindowRoutesInput(t *testing.T) {
	h := newHarness(t)
	cc := camera.NewCameraController(h.state)
	w := &fakeWindow{width: 1000, height: 500, dpr: 1.5}

	AttachWindow(w, h.engine, cc, NewKeyBindings(h.state, nil))

	assert.InDelta(t, 2.0, h.state.AspectRatio(), 1e-6)
	sw, sh := h.state.SurfaceSize()
	assert.Equal(t, uint32(1500), sw)
	assert.Equal(t, uint32(750), sh)

	w.onPointerDown(0, 100, 100)
	assert.True(t, h.state.PointerDown())
	w.onPointerMove(0, 200, 100)
	az, _, _ := h.state.Orbit()
	assert.InDelta(t, math32.Pi/2+0.5, az, 1e-5)
	w.onPointerUp(0)
	assert.False(t, h.state.PointerDown())

	w.onScroll(50)
	_, _, dist := h.state.Orbit()
	assert.InDelta(t, 6.1, dist, 1e-5)

	w.onKeyDown(common.KeyO)
	assert.Equal(t, scene.OperationSmoothSubtraction, h.state.Operation())
	w.onKeyRepeat(common.KeyO)
	assert.Equal(t, scene.OperationSmoothSubtraction, h.state.Operation(), "held O does not keep cycling")

	w.onResize(400, 400, 1)
	assert.InDelta(t, 1.0, h.state.AspectRatio(), 1e-6)
}
