package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/scene"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/window"
)

// Step sizes applied by the key bindings.
const (
	SpeedStep  float32 = 0.1
	SmoothStep float32 = 0.05
)

// KeyBindings maps key presses onto scene parameter changes.
//
// Default bindings:
//   - 1 / 2: cycle the first / second shape
//   - O: cycle the combine operation
//   - = / -: raise / lower the animation speed
//   - ] / [: raise / lower the blend smoothing
//   - Space: pause or resume the animation
//   - R: reset the camera orbit
//   - P: log the current scene parameters
//
// Only the step keys (=, -, ], [) act on auto-repeat; toggles and cycles fire once per press.
type KeyBindings interface {
	// KeyDown applies the action bound to keyCode.
	//
	// Parameters:
	//   - keyCode: the virtual key code (GLFW values, see common.Key*)
	//
	// Returns:
	//   - bool: true if the key was bound
	KeyDown(keyCode uint32) bool

	// KeyRepeat applies the action bound to keyCode for an auto-repeat of a held key.
	// Keys whose action is not a step are ignored.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//
	// Returns:
	//   - bool: true if the repeat was applied
	KeyRepeat(keyCode uint32) bool

	// Bound reports whether keyCode has an action.
	Bound(keyCode uint32) bool
}

type keyBindings struct {
	state   scene.State
	logger  *slog.Logger
	actions map[uint32]func()

	// repeatable holds the keys whose action is applied on auto-repeat
	repeatable map[uint32]bool
}

var _ KeyBindings = &keyBindings{}

// NewKeyBindings creates the default key bindings acting on state.
//
// Parameters:
//   - state: the scene state to mutate
//   - logger: the logger used by the P binding and for change logging, nil uses slog.Default()
//
// Returns:
//   - KeyBindings: the bindings
func NewKeyBindings(state scene.State, logger *slog.Logger) KeyBindings {
	if logger == nil {
		logger = slog.Default()
	}
	k := &keyBindings{
		state:  state,
		logger: logger,
		repeatable: map[uint32]bool{
			common.KeyEqual:     true,
			common.KeyMinus:     true,
			common.KeyRightBrkt: true,
			common.KeyLeftBrkt:  true,
		},
	}
	k.actions = map[uint32]func(){
		common.Key1: func() {
			a, b := state.Shapes()
			state.SetShapes(a.Next(), b)
		},
		common.Key2: func() {
			a, b := state.Shapes()
			state.SetShapes(a, b.Next())
		},
		common.KeyO: func() {
			state.SetOperation(state.Operation().Next())
		},
		common.KeyEqual: func() {
			state.SetSpeed(state.Speed() + SpeedStep)
		},
		common.KeyMinus: func() {
			state.SetSpeed(state.Speed() - SpeedStep)
		},
		common.KeyRightBrkt: func() {
			state.SetSmoothValue(state.SmoothValue() + SmoothStep)
		},
		common.KeyLeftBrkt: func() {
			state.SetSmoothValue(state.SmoothValue() - SmoothStep)
		},
		common.KeySpace: func() {
			state.TogglePause()
		},
		common.KeyR: func() {
			state.SetOrbit(scene.DefaultAzimuth, scene.DefaultPolar, scene.DefaultDistance)
		},
		common.KeyP: k.logScene,
	}
	return k
}

func (k *keyBindings) KeyDown(keyCode uint32) bool {
	action, ok := k.actions[keyCode]
	if !ok {
		return false
	}
	action()
	if keyCode != common.KeyP {
		k.logger.Debug("scene updated", k.sceneAttrs()...)
	}
	return true
}

func (k *keyBindings) KeyRepeat(keyCode uint32) bool {
	if !k.repeatable[keyCode] {
		return false
	}
	return k.KeyDown(keyCode)
}

func (k *keyBindings) Bound(keyCode uint32) bool {
	_, ok := k.actions[keyCode]
	return ok
}

func (k *keyBindings) logScene() {
	k.logger.Info("scene", k.sceneAttrs()...)
}

func (k *keyBindings) sceneAttrs() []any {
	a, b := k.state.Shapes()
	az, polar, dist := k.state.Orbit()
	return []any{
		slog.String("shape_a", a.String()),
		slog.String("shape_b", b.String()),
		slog.String("operation", k.state.Operation().String()),
		slog.Float64("speed", float64(k.state.Speed())),
		slog.Float64("smooth", float64(k.state.SmoothValue())),
		slog.Float64("azimuth", float64(az)),
		slog.Float64("polar", float64(polar)),
		slog.Float64("distance", float64(dist)),
	}
}

// AttachWindow routes the window's input and geometry callbacks into the engine.
// Pointer and wheel events drive the camera controller, key presses and repeats go to the key bindings and
// geometry changes resize the engine. The engine is resized once with the window's current geometry.
//
// Parameters:
//   - w: the host window
//   - e: the engine to resize
//   - cc: the camera controller receiving pointer and wheel input
//   - keys: the key bindings, nil disables keyboard input
func AttachWindow(w window.Window, e Engine, cc camera.CameraController, keys KeyBindings) {
	w.SetPointerDownCallback(cc.PointerDown)
	w.SetPointerMoveCallback(cc.PointerMove)
	w.SetPointerUpCallback(cc.PointerUp)
	w.SetScrollCallback(cc.Wheel)
	w.SetResizeCallback(e.Resize)
	if keys != nil {
		w.SetKeyDownCallback(func(keyCode uint32) {
			keys.KeyDown(keyCode)
		})
		w.SetKeyRepeatCallback(func(keyCode uint32) {
			keys.KeyRepeat(keyCode)
		})
	}

	e.Resize(w.Width(), w.Height(), w.DevicePixelRatio())
}
