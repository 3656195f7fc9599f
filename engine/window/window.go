package window

import (
	"fmt"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultWheelLinePixels is the number of pixels one wheel notch scrolls, matching the browser line height convention.
const DefaultWheelLinePixels = 100.0

// PrimaryPointer is the pointer id reported for the left mouse button.
const PrimaryPointer = 0

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
// All callbacks fire on the goroutine that calls PollEvents.
type Window interface {
	// SetResizeCallback sets the function called when the drawable geometry changes,
	// either because the window was resized or because its content scale changed.
	//
	// Parameters:
	//   - callback: function receiving the logical width and height and the device pixel ratio
	SetResizeCallback(callback func(logicalWidth, logicalHeight int, dpr float64))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the browser-style vertical delta (positive = scroll down/zoom out)
	SetScrollCallback(callback func(deltaY float64))

	// SetKeyDownCallback sets the callback for key press events. Auto-repeat while a key is
	// held is not reported here.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyRepeatCallback sets the callback for auto-repeat events of a held key.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyRepeatCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetPointerDownCallback sets the callback for primary button presses.
	//
	// Parameters:
	//   - callback: function receiving the pointer id and cursor position
	SetPointerDownCallback(callback func(id int, x, y float64))

	// SetPointerUpCallback sets the callback for primary button releases.
	//
	// Parameters:
	//   - callback: function receiving the pointer id
	SetPointerUpCallback(callback func(id int))

	// SetPointerMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the pointer id and cursor position
	SetPointerMoveCallback(callback func(id int, x, y float64))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// PollEvents processes pending window events without blocking and dispatches callbacks.
	//
	// Returns:
	//   - bool: false once the window has been asked to close
	PollEvents() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// Width returns the current logical width of the client area.
	//
	// Returns:
	//   - int: width in screen coordinates
	Width() int

	// Height returns the current logical height of the client area.
	//
	// Returns:
	//   - int: height in screen coordinates
	Height() int

	// DevicePixelRatio returns the ratio of physical framebuffer pixels to logical units.
	//
	// Returns:
	//   - float64: the device pixel ratio, at least a positive value
	DevicePixelRatio() float64

	// RefreshInterval returns the display refresh interval of the monitor the window opened on.
	//
	// Returns:
	//   - time.Duration: the refresh interval (1/60s when unknown)
	RefreshInterval() time.Duration
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	title string

	minWidth  int
	minHeight int
	maxWidth  int
	maxHeight int

	// width and height are the logical client area size.
	width  int
	height int
	// dpr is the device pixel ratio derived from the framebuffer size.
	dpr float64

	wheelLinePixels float64
	refreshRate     int

	pointerDown bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onResize      func(logicalWidth, logicalHeight int, dpr float64)
	onScroll      func(deltaY float64)
	onKeyDown     func(keyCode uint32)
	onKeyUp       func(keyCode uint32)
	onKeyRepeat   func(keyCode uint32)
	onPointerDown func(id int, x, y float64)
	onPointerUp   func(id int)
	onPointerMove func(id int, x, y float64)
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

// newEngineWindow applies defaults and options without touching the platform layer.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:           "oxy-raymarch",
		minWidth:        200,
		minHeight:       200,
		width:           1280,
		height:          720,
		dpr:             1,
		wheelLinePixels: DefaultWheelLinePixels,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetResizeCallback(callback func(logicalWidth, logicalHeight int, dpr float64)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(deltaY float64)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetKeyRepeatCallback(callback func(keyCode uint32)) {
	w.onKeyRepeat = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(id int, x, y float64)) {
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(id int)) {
	w.onPointerUp = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(id int, x, y float64)) {
	w.onPointerMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) PollEvents() bool {
	return platformProcessMessages(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) DevicePixelRatio() float64 {
	return w.dpr
}

func (w *engineWindow) RefreshInterval() time.Duration {
	return refreshInterval(w.refreshRate)
}

// refreshInterval converts a refresh rate in Hz to a frame interval, defaulting to 60Hz.
func refreshInterval(hz int) time.Duration {
	if hz <= 0 {
		hz = 60
	}
	return time.Second / time.Duration(hz)
}

// scrollDeltaY converts a wheel offset in notches (positive = away from the user) into a
// browser-style deltaY in pixels (positive = towards the user).
func scrollDeltaY(yoff, linePixels float64) float64 {
	return -yoff * linePixels
}

// pixelRatio derives the device pixel ratio from the logical and framebuffer widths,
// falling back to the reported content scale when the window has no width.
func pixelRatio(logicalWidth, framebufferWidth int, contentScale float32) float64 {
	if logicalWidth > 0 && framebufferWidth > 0 {
		return float64(framebufferWidth) / float64(logicalWidth)
	}
	if contentScale > 0 {
		return float64(contentScale)
	}
	return 1
}

// geometryChanged records the new geometry and notifies the resize callback when it differs from the last one.
func (w *engineWindow) geometryChanged(logicalWidth, logicalHeight int, dpr float64) {
	if logicalWidth == w.width && logicalHeight == w.height && dpr == w.dpr {
		return
	}
	w.width = logicalWidth
	w.height = logicalHeight
	w.dpr = dpr
	if w.onResize != nil {
		w.onResize(logicalWidth, logicalHeight, dpr)
	}
}

func (w *engineWindow) scrolled(yoff float64) {
	if yoff == 0 || w.onScroll == nil {
		return
	}
	w.onScroll(scrollDeltaY(yoff, w.wheelLinePixels))
}

func (w *engineWindow) primaryButton(pressed bool, x, y float64) {
	if pressed {
		w.pointerDown = true
		if w.onPointerDown != nil {
			w.onPointerDown(PrimaryPointer, x, y)
		}
		return
	}
	if !w.pointerDown {
		return
	}
	w.pointerDown = false
	if w.onPointerUp != nil {
		w.onPointerUp(PrimaryPointer)
	}
}

func (w *engineWindow) cursorMoved(x, y float64) {
	if w.onPointerMove != nil {
		w.onPointerMove(PrimaryPointer, x, y)
	}
}

func (w *engineWindow) key(keyCode uint32, pressed bool) {
	if pressed {
		if w.onKeyDown != nil {
			w.onKeyDown(keyCode)
		}
		return
	}
	if w.onKeyUp != nil {
		w.onKeyUp(keyCode)
	}
}

func (w *engineWindow) keyRepeated(keyCode uint32) {
	if w.onKeyRepeat != nil {
		w.onKeyRepeat(keyCode)
	}
}
