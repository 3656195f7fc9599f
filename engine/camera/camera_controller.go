package camera

// OrbitTarget is the state a CameraController mutates. The controller never owns the orbit
// parameters itself; it reads and writes them through this interface so a single scene state
// remains the source of truth for both input handling and the render loop.
type OrbitTarget interface {
	// Orbit returns the current spherical orbit parameters.
	//
	// Returns:
	//   - azimuth: horizontal angle in radians
	//   - polar: angle from the +Y pole in radians
	//   - distance: radial distance from the origin
	Orbit() (azimuth, polar, distance float32)

	// SetOrbit replaces the orbit parameters. Implementations clamp polar and distance
	// and re-derive the camera position from the result.
	//
	// Parameters:
	//   - azimuth: horizontal angle in radians
	//   - polar: angle from the +Y pole in radians
	//   - distance: radial distance from the origin
	SetOrbit(azimuth, polar, distance float32)

	// SetPointerDown records whether a drag is in progress.
	//
	// Parameters:
	//   - down: true while the captured pointer is pressed
	SetPointerDown(down bool)
}

// CameraController maps pointer-drag and wheel input onto an orbit camera.
// All methods are synchronous, never fail, and clamp out-of-range results instead of rejecting input.
type CameraController interface {
	// PointerDown starts a drag: records the press origin, captures the pointer id and marks the pointer as down.
	//
	// Parameters:
	//   - pointerID: identifier of the pressed pointer (mouse button or touch id)
	//   - x, y: pointer position in logical pixels
	PointerDown(pointerID int, x, y float64)

	// PointerMove rotates the orbit by the delta since the previous event while the captured pointer is down.
	// Moves from other pointers, or while no pointer is down, are ignored.
	//
	// Parameters:
	//   - pointerID: identifier of the moving pointer
	//   - x, y: pointer position in logical pixels
	PointerMove(pointerID int, x, y float64)

	// PointerUp ends the drag started by the captured pointer and clears the drag origin.
	//
	// Parameters:
	//   - pointerID: identifier of the released pointer
	PointerUp(pointerID int)

	// Wheel zooms the orbit distance. Positive deltaY moves the camera away from the origin.
	//
	// Parameters:
	//   - deltaY: wheel delta in pixels
	Wheel(deltaY float64)

	// Dragging reports whether a captured pointer is currently down.
	//
	// Returns:
	//   - bool: true while a drag is in progress
	Dragging() bool

	// DragSensitivity returns the radians applied per pixel of pointer movement.
	//
	// Returns:
	//   - float32: radians per pixel
	DragSensitivity() float32

	// WheelSensitivity returns the distance applied per pixel of wheel delta.
	//
	// Returns:
	//   - float32: distance units per pixel
	WheelSensitivity() float32
}
