package common

import "fmt"

// UnsupportedError is returned when no compatible GPU adapter or device could be acquired for the surface.
// It is sticky for the lifetime of the viewer: callers record it and never retry acquisition.
type UnsupportedError struct {
	// Stage names the acquisition step that failed (e.g. "adapter", "device").
	Stage string
	// Err is the underlying cause reported by the GPU API, if any.
	Err error
}

func (e *UnsupportedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("webgpu not supported: no compatible %s", e.Stage)
	}
	return fmt.Sprintf("webgpu not supported: no compatible %s: %v", e.Stage, e.Err)
}

func (e *UnsupportedError) Unwrap() error {
	return e.Err
}

// SurfaceLostError is returned when the drawable view for the in-flight frame cannot be acquired.
// It is fatal to the current session; the render loop stops and surfaces it to the host.
type SurfaceLostError struct {
	Err error
}

func (e *SurfaceLostError) Error() string {
	if e.Err == nil {
		return "surface lost"
	}
	return fmt.Sprintf("surface lost: %v", e.Err)
}

func (e *SurfaceLostError) Unwrap() error {
	return e.Err
}

// SizeMismatchError is returned when a uniform write does not match the byte length the buffer was created with.
// Writes are never truncated or padded.
type SizeMismatchError struct {
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("uniform write size mismatch: expected %d bytes, got %d", e.Expected, e.Actual)
}
