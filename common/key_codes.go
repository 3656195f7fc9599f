package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyO         = 79  // O key (ASCII)
	KeyP         = 80  // P key (ASCII)
	KeyR         = 82  // R key (ASCII)
	KeySpace     = 32  // Spacebar (ASCII)
	KeyMinus     = 45  // - key (ASCII)
	KeyEqual     = 61  // = key (ASCII)
	KeyLeftBrkt  = 91  // [ key (ASCII)
	KeyRightBrkt = 93  // ] key (ASCII)
	KeyEsc       = 256 // Escape key (GLFW)

	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
)
