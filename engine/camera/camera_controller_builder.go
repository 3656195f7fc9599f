package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithDragSensitivity sets the orbit rotation applied per pixel of pointer drag.
// Non-positive values are ignored.
//
// Parameters:
//   - sensitivity: radians per pixel
//
// Returns:
//   - CameraControllerOption: functional option to set the drag sensitivity
func WithDragSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if sensitivity > 0 {
			cc.dragSensitivity = sensitivity
		}
	}
}

// WithWheelSensitivity sets the orbit distance change applied per pixel of wheel delta.
// Non-positive values are ignored.
//
// Parameters:
//   - sensitivity: distance units per pixel
//
// Returns:
//   - CameraControllerOption: functional option to set the wheel sensitivity
func WithWheelSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if sensitivity > 0 {
			cc.wheelSensitivity = sensitivity
		}
	}
}
