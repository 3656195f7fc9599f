package scene

// StateBuilderOption is a functional option for configuring a State at creation time.
type StateBuilderOption func(*stateImpl)

// WithOrbit sets the initial orbit parameters. Polar and distance are clamped.
//
// Parameters:
//   - azimuth: horizontal angle in radians
//   - polar: angle from the +Y pole in radians
//   - distance: radial distance from the origin
//
// Returns:
//   - StateBuilderOption: functional option to set the initial orbit
func WithOrbit(azimuth, polar, distance float32) StateBuilderOption {
	return func(s *stateImpl) {
		s.setOrbit(azimuth, polar, distance)
	}
}

// WithSpeed sets the initial animation speed multiplier.
//
// Parameters:
//   - speed: the speed multiplier, clamped to [0, MaxSpeed]
//
// Returns:
//   - StateBuilderOption: functional option to set the speed
func WithSpeed(speed float32) StateBuilderOption {
	return func(s *stateImpl) {
		s.speed = speed
	}
}

// WithSmoothValue sets the initial blend smoothing value.
//
// Parameters:
//   - value: the smoothing value, clamped to [0, MaxSmoothValue]
//
// Returns:
//   - StateBuilderOption: functional option to set the smoothing value
func WithSmoothValue(value float32) StateBuilderOption {
	return func(s *stateImpl) {
		s.smoothValue = value
	}
}

// WithShapes sets the two initial shapes.
//
// Parameters:
//   - a: the first shape
//   - b: the second shape
//
// Returns:
//   - StateBuilderOption: functional option to set the shapes
func WithShapes(a, b Shape) StateBuilderOption {
	return func(s *stateImpl) {
		s.shapeA = a
		s.shapeB = b
	}
}

// WithOperation sets the initial combine operation.
//
// Parameters:
//   - op: the combine operation
//
// Returns:
//   - StateBuilderOption: functional option to set the operation
func WithOperation(op Operation) StateBuilderOption {
	return func(s *stateImpl) {
		s.operation = op
	}
}
