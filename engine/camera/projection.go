package camera

import (
	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/chewxy/math32"
)

// Orbit bounds. The polar angle stays away from both poles so the camera basis
// derived in the shader never degenerates or flips.
const (
	MinPolar    float32 = 0.1
	MaxPolar    float32 = math32.Pi - 0.1
	MinDistance float32 = 0.1
)

// Project converts spherical orbit parameters into a Cartesian camera position around the origin.
// This is the only way a camera position is produced; the w component is always 0.
//
// Parameters:
//   - azimuth: horizontal angle around the Y axis in radians
//   - polar: angle from the +Y pole in radians
//   - distance: radial distance from the origin
//
// Returns:
//   - [4]float32: the camera position as (x, y, z, 0)
func Project(azimuth, polar, distance float32) [4]float32 {
	sinPolar, cosPolar := math32.Sin(polar), math32.Cos(polar)
	sinAzim, cosAzim := math32.Sin(azimuth), math32.Cos(azimuth)
	return [4]float32{
		distance * sinPolar * cosAzim,
		distance * cosPolar,
		distance * sinPolar * sinAzim,
		0,
	}
}

// ClampPolar limits a polar angle to [MinPolar, MaxPolar].
func ClampPolar(polar float32) float32 {
	return common.Clamp(polar, MinPolar, MaxPolar)
}

// ClampDistance limits an orbit distance to at least MinDistance.
func ClampDistance(distance float32) float32 {
	if distance < MinDistance || math32.IsNaN(distance) {
		return MinDistance
	}
	return distance
}
