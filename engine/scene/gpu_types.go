package scene

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
)

// GPUUniformsSource is the canonical WGSL definition of the Uniforms struct.
// Matches Uniforms layout exactly (48 bytes, WGSL uniform aligned).
//
//go:embed assets/uniforms.wgsl
var GPUUniformsSource string

// UniformsSize is the byte size of the uniform payload uploaded every frame.
const UniformsSize = 48

// UniformsStructName is the WGSL struct name declared by GPUUniformsSource.
const UniformsStructName = "Uniforms"

// SmoothScale converts the user-facing smoothing value into the blend radius the shader expects.
const SmoothScale float32 = 2

// Uniforms is the GPU-aligned representation of the per-frame uniform buffer.
// Matches the WGSL Uniforms struct layout exactly (see GPUUniformsSource).
// Size: 48 bytes, twelve 4-byte lanes.
type Uniforms struct {
	MouseClickData float32    // lane 0: 1 while the pointer is down, else 0
	SmoothValue    float32    // lane 1: blend radius (smoothValue * SmoothScale)
	Time           float32    // lane 2: accumulated animation time
	AspectRatio    float32    // lane 3: surface width / height
	CameraPosition [4]float32 // lanes 4-7: orbit camera position, w = 0 (vec4<f32>, offset 16)
	ShapeA         int32      // lane 8: first shape (i32)
	ShapeB         int32      // lane 9: second shape (i32)
	Operation      int32      // lane 10: combine operation (i32)
	_padding       int32      // lane 11: padding to 48 bytes
}

// Size returns the size of the Uniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (u *Uniforms) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the Uniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized 48-byte buffer
func (u *Uniforms) Marshal() []byte {
	buf := make([]byte, u.Size())
	common.PutFloat32Lane(buf, 0, u.MouseClickData)
	common.PutFloat32Lane(buf, 1, u.SmoothValue)
	common.PutFloat32Lane(buf, 2, u.Time)
	common.PutFloat32Lane(buf, 3, u.AspectRatio)
	for i := range 4 {
		common.PutFloat32Lane(buf, 4+i, u.CameraPosition[i])
	}
	common.PutInt32Lane(buf, 8, u.ShapeA)
	common.PutInt32Lane(buf, 9, u.ShapeB)
	common.PutInt32Lane(buf, 10, u.Operation)
	common.PutInt32Lane(buf, 11, 0) // _padding
	return buf
}
