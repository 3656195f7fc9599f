package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()

	az, polar, dist := s.Orbit()
	assert.Equal(t, DefaultAzimuth, az)
	assert.Equal(t, DefaultPolar, polar)
	assert.Equal(t, DefaultDistance, dist)
	assert.Equal(t, float32(0.5), s.Speed())
	assert.Equal(t, float32(0.2), s.SmoothValue())
	assert.Equal(t, float32(1), s.AspectRatio())
	assert.Equal(t, float32(0), s.Time())
	assert.True(t, s.Supported())
	assert.False(t, s.PointerDown())

	a, b := s.Shapes()
	assert.Equal(t, ShapeSphere, a)
	assert.Equal(t, ShapeTorus, b)
	assert.Equal(t, OperationSmoothUnion, s.Operation())

	pos := s.CameraPosition()
	assert.InDelta(t, 0, pos[0], 1e-5)
	assert.InDelta(t, 0, pos[1], 1e-5)
	assert.InDelta(t, 6, pos[2], 1e-5)
	assert.Equal(t, float32(0), pos[3])
}

func TestAdvance(t *testing.T) {
	t.Run("speed zero freezes time", func(t *testing.T) {
		s := NewState(WithSpeed(0))
		for range 10 {
			s.Advance(0.016)
		}
		assert.Equal(t, float32(0), s.Time())
	})

	t.Run("speed one advances by dt", func(t *testing.T) {
		s := NewState(WithSpeed(1))
		s.Advance(0.016)
		assert.InDelta(t, 0.016, s.Time(), 1e-7)
		s.Advance(0.016)
		assert.InDelta(t, 0.032, s.Time(), 1e-7)
	})

	t.Run("default speed halves dt", func(t *testing.T) {
		s := NewState()
		s.Advance(0.016)
		assert.InDelta(t, 0.008, s.Time(), 1e-7)
	})
}

func TestSetOrbitClamps(t *testing.T) {
	s := NewState()

	s.SetOrbit(1, -5, -3)
	_, polar, dist := s.Orbit()
	assert.Equal(t, float32(0.1), polar)
	assert.Equal(t, float32(0.1), dist)

	s.SetOrbit(1, 10, 4)
	_, polar, dist = s.Orbit()
	assert.Equal(t, camera.MaxPolar, polar)
	assert.Equal(t, float32(4), dist)

	s.SetOrbit(1, math32.NaN(), math32.NaN())
	_, polar, dist = s.Orbit()
	assert.Equal(t, camera.MaxPolar, polar)
	assert.Equal(t, float32(4), dist, "NaN distance keeps the previous distance")

	s.SetOrbit(math32.Inf(1), 1, math32.Inf(1))
	az, polar, dist := s.Orbit()
	assert.Equal(t, float32(1), az)
	assert.Equal(t, float32(1), polar)
	assert.Equal(t, float32(4), dist, "infinite distance keeps the previous distance")
	for _, v := range s.CameraPosition() {
		assert.False(t, math32.IsInf(v, 0) || math32.IsNaN(v))
	}
}

func TestWithOrbitRejectsNonFinite(t *testing.T) {
	s := NewState(WithOrbit(math32.NaN(), math32.NaN(), math32.Inf(1)))

	az, polar, dist := s.Orbit()
	assert.Equal(t, DefaultAzimuth, az)
	assert.Equal(t, DefaultPolar, polar)
	assert.Equal(t, DefaultDistance, dist)
}

func TestSetOrbitReprojects(t *testing.T) {
	s := NewState()
	s.SetOrbit(0, math32.Pi/2, 2)
	pos := s.CameraPosition()
	assert.InDelta(t, 2, pos[0], 1e-5)
	assert.InDelta(t, 0, pos[1], 1e-5)
	assert.InDelta(t, 0, pos[2], 1e-5)
}

func TestBoundedSetters(t *testing.T) {
	s := NewState()

	s.SetSpeed(42)
	assert.Equal(t, MaxSpeed, s.Speed())
	s.SetSpeed(-1)
	assert.Equal(t, float32(0), s.Speed())

	s.SetSmoothValue(3)
	assert.Equal(t, MaxSmoothValue, s.SmoothValue())
	s.SetSmoothValue(-0.5)
	assert.Equal(t, float32(0), s.SmoothValue())

	s.SetShapes(ShapeCount, -1)
	a, b := s.Shapes()
	assert.Equal(t, ShapeSphere, a)
	assert.Equal(t, ShapeCapsule, b)

	s.SetOperation(OperationCount + 1)
	assert.Equal(t, OperationSmoothSubtraction, s.Operation())
}

func TestTogglePause(t *testing.T) {
	s := NewState(WithSpeed(2))

	assert.True(t, s.TogglePause())
	assert.Equal(t, float32(0), s.Speed())

	assert.False(t, s.TogglePause())
	assert.Equal(t, float32(2), s.Speed())

	s.SetSpeed(0)
	assert.False(t, s.TogglePause())
	assert.Equal(t, DefaultSpeed, s.Speed())
}

func TestSetSurfaceKeepsOrbit(t *testing.T) {
	s := NewState()
	before := s.CameraPosition()

	s.SetSurface(1600, 900, 16.0/9.0)
	w, h := s.SurfaceSize()
	assert.Equal(t, uint32(1600), w)
	assert.Equal(t, uint32(900), h)
	assert.InDelta(t, 16.0/9.0, s.AspectRatio(), 1e-6)
	assert.Equal(t, before, s.CameraPosition())

	s.SetSurface(1, 1, 0)
	assert.InDelta(t, 16.0/9.0, s.AspectRatio(), 1e-6)
}

func TestSupportedIsSticky(t *testing.T) {
	s := NewState()
	s.MarkUnsupported()
	assert.False(t, s.Supported())
	s.MarkUnsupported()
	assert.False(t, s.Supported())
}

func TestUniformsSnapshot(t *testing.T) {
	s := NewState(WithSpeed(1), WithShapes(ShapeBox, ShapeCapsule), WithOperation(OperationMorph))
	s.SetPointerDown(true)
	s.SetSurface(800, 400, 2)
	s.Advance(0.5)

	u := s.Uniforms()
	assert.Equal(t, float32(1), u.MouseClickData)
	assert.InDelta(t, 0.4, u.SmoothValue, 1e-6)
	assert.Equal(t, float32(0.5), u.Time)
	assert.Equal(t, float32(2), u.AspectRatio)
	assert.Equal(t, s.CameraPosition(), u.CameraPosition)
	assert.Equal(t, int32(ShapeBox), u.ShapeA)
	assert.Equal(t, int32(ShapeCapsule), u.ShapeB)
	assert.Equal(t, int32(OperationMorph), u.Operation)

	s.SetPointerDown(false)
	assert.Equal(t, float32(0), s.Uniforms().MouseClickData)
}

func TestUniformsMarshal(t *testing.T) {
	u := NewState().Uniforms()
	assert.Equal(t, UniformsSize, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, UniformsSize)

	assert.Equal(t, float32(0), common.Float32Lane(buf, 0))
	assert.InDelta(t, 0.4, common.Float32Lane(buf, 1), 1e-6)
	assert.Equal(t, float32(0), common.Float32Lane(buf, 2))
	assert.Equal(t, float32(1), common.Float32Lane(buf, 3))
	assert.InDelta(t, 6, common.Float32Lane(buf, 6), 1e-5)
	assert.Equal(t, float32(0), common.Float32Lane(buf, 7))
	assert.Equal(t, int32(ShapeSphere), common.Int32Lane(buf, 8))
	assert.Equal(t, int32(ShapeTorus), common.Int32Lane(buf, 9))
	assert.Equal(t, int32(OperationSmoothUnion), common.Int32Lane(buf, 10))
	assert.Equal(t, int32(0), common.Int32Lane(buf, 11))
}

func TestShapeAndOperationNames(t *testing.T) {
	assert.Equal(t, "torus", ShapeTorus.String())
	assert.Equal(t, "unknown", Shape(99).String())
	assert.Equal(t, ShapeSphere, ShapeCapsule.Next())
	assert.Equal(t, OperationSmoothUnion, OperationMorph.Next())

	sh, ok := ParseShape("octahedron")
	assert.True(t, ok)
	assert.Equal(t, ShapeOctahedron, sh)
	_, ok = ParseShape("cube")
	assert.False(t, ok)

	op, ok := ParseOperation("smooth_intersection")
	assert.True(t, ok)
	assert.Equal(t, OperationSmoothIntersection, op)
}

func TestUniformsSourceDeclaresStruct(t *testing.T) {
	assert.Contains(t, GPUUniformsSource, "struct Uniforms")
	assert.Contains(t, GPUUniformsSource, "camera_position: vec4<f32>")
}
