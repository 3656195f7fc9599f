package camera

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestProjectMatchesFormula(t *testing.T) {
	cases := []struct {
		azimuth, polar, distance float32
	}{
		{math32.Pi / 2, math32.Pi / 2, 6},
		{0, math32.Pi / 2, 1},
		{1.3, 0.4, 2.5},
		{-2.1, 2.9, 10},
	}

	for _, c := range cases {
		got := Project(c.azimuth, c.polar, c.distance)
		a, p, d := float64(c.azimuth), float64(c.polar), float64(c.distance)
		assert.InDelta(t, d*math.Sin(p)*math.Cos(a), got[0], 1e-4)
		assert.InDelta(t, d*math.Cos(p), got[1], 1e-4)
		assert.InDelta(t, d*math.Sin(p)*math.Sin(a), got[2], 1e-4)
		assert.Equal(t, float32(0), got[3])
	}
}

func TestDefaultOrbitProjection(t *testing.T) {
	got := Project(math32.Pi/2, math32.Pi/2, 6)
	assert.InDelta(t, 0, got[0], 1e-5)
	assert.InDelta(t, 0, got[1], 1e-5)
	assert.InDelta(t, 6, got[2], 1e-5)
}

func TestClamps(t *testing.T) {
	assert.Equal(t, MinPolar, ClampPolar(-1))
	assert.Equal(t, MaxPolar, ClampPolar(4))
	assert.Equal(t, float32(1), ClampPolar(1))
	assert.Equal(t, MinDistance, ClampDistance(0))
	assert.Equal(t, MinDistance, ClampDistance(math32.NaN()))
	assert.Equal(t, float32(3), ClampDistance(3))
}
