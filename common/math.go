package common

import (
	"encoding/binary"
	"math"

	"golang.org/x/exp/constraints"
)

// LaneSize is the byte width of a single uniform lane (f32, i32 or u32).
const LaneSize = 4

// Clamp limits v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wrap maps v into [0, n) using floored modulo, so negative values wrap from the top.
// Returns 0 when n <= 0.
//
// Parameters:
//   - v: the value to wrap
//   - n: the exclusive upper bound
//
// Returns:
//   - T: v wrapped into [0, n)
func Wrap[T constraints.Signed](v, n T) T {
	if n <= 0 {
		return 0
	}
	m := v % n
	if m < 0 {
		m += n
	}
	return m
}

// PutFloat32Lane writes v as a little-endian f32 into lane index of buf.
//
// Parameters:
//   - buf: destination byte buffer
//   - lane: the lane index (byte offset = lane * LaneSize)
//   - v: the value to write
func PutFloat32Lane(buf []byte, lane int, v float32) {
	binary.LittleEndian.PutUint32(buf[lane*LaneSize:], math.Float32bits(v))
}

// PutInt32Lane writes v as a little-endian i32 into lane index of buf.
//
// Parameters:
//   - buf: destination byte buffer
//   - lane: the lane index (byte offset = lane * LaneSize)
//   - v: the value to write
func PutInt32Lane(buf []byte, lane int, v int32) {
	binary.LittleEndian.PutUint32(buf[lane*LaneSize:], uint32(v))
}

// Float32Lane reads the little-endian f32 stored in lane index of buf.
func Float32Lane(buf []byte, lane int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[lane*LaneSize:]))
}

// Int32Lane reads the little-endian i32 stored in lane index of buf.
func Int32Lane(buf []byte, lane int) int32 {
	return int32(binary.LittleEndian.Uint32(buf[lane*LaneSize:]))
}
