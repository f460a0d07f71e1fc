package omath

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

// NormalizeEpsilon is the length under which a vector is treated as degenerate.
const NormalizeEpsilon = float32(1e-4)

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Float | constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Smoothstep is the cubic Hermite interpolation of x between edge0 and edge1.
func Smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// FloorMod returns a mod b with the sign of b, so the result is always in [0, b) for b > 0.
func FloorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	// math.Mod of a tiny negative number can round back up to b.
	if m >= b {
		m = 0
	}
	return m
}

// SafeNormalize normalizes v, returning fallback when v is too short to have a direction.
func SafeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < NormalizeEpsilon || math32.IsNaN(l) {
		return fallback
	}
	return v.Mul(1 / l)
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Vec3ApproxEq compares two vectors component-wise with Float32ApproxEq.
func Vec3ApproxEq(a, b mgl32.Vec3) bool {
	return Float32ApproxEq(a[0], b[0]) && Float32ApproxEq(a[1], b[1]) && Float32ApproxEq(a[2], b[2])
}
