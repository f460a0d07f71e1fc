package omath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DepthMode selects the clip-space depth range a projection matrix maps to.
type DepthMode uint8

const (
	// DepthZeroToOne maps near/far to [0, 1] (WebGPU, Vulkan, Direct3D, Metal).
	DepthZeroToOne DepthMode = iota
	// DepthNegOneToOne maps near/far to [-1, 1] (OpenGL, WebGL).
	DepthNegOneToOne
)

// String ...
func (m DepthMode) String() string {
	switch m {
	case DepthZeroToOne:
		return "zero-to-one"
	case DepthNegOneToOne:
		return "neg-one-to-one"
	}
	return "unknown"
}

// ParseDepthMode parses the textual form produced by DepthMode.String.
func ParseDepthMode(s string) (DepthMode, bool) {
	switch s {
	case "zero-to-one", "":
		return DepthZeroToOne, true
	case "neg-one-to-one":
		return DepthNegOneToOne, true
	}
	return DepthZeroToOne, false
}

// Perspective builds a right-handed perspective projection looking down -Z. fov is the
// vertical field of view in radians.
func Perspective(fov, aspect, near, far float32, mode DepthMode) mgl32.Mat4 {
	f := 1 / math32.Tan(fov/2)
	nf := 1 / (near - far)

	var m mgl32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[11] = -1
	switch mode {
	case DepthNegOneToOne:
		m[10] = (far + near) * nf
		m[14] = 2 * far * near * nf
	default:
		m[10] = far * nf
		m[14] = far * near * nf
	}
	return m
}

// Translation returns a translation-only transform.
func Translation(v mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(v[0], v[1], v[2])
}

// ExtractTranslation returns the translation column of a column-major transform.
func ExtractTranslation(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{m[12], m[13], m[14]}
}

// MulInto writes a*b into out without allocating.
func MulInto(a, b *mgl32.Mat4, out *mgl32.Mat4) {
	*out = a.Mul4(*b)
}
