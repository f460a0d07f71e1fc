package omath

import "github.com/go-gl/mathgl/mgl32"

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
)

// Canonical camera-space axes.
var (
	Forward = mgl32.Vec3{0, 0, -1}
	Right   = mgl32.Vec3{1, 0, 0}
	Up      = mgl32.Vec3{0, 1, 0}
)

// YawQuat rotates around +Y. Positive yaw turns from -Z towards +X.
func YawQuat(yaw float32) mgl32.Quat {
	return mgl32.QuatRotate(-yaw, axisY)
}

// YawPitchQuat is the orientation for the given yaw and pitch, yaw applied last.
// Positive pitch looks up.
func YawPitchQuat(yaw, pitch float32) mgl32.Quat {
	return YawQuat(yaw).Mul(mgl32.QuatRotate(pitch, axisX)).Normalize()
}
