// Package camera holds the first-person view parameters and derives the matrices and movement
// basis from them.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/game"
	"github.com/oomph-ac/roam/omath"
)

// Camera is a plain data holder. It is mutated only during fixed ticks and read during rendering.
type Camera struct {
	Position mgl32.Vec3
	// Yaw and Pitch are in radians. Yaw is unbounded, pitch is kept within
	// [-game.PitchLimit, game.PitchLimit].
	Yaw   float32
	Pitch float32

	FOV  float32
	Near float32
	Far  float32
}

// New returns a camera standing at eye height on the origin, looking down -Z.
func New() Camera {
	return Camera{
		Position: mgl32.Vec3{0, game.PlayerEyeHeight, 0},
		FOV:      game.DefaultFOV,
		Near:     game.DefaultNear,
		Far:      game.DefaultFar,
	}
}

// Look applies yaw and pitch deltas and clamps the pitch.
func (c *Camera) Look(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch = ClampPitch(c.Pitch + deltaPitch)
}

// ClampPitch limits pitch to [-game.PitchLimit, game.PitchLimit].
func ClampPitch(pitch float32) float32 {
	return omath.Clamp(pitch, -game.PitchLimit, game.PitchLimit)
}

// Orientation returns the camera's rotation as a quaternion.
func (c Camera) Orientation() mgl32.Quat {
	return omath.YawPitchQuat(c.Yaw, c.Pitch)
}

// LookDirection is the unit vector the camera faces, pitch included.
func (c Camera) LookDirection() mgl32.Vec3 {
	return c.Orientation().Rotate(omath.Forward)
}

// View returns the world-to-camera transform.
func (c Camera) View() mgl32.Mat4 {
	inv := c.Orientation().Conjugate().Mat4()
	return inv.Mul4(mgl32.Translate3D(-c.Position[0], -c.Position[1], -c.Position[2]))
}

// Projection returns the perspective projection for the given aspect ratio.
func (c Camera) Projection(aspect float32, mode omath.DepthMode) mgl32.Mat4 {
	if aspect <= 0 || math32.IsNaN(aspect) {
		aspect = 1
	}
	return omath.Perspective(c.FOV, aspect, c.Near, c.Far, mode)
}

// ViewProjection returns Projection × View.
func (c Camera) ViewProjection(aspect float32, mode omath.DepthMode) mgl32.Mat4 {
	return c.Projection(aspect, mode).Mul4(c.View())
}

// Forward returns the horizontal movement direction for the given orientation. Looking straight
// up or down has no horizontal component, in which case -Z is returned.
func Forward(yaw, pitch float32) mgl32.Vec3 {
	dir := omath.YawPitchQuat(yaw, pitch).Rotate(omath.Forward)
	dir[1] = 0
	return omath.SafeNormalize(dir, omath.Forward)
}

// Right returns the horizontal strafe direction for the given yaw.
func Right(yaw float32) mgl32.Vec3 {
	dir := omath.YawQuat(yaw).Rotate(omath.Right)
	dir[1] = 0
	return omath.SafeNormalize(dir, omath.Right)
}
