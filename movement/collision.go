// Package movement resolves player displacement against static obstacle boxes.
package movement

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/game"
)

// Scratch holds the intermediate values of a resolution. It is owned by the caller and
// overwritten on every call, so a long-lived Scratch keeps resolution free of heap allocation.
// Nothing in it is valid after the next call.
type Scratch struct {
	Target mgl32.Vec3
	XOnly  mgl32.Vec3
	ZOnly  mgl32.Vec3

	TargetBB cube.BBox
	XOnlyBB  cube.BBox
	ZOnlyBB  cube.BBox

	// Blocked reports which horizontal axes were zeroed by the last resolution.
	BlockedX, BlockedZ bool
}

// PlayerBBox returns the player's collision box at pos: a vertical box spanning
// [y-height/2, y+height/2] with a horizontal half-extent of radius.
func PlayerBBox(pos mgl32.Vec3, height, radius float32) cube.BBox {
	return game.BBoxFromCenter(pos, mgl32.Vec3{radius * 2, height, radius * 2})
}

// ResolveMovement returns the part of delta the player at pos may perform without entering any
// of the obstacles. The full move is tried first; if it collides, X-only and Z-only moves are
// probed from the starting position and whichever still collides is zeroed, letting the player
// slide along walls. The Y component always passes through.
//
// The probes are independent, so a diagonal move past a convex corner where both single-axis
// moves are clear is accepted even if the diagonal clips the corner.
func ResolveMovement(pos, delta mgl32.Vec3, obstacles []cube.BBox, height, radius float32, s *Scratch) mgl32.Vec3 {
	if s == nil {
		s = &Scratch{}
	}
	s.BlockedX, s.BlockedZ = false, false

	s.Target = pos.Add(delta)
	s.TargetBB = PlayerBBox(s.Target, height, radius)
	if !anyIntersection(s.TargetBB, obstacles) {
		return delta
	}

	s.XOnly = mgl32.Vec3{pos[0] + delta[0], pos[1], pos[2]}
	s.XOnlyBB = PlayerBBox(s.XOnly, height, radius)
	s.BlockedX = anyIntersection(s.XOnlyBB, obstacles)

	s.ZOnly = mgl32.Vec3{pos[0], pos[1], pos[2] + delta[2]}
	s.ZOnlyBB = PlayerBBox(s.ZOnly, height, radius)
	s.BlockedZ = anyIntersection(s.ZOnlyBB, obstacles)

	resolved := delta
	if s.BlockedX {
		resolved[0] = 0
	}
	if s.BlockedZ {
		resolved[2] = 0
	}
	return resolved
}

func anyIntersection(bb cube.BBox, obstacles []cube.BBox) bool {
	for i := range obstacles {
		if game.BBoxIntersects(bb, obstacles[i]) {
			return true
		}
	}
	return false
}
