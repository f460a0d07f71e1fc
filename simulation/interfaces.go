package simulation

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/world"
)

// Streamer provides the world geometry around the player. *world.World implements it.
type Streamer interface {
	UpdateActiveChunks(playerPos mgl32.Vec3)
	// Poll applies finished chunk loads.
	Poll() int
	VisibleMeshes() []world.StaticMesh
	CollidableBBoxes() []cube.BBox
	ActiveChunks() int
	PendingLoads() int
}

var _ Streamer = (*world.World)(nil)
