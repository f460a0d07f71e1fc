package world

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/game"
	"github.com/oomph-ac/roam/omath"
	"github.com/oomph-ac/roam/render"
)

// ChunkPos is the integer coordinate of a chunk on the XZ plane.
type ChunkPos [2]int32

// X ...
func (p ChunkPos) X() int32 { return p[0] }

// Z ...
func (p ChunkPos) Z() int32 { return p[1] }

// ID returns the textual chunk key, "x,z".
func (p ChunkPos) ID() string {
	return fmt.Sprintf("%d,%d", p[0], p[1])
}

func (p ChunkPos) String() string {
	return p.ID()
}

// Center returns the world-space centre of the chunk on the ground plane.
func (p ChunkPos) Center(size float32) mgl32.Vec3 {
	return mgl32.Vec3{float32(p[0]) * size, 0, float32(p[1]) * size}
}

// ChunkCoordsOf returns the chunk containing pos. Chunk (0, 0) is centred on the origin, so
// each axis maps through floor((v + size/2) / size).
func ChunkCoordsOf(pos mgl32.Vec3, size float32) ChunkPos {
	return ChunkPos{
		int32(math32.Floor((pos[0] + size/2) / size)),
		int32(math32.Floor((pos[2] + size/2) / size)),
	}
}

// ChunksInRadius appends the square neighbourhood [center-radius, center+radius]² to dst and
// returns it.
func ChunksInRadius(dst []ChunkPos, center ChunkPos, radius int32) []ChunkPos {
	for x := center[0] - radius; x <= center[0]+radius; x++ {
		for z := center[1] - radius; z <= center[1]+radius; z++ {
			dst = append(dst, ChunkPos{x, z})
		}
	}
	return dst
}

// InRadius reports whether pos lies in the square neighbourhood of center.
func InRadius(pos, center ChunkPos, radius int32) bool {
	dx, dz := pos[0]-center[0], pos[1]-center[1]
	return dx >= -radius && dx <= radius && dz >= -radius && dz <= radius
}

// StaticMesh is a piece of immutable chunk geometry.
type StaticMesh struct {
	Mesh render.MeshHandle
	Kind MeshKind
	// Transform is translation only.
	Transform mgl32.Mat4
	Color     mgl32.Vec3
	// Size is the extent of the mesh along each axis, used for its bounding box.
	Size mgl32.Vec3
	// Collidable marks meshes the player cannot walk through.
	Collidable bool
}

// Position returns the translation of the mesh.
func (m StaticMesh) Position() mgl32.Vec3 {
	return omath.ExtractTranslation(m.Transform)
}

// BBox returns the axis-aligned box the mesh occupies.
func (m StaticMesh) BBox() cube.BBox {
	return game.BBoxFromCenter(m.Position(), m.Size)
}

// Chunk is a square cell of world geometry, the unit of streaming.
type Chunk struct {
	ID     string
	Pos    ChunkPos
	Bounds cube.BBox
	Meshes []StaticMesh

	// Fallback is set on chunks substituted for a failed or missing load.
	Fallback bool
}
