package world

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/oerror"
	"github.com/oomph-ac/roam/render"
)

// MeshKind is the closed set of primitives chunk geometry is built from.
type MeshKind uint8

const (
	MeshPlane MeshKind = iota
	MeshCube
	MeshPyramid
	MeshPrism
	MeshSphere
)

// DefaultSphereSegments is used when a sphere does not specify its tessellation.
const DefaultSphereSegments = 12

// ParseMeshKind ...
func ParseMeshKind(s string) (MeshKind, error) {
	switch strings.ToLower(s) {
	case "plane":
		return MeshPlane, nil
	case "cube":
		return MeshCube, nil
	case "pyramid":
		return MeshPyramid, nil
	case "prism":
		return MeshPrism, nil
	case "sphere":
		return MeshSphere, nil
	}
	return 0, oerror.New("unknown mesh type %q", s)
}

func (k MeshKind) String() string {
	switch k {
	case MeshPlane:
		return "plane"
	case MeshCube:
		return "cube"
	case MeshPyramid:
		return "pyramid"
	case MeshPrism:
		return "prism"
	case MeshSphere:
		return "sphere"
	}
	return "unknown"
}

// PivotOffset is how far above its base position a primitive's centre sits, so that every kind
// rests on the ground when placed at y=0.
func (k MeshKind) PivotOffset(scale mgl32.Vec3) float32 {
	switch k {
	case MeshCube, MeshPrism:
		return scale[1] / 2
	case MeshPyramid:
		return scale[1] * 0.6
	case MeshSphere:
		return scale[0] / 2
	}
	return 0
}

// Extent returns the bounding size of the primitive for a given scale.
func (k MeshKind) Extent(scale mgl32.Vec3) mgl32.Vec3 {
	switch k {
	case MeshPlane:
		return mgl32.Vec3{scale[0], 0, scale[0]}
	case MeshCube, MeshPyramid, MeshSphere:
		return mgl32.Vec3{scale[0], scale[0], scale[0]}
	}
	return scale
}

// DefaultCollidable is whether a kind blocks the player when a descriptor doesn't say.
func (k MeshKind) DefaultCollidable() bool {
	return k != MeshPlane
}

// Create asks r for a mesh of this kind.
func (k MeshKind) Create(r render.Renderer, scale mgl32.Vec3, segments int) render.MeshHandle {
	switch k {
	case MeshPlane:
		return r.CreatePlaneMesh(scale[0])
	case MeshCube:
		return r.CreateCubeMesh(scale[0])
	case MeshPyramid:
		return r.CreatePyramidMesh(scale[0])
	case MeshPrism:
		return r.CreatePrismMesh(scale[0], scale[1], scale[2])
	case MeshSphere:
		if segments <= 0 {
			segments = DefaultSphereSegments
		}
		return r.CreateSphereMesh(scale[0]/2, segments)
	}
	return 0
}
