package game

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// BBoxIntersects reports whether two boxes overlap. Boundaries are closed, so boxes that only
// touch on a face, edge or corner count as intersecting.
func BBoxIntersects(a, b cube.BBox) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	return aMin[0] <= bMax[0] && aMax[0] >= bMin[0] &&
		aMin[1] <= bMax[1] && aMax[1] >= bMin[1] &&
		aMin[2] <= bMax[2] && aMax[2] >= bMin[2]
}

// BBoxContains reports whether v lies inside the box, boundary included.
func BBoxContains(bb cube.BBox, v mgl32.Vec3) bool {
	bbMin, bbMax := bb.Min(), bb.Max()
	return v[0] >= bbMin[0] && v[0] <= bbMax[0] &&
		v[1] >= bbMin[1] && v[1] <= bbMax[1] &&
		v[2] >= bbMin[2] && v[2] <= bbMax[2]
}

// BBoxFromCenter builds a box around center with the given full size.
func BBoxFromCenter(center, size mgl32.Vec3) cube.BBox {
	h := size.Mul(0.5)
	return cube.Box(
		center[0]-h[0], center[1]-h[1], center[2]-h[2],
		center[0]+h[0], center[1]+h[1], center[2]+h[2],
	)
}
