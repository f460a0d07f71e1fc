package game

import (
	"math/rand"
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

func TestBBoxIntersectsTouching(t *testing.T) {
	a := cube.Box(0, 0, 0, 1, 1, 1)
	b := cube.Box(1, 0, 0, 2, 1, 1)
	if !BBoxIntersects(a, b) {
		t.Fatalf("expected touching boxes to intersect")
	}
	c := cube.Box(1.001, 0, 0, 2, 1, 1)
	if BBoxIntersects(a, c) {
		t.Fatalf("expected separated boxes not to intersect")
	}
}

func TestBBoxIntersectsSymmetric(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	box := func() cube.BBox {
		x, y, z := r.Float32()*10-5, r.Float32()*10-5, r.Float32()*10-5
		return cube.Box(x, y, z, x+r.Float32()*3, y+r.Float32()*3, z+r.Float32()*3)
	}
	for i := 0; i < 2000; i++ {
		a, b := box(), box()
		if BBoxIntersects(a, b) != BBoxIntersects(b, a) {
			t.Fatalf("intersection not symmetric for %v and %v", a, b)
		}
		if !BBoxContains(a, a.Min().Add(a.Max()).Mul(0.5)) {
			t.Fatalf("box %v does not contain its own center", a)
		}
	}
}

func TestBBoxFromCenter(t *testing.T) {
	bb := BBoxFromCenter(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{2, 4, 6})
	if bb.Min() != (mgl32.Vec3{0, 0, 0}) || bb.Max() != (mgl32.Vec3{2, 4, 6}) {
		t.Fatalf("unexpected box %v", bb)
	}
}
