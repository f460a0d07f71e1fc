package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/render"
)

func TestChunkCoordsOf(t *testing.T) {
	cases := []struct {
		pos  mgl32.Vec3
		want ChunkPos
	}{
		{mgl32.Vec3{0, 0, 0}, ChunkPos{0, 0}},
		{mgl32.Vec3{4.9, 0, -5.1}, ChunkPos{0, -1}},
		{mgl32.Vec3{5, 0, -5}, ChunkPos{1, 0}},
		{mgl32.Vec3{-15.1, 100, 14.9}, ChunkPos{-2, 1}},
	}
	for _, c := range cases {
		if got := ChunkCoordsOf(c.pos, 10); got != c.want {
			t.Fatalf("expected %v for %v, got %v", c.want, c.pos, got)
		}
	}
}

func TestChunksInRadius(t *testing.T) {
	got := ChunksInRadius(nil, ChunkPos{3, -2}, 2)
	if len(got) != 25 {
		t.Fatalf("expected 25 chunks, got %d", len(got))
	}
	seen := make(map[ChunkPos]bool)
	for _, p := range got {
		if seen[p] {
			t.Fatalf("chunk %v listed twice", p)
		}
		seen[p] = true
		if !InRadius(p, ChunkPos{3, -2}, 2) {
			t.Fatalf("chunk %v outside radius", p)
		}
	}
	if InRadius(ChunkPos{6, -2}, ChunkPos{3, -2}, 2) {
		t.Fatalf("expected (6,-2) to be outside radius 2 of (3,-2)")
	}
	if n := len(ChunksInRadius(nil, ChunkPos{}, 0)); n != 1 {
		t.Fatalf("expected radius 0 to yield one chunk, got %d", n)
	}
}

func TestChunkPosID(t *testing.T) {
	if id := (ChunkPos{-3, 7}).ID(); id != "-3,7" {
		t.Fatalf("expected id -3,7, got %s", id)
	}
	if c := (ChunkPos{2, -1}).Center(10); c != (mgl32.Vec3{20, 0, -10}) {
		t.Fatalf("expected centre (20,0,-10), got %v", c)
	}
}

func TestEmptyChunk(t *testing.T) {
	r := render.NewNullRenderer()
	c := EmptyChunk(ChunkPos{1, 0}, 10, r)
	if !c.Fallback || c.ID != "1,0" {
		t.Fatalf("expected fallback chunk 1,0, got %+v", c)
	}
	if len(c.Meshes) != 1 || c.Meshes[0].Kind != MeshPlane || c.Meshes[0].Collidable {
		t.Fatalf("expected a single non-collidable plane, got %+v", c.Meshes)
	}
	if kind, _ := r.MeshKind(c.Meshes[0].Mesh); kind != "plane" {
		t.Fatalf("expected renderer plane mesh, got %q", kind)
	}
	if p := c.Meshes[0].Position(); p != (mgl32.Vec3{10, 0, 0}) {
		t.Fatalf("expected plane at chunk centre, got %v", p)
	}
	min, max := c.Bounds.Min(), c.Bounds.Max()
	if min[1] != -1 || max[1] != 5 || min[0] != 5 || max[0] != 15 {
		t.Fatalf("unexpected bounds %v %v", min, max)
	}
}

func TestStaticMeshBBox(t *testing.T) {
	m := StaticMesh{
		Transform: mgl32.Translate3D(3, 1, -2),
		Size:      mgl32.Vec3{2, 2, 4},
	}
	if p := m.Position(); p != (mgl32.Vec3{3, 1, -2}) {
		t.Fatalf("expected position (3, 1, -2), got %v", p)
	}
	bb := m.BBox()
	if bb.Min() != (mgl32.Vec3{2, 0, -4}) || bb.Max() != (mgl32.Vec3{4, 2, 0}) {
		t.Fatalf("unexpected mesh box %v", bb)
	}
}
