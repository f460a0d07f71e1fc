package world

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/render"
)

const sampleDescriptor = `{
	"version": 1,
	"id": "sample",
	"bounds": [-5, -1, -5, 5, 5, 5],
	"meshes": [
		{"type": "plane", "scale": 10, "color": [0.5, 0, 0.5]},
		{"type": "cube", "pos": [2, 0, -1], "scale": 2, "color": [1, 0, 0]},
		{"type": "prism", "pos": [-2, 0, 2], "scale": [1, 3]},
		{"type": "sphere", "pos": [0, 0, 3], "scale": 1.5, "segments": 16, "collidable": false},
		{"type": "torus", "pos": [1, 0, 1], "color": [2, -1, 0.5]}
	]
}`

func TestDecodeDescriptor(t *testing.T) {
	d, err := DecodeDescriptor([]byte(sampleDescriptor), nil)
	if err != nil {
		t.Fatalf("expected descriptor to decode, got %v", err)
	}
	if d.ID != "sample" || d.Version != 1 || len(d.Meshes) != 5 {
		t.Fatalf("unexpected descriptor %+v", d)
	}
	if v := d.Meshes[0].Scale.Vec(); v != (mgl32.Vec3{10, 10, 10}) {
		t.Fatalf("expected uniform scale 10, got %v", v)
	}
	if v := d.Meshes[2].Scale.Vec(); v != (mgl32.Vec3{1, 3, 1}) {
		t.Fatalf("expected prism scale (1,3,1), got %v", v)
	}
	if v := d.Meshes[4].Scale.Vec(); v != (mgl32.Vec3{1, 1, 1}) {
		t.Fatalf("expected missing scale to default to 1, got %v", v)
	}
}

func TestDecodeDescriptorErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":    `{"version": 1,`,
		"version":   `{"id": "a", "bounds": [0,0,0,1,1,1], "meshes": []}`,
		"id":        `{"version": 1, "bounds": [0,0,0,1,1,1], "meshes": []}`,
		"bounds":    `{"version": 1, "id": "a", "bounds": [0,0,0], "meshes": []}`,
		"meshes":    `{"version": 1, "id": "a", "bounds": [0,0,0,1,1,1]}`,
		"bad scale": `{"version": 1, "id": "a", "bounds": [0,0,0,1,1,1], "meshes": [{"type": "cube", "scale": "big"}]}`,
	}
	for name, data := range cases {
		if _, err := DecodeDescriptor([]byte(data), nil); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestDecodeDescriptorVersionMismatch(t *testing.T) {
	data := strings.Replace(sampleDescriptor, `"version": 1`, `"version": 7`, 1)
	d, err := DecodeDescriptor([]byte(data), nil)
	if err != nil {
		t.Fatalf("expected version mismatch to only warn, got %v", err)
	}
	if d.Version != 7 {
		t.Fatalf("expected version 7 to be kept, got %d", d.Version)
	}
}

func TestBuildChunk(t *testing.T) {
	d, err := DecodeDescriptor([]byte(sampleDescriptor), nil)
	if err != nil {
		t.Fatal(err)
	}
	r := render.NewNullRenderer()
	c := BuildChunk(d, ChunkPos{1, -1}, 10, r, nil)

	if c.ID != "1,-1" || c.Fallback {
		t.Fatalf("unexpected chunk %+v", c)
	}
	if len(c.Meshes) != 5 || r.LiveMeshes() != 5 {
		t.Fatalf("expected 5 meshes, got %d (renderer %d)", len(c.Meshes), r.LiveMeshes())
	}
	if min := c.Bounds.Min(); min != (mgl32.Vec3{5, -1, -15}) {
		t.Fatalf("expected bounds relative to chunk centre, got %v", min)
	}

	cubeMesh := c.Meshes[1]
	if p := cubeMesh.Position(); p != (mgl32.Vec3{12, 1, -11}) {
		t.Fatalf("expected cube resting on ground at (12,1,-11), got %v", p)
	}
	if !cubeMesh.Collidable || cubeMesh.Color != (mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("unexpected cube %+v", cubeMesh)
	}
	if box := cubeMesh.BBox(); box.Min()[1] != 0 || box.Max()[1] != 2 {
		t.Fatalf("expected cube box from y=0 to y=2, got %v %v", box.Min(), box.Max())
	}

	if c.Meshes[0].Collidable {
		t.Fatalf("expected plane to be walkable")
	}
	if c.Meshes[3].Collidable {
		t.Fatalf("expected explicit collidable=false to be honoured")
	}

	substitute := c.Meshes[4]
	if substitute.Kind != MeshCube {
		t.Fatalf("expected unknown type to become a cube, got %v", substitute.Kind)
	}
	if substitute.Color != (mgl32.Vec3{1, 0, 0.5}) {
		t.Fatalf("expected colour clamped to (1,0,0.5), got %v", substitute.Color)
	}
	if kind, _ := r.MeshKind(c.Meshes[3].Mesh); kind != "sphere" {
		t.Fatalf("expected sphere mesh, got %q", kind)
	}
}

func TestEncodeDescriptorScale(t *testing.T) {
	d := &Descriptor{
		Version: SchemaVersion,
		ID:      "scales",
		Meshes: []MeshDescriptor{
			{Type: "cube", Scale: Scale{V: mgl32.Vec3{2, 2, 2}, Set: true}},
			{Type: "prism", Scale: Scale{V: mgl32.Vec3{1, 3, 1}, Set: true}},
		},
	}
	data, err := EncodeDescriptor(d)
	if err != nil {
		t.Fatal(err)
	}
	var generic struct {
		Meshes []struct {
			Scale json.RawMessage `json:"scale"`
		} `json:"meshes"`
	}
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatal(err)
	}
	if s := string(generic.Meshes[0].Scale); s != "2" {
		t.Fatalf("expected uniform scale written as a number, got %s", s)
	}
	if s := string(generic.Meshes[1].Scale); s != "[1,3,1]" {
		t.Fatalf("expected per-axis scale written as an array, got %s", s)
	}
}

func TestMeshKind(t *testing.T) {
	if k, err := ParseMeshKind("Pyramid"); err != nil || k != MeshPyramid {
		t.Fatalf("expected pyramid, got %v %v", k, err)
	}
	if _, err := ParseMeshKind("torus"); err == nil {
		t.Fatalf("expected unknown kind to fail")
	}
	if off := MeshPyramid.PivotOffset(mgl32.Vec3{2, 2, 2}); off != 1.2 {
		t.Fatalf("expected pyramid pivot 1.2, got %v", off)
	}
	if off := MeshSphere.PivotOffset(mgl32.Vec3{3, 3, 3}); off != 1.5 {
		t.Fatalf("expected sphere pivot 1.5, got %v", off)
	}
	if e := MeshPlane.Extent(mgl32.Vec3{10, 1, 10}); e != (mgl32.Vec3{10, 0, 10}) {
		t.Fatalf("expected flat plane extent, got %v", e)
	}
	if e := MeshPrism.Extent(mgl32.Vec3{1, 3, 2}); e != (mgl32.Vec3{1, 3, 2}) {
		t.Fatalf("expected prism extent to follow scale, got %v", e)
	}
}
