package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestProbe(t *testing.T) {
	caps := Probe(NewNullRenderer())
	if caps.Lighting == nil || caps.Textures == nil || caps.Releaser == nil {
		t.Fatalf("expected null renderer to expose every capability, got %+v", caps)
	}

	var bare struct{ Renderer }
	caps = Probe(bare)
	if caps.Lighting != nil || caps.Textures != nil || caps.Releaser != nil {
		t.Fatalf("expected no capabilities, got %+v", caps)
	}
}

func TestNullRendererRejectsUnknownHandles(t *testing.T) {
	r := NewNullRenderer()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected drawing an unknown mesh handle to panic")
		}
	}()
	r.DrawMesh(42, mgl32.Ident4(), mgl32.Vec3{})
}

func TestNullRendererRejectsUnknownTexture(t *testing.T) {
	r := NewNullRenderer()
	if _, err := r.LoadTexture("marker", nil); err == nil {
		t.Fatalf("expected empty texture data to fail")
	}
	h, err := r.LoadTexture("marker", []byte{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.DrawTexturedQuad(h, mgl32.Ident4(), 1)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected drawing an unknown texture handle to panic")
		}
	}()
	r.DrawTexturedQuad(h+1, mgl32.Ident4(), 1)
}

func TestNullRendererCounters(t *testing.T) {
	r := NewNullRenderer()
	cube := r.CreateCubeMesh(1)
	plane := r.CreatePlaneMesh(10)
	if kind, _ := r.MeshKind(plane); kind != "plane" {
		t.Fatalf("expected plane, got %q", kind)
	}

	r.BeginFrame()
	r.DrawMesh(cube, mgl32.Ident4(), mgl32.Vec3{1, 0, 0})
	r.DrawMesh(plane, mgl32.Ident4(), mgl32.Vec3{0, 1, 0})
	r.EndFrame()
	if r.MeshDraws != 2 || r.Frames != 1 {
		t.Fatalf("expected 2 draws in 1 frame, got %d draws %d frames", r.MeshDraws, r.Frames)
	}

	r.ReleaseMesh(cube)
	r.ReleaseMesh(cube)
	if r.LiveMeshes() != 1 || r.Released != 1 {
		t.Fatalf("expected one live mesh after release, got live=%d released=%d", r.LiveMeshes(), r.Released)
	}
}
