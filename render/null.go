package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/assert"
	"github.com/oomph-ac/roam/oerror"
)

// NullRenderer draws nothing. It hands out real handles, validates them on use and keeps
// counters, which makes it the renderer of choice for headless runs and tests.
type NullRenderer struct {
	nextMesh    MeshHandle
	nextTexture TextureHandle

	meshes   map[MeshHandle]string
	textures map[TextureHandle]string

	Frames    int
	InFrame   bool
	Wireframe bool

	// Per-frame counters, reset by BeginFrame.
	MeshDraws    int
	TexturedDraw int

	LightDirection   mgl32.Vec3
	LightColor       mgl32.Vec3
	AmbientIntensity float32

	Released int
}

// NewNullRenderer ...
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		meshes:   make(map[MeshHandle]string),
		textures: make(map[TextureHandle]string),
	}
}

func (r *NullRenderer) BeginFrame() {
	assert.IsTrue(!r.InFrame, "BeginFrame called twice without EndFrame")
	r.InFrame = true
	r.MeshDraws, r.TexturedDraw = 0, 0
}

func (r *NullRenderer) EndFrame() {
	assert.IsTrue(r.InFrame, "EndFrame called without BeginFrame")
	r.InFrame = false
	r.Frames++
}

func (r *NullRenderer) DrawMesh(mesh MeshHandle, _ mgl32.Mat4, _ mgl32.Vec3) {
	_, ok := r.meshes[mesh]
	assert.IsTrue(ok, "unknown mesh handle %d", mesh)
	r.MeshDraws++
}

func (r *NullRenderer) SetWireframe(enabled bool) {
	r.Wireframe = enabled
}

func (r *NullRenderer) CreatePlaneMesh(float32) MeshHandle         { return r.create("plane") }
func (r *NullRenderer) CreateCubeMesh(float32) MeshHandle          { return r.create("cube") }
func (r *NullRenderer) CreatePyramidMesh(float32) MeshHandle       { return r.create("pyramid") }
func (r *NullRenderer) CreatePrismMesh(_, _, _ float32) MeshHandle { return r.create("prism") }
func (r *NullRenderer) CreateSphereMesh(float32, int) MeshHandle   { return r.create("sphere") }

func (r *NullRenderer) create(kind string) MeshHandle {
	r.nextMesh++
	r.meshes[r.nextMesh] = kind
	return r.nextMesh
}

// MeshKind returns the primitive a handle was created as.
func (r *NullRenderer) MeshKind(mesh MeshHandle) (string, bool) {
	kind, ok := r.meshes[mesh]
	return kind, ok
}

// TextureAsset returns the asset ID a texture handle was loaded from.
func (r *NullRenderer) TextureAsset(texture TextureHandle) (string, bool) {
	id, ok := r.textures[texture]
	return id, ok
}

// LiveMeshes is the number of meshes created and not yet released.
func (r *NullRenderer) LiveMeshes() int {
	return len(r.meshes)
}

func (r *NullRenderer) ReleaseMesh(mesh MeshHandle) {
	if _, ok := r.meshes[mesh]; ok {
		delete(r.meshes, mesh)
		r.Released++
	}
}

func (r *NullRenderer) SetLightDirection(direction mgl32.Vec3) { r.LightDirection = direction }
func (r *NullRenderer) SetLightColor(color mgl32.Vec3)         { r.LightColor = color }
func (r *NullRenderer) SetAmbientIntensity(intensity float32)  { r.AmbientIntensity = intensity }

func (r *NullRenderer) LoadTexture(assetID string, data []byte) (TextureHandle, error) {
	if len(data) == 0 {
		return 0, oerror.New("texture %q has no data", assetID)
	}
	r.nextTexture++
	r.textures[r.nextTexture] = assetID
	return r.nextTexture, nil
}

func (r *NullRenderer) DrawTexturedQuad(texture TextureHandle, _ mgl32.Mat4, _ float32) {
	_, ok := r.textures[texture]
	assert.IsTrue(ok, "unknown texture handle %d", texture)
	r.TexturedDraw++
}
