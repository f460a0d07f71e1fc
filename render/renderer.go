// Package render describes the graphics backend the simulation draws through.
package render

import "github.com/go-gl/mathgl/mgl32"

// MeshHandle references a mesh created by a Renderer. The zero value is never a valid handle.
type MeshHandle uint32

// TextureHandle references a texture created by a TextureSink. The zero value is never valid.
type TextureHandle uint32

// Renderer is the immediate-mode draw surface. All methods are called from the goroutine
// driving the frame loop.
type Renderer interface {
	BeginFrame()
	EndFrame()
	// DrawMesh draws mesh with the final clip-space transform and a flat colour.
	DrawMesh(mesh MeshHandle, transform mgl32.Mat4, color mgl32.Vec3)
	SetWireframe(enabled bool)

	CreatePlaneMesh(size float32) MeshHandle
	CreateCubeMesh(size float32) MeshHandle
	CreatePyramidMesh(size float32) MeshHandle
	CreatePrismMesh(width, height, depth float32) MeshHandle
	CreateSphereMesh(radius float32, segments int) MeshHandle
}

// LightingSink is implemented by renderers that shade with a directional light.
type LightingSink interface {
	SetLightDirection(direction mgl32.Vec3)
	SetLightColor(color mgl32.Vec3)
	SetAmbientIntensity(intensity float32)
}

// TextureSink is implemented by renderers that can draw textured quads.
type TextureSink interface {
	// LoadTexture uploads encoded image data under assetID.
	LoadTexture(assetID string, data []byte) (TextureHandle, error)
	// DrawTexturedQuad draws a square quad of the given edge size. Passing a handle that was not
	// returned by LoadTexture is a programming error.
	DrawTexturedQuad(texture TextureHandle, transform mgl32.Mat4, size float32)
}

// MeshReleaser is implemented by renderers that free mesh resources explicitly.
type MeshReleaser interface {
	ReleaseMesh(mesh MeshHandle)
}

// Capabilities are the optional interfaces a Renderer was found to implement. Fields are nil
// when the capability is absent.
type Capabilities struct {
	Lighting LightingSink
	Textures TextureSink
	Releaser MeshReleaser
}

// Probe checks r for optional capabilities once, so callers don't type-assert per frame.
func Probe(r Renderer) Capabilities {
	var c Capabilities
	c.Lighting, _ = r.(LightingSink)
	c.Textures, _ = r.(TextureSink)
	c.Releaser, _ = r.(MeshReleaser)
	return c
}
