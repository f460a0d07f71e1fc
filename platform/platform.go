// Package platform holds the clock and input capabilities a host provides to the frame loop,
// along with stub implementations for headless runs.
package platform

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/render"
)

// Clock measures wall time between frames.
type Clock interface {
	Update()
	// DeltaTime is the time in seconds between the last two calls to Update.
	DeltaTime() float64
}

// Intent is the player's input for one frame. Move and look axes are normalized to roughly
// [-1, 1]. The toggles are edge triggered: they are true for exactly one frame.
type Intent struct {
	// Move holds strafe (X) and forward (Y) input.
	Move mgl32.Vec2
	Look struct {
		Yaw, Pitch float32
	}

	ToggleCamera    bool
	ToggleDebugHUD  bool
	ToggleWireframe bool
	Pause           bool
}

// HasMove reports whether the intent carries any horizontal movement.
func (i Intent) HasMove() bool {
	return i.Move[0] != 0 || i.Move[1] != 0
}

// ClearToggles resets every edge-triggered flag.
func (i *Intent) ClearToggles() {
	i.ToggleCamera, i.ToggleDebugHUD, i.ToggleWireframe, i.Pause = false, false, false, false
}

// Input produces one Intent per frame.
type Input interface {
	Update()
	Intent() Intent
}

// Platform bundles the capabilities a host supplies.
type Platform struct {
	Renderer    render.Renderer
	Clock       Clock
	Input       Input
	AspectRatio func() float32
}

// NewStub returns a headless platform: a null renderer, a fixed 60 Hz clock and scripted input.
func NewStub() Platform {
	return Platform{
		Renderer:    render.NewNullRenderer(),
		Clock:       NewStubClock(),
		Input:       NewStubInput(),
		AspectRatio: func() float32 { return 16.0 / 9.0 },
	}
}
