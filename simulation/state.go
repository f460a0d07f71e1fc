package simulation

import "github.com/oomph-ac/roam/camera"

// Mode is the top-level state of the loop.
type Mode uint8

const (
	// ModeActive applies look, movement and time advancement every tick.
	ModeActive Mode = iota
	// ModePaused freezes the player and the sky. Only the transition and pitch easing run.
	ModePaused
)

func (m Mode) String() string {
	if m == ModePaused {
		return "paused"
	}
	return "active"
}

// CameraMode selects how movement input is applied.
type CameraMode uint8

const (
	// CameraWalk moves on the ground plane at eye height.
	CameraWalk CameraMode = iota
	// CameraFly moves along the full look direction with no height pinning.
	CameraFly
)

func (m CameraMode) String() string {
	if m == CameraFly {
		return "fly"
	}
	return "walk"
}

// State is everything a tick mutates.
type State struct {
	Camera camera.Camera

	// SimulationTime is the sum of every Active tick's timestep, in seconds.
	SimulationTime float64
	// Accumulator holds wall time not yet consumed by a tick. It stays below one timestep
	// between Update calls.
	Accumulator float64
	Ticks       uint64

	Mode       Mode
	CameraMode CameraMode

	// Transition moves towards 1 while paused and towards 0 while active.
	Transition float32

	DebugHUD  bool
	Wireframe bool
}
