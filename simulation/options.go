package simulation

import (
	"github.com/oomph-ac/roam/game"
	"github.com/oomph-ac/roam/omath"
	"github.com/oomph-ac/roam/settings"
)

// Options define loop timing and player behaviour.
type Options struct {
	// FixedTimestep is the length of one simulation tick in seconds.
	FixedTimestep float64
	// MaxFrameDelta caps the wall time a single Update call may account for. Zero disables it.
	MaxFrameDelta float64

	Sensitivity  float32
	Speed        float32
	PlayerHeight float32
	PlayerRadius float32
	EyeHeight    float32

	FOV       float32
	Near      float32
	Far       float32
	DepthMode omath.DepthMode

	DayLength          float64
	TransitionDuration float64
	// PitchEaseRate is the fraction of the remaining pitch removed per second while paused.
	PitchEaseRate float32

	// FrameHistory is the number of frame times kept for the debug average.
	FrameHistory int
	// MarkerTexture is drawn in front of the camera while the pause transition is in progress,
	// when the renderer supports textures. Nil disables it.
	MarkerTexture []byte
	// MarkerAsset is the asset ID the marker texture is registered under.
	MarkerAsset string

	// Debugf receives per-tick trace logs for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// DefaultOptions ...
func DefaultOptions() Options {
	return Options{
		FixedTimestep:      game.FixedTimestep,
		Sensitivity:        game.LookSensitivity,
		Speed:              game.PlayerSpeed,
		PlayerHeight:       game.PlayerHeight,
		PlayerRadius:       game.PlayerRadius,
		EyeHeight:          game.PlayerEyeHeight,
		FOV:                game.DefaultFOV,
		Near:               game.DefaultNear,
		Far:                game.DefaultFar,
		DepthMode:          omath.DepthZeroToOne,
		DayLength:          game.DayLengthSeconds,
		TransitionDuration: game.TransitionDuration,
		PitchEaseRate:      4,
		FrameHistory:       120,
		MarkerAsset:        "marker",
	}
}

// OptionsFromSettings builds loop options from a validated settings document.
func OptionsFromSettings(s settings.Settings) Options {
	opts := DefaultOptions()
	opts.FixedTimestep = s.FixedTimestep()
	opts.MaxFrameDelta = s.Loop.MaxFrameDelta
	opts.MarkerAsset = s.World.MarkerAsset
	opts.Sensitivity = s.Player.Sensitivity
	opts.Speed = s.Player.Speed
	opts.PlayerHeight = s.Player.Height
	opts.PlayerRadius = s.Player.Radius
	opts.EyeHeight = s.Player.EyeHeight
	opts.FOV = s.FOV()
	opts.Near = s.Camera.Near
	opts.Far = s.Camera.Far
	opts.DepthMode = s.DepthMode()
	opts.DayLength = s.Sky.DayLengthSeconds
	return opts
}

func (o Options) debugf(format string, args ...any) {
	if o.Debugf != nil {
		o.Debugf(format, args...)
	}
}
