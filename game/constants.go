package game

import "github.com/chewxy/math32"

const (
	ChunkSize       = float32(10)
	ChunkLoadRadius = int32(6)

	PlayerHeight    = float32(1.8)
	PlayerRadius    = float32(0.3)
	PlayerEyeHeight = float32(1.7)
	PlayerSpeed     = float32(5.0)
	LookSensitivity = float32(0.04)

	DefaultFOV  = math32.Pi / 3
	DefaultNear = float32(0.1)
	DefaultFar  = float32(100.0)

	// PitchLimit keeps the look direction away from the poles.
	PitchLimit = math32.Pi/2 - 0.01

	DayLengthSeconds = 120.0

	// FixedTimestep is the canonical simulation tick length in seconds.
	FixedTimestep = 1.0 / 60.0

	TransitionDuration = 1.0
)
