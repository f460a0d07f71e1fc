package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/game"
	"github.com/oomph-ac/roam/omath"
	"github.com/pelletier/go-toml"
)

const (
	SourceProcedural = "procedural"
	SourceFiles      = "files"
)

// Settings contains everything that can be configured for an exploration session.
type Settings struct {
	World struct {
		// ChunkSize is the side length of a chunk in world units.
		ChunkSize  float32
		LoadRadius int32
		Seed       int64
		// Source is either "procedural" or "files".
		Source   string
		ChunkDir string
		AssetDir string
		// SharedLayout makes every chunk use the layout of chunk (0, 0) when loading from files.
		SharedLayout bool
		LoadWorkers  int
		// MarkerAsset is the texture shown during the pause transition, read from AssetDir.
		// An empty value disables the marker.
		MarkerAsset string
	}
	Player struct {
		Height      float32
		Radius      float32
		EyeHeight   float32
		Speed       float32
		Sensitivity float32
	}
	Camera struct {
		FOVDegrees float32
		Near       float32
		Far        float32
		DepthMode  string
	}
	Sky struct {
		DayLengthSeconds float64
	}
	Loop struct {
		TickRate      float64
		MaxFrameDelta float64
	}
}

// DefaultSettings returns the settings the exploration core ships with.
func DefaultSettings() Settings {
	s := Settings{}
	s.World.ChunkSize = game.ChunkSize
	s.World.LoadRadius = game.ChunkLoadRadius
	s.World.Source = SourceProcedural
	s.World.ChunkDir = "chunks"
	s.World.AssetDir = "assets"
	s.World.LoadWorkers = 2
	s.World.MarkerAsset = "marker"

	s.Player.Height = game.PlayerHeight
	s.Player.Radius = game.PlayerRadius
	s.Player.EyeHeight = game.PlayerEyeHeight
	s.Player.Speed = game.PlayerSpeed
	s.Player.Sensitivity = game.LookSensitivity

	s.Camera.FOVDegrees = 60
	s.Camera.Near = game.DefaultNear
	s.Camera.Far = game.DefaultFar
	s.Camera.DepthMode = omath.DepthZeroToOne.String()

	s.Sky.DayLengthSeconds = game.DayLengthSeconds

	s.Loop.TickRate = 1 / game.FixedTimestep
	return s
}

// Validate returns an error describing the first nonsensical value found.
func (s Settings) Validate() error {
	switch {
	case s.World.ChunkSize <= 0:
		return fmt.Errorf("World.ChunkSize must be positive, got %v", s.World.ChunkSize)
	case s.World.LoadRadius < 0:
		return fmt.Errorf("World.LoadRadius must not be negative, got %d", s.World.LoadRadius)
	case s.World.Source != SourceProcedural && s.World.Source != SourceFiles:
		return fmt.Errorf("World.Source must be %q or %q, got %q", SourceProcedural, SourceFiles, s.World.Source)
	case s.World.Source == SourceFiles && s.World.ChunkDir == "":
		return errors.New("World.ChunkDir is required when loading chunks from files")
	case s.Player.Height <= 0 || s.Player.Radius <= 0:
		return fmt.Errorf("player dimensions must be positive, got height %v radius %v", s.Player.Height, s.Player.Radius)
	case s.Player.EyeHeight <= 0 || s.Player.EyeHeight > s.Player.Height:
		return fmt.Errorf("Player.EyeHeight must be in (0, %v], got %v", s.Player.Height, s.Player.EyeHeight)
	case s.Player.Speed < 0:
		return fmt.Errorf("Player.Speed must not be negative, got %v", s.Player.Speed)
	case s.Camera.FOVDegrees <= 0 || s.Camera.FOVDegrees >= 180:
		return fmt.Errorf("Camera.FOVDegrees must be in (0, 180), got %v", s.Camera.FOVDegrees)
	case s.Camera.Near <= 0 || s.Camera.Near >= s.Camera.Far:
		return fmt.Errorf("camera planes must satisfy 0 < near < far, got near %v far %v", s.Camera.Near, s.Camera.Far)
	case s.Sky.DayLengthSeconds <= 0:
		return fmt.Errorf("Sky.DayLengthSeconds must be positive, got %v", s.Sky.DayLengthSeconds)
	case s.Loop.TickRate <= 0:
		return fmt.Errorf("Loop.TickRate must be positive, got %v", s.Loop.TickRate)
	case s.Loop.MaxFrameDelta < 0:
		return fmt.Errorf("Loop.MaxFrameDelta must not be negative, got %v", s.Loop.MaxFrameDelta)
	}
	if _, ok := omath.ParseDepthMode(s.Camera.DepthMode); !ok {
		return fmt.Errorf("Camera.DepthMode must be %q or %q, got %q", omath.DepthZeroToOne, omath.DepthNegOneToOne, s.Camera.DepthMode)
	}
	return nil
}

// FOV returns the vertical field of view in radians.
func (s Settings) FOV() float32 {
	return mgl32.DegToRad(s.Camera.FOVDegrees)
}

// DepthMode returns the parsed Camera.DepthMode.
func (s Settings) DepthMode() omath.DepthMode {
	mode, _ := omath.ParseDepthMode(s.Camera.DepthMode)
	return mode
}

// FixedTimestep returns the simulation step in seconds.
func (s Settings) FixedTimestep() float64 {
	return 1 / s.Loop.TickRate
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if data, err := toml.Marshal(DefaultSettings()); err != nil {
			return fmt.Errorf("failed encoding default settings: %v", err)
		} else if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed creating settings file: %v", err)
		}
		return nil
	}
	return errors.New("settings file already exists")
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Keys missing from the file keep their default values.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %v", err)
	}

	tree, err := defaultTree()
	if err != nil {
		return Settings{}, err
	}
	overrides, err := toml.LoadBytes(data)
	if err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %v", err)
	}
	for _, section := range overrides.Keys() {
		sub, ok := overrides.Get(section).(*toml.Tree)
		if !ok {
			tree.Set(section, overrides.Get(section))
			continue
		}
		for _, key := range sub.Keys() {
			tree.SetPath([]string{section, key}, sub.Get(key))
		}
	}

	var settings Settings
	if err = tree.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %v", err)
	}
	if err = settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return settings, nil
}

func defaultTree() (*toml.Tree, error) {
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return nil, fmt.Errorf("unable to marshal default settings: %v", err)
	}
	return toml.LoadBytes(data)
}
