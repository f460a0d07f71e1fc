// Package celestial derives sun, moon and sky lighting from simulation time.
package celestial

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/omath"
)

var (
	HorizonTint = mgl32.Vec3{1.0, 0.6, 0.3}
	ZenithTint  = mgl32.Vec3{1.0, 0.98, 0.92}
	NightTint   = mgl32.Vec3{0.25, 0.3, 0.5}
)

const (
	ambientFloor = float32(0.1)
	ambientRange = float32(0.4)
)

// Lighting is the sky state at one instant. It carries no hidden state: equal inputs to
// Compute always produce equal values.
type Lighting struct {
	// TimeOfDay is in [0, 1).
	TimeOfDay float32
	// Elevation is the sine of the sun's angle above the horizon, in [-1, 1].
	Elevation float32
	Azimuth   float32

	// SunDirection points from the observer towards the sun.
	SunDirection mgl32.Vec3
	// LightDirection points towards whichever body is lighting the scene.
	LightDirection mgl32.Vec3

	SunPosition  mgl32.Vec3
	MoonPosition mgl32.Vec3

	SunVisibility  float32
	MoonVisibility float32

	Color   mgl32.Vec3
	Ambient float32
}

// TimeOfDay maps simulation time onto [0, 1) for a day of dayLength seconds.
func TimeOfDay(simulationTime, dayLength float64) float32 {
	if dayLength <= 0 {
		return 0
	}
	tod := float32(omath.FloorMod(simulationTime, dayLength) / dayLength)
	// Values just under one can round up when narrowed to float32.
	if tod >= 1 {
		tod = 0
	}
	return tod
}

// Compute returns the lighting at simulationTime for an observer at playerPos. Celestial bodies
// are placed one unit inside the far clip plane.
func Compute(simulationTime float64, playerPos mgl32.Vec3, far float32, dayLength float64) Lighting {
	var l Lighting
	l.TimeOfDay = TimeOfDay(simulationTime, dayLength)

	angle := float64(l.TimeOfDay) * 2 * math.Pi
	l.Elevation = float32(math.Sin(angle))
	l.Azimuth = float32(math.Pi/2 + angle)
	l.SunDirection = Direction(l.Elevation, l.Azimuth)

	l.SunVisibility = SunVisibility(l.TimeOfDay)
	l.MoonVisibility = 1 - l.SunVisibility

	distance := far - 1
	l.SunPosition = playerPos.Add(l.SunDirection.Mul(distance))
	l.MoonPosition = playerPos.Sub(l.SunDirection.Mul(distance))

	l.LightDirection = l.SunDirection
	if l.Elevation < 0 {
		l.LightDirection = l.SunDirection.Mul(-1)
	}

	l.Color = LightColor(l.Elevation)
	l.Ambient = AmbientIntensity(l.Elevation)
	return l
}

// Direction converts an elevation (sine of the altitude angle) and an azimuth into a unit vector.
func Direction(elevation, azimuth float32) mgl32.Vec3 {
	e := omath.Clamp(elevation, -1, 1)
	horizontal := math32.Sqrt(1 - e*e)
	dir := mgl32.Vec3{
		horizontal * math32.Cos(azimuth),
		e,
		horizontal * math32.Sin(azimuth),
	}
	return omath.SafeNormalize(dir, omath.Up)
}

// SunVisibility is a triangular fade peaking at timeOfDay 0.5 and reaching zero at 0 and 1.
func SunVisibility(timeOfDay float32) float32 {
	return omath.Clamp(1-math32.Abs(timeOfDay-0.5)/0.5, 0, 1)
}

// LightColor blends from the horizon tint to the zenith tint as the sun rises. Below the horizon
// the night tint is used instead.
func LightColor(elevation float32) mgl32.Vec3 {
	if elevation < 0 {
		return NightTint
	}
	t := omath.Smoothstep(0, 1, omath.Clamp(elevation, 0, 1))
	return HorizonTint.Add(ZenithTint.Sub(HorizonTint).Mul(t))
}

// AmbientIntensity is 0.1 + 0.4·cos⁴(e·π/2) above the horizon and a flat 0.1 below it.
func AmbientIntensity(elevation float32) float32 {
	if elevation < 0 {
		return ambientFloor
	}
	c := math32.Cos(omath.Clamp(elevation, 0, 1) * math32.Pi / 2)
	return ambientFloor + ambientRange*c*c*c*c
}

// FormatTimeOfDay renders timeOfDay as "0.50 (01:00)", reading the day length in seconds as
// hours:minutes of a compressed clock.
func FormatTimeOfDay(timeOfDay float32, dayLength float64) string {
	total := float64(timeOfDay) * dayLength
	hours := int(math.Floor(total / 60))
	minutes := int(math.Floor(math.Mod(total, 60)))
	return fmt.Sprintf("%.2f (%02d:%02d)", timeOfDay, hours, minutes)
}
