package simulation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/celestial"
	"github.com/oomph-ac/roam/omath"
	"github.com/samber/lo"
)

const belowHorizon = "Below Horizon"

// DebugInfo returns an ordered snapshot of the values shown on the debug HUD.
func (l *Loop) DebugInfo() *orderedmap.OrderedMap[string, string] {
	s := l.state
	cam := s.Camera
	light := celestial.Compute(s.SimulationTime, cam.Position, cam.Far, l.opts.DayLength)

	info := orderedmap.NewOrderedMap[string, string]()
	info.Set("position", formatVec(cam.Position))
	info.Set("facing", formatVec(cam.LookDirection()))
	info.Set("mode", s.Mode.String()+"/"+s.CameraMode.String())
	info.Set("light direction", formatVec(light.LightDirection))
	info.Set("sun", lo.Ternary(light.Elevation >= 0, formatVec(light.SunPosition), belowHorizon))
	info.Set("moon", lo.Ternary(light.Elevation <= 0, formatVec(light.MoonPosition), belowHorizon))
	info.Set("time of day", celestial.FormatTimeOfDay(light.TimeOfDay, l.opts.DayLength))
	info.Set("chunks", strconv.Itoa(l.world.ActiveChunks()))
	info.Set("pending loads", strconv.Itoa(l.world.PendingLoads()))
	mean, peak, dev := l.FrameTimeStats()
	info.Set("frame time", fmt.Sprintf("%.2fms", mean*1000))
	info.Set("frame time max", fmt.Sprintf("%.2fms", peak*1000))
	info.Set("frame time deviation", fmt.Sprintf("%.2fms", dev*1000))
	return info
}

// AverageFrameTime is the mean of the recorded frame times in seconds.
func (l *Loop) AverageFrameTime() float64 {
	mean, _, _ := l.FrameTimeStats()
	return mean
}

// FrameTimeStats returns the mean, the longest and the standard deviation of the recorded frame
// times in seconds. All three are zero before the first frame.
func (l *Loop) FrameTimeStats() (mean, peak, deviation float64) {
	if l.frameTimes.Len() == 0 {
		return 0, 0, 0
	}
	times := l.frameTimes.Slice(make([]float64, 0, l.frameTimes.Len()))
	return omath.Mean(times), omath.Max(times), omath.StandardDeviation(times)
}

// FormatDebugInfo converts debug info to a single line.
func FormatDebugInfo(info *orderedmap.OrderedMap[string, string]) string {
	var b strings.Builder
	b.WriteByte('[')
	for el := info.Front(); el != nil; el = el.Next() {
		if b.Len() > 1 {
			b.WriteByte(' ')
		}
		b.WriteString(el.Key)
		b.WriteByte('=')
		b.WriteString(el.Value)
	}
	b.WriteByte(']')
	return b.String()
}

func formatVec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}
