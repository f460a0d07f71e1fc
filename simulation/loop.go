// Package simulation drives the fixed-timestep update and the per-frame render pass.
package simulation

import (
	"cmp"
	"io"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/camera"
	"github.com/oomph-ac/roam/celestial"
	"github.com/oomph-ac/roam/movement"
	"github.com/oomph-ac/roam/omath"
	"github.com/oomph-ac/roam/platform"
	"github.com/oomph-ac/roam/render"
	"github.com/oomph-ac/roam/utils"
)

const (
	sunRadius      = float32(4)
	moonRadius     = float32(3)
	bodySegments   = 16
	markerDistance = float32(2)
	markerSize     = float32(0.5)
)

var (
	sunColor  = mgl32.Vec3{1, 0.95, 0.7}
	moonColor = mgl32.Vec3{0.8, 0.85, 1}
)

// Loop owns the simulation state. Every method must be called from the same goroutine.
type Loop struct {
	opts   Options
	logger *slog.Logger

	renderer render.Renderer
	caps     render.Capabilities
	clock    platform.Clock
	input    platform.Input
	aspect   func() float32

	world Streamer
	state State

	// toggles carries edge-triggered flags from frames that ran no tick to the next tick.
	toggles platform.Intent

	scratch    movement.Scratch
	mvp        mgl32.Mat4
	lighting   celestial.Lighting
	frameTimes *utils.CircularQueue[float64]

	sunMesh, moonMesh render.MeshHandle
	marker            render.TextureHandle
	hasMarker         bool
}

// New creates a loop rendering to p.Renderer and reading p.Input and p.Clock. The camera starts
// at eye height on the origin.
func New(p platform.Platform, world Streamer, opts Options, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.FixedTimestep <= 0 {
		opts.FixedTimestep = DefaultOptions().FixedTimestep
	}
	if opts.FrameHistory <= 0 {
		opts.FrameHistory = 1
	}
	aspect := p.AspectRatio
	if aspect == nil {
		aspect = func() float32 { return 1 }
	}

	l := &Loop{
		opts:       opts,
		logger:     logger,
		renderer:   p.Renderer,
		caps:       render.Probe(p.Renderer),
		clock:      p.Clock,
		input:      p.Input,
		aspect:     aspect,
		world:      world,
		frameTimes: utils.NewCircularQueue[float64](opts.FrameHistory),
	}
	l.state.Camera = camera.New()
	l.state.Camera.Position[1] = opts.EyeHeight
	l.state.Camera.FOV, l.state.Camera.Near, l.state.Camera.Far = opts.FOV, opts.Near, opts.Far

	l.sunMesh = p.Renderer.CreateSphereMesh(sunRadius, bodySegments)
	l.moonMesh = p.Renderer.CreateSphereMesh(moonRadius, bodySegments)
	if len(opts.MarkerTexture) > 0 && l.caps.Textures != nil {
		tex, err := l.caps.Textures.LoadTexture(cmp.Or(opts.MarkerAsset, "marker"), opts.MarkerTexture)
		if err != nil {
			logger.Warn("unable to load transition marker", "err", err)
		} else {
			l.marker, l.hasMarker = tex, true
		}
	}
	return l
}

// State returns a copy of the current simulation state.
func (l *Loop) State() State {
	return l.state
}

// Camera returns a pointer to the camera for hosts that place the player directly.
func (l *Loop) Camera() *camera.Camera {
	return &l.state.Camera
}

// Lighting returns the lighting computed by the last Render call.
func (l *Loop) Lighting() celestial.Lighting {
	return l.lighting
}

// Update accounts for elapsed wall seconds and runs as many fixed ticks as fit in the
// accumulated time, returning how many ran. The input intent is read once and shared by every
// tick of the call; its toggles apply to the first tick only. While active, the world is
// streamed around the player afterwards.
func (l *Loop) Update(elapsed float64) int {
	if math.IsNaN(elapsed) || elapsed < 0 {
		elapsed = 0
	}
	if l.opts.MaxFrameDelta > 0 && elapsed > l.opts.MaxFrameDelta {
		l.opts.debugf("clamping frame delta %.4fs to %.4fs", elapsed, l.opts.MaxFrameDelta)
		elapsed = l.opts.MaxFrameDelta
	}

	intent := l.input.Intent()
	l.mergeToggles(&intent)

	dt := l.opts.FixedTimestep
	l.state.Accumulator += elapsed

	var ticks int
	for l.state.Accumulator >= dt {
		l.tick(&intent)
		intent.ClearToggles()
		l.toggles.ClearToggles()
		l.state.Accumulator -= dt
		ticks++
	}

	if l.state.Mode == ModeActive {
		l.world.Poll()
		l.world.UpdateActiveChunks(l.state.Camera.Position)
	}
	return ticks
}

func (l *Loop) mergeToggles(in *platform.Intent) {
	l.toggles.Pause = l.toggles.Pause != in.Pause
	l.toggles.ToggleCamera = l.toggles.ToggleCamera != in.ToggleCamera
	l.toggles.ToggleDebugHUD = l.toggles.ToggleDebugHUD != in.ToggleDebugHUD
	l.toggles.ToggleWireframe = l.toggles.ToggleWireframe != in.ToggleWireframe

	in.Pause = l.toggles.Pause
	in.ToggleCamera = l.toggles.ToggleCamera
	in.ToggleDebugHUD = l.toggles.ToggleDebugHUD
	in.ToggleWireframe = l.toggles.ToggleWireframe
}

func (l *Loop) tick(in *platform.Intent) {
	s := &l.state
	dt := l.opts.FixedTimestep

	if in.Pause {
		if s.Mode == ModeActive {
			s.Mode = ModePaused
		} else {
			s.Mode = ModeActive
		}
		l.logger.Debug("simulation mode changed", "mode", s.Mode, "tick", s.Ticks)
	}
	if in.ToggleDebugHUD {
		s.DebugHUD = !s.DebugHUD
	}
	if in.ToggleWireframe {
		s.Wireframe = !s.Wireframe
		l.renderer.SetWireframe(s.Wireframe)
	}
	l.advanceTransition(dt)
	s.Ticks++

	if s.Mode == ModePaused {
		ease := omath.Clamp(l.opts.PitchEaseRate*float32(dt), 0, 1)
		s.Camera.Pitch -= s.Camera.Pitch * ease
		return
	}

	if in.ToggleCamera {
		if s.CameraMode == CameraWalk {
			s.CameraMode = CameraFly
		} else {
			s.CameraMode = CameraWalk
		}
		l.logger.Debug("camera mode changed", "mode", s.CameraMode)
	}

	s.Camera.Look(in.Look.Yaw*l.opts.Sensitivity, in.Look.Pitch*l.opts.Sensitivity)
	if in.HasMove() {
		l.move(in.Move, float32(dt))
	}
	if s.CameraMode == CameraWalk {
		s.Camera.Position[1] = l.opts.EyeHeight
	}
	s.SimulationTime += dt
}

func (l *Loop) advanceTransition(dt float64) {
	s := &l.state
	if l.opts.TransitionDuration <= 0 {
		s.Transition = 0
		if s.Mode == ModePaused {
			s.Transition = 1
		}
		return
	}
	step := float32(dt / l.opts.TransitionDuration)
	if s.Mode == ModePaused {
		s.Transition = min(s.Transition+step, 1)
	} else {
		s.Transition = max(s.Transition-step, 0)
	}
}

func (l *Loop) move(input mgl32.Vec2, dt float32) {
	cam := &l.state.Camera

	forward := camera.Forward(cam.Yaw, cam.Pitch)
	if l.state.CameraMode == CameraFly {
		forward = cam.LookDirection()
	}
	dir := forward.Mul(input[1]).Add(camera.Right(cam.Yaw).Mul(input[0]))
	if n := dir.Len(); n > 1 {
		dir = dir.Mul(1 / n)
	}
	delta := dir.Mul(l.opts.Speed * dt)

	resolved := movement.ResolveMovement(cam.Position, delta, l.world.CollidableBBoxes(), l.opts.PlayerHeight, l.opts.PlayerRadius, &l.scratch)
	if l.scratch.BlockedX || l.scratch.BlockedZ {
		l.opts.debugf("movement blocked at %v: x=%v z=%v", cam.Position, l.scratch.BlockedX, l.scratch.BlockedZ)
	}
	cam.Position = cam.Position.Add(resolved)
}

// Render draws one frame: lighting, visible celestial bodies, every visible chunk mesh and the
// transition marker. It never advances the simulation.
func (l *Loop) Render() {
	r := l.renderer
	cam := l.state.Camera

	r.BeginFrame()
	vp := cam.ViewProjection(l.aspect(), l.opts.DepthMode)
	l.lighting = celestial.Compute(l.state.SimulationTime, cam.Position, cam.Far, l.opts.DayLength)

	if sink := l.caps.Lighting; sink != nil {
		sink.SetLightDirection(l.lighting.LightDirection)
		sink.SetLightColor(l.lighting.Color)
		sink.SetAmbientIntensity(l.lighting.Ambient)
	}

	if l.lighting.SunVisibility > 0 {
		l.drawAt(l.sunMesh, &vp, l.lighting.SunPosition, sunColor.Mul(l.lighting.SunVisibility))
	}
	if l.lighting.MoonVisibility > 0 {
		l.drawAt(l.moonMesh, &vp, l.lighting.MoonPosition, moonColor.Mul(l.lighting.MoonVisibility))
	}

	for _, m := range l.world.VisibleMeshes() {
		omath.MulInto(&vp, &m.Transform, &l.mvp)
		r.DrawMesh(m.Mesh, l.mvp, m.Color)
	}

	if l.hasMarker && l.state.Transition > 0 {
		model := omath.Translation(cam.Position.Add(cam.LookDirection().Mul(markerDistance)))
		omath.MulInto(&vp, &model, &l.mvp)
		l.caps.Textures.DrawTexturedQuad(l.marker, l.mvp, markerSize*l.state.Transition)
	}
	r.EndFrame()
}

func (l *Loop) drawAt(mesh render.MeshHandle, vp *mgl32.Mat4, pos, color mgl32.Vec3) {
	model := omath.Translation(pos)
	omath.MulInto(vp, &model, &l.mvp)
	l.renderer.DrawMesh(mesh, l.mvp, color)
}

// Frame runs one host frame: the clock and input are updated, the elapsed time is simulated and
// the result rendered. It returns the number of ticks that ran.
func (l *Loop) Frame() int {
	l.clock.Update()
	l.input.Update()

	dt := l.clock.DeltaTime()
	if err := l.frameTimes.Append(dt); err != nil {
		l.logger.Error("unable to record frame time", "err", err)
	}
	ticks := l.Update(dt)
	l.Render()
	return ticks
}
