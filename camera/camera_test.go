package camera

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/game"
	"github.com/oomph-ac/roam/omath"
)

func TestNewDefaults(t *testing.T) {
	c := New()
	if c.Yaw != 0 || c.Pitch != 0 {
		t.Fatalf("expected zero orientation, got yaw=%v pitch=%v", c.Yaw, c.Pitch)
	}
	if !omath.Float32ApproxEq(c.FOV, math32.Pi/3) || c.Near != 0.1 || c.Far != 100 {
		t.Fatalf("unexpected projection defaults %+v", c)
	}
	if c.Position.Y() != game.PlayerEyeHeight {
		t.Fatalf("expected eye height %v, got %v", game.PlayerEyeHeight, c.Position.Y())
	}
}

func TestPitchClamp(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	c := New()
	for i := 0; i < 10000; i++ {
		c.Look(r.Float32()*2-1, (r.Float32()*2-1)*0.7)
		if c.Pitch < -game.PitchLimit || c.Pitch > game.PitchLimit {
			t.Fatalf("pitch %v escaped the clamp after %d looks", c.Pitch, i)
		}
	}
	c.Look(0, 100)
	if c.Pitch != game.PitchLimit {
		t.Fatalf("expected pitch to sit on the upper limit, got %v", c.Pitch)
	}
	c.Look(0, -100)
	if c.Pitch != -game.PitchLimit {
		t.Fatalf("expected pitch to sit on the lower limit, got %v", c.Pitch)
	}
}

func TestForwardRight(t *testing.T) {
	if f := Forward(0, 0); !omath.Vec3ApproxEq(f, mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("expected -Z forward, got %v", f)
	}
	if r := Right(0); !omath.Vec3ApproxEq(r, mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("expected +X right, got %v", r)
	}
	f := Forward(0.3, 0.8)
	if f.Y() != 0 || !omath.Float32ApproxEq(f.Len(), 1) {
		t.Fatalf("expected a horizontal unit vector, got %v", f)
	}
	if d := f.Dot(Right(0.3)); math32.Abs(d) > 1e-5 {
		t.Fatalf("expected forward and right to be orthogonal, dot=%v", d)
	}
}

func TestForwardDegenerate(t *testing.T) {
	f := Forward(1.2, math32.Pi/2)
	if f != (mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("expected fallback forward when looking straight up, got %v", f)
	}
	for _, v := range f {
		if math32.IsNaN(v) {
			t.Fatalf("forward contains NaN: %v", f)
		}
	}
}

func TestViewMovesPositionToOrigin(t *testing.T) {
	c := New()
	c.Position = mgl32.Vec3{3, 1.7, -4}
	c.Yaw = 0.7
	c.Pitch = -0.2
	p := c.View().Mul4x1(c.Position.Vec4(1))
	if !omath.Vec3ApproxEq(p.Vec3(), mgl32.Vec3{}) {
		t.Fatalf("expected camera position to map to the origin, got %v", p)
	}
	ahead := c.Position.Add(c.LookDirection().Mul(5))
	q := c.View().Mul4x1(ahead.Vec4(1))
	if !omath.Vec3ApproxEq(q.Vec3(), mgl32.Vec3{0, 0, -5}) {
		t.Fatalf("expected look direction to map to -Z, got %v", q)
	}
}

func TestViewProjectionDepthMode(t *testing.T) {
	c := New()
	p := c.Position.Add(mgl32.Vec3{0, 0, -c.Near})
	for _, tt := range []struct {
		mode omath.DepthMode
		want float32
	}{
		{omath.DepthZeroToOne, 0},
		{omath.DepthNegOneToOne, -1},
	} {
		clip := c.ViewProjection(16.0/9.0, tt.mode).Mul4x1(p.Vec4(1))
		if d := clip.Z() / clip.W(); math32.Abs(d-tt.want) > 1e-3 {
			t.Fatalf("%v: expected near plane depth %v, got %v", tt.mode, tt.want, d)
		}
	}
}
