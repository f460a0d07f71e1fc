package platform

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func TestStubClock(t *testing.T) {
	c := NewStubClock()
	c.Step(60)
	if d := c.DeltaTime(); d != 1.0/60.0 {
		t.Fatalf("expected 1/60 delta, got %v", d)
	}
	if tm := c.Time(); tm < 0.999 || tm > 1.001 {
		t.Fatalf("expected ~1s after 60 steps, got %v", tm)
	}

	c.Pause()
	c.Update()
	if c.DeltaTime() != 0 {
		t.Fatalf("expected paused clock to report zero delta")
	}
	c.Resume()
	c.SetFixedDeltaTime(0.5)
	c.Update()
	if c.DeltaTime() != 0.5 {
		t.Fatalf("expected 0.5 delta, got %v", c.DeltaTime())
	}

	c.Reset()
	if c.Time() != 0 || c.FixedDeltaTime() != 1.0/60.0 || c.IsPaused() {
		t.Fatalf("expected reset clock, got %+v", c)
	}
}

func TestWallClock(t *testing.T) {
	base := time.Unix(100, 0)
	c := &WallClock{last: base}
	c.now = func() time.Time { return base.Add(250 * time.Millisecond) }
	c.Update()
	if c.DeltaTime() != 0.25 {
		t.Fatalf("expected 0.25s, got %v", c.DeltaTime())
	}
}

func TestStubInputScript(t *testing.T) {
	in := NewStubInput(Intent{Move: mgl32.Vec2{0, 1}, Pause: true})
	in.Idle = Intent{Move: mgl32.Vec2{1, 0}, Pause: true}

	in.Update()
	if got := in.Intent(); !got.Pause || got.Move != (mgl32.Vec2{0, 1}) {
		t.Fatalf("expected scripted intent, got %+v", got)
	}
	in.Update()
	got := in.Intent()
	if got.Pause {
		t.Fatalf("expected idle intent to have toggles cleared")
	}
	if !got.HasMove() {
		t.Fatalf("expected idle intent to keep its movement")
	}
	if in.Remaining() != 0 {
		t.Fatalf("expected script to be consumed")
	}
}
