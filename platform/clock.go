package platform

import "time"

// StubClock advances by a fixed delta on every Update, which makes runs reproducible.
type StubClock struct {
	currentTime    float64
	deltaTime      float64
	fixedDeltaTime float64
	paused         bool
}

// NewStubClock returns a clock stepping at 60 Hz.
func NewStubClock() *StubClock {
	return &StubClock{fixedDeltaTime: 1.0 / 60.0}
}

func (c *StubClock) Update() {
	if c.paused {
		c.deltaTime = 0
		return
	}
	c.deltaTime = c.fixedDeltaTime
	c.currentTime += c.deltaTime
}

func (c *StubClock) DeltaTime() float64 { return c.deltaTime }

// Time returns the total time the clock has advanced.
func (c *StubClock) Time() float64 { return c.currentTime }

// SetTime ...
func (c *StubClock) SetTime(t float64) { c.currentTime = t }

// SetFixedDeltaTime sets the amount each Update advances by.
func (c *StubClock) SetFixedDeltaTime(dt float64) { c.fixedDeltaTime = dt }

// FixedDeltaTime ...
func (c *StubClock) FixedDeltaTime() float64 { return c.fixedDeltaTime }

// Step calls Update n times.
func (c *StubClock) Step(n int) {
	for i := 0; i < n; i++ {
		c.Update()
	}
}

func (c *StubClock) Pause()         { c.paused = true }
func (c *StubClock) Resume()        { c.paused = false }
func (c *StubClock) IsPaused() bool { return c.paused }

// Reset restores the clock to its initial state.
func (c *StubClock) Reset() {
	*c = StubClock{fixedDeltaTime: 1.0 / 60.0}
}

// WallClock measures real elapsed time.
type WallClock struct {
	last  time.Time
	delta float64
	now   func() time.Time
}

// NewWallClock ...
func NewWallClock() *WallClock {
	return &WallClock{last: time.Now(), now: time.Now}
}

func (c *WallClock) Update() {
	t := c.now()
	c.delta = t.Sub(c.last).Seconds()
	c.last = t
}

func (c *WallClock) DeltaTime() float64 { return c.delta }
