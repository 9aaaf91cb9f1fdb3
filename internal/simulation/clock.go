// Package simulation animates progress along a route geometry.
//
// A Clock is a small state machine over idle, playing and paused. Time only
// moves through Tick, either called by the owner with the elapsed time since
// the previous frame or by the clock itself through a Scheduler.
package simulation

import (
	"math"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/geo"
	"sync"
	"time"
)

// Status is the clock lifecycle state. A completed run returns to idle.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPlaying Status = "playing"
	StatusPaused  Status = "paused"
)

const (
	// BaseRate is the progress added per reference frame at 1x speed.
	BaseRate = 0.0003
	// ReferenceFrame normalizes elapsed time to frames.
	ReferenceFrame = 16 * time.Millisecond
	// MaxTickElapsed is the longest accepted gap between ticks. Longer gaps
	// (stalls, suspended timers) are dropped rather than accumulated.
	MaxTickElapsed = 200 * time.Millisecond
)

// Speeds are the preset speed multipliers offered to users.
var Speeds = []float64{1, 2, 4}

// State is the observable clock state.
type State struct {
	Status   Status
	Progress float64
	Speed    float64
}

// Frame is a State resolved against the route.
// Seq increases with every state change.
type Frame struct {
	State
	Seq      uint64
	Position geo.Position
	Traveled []domain.Coordinates
}

// Option configures a Clock at construction.
type Option func(*Clock)

// WithScheduler lets the clock drive itself. Without one the owner must call
// Tick.
func WithScheduler(s Scheduler) Option { return func(c *Clock) { c.sched = s } }

// WithNow replaces the time source used for scheduled ticks.
func WithNow(now func() time.Time) Option { return func(c *Clock) { c.now = now } }

// WithFrameInterval sets the delay between scheduled ticks.
func WithFrameInterval(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithObserver registers fn to receive a Frame after every state change.
// fn runs outside the clock lock and may be called from scheduler goroutines;
// use Frame.Seq to discard frames that arrive out of order.
func WithObserver(fn func(Frame)) Option { return func(c *Clock) { c.observer = fn } }

// Clock drives progress along one route geometry. Progress is only meaningful
// for that geometry, so a new route requires a new Clock.
type Clock struct {
	mu       sync.Mutex
	route    domain.RouteGeometry
	sched    Scheduler
	now      func() time.Time
	interval time.Duration
	observer func(Frame)

	state State
	seq   uint64
	// gen invalidates scheduled ticks; bumped on every stop.
	gen    uint64
	cancel func()
	last   time.Time
}

// NewClock creates an idle clock at progress 0 and speed 1 for route.
func NewClock(route domain.RouteGeometry, opts ...Option) *Clock {
	c := &Clock{
		route:    route,
		now:      time.Now,
		interval: ReferenceFrame,
		state:    State{Status: StatusIdle, Speed: 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Route returns the geometry the clock runs on.
func (c *Clock) Route() domain.RouteGeometry { return c.route }

// State returns a snapshot of the clock state.
func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Frame returns the current state with its position and traveled path.
func (c *Clock) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameLocked()
}

// Play starts or resumes the clock. It is a no-op without route points or
// while already playing. A completed run restarts from 0.
func (c *Clock) Play() {
	c.mu.Lock()
	if c.route.Empty() || c.state.Status == StatusPlaying {
		c.mu.Unlock()
		return
	}
	if c.state.Progress >= 1 {
		c.state.Progress = 0
	}
	c.state.Status = StatusPlaying
	c.last = c.now()
	c.scheduleLocked()
	c.emitLocked()
}

// Pause stops a playing clock and keeps its progress.
func (c *Clock) Pause() {
	c.mu.Lock()
	if c.state.Status != StatusPlaying {
		c.mu.Unlock()
		return
	}
	c.stopLocked()
	c.state.Status = StatusPaused
	c.emitLocked()
}

// Reset returns the clock to idle at progress 0 from any state.
func (c *Clock) Reset() {
	c.mu.Lock()
	c.stopLocked()
	c.state.Status = StatusIdle
	c.state.Progress = 0
	c.emitLocked()
}

// SetSpeed changes the rate multiplier. Non-positive, infinite or NaN values
// are ignored.
func (c *Clock) SetSpeed(multiplier float64) {
	if !(multiplier > 0) || math.IsInf(multiplier, 0) {
		return
	}
	c.mu.Lock()
	c.state.Speed = multiplier
	c.emitLocked()
}

// SetProgress moves to a fraction of the route, clamped to [0, 1], without
// changing status. Scrubbing to 1 does not complete the run; only ticks do.
func (c *Clock) SetProgress(fraction float64) {
	c.mu.Lock()
	c.state.Progress = geo.ClampFraction(fraction)
	c.emitLocked()
}

// Tick advances a playing clock by elapsed real time. Ticks outside
// (0, MaxTickElapsed] are dropped. It reports whether progress advanced.
func (c *Clock) Tick(elapsed time.Duration) bool {
	c.mu.Lock()
	if c.state.Status != StatusPlaying {
		c.mu.Unlock()
		return false
	}
	advanced := c.advanceLocked(elapsed)
	if !advanced {
		c.mu.Unlock()
		return false
	}
	c.emitLocked()
	return true
}

// fire is the scheduled tick. A stale generation means the clock was paused,
// reset or completed after this tick was scheduled.
func (c *Clock) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.state.Status != StatusPlaying {
		c.mu.Unlock()
		return
	}
	now := c.now()
	elapsed := now.Sub(c.last)
	c.last = now

	advanced := c.advanceLocked(elapsed)
	if c.state.Status == StatusPlaying {
		c.scheduleLocked()
	}
	if !advanced {
		c.mu.Unlock()
		return
	}
	c.emitLocked()
}

func (c *Clock) advanceLocked(elapsed time.Duration) bool {
	if elapsed <= 0 || elapsed > MaxTickElapsed {
		return false
	}
	frames := float64(elapsed) / float64(ReferenceFrame)
	c.state.Progress = math.Min(1, c.state.Progress+BaseRate*c.state.Speed*frames)
	if c.state.Progress >= 1 {
		c.state.Progress = 1
		c.state.Status = StatusIdle
		c.stopLocked()
	}
	return true
}

func (c *Clock) scheduleLocked() {
	if c.sched == nil {
		return
	}
	gen := c.gen
	c.cancel = c.sched.Schedule(c.interval, func() { c.fire(gen) })
}

func (c *Clock) stopLocked() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Clock) frameLocked() Frame {
	return Frame{
		State:    c.state,
		Seq:      c.seq,
		Position: geo.PointAlong(c.route.Coordinates, c.state.Progress),
		Traveled: geo.SliceLine(c.route.Coordinates, c.state.Progress),
	}
}

// emitLocked bumps the sequence, releases the lock and notifies the observer.
func (c *Clock) emitLocked() {
	c.seq++
	if c.observer == nil {
		c.mu.Unlock()
		return
	}
	f := c.frameLocked()
	obs := c.observer
	c.mu.Unlock()
	obs(f)
}
