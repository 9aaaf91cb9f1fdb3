package simulation

import "time"

// Scheduler runs fn once after d. The returned cancel prevents a pending run;
// calling it after fn ran is harmless. Cancellation is best effort: a callback
// may already be in flight, which is why the clock also checks a generation
// token on every scheduled tick.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules on runtime timers.
type TimerScheduler struct{}

// Schedule runs fn on its own goroutine after d.
func (TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
