package scene

import "time"

// Timer fires a callback repeatedly every Interval of accumulated frame time.
// It is driven by the owner's Update calls, so callbacks run on the main loop.
type Timer struct {
	Interval time.Duration
	fn       func()
	elapsed  time.Duration
	running  bool
}

// NewTimer returns a stopped repeating timer.
func NewTimer(interval time.Duration, fn func()) *Timer {
	return &Timer{Interval: interval, fn: fn}
}

// Start (re)starts the timer from zero.
func (t *Timer) Start() {
	t.elapsed = 0
	t.running = true
}

// Stop halts the timer; pending time is discarded.
func (t *Timer) Stop() {
	t.running = false
	t.elapsed = 0
}

// Running reports whether the timer is active.
func (t *Timer) Running() bool {
	return t.running
}

// Update advances the timer by dt, firing once per whole interval elapsed.
func (t *Timer) Update(dt time.Duration) {
	if !t.running || t.Interval <= 0 {
		return
	}
	t.elapsed += dt
	for t.running && t.elapsed >= t.Interval {
		t.elapsed -= t.Interval
		if t.fn != nil {
			t.fn()
		}
	}
}
