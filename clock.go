package main

import "time"

// simClock tracks accumulated simulated time alongside the wall-clock span
// of a run. Neither value feeds back into control decisions; both are only
// reported at the end.
type simClock struct {
	simTime float64
	start   time.Time
	elapsed time.Duration
	stopped bool
}

// startRun marks the wall-clock start, taken just before initialization.
func (c *simClock) startRun() {
	c.start = time.Now()
	c.stopped = false
}

// stopRun freezes the elapsed duration, taken just after the step loop.
// Extra calls keep the first measurement.
func (c *simClock) stopRun() {
	if c.stopped {
		return
	}
	c.elapsed = time.Since(c.start)
	c.stopped = true
}

// advance accumulates one time step of simulated time.
func (c *simClock) advance(dt float64) {
	c.simTime += dt
}

// elapsedMillis reports the measured wall-clock duration in milliseconds.
func (c *simClock) elapsedMillis() float64 {
	return float64(c.elapsed) / float64(time.Millisecond)
}
