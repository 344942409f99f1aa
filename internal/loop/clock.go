package loop

import "github.com/tomz197/astroops/internal/loop/config"

// Clock converts variable frame time into a whole number of fixed ticks.
// Leftover time carries over to the next frame.
type Clock struct {
	acc float64
}

// Advance adds elapsed seconds, clamped to config.MaxFrameSeconds so a
// stalled frame cannot trigger a burst of catch-up ticks, and returns how
// many ticks of config.TickSeconds to run.
func (c *Clock) Advance(elapsed float64) int {
	elapsed = min(max(elapsed, 0), config.MaxFrameSeconds)
	c.acc += elapsed

	ticks := 0
	for c.acc > config.TickSeconds {
		c.acc -= config.TickSeconds
		ticks++
	}
	return ticks
}

// Pending returns the accumulated time not yet consumed by a tick.
func (c *Clock) Pending() float64 {
	return c.acc
}
