package timers

import (
	"time"

	"golang.org/x/exp/slog"
)

// Clock supplies monotonically increasing timestamps in seconds.
type Clock interface {
	Now() float64
}

var processStart = time.Now()

// WallClock reads the monotonic wall clock, in seconds since process start.
type WallClock struct{}

func (WallClock) Now() float64 {
	return time.Since(processStart).Seconds()
}

// # TickClock
//
// A clock that only moves when told to. Each [TickClock.Tick] advances it
// by one second, which makes expected self times exact integers.
// Its zero value is a clock standing at 0.
type TickClock struct {
	now float64
}

func (c *TickClock) Now() float64 {
	return c.now
}

// Tick advances the clock by one second.
func (c *TickClock) Tick() {
	c.now++
}

// Advance moves the clock forward by d seconds. Negative values are ignored.
func (c *TickClock) Advance(d float64) {
	if d < 0 {
		logger.Warn("refusing to move clock backwards",
			slog.Float64("seconds", d))
		return
	}
	c.now += d
}
