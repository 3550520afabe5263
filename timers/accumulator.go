package timers

import (
	"bytes"
	"fmt"

	"golang.org/x/exp/slog"
)

// accumulator holds the per-key totals of a tree. Index numKeys is the root.
type accumulator struct {
	elapsed   []float64
	entrances []uint64
}

func newAccumulator(numTimers int) *accumulator {
	return &accumulator{
		elapsed:   make([]float64, numTimers),
		entrances: make([]uint64, numTimers),
	}
}

func (a *accumulator) enter(key int) {
	a.entrances[key]++
}

// add accumulates d into the elapsed time of key. Negative amounts, which a
// misbehaving clock could produce, are dropped to keep totals monotone.
func (a *accumulator) add(key int, d float64) {
	if d < 0 {
		logger.Warn("dropping negative elapsed time",
			slog.Int("key", key), slog.Float64("seconds", d))
		return
	}
	a.elapsed[key] += d
}

func (a *accumulator) total() float64 {
	var t float64
	for _, e := range a.elapsed {
		t += e
	}
	return t
}

func (a *accumulator) copy() *accumulator {
	return &accumulator{
		elapsed:   append([]float64(nil), a.elapsed...),
		entrances: append([]uint64(nil), a.entrances...),
	}
}

func (a *accumulator) String() string {
	var b bytes.Buffer

	b.WriteString("[accumulator]\n")
	for k := range a.elapsed {
		b.WriteString(fmt.Sprintf("%d: %gs entrances: %d\n", k, a.elapsed[k], a.entrances[k]))
	}

	return b.String()
}
