package timers

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_PhaseLookupOrCreate(t *testing.T) {
	ResetPhases()
	defer ResetPhases()

	setup := Phase("setup", FixedRank(0), WithNumKeys(2))
	assert.Equal(t, "setup", setup.Name())
	assert.Equal(t, 2, setup.NumKeys())

	again := Phase("setup", FixedRank(1), WithNumKeys(4))
	assert.Same(t, setup, again)
	assert.Equal(t, 2, again.NumKeys())

	Phase("solve", FixedRank(0))
	assert.Equal(t, []string{"setup", "solve"}, Phases())
}

func Test_ResetPhases(t *testing.T) {
	ResetPhases()
	Phase("setup", FixedRank(0))
	ResetPhases()

	assert.Empty(t, Phases())
}

func Test_PrintPhases(t *testing.T) {
	ResetPhases()
	defer ResetPhases()

	out := &bytes.Buffer{}
	SetOutput(out)
	defer SetOutput(io.Discard)

	clock := &TickClock{}
	solve := Phase("solve", FixedRank(0), WithClock(clock))
	solve.Begin(PhysicsCompute)
	clock.Tick()
	solve.EndPartition()

	Phase("setup", FixedRank(0), WithClock(clock))

	require.True(t, PrintPhases())

	s := out.String()
	assert.Contains(t, s, "Phases:")
	assert.Contains(t, s, "total seconds")
	assert.Contains(t, s, "physics_compute")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("setup:")), bytes.Index(out.Bytes(), []byte("solve:")))
}

func Test_PrintPhasesPartialFailure(t *testing.T) {
	ResetPhases()
	defer ResetPhases()

	out := &bytes.Buffer{}
	SetOutput(out)
	defer SetOutput(io.Discard)

	Phase("setup", FixedRank(0))
	open := Phase("solve", FixedRank(0))
	open.Begin(Filter)

	assert.False(t, PrintPhases())
	assert.Contains(t, out.String(), "setup:")
	assert.NotContains(t, out.String(), "solve:")
}

func Test_PrintPhasesOnOtherRanks(t *testing.T) {
	ResetPhases()
	defer ResetPhases()

	out := &bytes.Buffer{}
	SetOutput(out)
	defer SetOutput(io.Discard)

	Phase("setup", FixedRank(2))

	assert.False(t, PrintPhases())
	assert.Empty(t, out.String())
}
