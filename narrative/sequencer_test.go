package narrative

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordPhases(log *[]string, names ...string) []Phase {
	phases := make([]Phase, len(names))
	for i, n := range names {
		name := n
		phases[i] = Phase{Name: name, Duration: 100 * time.Millisecond, Enter: func() { *log = append(*log, name) }}
	}
	return phases
}

func TestSequencerRunsPhasesInOrder(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSequencer(clock)
	var log []string

	require.NoError(t, s.Start("chain", recordPhases(&log, "a", "b", "c")))
	assert.Equal(t, []string{"a"}, log, "first phase enters at start")
	assert.Equal(t, "chain", s.Name())

	clock.Advance(99 * time.Millisecond)
	s.Update()
	assert.Equal(t, []string{"a"}, log)

	clock.Advance(time.Millisecond)
	s.Update()
	assert.Equal(t, []string{"a", "b"}, log)
	assert.Equal(t, "b", s.Phase())

	clock.Advance(200 * time.Millisecond)
	s.Update()
	assert.Equal(t, []string{"a", "b", "c"}, log)
	assert.False(t, s.Running())
	assert.Empty(t, s.Phase())
}

func TestSequencerCatchesUpLateFrames(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSequencer(clock)
	var log []string

	require.NoError(t, s.Start("chain", recordPhases(&log, "a", "b", "c", "d")))
	clock.Advance(250 * time.Millisecond)
	s.Update()
	assert.Equal(t, []string{"a", "b", "c"}, log)
	assert.InDelta(t, 0.5, s.Progress(), 1e-9, "schedule keeps the chain start as origin")
}

func TestSequencerRefusesSecondChain(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSequencer(clock)
	var log []string

	require.NoError(t, s.Start("first", recordPhases(&log, "a", "b")))
	assert.ErrorIs(t, s.Start("second", recordPhases(&log, "x")), ErrBusy)
	assert.Equal(t, []string{"a"}, log)
	assert.Equal(t, "first", s.Name())
}

func TestSequencerCancelDropsChain(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSequencer(clock)
	var log []string

	require.NoError(t, s.Start("chain", recordPhases(&log, "a", "b", "c")))
	s.Cancel()
	clock.Advance(time.Second)
	s.Update()
	assert.Equal(t, []string{"a"}, log)
	assert.False(t, s.Running())

	// A new chain may start once cancelled
	require.NoError(t, s.Start("again", recordPhases(&log, "x")))
	assert.Equal(t, []string{"a", "x"}, log)
}

func TestSequencerEnterMayCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSequencer(clock)
	var log []string

	phases := recordPhases(&log, "a", "b", "c")
	phases[1].Enter = func() {
		log = append(log, "b")
		s.Cancel()
	}
	require.NoError(t, s.Start("chain", phases))
	clock.Advance(time.Second)
	s.Update()
	assert.Equal(t, []string{"a", "b"}, log)
	assert.False(t, s.Running())
}

func TestSequencerZeroDurationTail(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSequencer(clock)
	done := false

	require.NoError(t, s.Start("chain", []Phase{
		{Name: "hold", Duration: 50 * time.Millisecond},
		{Name: "end", Enter: func() { done = true }},
	}))
	clock.Advance(50 * time.Millisecond)
	s.Update()
	assert.True(t, done)
	assert.False(t, s.Running(), "a zero-length last phase finishes the chain in the same update")
}
