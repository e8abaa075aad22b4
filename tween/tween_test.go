package tween

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTweenProgressAndDone(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewRunner(clock)

	var got []float64
	doneCalls := 0
	tok := r.Start(100*time.Millisecond, nil, func(v float64) { got = append(got, v) }, func() { doneCalls++ })

	require.Equal(t, []float64{0}, got)
	assert.True(t, tok.Active())

	clock.Advance(50 * time.Millisecond)
	r.Update()
	assert.InDelta(t, 0.5, got[len(got)-1], 1e-9)

	clock.Advance(60 * time.Millisecond)
	r.Update()
	assert.Equal(t, 1.0, got[len(got)-1])
	assert.Equal(t, 1, doneCalls)
	assert.False(t, tok.Active())
	assert.Equal(t, 0, r.Active())

	clock.Advance(time.Second)
	r.Update()
	assert.Equal(t, 1, doneCalls)
}

func TestTweenCancelStopsCallbacks(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewRunner(clock)

	calls := 0
	done := false
	tok := r.Start(100*time.Millisecond, nil, func(float64) { calls++ }, func() { done = true })
	tok.Cancel()

	clock.Advance(200 * time.Millisecond)
	r.Update()

	assert.Equal(t, 1, calls, "only the initial step runs")
	assert.False(t, done)
	assert.True(t, tok.Cancelled())
}

func TestTweenStartedFromDone(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewRunner(clock)

	var second *Token
	r.Start(10*time.Millisecond, nil, nil, func() {
		second = r.Start(10*time.Millisecond, nil, nil, nil)
	})

	clock.Advance(20 * time.Millisecond)
	r.Update()
	require.NotNil(t, second)
	assert.True(t, second.Active())
	assert.Equal(t, 1, r.Active())

	clock.Advance(20 * time.Millisecond)
	r.Update()
	assert.False(t, second.Active())
}

func TestNilTokenSafe(t *testing.T) {
	var tok *Token
	assert.NotPanics(t, func() { tok.Cancel() })
	assert.False(t, tok.Active())
}
