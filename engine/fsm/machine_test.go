package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sIdle StateID = iota + 2
	sActive
	sRunning
	sPaused
)

type recorder struct {
	log   []string
	allow bool
}

func buildMachine(t *testing.T) (*Machine[*recorder], *recorder) {
	t.Helper()
	m := NewMachine[*recorder]()
	m.AddState(StateRoot, "Root", StateNone)
	m.AddState(sIdle, "Idle", StateRoot)
	m.AddState(sActive, "Active", StateRoot)
	m.AddState(sRunning, "Running", sActive)
	m.AddState(sPaused, "Paused", sActive)

	m.Allow(sIdle, sRunning)
	m.Allow(sRunning, sPaused)
	m.AddTransition(sPaused, Transition[*recorder]{TargetID: sRunning, Guard: func(r *recorder) bool { return r.allow }})
	// Inherited by every child of Active
	m.Allow(sActive, sIdle)

	for _, id := range []StateID{StateRoot, sIdle, sActive, sRunning, sPaused} {
		name := m.Name(id)
		m.OnEnter(id, func(r *recorder) { r.log = append(r.log, "enter "+name) })
		m.OnExit(id, func(r *recorder) { r.log = append(r.log, "exit "+name) })
	}
	require.NoError(t, m.CompilePaths())

	r := &recorder{}
	require.NoError(t, m.Init(r, sIdle))
	return m, r
}

func TestInitEntersFromRoot(t *testing.T) {
	m, r := buildMachine(t)
	assert.Equal(t, []string{"enter Root", "enter Idle"}, r.log)
	assert.Equal(t, sIdle, m.Current())
	assert.True(t, m.InState(StateRoot))
}

func TestTransitionExitsToLCA(t *testing.T) {
	m, r := buildMachine(t)
	r.log = nil

	require.NoError(t, m.Transition(r, sRunning))
	assert.Equal(t, []string{"exit Idle", "enter Active", "enter Running"}, r.log)

	r.log = nil
	require.NoError(t, m.Transition(r, sPaused))
	assert.Equal(t, []string{"exit Running", "enter Paused"}, r.log)
	assert.True(t, m.InState(sActive))
	assert.True(t, m.Is(sRunning, sPaused))
}

func TestIllegalAndGuarded(t *testing.T) {
	m, r := buildMachine(t)

	err := m.Transition(r, sPaused)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, sIdle, m.Current())

	require.NoError(t, m.Transition(r, sRunning))
	require.NoError(t, m.Transition(r, sPaused))

	assert.False(t, m.Can(r, sRunning))
	assert.ErrorIs(t, m.Transition(r, sRunning), ErrGuardRejected)
	r.allow = true
	assert.True(t, m.Can(r, sRunning))
	require.NoError(t, m.Transition(r, sRunning))

	assert.ErrorIs(t, m.Transition(r, StateID(99)), ErrUnknownState)
}

func TestInheritedTransitionAndHook(t *testing.T) {
	m, r := buildMachine(t)
	var hops [][2]StateID
	m.SetTransitionHook(func(from, to StateID) { hops = append(hops, [2]StateID{from, to}) })

	require.NoError(t, m.Transition(r, sRunning))
	require.NoError(t, m.Transition(r, sPaused))
	r.log = nil
	require.NoError(t, m.Transition(r, sIdle), "Paused inherits Active -> Idle")
	assert.Equal(t, []string{"exit Paused", "exit Active", "enter Idle"}, r.log)
	assert.Equal(t, [][2]StateID{{sIdle, sRunning}, {sRunning, sPaused}, {sPaused, sIdle}}, hops)

	require.NoError(t, m.Transition(r, sIdle), "self transition is a no-op")
	assert.Len(t, hops, 3)
}

func TestReset(t *testing.T) {
	m, r := buildMachine(t)
	require.NoError(t, m.Transition(r, sRunning))
	r.log = nil

	require.NoError(t, m.Reset(r))
	assert.Equal(t, []string{"exit Running", "exit Active", "exit Root", "enter Root", "enter Idle"}, r.log)
	assert.Equal(t, sIdle, m.Current())
}
