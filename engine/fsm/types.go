package fsm

import (
	"errors"
	"time"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

var (
	// ErrIllegalTransition is returned when no transition to the target exists from the active state
	ErrIllegalTransition = errors.New("illegal transition")
	// ErrGuardRejected is returned when a transition exists but its guard refused it
	ErrGuardRejected = errors.New("transition guard rejected")
	// ErrUnknownState is returned for ids never added to the machine
	ErrUnknownState = errors.New("unknown state")
)

// Machine is a generic hierarchical finite state machine
// T is the context type passed to actions and guards
type Machine[T any] struct {
	// Graph data, immutable after CompilePaths
	nodes map[StateID]*Node[T]

	initialID StateID

	// Runtime state
	activeID    StateID
	activePath  []StateID // Root -> ... -> leaf
	timeInState time.Duration

	onTransition func(from, to StateID)
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from Root to this node for LCA lookup
	Path []StateID

	OnEnter []ActionFunc[T]
	OnExit  []ActionFunc[T]

	// Transitions in evaluation order, inherited by children
	Transitions []Transition[T]
}

// Transition defines a legal edge
type Transition[T any] struct {
	TargetID StateID
	Guard    GuardFunc[T] // nil = always allowed
}

// GuardFunc returns true if the transition may occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
