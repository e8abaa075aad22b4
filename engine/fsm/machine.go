package fsm

import (
	"fmt"
	"time"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:      make(map[StateID]*Node[T]),
		activePath: make([]StateID, 0, 4),
	}
}

// SetTransitionHook registers a callback invoked after every completed transition
func (m *Machine[T]) SetTransitionHook(fn func(from, to StateID)) {
	m.onTransition = fn
}

// Init enters the initial state, running OnEnter from Root down
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("%w: initial state %d", ErrUnknownState, initialID)
	}
	if node.Path == nil {
		if err := m.CompilePaths(); err != nil {
			return err
		}
	}

	m.initialID = initialID
	m.activeID = initialID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		for _, action := range m.nodes[id].OnEnter {
			action(ctx)
		}
	}
	return nil
}

// Current returns the active leaf state
func (m *Machine[T]) Current() StateID {
	return m.activeID
}

// Is reports whether the active leaf is any of ids
func (m *Machine[T]) Is(ids ...StateID) bool {
	for _, id := range ids {
		if m.activeID == id {
			return true
		}
	}
	return false
}

// InState reports whether id is on the active path (leaf or ancestor)
func (m *Machine[T]) InState(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// Name returns the name of a state
func (m *Machine[T]) Name(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}

// Update advances time in the active state
func (m *Machine[T]) Update(dt time.Duration) {
	m.timeInState += dt
}

// TimeInState returns time elapsed since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// find searches the active leaf and its ancestors for a transition to target
func (m *Machine[T]) find(target StateID) (Transition[T], bool) {
	currID := m.activeID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.TargetID == target {
				return trans, true
			}
		}
		currID = node.ParentID
	}
	return Transition[T]{}, false
}

// Can reports whether Transition(target) would succeed
func (m *Machine[T]) Can(ctx T, target StateID) bool {
	if target == m.activeID {
		return true
	}
	trans, ok := m.find(target)
	if !ok {
		return false
	}
	return trans.Guard == nil || trans.Guard(ctx)
}

// Transition moves to target if a legal, guard-approved edge exists
// Transitioning to the active state is a no-op
func (m *Machine[T]) Transition(ctx T, target StateID) error {
	if target == m.activeID {
		return nil
	}
	if _, ok := m.nodes[target]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownState, target)
	}
	trans, ok := m.find(target)
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, m.Name(m.activeID), m.Name(target))
	}
	if trans.Guard != nil && !trans.Guard(ctx) {
		return fmt.Errorf("%w: %s -> %s", ErrGuardRejected, m.Name(m.activeID), m.Name(target))
	}
	m.transition(ctx, target)
	return nil
}

// transition performs the state change, exiting up to the LCA and entering down to target
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	from := m.activeID
	targetPath := m.nodes[targetID].Path
	currentPath := m.activePath

	lcaIndex := -1
	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Exit phase: walk UP from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		for _, action := range m.nodes[currentPath[i]].OnExit {
			action(ctx)
		}
	}

	// Commit before entering so enter actions observe the new state
	m.activeID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	// Enter phase: walk DOWN from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		for _, action := range m.nodes[targetPath[i]].OnEnter {
			action(ctx)
		}
	}

	if m.onTransition != nil {
		m.onTransition(from, targetID)
	}
}

// Reset exits the whole active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		for _, action := range m.nodes[m.activePath[i]].OnExit {
			action(ctx)
		}
	}
	return m.Init(ctx, m.initialID)
}
