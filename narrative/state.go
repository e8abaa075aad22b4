package narrative

import (
	"github.com/lixenwraith/warpglobe/engine/fsm"
)

// State is one node of the narrative machine
type State = fsm.StateID

const (
	StateIntro State = iota + 2
	// stateStory is the parent of every state after the intro, its edges are inherited
	stateStory
	StateWarpingIn
	StateYearGate
	StateZooming
	StateTimelineIdle
	StateStepActive
	StateRaceOverlay
	StateWarpingOut
	StateConclusion
)

// buildMachine wires the narrative graph around c
// Legal edges:
//
//	Intro        -> WarpingIn
//	WarpingIn    -> YearGate
//	YearGate     -> Zooming
//	Zooming      -> TimelineIdle, StepActive
//	TimelineIdle -> StepActive, Zooming, RaceOverlay, WarpingOut
//	StepActive   -> TimelineIdle, Zooming, RaceOverlay, WarpingOut
//	RaceOverlay  -> TimelineIdle, StepActive, Conclusion
//	WarpingOut   -> Conclusion
//	Conclusion   -> TimelineIdle, RaceOverlay
//	any story    -> Intro
func buildMachine() (*fsm.Machine[*Controller], error) {
	m := fsm.NewMachine[*Controller]()

	m.AddState(fsm.StateRoot, "Root", fsm.StateNone)
	m.AddState(StateIntro, "Intro", fsm.StateRoot)
	m.AddState(stateStory, "Story", fsm.StateRoot)
	m.AddState(StateWarpingIn, "WarpingIn", stateStory)
	m.AddState(StateYearGate, "YearGate", stateStory)
	m.AddState(StateZooming, "Zooming", stateStory)
	m.AddState(StateTimelineIdle, "TimelineIdle", stateStory)
	m.AddState(StateStepActive, "StepActive", stateStory)
	m.AddState(StateRaceOverlay, "RaceOverlay", stateStory)
	m.AddState(StateWarpingOut, "WarpingOut", stateStory)
	m.AddState(StateConclusion, "Conclusion", stateStory)

	// At most one of WarpingIn, WarpingOut, Zooming runs at a time
	exclusive := func(c *Controller) bool {
		return !c.seq.Running() && !c.machine.Is(StateWarpingIn, StateWarpingOut, StateZooming)
	}
	guarded := func(src State, targets ...State) {
		for _, t := range targets {
			m.AddTransition(src, fsm.Transition[*Controller]{TargetID: t, Guard: exclusive})
		}
	}

	guarded(StateIntro, StateWarpingIn)
	m.Allow(StateWarpingIn, StateYearGate)
	guarded(StateYearGate, StateZooming)
	m.Allow(StateZooming, StateTimelineIdle, StateStepActive)
	m.Allow(StateTimelineIdle, StateStepActive, StateRaceOverlay)
	guarded(StateTimelineIdle, StateZooming, StateWarpingOut)
	m.Allow(StateStepActive, StateTimelineIdle, StateRaceOverlay)
	guarded(StateStepActive, StateZooming, StateWarpingOut)
	m.Allow(StateRaceOverlay, StateTimelineIdle, StateStepActive, StateConclusion)
	m.Allow(StateWarpingOut, StateConclusion)
	m.Allow(StateConclusion, StateTimelineIdle, StateRaceOverlay)
	m.Allow(stateStory, StateIntro)

	for _, id := range []State{StateWarpingIn, StateYearGate, StateRaceOverlay, StateWarpingOut} {
		m.OnEnter(id, func(c *Controller) { c.lock.Lock() })
	}
	for _, id := range []State{StateTimelineIdle, StateStepActive, StateConclusion} {
		m.OnEnter(id, func(c *Controller) {
			if c.lock.Locked() {
				c.lock.Unlock(c.clock.Now())
			}
		})
	}
	m.OnEnter(StateIntro, func(c *Controller) { c.lock.Reset() })
	m.OnExit(StateRaceOverlay, func(c *Controller) { c.endScrub() })

	if err := m.CompilePaths(); err != nil {
		return nil, err
	}
	return m, nil
}
