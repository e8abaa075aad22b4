package engine

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/warpglobe/input"
	"github.com/lixenwraith/warpglobe/narrative"
)

// HandleEvent parses a terminal event and applies it, returns false on quit
func (e *Engine) HandleEvent(ev tcell.Event) bool {
	intent := e.input.Process(ev)
	if intent == nil {
		return true
	}
	return e.dispatch(*intent)
}

// dispatch routes one intent to the controller, the race or the audio, returns false on quit
func (e *Engine) dispatch(in input.Intent) bool {
	switch in.Type {
	case input.IntentQuit:
		return false
	case input.IntentResize:
		e.resize()
	case input.IntentEscape:
		e.ctrl.Escape()
	case input.IntentToggleMute:
		muted := e.audio.ToggleMute()
		e.logger.Debug("audio", zap.Bool("muted", muted))

	case input.IntentBegin:
		if e.ctrl.Is(narrative.StateYearGate) {
			e.rejected("proceed", e.ctrl.Proceed())
		} else {
			e.rejected("begin", e.ctrl.Begin())
		}
	case input.IntentScroll:
		e.ctrl.Scroll(in.Count)
	case input.IntentToggleYear:
		e.ctrl.ToggleYear()
	case input.IntentToggleChart:
		e.ctrl.ToggleChart()
	case input.IntentRace:
		if e.ctrl.Is(narrative.StateRaceOverlay) {
			e.rejected("close race", e.ctrl.CloseRace())
		} else {
			e.rejected("open race", e.ctrl.OpenRace())
		}
	case input.IntentBackToIntro:
		e.ctrl.BackToIntro()
	case input.IntentBackToTimeline:
		e.rejected("back to timeline", e.ctrl.BackToTimeline())
	case input.IntentBackToRace:
		e.rejected("back to race", e.ctrl.BackToRace())

	case input.IntentRaceStep:
		if e.ctrl.Is(narrative.StateRaceOverlay) {
			e.race.Step(in.Count)
		}
	case input.IntentRacePlay:
		if e.ctrl.Is(narrative.StateRaceOverlay) {
			e.race.TogglePlay()
		}

	case input.IntentDragStart:
		e.ctrl.DragStart(in.X, in.Y)
	case input.IntentDragMove:
		e.ctrl.DragMove(in.X, in.Y)
	case input.IntentDragEnd:
		e.ctrl.DragEnd()
	}
	return true
}

// rejected logs a refused user request, refusals are normal while cinematic states run
func (e *Engine) rejected(what string, err error) {
	if err != nil {
		e.logger.Debug("request rejected", zap.String("request", what), zap.Error(err))
	}
}
