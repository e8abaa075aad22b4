package renderer

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/warpglobe/narrative"
	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/parameter/visual"
	"github.com/lixenwraith/warpglobe/render"
)

// StatusBarRenderer draws the bottom row: audio, state, key hints, dataset info and fps
type StatusBarRenderer struct {
	ctrl *narrative.Controller
}

// NewStatusBarRenderer creates a status bar renderer
func NewStatusBarRenderer(ctrl *narrative.Controller) *StatusBarRenderer {
	return &StatusBarRenderer{ctrl: ctrl}
}

// Render implements render.SystemRenderer
func (r *StatusBarRenderer) Render(ctx render.RenderContext, frame *render.Frame) {
	buf := frame.Buffer
	y := r.ctrl.Layout().Status.Y
	if y < 0 || y >= ctx.ScreenHeight {
		return
	}
	buf.FillRect(0, y, ctx.ScreenWidth, 1, visual.RgbStatusBg, 1)

	// Audio indicator, always visible
	audio, audioBg := parameter.AudioOnText, visual.RgbTitle
	if ctx.Muted {
		audio, audioBg = parameter.AudioMutedText, visual.RgbTextDim
	}
	x := 0
	for _, ch := range audio {
		buf.SetWithBg(x, y, ch, visual.RgbSpace, audioBg)
		x++
	}

	state := " " + strings.ToUpper(r.ctrl.StateName()) + " "
	x = buf.SetText(x, y, ctx.ScreenWidth, state, visual.RgbAccent, tcell.AttrBold)

	right := ctx.ScreenWidth
	if ctx.FPS > 0 {
		right = rightText(buf, right, y, fmt.Sprintf(" %d fps ", ctx.FPS), visual.RgbTextDim, tcell.AttrNone)
	}
	if info := r.ctrl.Info(); info.File != "" {
		line := fmt.Sprintf(" Year: %s, Min %.3g, Max %.3g ", info.File, info.Domain.Min, info.Domain.Max)
		if x+len(line) < right {
			right = rightText(buf, right, y, line, visual.RgbText, tcell.AttrNone)
		}
	}

	buf.SetText(x, y, right, r.hint(), visual.RgbTextDim, tcell.AttrNone)
}

// hint returns the key hints of the current state, or the running chain phase
func (r *StatusBarRenderer) hint() string {
	switch {
	case r.ctrl.Is(narrative.StateIntro):
		return parameter.HintIntro
	case r.ctrl.Is(narrative.StateYearGate):
		return parameter.HintYearGate
	case r.ctrl.Is(narrative.StateRaceOverlay):
		return parameter.HintRace
	case r.ctrl.Is(narrative.StateConclusion):
		return parameter.HintConclusion
	case r.ctrl.Is(narrative.StateWarpingIn, narrative.StateWarpingOut):
		if chain, phase := r.ctrl.Sequence(); chain != "" {
			return " " + chain + " · " + phase + " "
		}
		return ""
	}
	return parameter.HintTimeline
}
