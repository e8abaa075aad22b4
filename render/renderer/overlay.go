package renderer

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/warpglobe/narrative"
	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/parameter/visual"
	"github.com/lixenwraith/warpglobe/render"
)

// OverlayRenderer draws the full-screen text states: intro, year gate and conclusion
type OverlayRenderer struct {
	ctrl *narrative.Controller
}

// NewOverlayRenderer creates an overlay renderer
func NewOverlayRenderer(ctrl *narrative.Controller) *OverlayRenderer {
	return &OverlayRenderer{ctrl: ctrl}
}

// Render implements render.SystemRenderer
func (r *OverlayRenderer) Render(ctx render.RenderContext, frame *render.Frame) {
	switch {
	case r.ctrl.Is(narrative.StateIntro):
		r.intro(ctx, frame.Buffer)
	case r.ctrl.Is(narrative.StateYearGate):
		r.gate(ctx, frame.Buffer)
	case r.ctrl.Is(narrative.StateConclusion):
		r.conclusion(ctx, frame.Buffer)
	}
}

func (r *OverlayRenderer) intro(ctx render.RenderContext, buf *render.RenderBuffer) {
	st := r.ctrl.Story()
	w := min(ctx.ScreenWidth-4, parameter.IntroWidth)
	if w <= 0 {
		return
	}
	x := (ctx.ScreenWidth - w) / 2

	body := narrative.Wrap(st.Intro.Body, w)
	// title, subtitle, blank, body, blank, prompt
	h := 3 + len(body) + 2
	y := max((ctx.ScreenHeight-parameter.StatusBarHeight-h)/2, 0)

	buf.FillRect(x-2, y-1, w+4, h+2, visual.RgbOverlay, 0.6)
	centerText(buf, x, w, y, strings.ToUpper(st.Title), visual.RgbTitle, tcell.AttrBold)
	centerText(buf, x, w, y+1, st.Intro.Title, visual.RgbAccent, tcell.AttrNone)
	for i, line := range body {
		centerText(buf, x, w, y+3+i, line, visual.RgbText, tcell.AttrNone)
	}
	centerText(buf, x, w, y+h-1, parameter.IntroPrompt, visual.RgbTextDim, tcell.AttrBlink)
}

func (r *OverlayRenderer) gate(ctx render.RenderContext, buf *render.RenderBuffer) {
	digits := strconv.Itoa(r.ctrl.GateYear())
	spaced := strings.Join(strings.Split(digits, ""), " ")

	y := (ctx.ScreenHeight - parameter.StatusBarHeight) / 2
	centerText(buf, 0, ctx.ScreenWidth, y-1, spaced, visual.RgbAccent, tcell.AttrBold)
	centerText(buf, 0, ctx.ScreenWidth, y+1, parameter.GatePrompt, visual.RgbTextDim, tcell.AttrNone)
}

func (r *OverlayRenderer) conclusion(ctx render.RenderContext, buf *render.RenderBuffer) {
	sec := r.ctrl.Story().Conclusion
	w := min(ctx.ScreenWidth-4, parameter.IntroWidth*2)
	if w <= 0 {
		return
	}
	x := (ctx.ScreenWidth - w) / 2

	centerText(buf, x, w, 1, sec.Title, visual.RgbTitle, tcell.AttrBold)
	for i, line := range narrative.Wrap(sec.Body, w) {
		row := 3 + i
		if row >= parameter.ConclusionTextRows {
			break
		}
		centerText(buf, x, w, row, line, visual.RgbText, tcell.AttrNone)
	}
}
