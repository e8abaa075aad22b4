package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/warpglobe/globe"
	"github.com/lixenwraith/warpglobe/narrative"
	"github.com/lixenwraith/warpglobe/parameter/visual"
	"github.com/lixenwraith/warpglobe/render"
)

// shownGlobe returns the globe visible in the current state, nil during the cinematic states
func shownGlobe(c *narrative.Controller) *globe.Globe {
	switch {
	case c.Is(narrative.StateConclusion):
		return c.Conclusion()
	case c.Is(narrative.StateTimelineIdle, narrative.StateStepActive, narrative.StateZooming):
		return c.Globe()
	case c.Is(narrative.StateRaceOverlay) && c.Revealed():
		return c.Globe()
	}
	return nil
}

// GlobeRenderer draws the visible globe onto the canvas
type GlobeRenderer struct {
	ctrl *narrative.Controller
}

// NewGlobeRenderer creates a globe renderer
func NewGlobeRenderer(ctrl *narrative.Controller) *GlobeRenderer {
	return &GlobeRenderer{ctrl: ctrl}
}

// Render implements render.SystemRenderer
func (r *GlobeRenderer) Render(_ render.RenderContext, frame *render.Frame) {
	if g := shownGlobe(r.ctrl); g != nil {
		g.Draw(frame.Canvas)
	}
}

// LabelRenderer writes the focus label and the year badge over the resolved globe
type LabelRenderer struct {
	ctrl *narrative.Controller
}

// NewLabelRenderer creates a label renderer
func NewLabelRenderer(ctrl *narrative.Controller) *LabelRenderer {
	return &LabelRenderer{ctrl: ctrl}
}

// Render implements render.SystemRenderer
func (r *LabelRenderer) Render(ctx render.RenderContext, frame *render.Frame) {
	g := shownGlobe(r.ctrl)
	if g == nil {
		return
	}
	buf := frame.Buffer
	rect := g.Rect()
	right := min(rect.X+rect.W, ctx.ScreenWidth)

	if x, y, text, ok := g.LabelAnchor(); ok && text != "" {
		buf.SetText(int(x), int(y)/2, right, text, visual.RgbAccent, tcell.AttrBold)
	}

	if r.ctrl.Is(narrative.StateStepActive, narrative.StateZooming) && r.ctrl.ActiveStep() >= 0 {
		badge := fmt.Sprintf(" %d · %s ", r.ctrl.DisplayYear(), r.ctrl.YearMode())
		buf.SetText(rect.X+1, rect.Y/2, right, badge, visual.RgbTitle, tcell.AttrBold)
	}
}
