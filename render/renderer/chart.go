package renderer

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/warpglobe/narrative"
	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/parameter/visual"
	"github.com/lixenwraith/warpglobe/race"
	"github.com/lixenwraith/warpglobe/render"
)

// ChartRenderer draws the expanded region chart over the lower globe area
type ChartRenderer struct {
	ctrl *narrative.Controller
}

// NewChartRenderer creates an expanded chart renderer
func NewChartRenderer(ctrl *narrative.Controller) *ChartRenderer {
	return &ChartRenderer{ctrl: ctrl}
}

// IsVisible implements render.VisibilityToggle
func (r *ChartRenderer) IsVisible() bool {
	return r.ctrl.ChartOpen() && r.ctrl.CurrentStep() != nil
}

// Render implements render.SystemRenderer
func (r *ChartRenderer) Render(_ render.RenderContext, frame *render.Frame) {
	buf := frame.Buffer
	step := r.ctrl.CurrentStep()
	g := r.ctrl.Layout().Globe

	w := g.W - 2
	h := min(parameter.ChartExpandedRows, g.H/2-2)
	if w < 8 || h < 5 {
		return
	}
	x := g.X + 1
	y := g.Y/2 + g.H/2 - h - 1
	buf.FillRect(x, y, w, h, visual.RgbOverlay, parameter.OverlayAlpha)

	buf.SetText(x+1, y, x+w-1, step.Region, visual.RgbTitle, tcell.AttrBold)
	rightText(buf, x+w-1, y, strconv.Itoa(step.EventYear), visual.RgbAccent, tcell.AttrNone)

	cols := race.Columns(r.ctrl.Series(), step.EventYear, w-2)
	if len(cols) == 0 {
		centerText(buf, x, w, y+h/2, parameter.ChartLoading, visual.RgbTextDim, tcell.AttrNone)
		return
	}

	rows := h - 3
	top := y + 1
	for i, c := range cols {
		fg := visual.RgbPreEvent
		if c.After {
			fg = visual.RgbPostEvent
		}
		for row := 0; row < rows; row++ {
			if gl := race.Glyph(c.Level, row, rows); gl != 0 {
				buf.SetFgOnly(x+1+i, top+row, gl, fg, tcell.AttrNone)
			}
		}
		// Event marker on the last column before the split
		if !c.After && i+1 < len(cols) && cols[i+1].After {
			buf.SetFgOnly(x+1+i, top+rows, '▲', visual.RgbAccent, tcell.AttrNone)
		}
	}

	axis := top + rows + 1
	buf.SetText(x+1, axis, x+w-1, strconv.Itoa(cols[0].Year), visual.RgbTextDim, tcell.AttrNone)
	rightText(buf, x+w-1, axis, strconv.Itoa(cols[len(cols)-1].Year), visual.RgbTextDim, tcell.AttrNone)
}
