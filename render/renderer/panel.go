package renderer

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/warpglobe/narrative"
	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/parameter/visual"
	"github.com/lixenwraith/warpglobe/race"
	"github.com/lixenwraith/warpglobe/render"
)

// PanelRenderer draws the scrolling narrative column with step charts and the page flip wipe
type PanelRenderer struct {
	ctrl *narrative.Controller
}

// NewPanelRenderer creates a panel renderer
func NewPanelRenderer(ctrl *narrative.Controller) *PanelRenderer {
	return &PanelRenderer{ctrl: ctrl}
}

// IsVisible implements render.VisibilityToggle
func (r *PanelRenderer) IsVisible() bool {
	return r.ctrl.Revealed() &&
		r.ctrl.Is(narrative.StateTimelineIdle, narrative.StateStepActive, narrative.StateZooming, narrative.StateRaceOverlay)
}

// Render implements render.SystemRenderer
func (r *PanelRenderer) Render(_ render.RenderContext, frame *render.Frame) {
	buf := frame.Buffer
	panel := r.ctrl.Layout().Panel
	if panel.W <= 0 || panel.H <= 0 {
		return
	}
	left := panel.X - parameter.PanelPadding
	width := panel.W + 2*parameter.PanelPadding
	right := panel.X + panel.W
	buf.FillRect(left, panel.Y, width, panel.H, visual.RgbPanel, parameter.PanelAlpha)

	active := r.ctrl.ActiveStep()
	steps := r.ctrl.Story().Steps
	var cols []race.Column
	if cur := r.ctrl.CurrentStep(); cur != nil {
		cols = race.Columns(r.ctrl.Series(), cur.EventYear, panel.W)
	}

	for i, line := range r.ctrl.Tracker().Visible() {
		y := panel.Y + i
		isActive := line.Step >= 0 && line.Step == active
		if isActive {
			buf.FillRect(left, y, parameter.PanelPadding/2, 1, visual.RgbAccent, 1)
		}

		switch line.Kind {
		case narrative.LineBlock:
			buf.SetText(panel.X, y, right, line.Text, visual.RgbAccent, tcell.AttrBold)
		case narrative.LineTitle:
			fg := visual.RgbTextDim
			if isActive {
				fg = visual.RgbTitle
				buf.BlendRect(panel.X, y, panel.W, 1, visual.RgbPanelActive, render.BlendScreenBg, parameter.ActiveRowAlpha)
			}
			buf.SetText(panel.X, y, right, line.Text, fg, tcell.AttrBold)
		case narrative.LineBody:
			fg := visual.RgbTextDim
			if isActive {
				fg = visual.RgbText
			}
			buf.SetText(panel.X, y, right, line.Text, fg, tcell.AttrNone)
		case narrative.LineChart:
			r.chartRow(buf, panel.X, y, line, isActive, cols, steps[line.Step].ChartFile != "")
		}
	}

	if progress, from := r.ctrl.Flip(); progress > 0 {
		r.wipe(buf, left, panel.Y, width, panel.H, progress, from)
	}
}

// chartRow draws one row of a step's sparkline, a dotted baseline until the series is loaded
func (r *PanelRenderer) chartRow(buf *render.RenderBuffer, x, y int, line narrative.Line, active bool, cols []race.Column, hasChart bool) {
	if !hasChart {
		return
	}
	if !active || len(cols) == 0 {
		if line.Row == parameter.ChartRows-1 {
			panel := r.ctrl.Layout().Panel
			buf.SetText(x, y, x+panel.W, strings.Repeat("┈", panel.W), visual.RgbTextDim, tcell.AttrNone)
		}
		return
	}
	for i, c := range cols {
		g := race.Glyph(c.Level, line.Row, parameter.ChartRows)
		if g == 0 {
			continue
		}
		fg := visual.RgbPreEvent
		if c.After {
			fg = visual.RgbPostEvent
		}
		buf.SetFgOnly(x+i, y, g, fg, tcell.AttrNone)
	}
}

// wipe covers the panel right of the flip edge, showing the block being turned away
func (r *PanelRenderer) wipe(buf *render.RenderBuffer, x, y, w, h int, progress float64, from string) {
	edge := x + int(progress*float64(w))
	rest := x + w - edge
	if rest <= 0 {
		return
	}
	buf.FillRect(edge, y, rest, h, visual.RgbPanel, 1)
	for row := y; row < y+h; row++ {
		buf.SetBgOnly(edge, row, visual.RgbFlipWipe)
	}
	if from != "" && rest > 2 {
		centerText(buf, edge+1, rest-1, y+h/2, strings.ToUpper(from), visual.RgbTextDim, tcell.AttrBold)
	}
}
