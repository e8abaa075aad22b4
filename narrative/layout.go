package narrative

import (
	"github.com/lixenwraith/warpglobe/globe"
	"github.com/lixenwraith/warpglobe/parameter"
)

// Layout is the screen geometry shared by the controller and the renderers
// Globe is in canvas pixels, every other rect is in cells
type Layout struct {
	Cols, Rows int
	Globe      globe.Rect
	Panel      globe.Rect
	Race       globe.Rect
	Slider     globe.Rect
	Status     globe.Rect
}

// ComputeLayout splits a cols x rows screen into globe, panel and overlays
func ComputeLayout(cols, rows int) Layout {
	body := max(rows-parameter.StatusBarHeight, 0)
	globeW := int(float64(cols) * parameter.GlobePanelRatio)

	l := Layout{
		Cols:   cols,
		Rows:   rows,
		Globe:  globe.Rect{X: 0, Y: 0, W: globeW, H: body * 2},
		Panel:  globe.Rect{X: globeW + parameter.PanelPadding, Y: 0, W: max(cols-globeW-2*parameter.PanelPadding, 0), H: body},
		Status: globe.Rect{X: 0, Y: body, W: cols, H: parameter.StatusBarHeight},
	}

	// Race overlay is a centered box with the slider on its last inner row
	rw := max(cols-2*parameter.OverlayMargin, 0)
	rh := max(body-2*parameter.OverlayMargin/2, 0)
	l.Race = globe.Rect{X: (cols - rw) / 2, Y: (body - rh) / 2, W: rw, H: rh}
	l.Slider = globe.Rect{X: l.Race.X + 2, Y: l.Race.Y + l.Race.H - 2, W: max(rw-4, 0), H: 1}
	return l
}

// ConclusionGlobe is the pixel rect of the full-width conclusion globe
func (l Layout) ConclusionGlobe() globe.Rect {
	top := parameter.ConclusionTextRows
	return globe.Rect{X: 0, Y: top * 2, W: l.Cols, H: max(l.Status.Y-top, 0) * 2}
}
