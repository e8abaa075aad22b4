package renderer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/warpglobe/narrative"
	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/parameter/visual"
	"github.com/lixenwraith/warpglobe/race"
	"github.com/lixenwraith/warpglobe/render"
)

// barEighths are the partial block widths of a bar's last cell
var barEighths = []rune(" ▏▎▍▌▋▊▉")

// RaceRenderer draws the race overlay box, its bars and the year slider
type RaceRenderer struct {
	ctrl *narrative.Controller
	race *race.Race
}

// NewRaceRenderer creates a race overlay renderer
func NewRaceRenderer(ctrl *narrative.Controller, r *race.Race) *RaceRenderer {
	return &RaceRenderer{ctrl: ctrl, race: r}
}

// IsVisible implements render.VisibilityToggle
func (r *RaceRenderer) IsVisible() bool {
	return r.ctrl.Is(narrative.StateRaceOverlay)
}

// Render implements render.SystemRenderer
func (r *RaceRenderer) Render(_ render.RenderContext, frame *render.Frame) {
	buf := frame.Buffer
	l := r.ctrl.Layout()
	box := l.Race
	if box.W < 8 || box.H < 6 {
		return
	}
	buf.FillRect(box.X, box.Y, box.W, box.H, visual.RgbOverlay, parameter.OverlayAlpha)

	inner := box.X + 2
	right := box.X + box.W - 2
	if r.race.Empty() {
		buf.SetText(inner, box.Y+1, right, parameter.RaceTitle, visual.RgbTitle, tcell.AttrBold)
		centerText(buf, box.X, box.W, box.Y+box.H/2, parameter.RaceEmpty, visual.RgbTextDim, tcell.AttrNone)
		return
	}

	buf.SetText(inner, box.Y+1, right, parameter.RaceTitle, visual.RgbTitle, tcell.AttrBold)
	rightText(buf, right, box.Y+1, strconv.Itoa(r.race.Year()), visual.RgbAccent, tcell.AttrBold)

	r.bars(buf, inner, box.Y+3, right, l.Slider.Y-2)
	r.slider(buf, l)
}

func (r *RaceRenderer) bars(buf *render.RenderBuffer, x, top, right, bottom int) {
	rows := bottom - top
	if rows <= 0 {
		return
	}
	bars := r.race.Bars()
	step := 1
	if len(bars) > 0 && rows >= len(bars)*2 {
		step = 2
	}
	barW := right - x - parameter.RaceLabelWidth - parameter.RaceValueWidth
	if barW <= 0 {
		return
	}
	maxV := r.race.Max()

	for i, b := range bars {
		y := top + i*step
		if y >= bottom {
			break
		}
		label := runewidth.Truncate(b.Region, parameter.RaceLabelWidth-1, "…")
		buf.SetText(x, y, x+parameter.RaceLabelWidth, label, visual.RgbText, tcell.AttrNone)

		frac := math.Max(b.Value, 0) / maxV
		fg := render.Lerp(visual.RgbPreEvent, visual.RgbPostEvent, frac)
		bx := x + parameter.RaceLabelWidth
		bar := barRunes(frac * float64(barW))
		end := buf.SetText(bx, y, bx+barW, bar, fg, tcell.AttrNone)

		buf.SetText(end+1, y, right, fmt.Sprintf("%.3g", b.Value), visual.RgbTextDim, tcell.AttrNone)
	}
}

// barRunes renders a bar of length cells with an eighth-resolution tail
func barRunes(length float64) string {
	if length <= 0 {
		return ""
	}
	full := int(length)
	part := int((length - float64(full)) * 8)
	s := strings.Repeat("█", full)
	if part > 0 {
		s += string(barEighths[part])
	}
	return s
}

func (r *RaceRenderer) slider(buf *render.RenderBuffer, l narrative.Layout) {
	s := l.Slider
	if s.W <= 1 {
		return
	}
	buf.SetText(s.X, s.Y, s.X+s.W, strings.Repeat("─", s.W), visual.RgbTextDim, tcell.AttrNone)

	knob := s.X + int(math.Round(r.race.YearFraction()*float64(s.W-1)))
	attrs := tcell.AttrNone
	if r.race.Scrubbing() {
		attrs = tcell.AttrBold
	}
	buf.SetFgOnly(knob, s.Y, '●', visual.RgbAccent, attrs)

	lo, hi := r.race.YearRange()
	state := "▶"
	if r.race.Playing() {
		state = "❚❚"
	}
	buf.SetText(s.X, s.Y-1, s.X+s.W, state, visual.RgbTitle, tcell.AttrNone)
	buf.SetText(s.X, s.Y+1, s.X+s.W, strconv.Itoa(lo), visual.RgbTextDim, tcell.AttrNone)
	rightText(buf, s.X+s.W, s.Y+1, strconv.Itoa(hi), visual.RgbTextDim, tcell.AttrNone)
}
