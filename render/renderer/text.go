package renderer

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/warpglobe/render"
)

// centerText writes s centered in the columns [x, x+w)
func centerText(buf *render.RenderBuffer, x, w, y int, s string, fg render.RGB, attrs tcell.AttrMask) {
	sw := runewidth.StringWidth(s)
	start := x + max((w-sw)/2, 0)
	buf.SetText(start, y, x+w, s, fg, attrs)
}

// rightText writes s ending at column right (exclusive), returns the start column
func rightText(buf *render.RenderBuffer, right, y int, s string, fg render.RGB, attrs tcell.AttrMask) int {
	start := max(right-runewidth.StringWidth(s), 0)
	buf.SetText(start, y, right, s, fg, attrs)
	return start
}
