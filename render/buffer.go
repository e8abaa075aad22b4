package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// RenderBuffer is a cell compositor with touch tracking
type RenderBuffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	size := max(width, 0) * max(height, 0)
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: 0, Fg: RGBWhite, Bg: DefaultBgRGB}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

// inBounds returns true if in screen bounds
func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y), zero cell when out of bounds
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Set composites a cell with specified blend mode
func (b *RenderBuffer) Set(x, y int, mainRune rune, fg, bg RGB, mode BlendMode, alpha float64, attrs tcell.AttrMask) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]

	op := uint8(mode) & 0x0F
	flags := uint8(mode) & 0xF0

	if mainRune != 0 {
		dst.Rune = mainRune
		dst.Attrs = attrs
	}
	if flags&flagBg != 0 {
		dst.Bg = apply(op, dst.Bg, bg, alpha)
		b.touched[idx] = true
	}
	if flags&flagFg != 0 {
		dst.Fg = apply(op, dst.Fg, fg, alpha)
	}
}

// SetFgOnly writes rune, foreground, and attrs while preserving existing background
func (b *RenderBuffer) SetFgOnly(x, y int, r rune, fg RGB, attrs tcell.AttrMask) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
	dst.Attrs = attrs
}

// SetBgOnly updates the background color while preserving existing rune/foreground
func (b *RenderBuffer) SetBgOnly(x, y int, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx].Bg = bg
	b.touched[idx] = true
}

// SetWithBg writes a cell with explicit fg and bg colors (opaque replace)
func (b *RenderBuffer) SetWithBg(x, y int, r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]
	dst.Rune = r
	dst.Fg = fg
	dst.Bg = bg
	dst.Attrs = tcell.AttrNone
	b.touched[idx] = true
}

// SetText writes a string starting at (x, y) keeping backgrounds, clipped at maxX (exclusive)
// Wide runes occupy two cells, returns the column after the last written rune
func (b *RenderBuffer) SetText(x, y, maxX int, s string, fg RGB, attrs tcell.AttrMask) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		b.SetFgOnly(x, y, r, fg, attrs)
		if w == 2 {
			b.SetFgOnly(x+1, y, 0, fg, attrs)
		}
		x += w
	}
	return x
}

// FillRect paints a background rectangle, clearing runes
func (b *RenderBuffer) FillRect(x, y, w, h int, bg RGB, alpha float64) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.Set(col, row, ' ', bg, bg, BlendAlpha, alpha, tcell.AttrNone)
		}
	}
}

// BlendRect composites color over a rectangle with mode, runes are kept
func (b *RenderBuffer) BlendRect(x, y, w, h int, color RGB, mode BlendMode, alpha float64) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.Set(col, row, 0, color, color, mode, alpha, tcell.AttrNone)
		}
	}
}

// finalize sets default background to untouched cells before Flush
func (b *RenderBuffer) finalize() {
	for i := range b.cells {
		if !b.touched[i] {
			b.cells[i].Bg = DefaultBgRGB
		}
	}
}

// FlushToScreen writes render buffer to the tcell screen and shows it
func (b *RenderBuffer) FlushToScreen(screen tcell.Screen, mode ColorMode) {
	b.finalize()
	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			c := b.cells[row+x]
			if c.Rune == 0 && x > 0 && runewidth.RuneWidth(b.cells[row+x-1].Rune) == 2 {
				// Continuation of a wide rune
				continue
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.
				Foreground(ToTcell(c.Fg, mode)).
				Background(ToTcell(c.Bg, mode)).
				Attributes(c.Attrs)
			screen.SetContent(x, y, r, nil, style)
		}
	}
	screen.Show()
}
