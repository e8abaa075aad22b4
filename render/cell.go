package render

import "github.com/gdamore/tcell/v2"

// Cell is a single composited terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs tcell.AttrMask
}

// DefaultBgRGB is the background of cells nothing has touched
var DefaultBgRGB = RGB{2, 6, 23}
