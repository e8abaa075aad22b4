package visual

import "github.com/lixenwraith/warpglobe/render"

// Space and panels
var (
	// RgbSpace is the deep-space background
	RgbSpace = render.RGB{2, 6, 23}
	// RgbPanel is the narrative column background
	RgbPanel = render.RGB{11, 17, 32}
	// RgbPanelActive highlights the active step
	RgbPanelActive = render.RGB{22, 33, 58}
	// RgbOverlay is the race overlay box background
	RgbOverlay = render.RGB{8, 12, 28}
)

// Starfield
var (
	// RgbStarCore is the dot core color
	RgbStarCore = render.RGB{249, 250, 251}
	// RgbStarGlow is the soft glow around a dot
	RgbStarGlow = render.RGB{148, 163, 184}
)

// Globe
var (
	RgbOcean      = render.RGB{10, 26, 51}
	RgbAtmosphere = render.RGB{56, 189, 248}
	RgbGraticule  = render.RGB{30, 58, 95}
	RgbCountry    = render.RGB{203, 213, 225}
	RgbHalo       = render.RGB{250, 204, 21}
)

// Color scale stops (low, mid, high)
var (
	RgbScaleLow  = render.RGB{0, 128, 0}
	RgbScaleMid  = render.RGB{255, 255, 0}
	RgbScaleHigh = render.RGB{255, 0, 0}
)

// Text
var (
	RgbText      = render.RGB{226, 232, 240}
	RgbTextDim   = render.RGB{100, 116, 139}
	RgbTitle     = render.RGB{125, 211, 252}
	RgbAccent    = render.RGB{250, 204, 21}
	RgbStatusBg  = render.RGB{15, 23, 42}
	RgbFlipWipe  = render.RGB{56, 189, 248}
	RgbPreEvent  = render.RGB{59, 130, 246}
	RgbPostEvent = render.RGB{239, 68, 68}
)
