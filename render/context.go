package render

import "time"

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	Now time.Time

	// Screen dimensions (cells)
	ScreenWidth  int
	ScreenHeight int

	// Loop telemetry for the status bar
	FPS   int
	Muted bool
}

// PixelHeight returns the canvas height for the screen
func (rc RenderContext) PixelHeight() int {
	return rc.ScreenHeight * 2
}
