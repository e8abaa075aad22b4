package renderer

import (
	"github.com/lixenwraith/warpglobe/render"
	"github.com/lixenwraith/warpglobe/starfield"
)

// StarfieldRenderer copies the warp field onto the canvas, it is the bottom layer of every view
type StarfieldRenderer struct {
	stars *starfield.Engine
}

// NewStarfieldRenderer creates the background renderer
func NewStarfieldRenderer(stars *starfield.Engine) *StarfieldRenderer {
	return &StarfieldRenderer{stars: stars}
}

// Render implements render.SystemRenderer
func (r *StarfieldRenderer) Render(_ render.RenderContext, frame *render.Frame) {
	r.stars.Render(frame.Canvas)
}
