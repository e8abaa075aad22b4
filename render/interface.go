package render

// SystemRenderer is implemented by anything with visual output
type SystemRenderer interface {
	Render(ctx RenderContext, frame *Frame)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}

// Frame holds the two surfaces of a render pass
type Frame struct {
	Canvas *Canvas
	Buffer *RenderBuffer
}
