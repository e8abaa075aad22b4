package render

// RenderPriority determines render order. Lower values render first
// Priorities below PriorityText draw on the pixel canvas, the rest write cells
type RenderPriority int

const (
	PriorityBackground RenderPriority = iota
	PriorityGlobe
	PriorityEffect
	PriorityText
	PriorityPanel
	PriorityOverlay
	PriorityUI
)
