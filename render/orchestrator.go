package render

import (
	"github.com/gdamore/tcell/v2"
)

type rendererEntry struct {
	renderer SystemRenderer
	priority RenderPriority
	index    int // registration order for stable sort
}

// RenderOrchestrator coordinates the render pipeline
type RenderOrchestrator struct {
	screen    tcell.Screen
	mode      ColorMode
	frame     Frame
	renderers []rendererEntry
	regCount  int
}

// NewRenderOrchestrator creates an orchestrator with the given screen and dimensions
func NewRenderOrchestrator(screen tcell.Screen, mode ColorMode, width, height int) *RenderOrchestrator {
	return &RenderOrchestrator{
		screen: screen,
		mode:   mode,
		frame: Frame{
			Canvas: NewCanvas(width, height),
			Buffer: NewRenderBuffer(width, height),
		},
		renderers: make([]rendererEntry, 0, 8),
	}
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (o *RenderOrchestrator) Register(r SystemRenderer, priority RenderPriority) {
	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// Resize updates surface dimensions and syncs the screen
func (o *RenderOrchestrator) Resize(width, height int) {
	o.frame.Canvas.Resize(width, height)
	o.frame.Buffer.Resize(width, height)
	o.screen.Sync()
}

// RenderFrame executes the pipeline: canvas renderers, resolve, cell renderers, flush
func (o *RenderOrchestrator) RenderFrame(ctx RenderContext) {
	o.frame.Buffer.Clear()

	resolved := false
	for _, entry := range o.renderers {
		if !resolved && entry.priority >= PriorityText {
			o.frame.Canvas.Resolve(o.frame.Buffer)
			resolved = true
		}
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.renderer.Render(ctx, &o.frame)
	}
	if !resolved {
		o.frame.Canvas.Resolve(o.frame.Buffer)
	}

	o.frame.Buffer.FlushToScreen(o.screen, o.mode)
}
