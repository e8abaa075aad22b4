package parameter

import "time"

// Frame Loop
const (
	// FrameUpdateInterval is the render loop interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// FrameBaseline is the frame duration that normalizes per-frame deltas to 1.0
	FrameBaseline = 16660 * time.Microsecond

	// EventQueueSize is the buffered capacity of the terminal event channel
	EventQueueSize = 100

	// ResultQueueSize is the buffered capacity of the fetch completion channel
	ResultQueueSize = 32
)

// MaxFrameDelta caps the update step after a stall so tweens and springs do not jump
const MaxFrameDelta = 250 * time.Millisecond
