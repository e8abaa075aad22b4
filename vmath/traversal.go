package vmath

import "math"

// LineTraverser is a zero-allocation iterator over the integer pixels of a segment
// Steps along the major axis so each column (or row) is visited exactly once
type LineTraverser struct {
	x, y   float64
	dx, dy float64
	steps  int
	i      int
}

// NewLineTraverser creates an iterator from (x1, y1) to (x2, y2) in float pixel space
func NewLineTraverser(x1, y1, x2, y2 float64) LineTraverser {
	dx := x2 - x1
	dy := y2 - y1
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	t := LineTraverser{x: x1, y: y1, steps: steps, i: -1}
	if steps > 0 {
		t.dx = dx / float64(steps)
		t.dy = dy / float64(steps)
	}
	return t
}

// Next advances to the next pixel, returns false when the segment is exhausted
func (t *LineTraverser) Next() bool {
	if t.i >= t.steps {
		return false
	}
	t.i++
	return true
}

// Pos returns the current pixel coordinates
func (t *LineTraverser) Pos() (int, int) {
	fx := t.x + t.dx*float64(t.i)
	fy := t.y + t.dy*float64(t.i)
	return int(math.Floor(fx + 0.5)), int(math.Floor(fy + 0.5))
}

// Progress returns the position along the segment in [0, 1]
func (t *LineTraverser) Progress() float64 {
	if t.steps == 0 {
		return 1
	}
	return float64(t.i) / float64(t.steps)
}
