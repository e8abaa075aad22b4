package render

import (
	"math"

	"github.com/lixenwraith/warpglobe/vmath"
)

// Canvas is a pixel surface resolved into half-block cells, two pixels per cell vertically
type Canvas struct {
	px     []RGB
	width  int
	height int
}

// NewCanvas creates a canvas sized for a cols x rows cell area
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize adjusts the pixel grid to cols x rows*2
func (c *Canvas) Resize(cols, rows int) {
	w, h := max(cols, 0), max(rows, 0)*2
	if cap(c.px) < w*h {
		c.px = make([]RGB, w*h)
	} else {
		c.px = c.px[:w*h]
	}
	c.width, c.height = w, h
}

// Size returns pixel dimensions
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// At returns the pixel at (x, y), black when out of bounds
func (c *Canvas) At(x, y int) RGB {
	if !c.inBounds(x, y) {
		return RGBBlack
	}
	return c.px[y*c.width+x]
}

// Fill paints every pixel
func (c *Canvas) Fill(color RGB) {
	if len(c.px) == 0 {
		return
	}
	c.px[0] = color
	for filled := 1; filled < len(c.px); filled *= 2 {
		copy(c.px[filled:], c.px[:filled])
	}
}

// Wash alpha-blends color over every pixel
func (c *Canvas) Wash(color RGB, alpha float64) {
	for i := range c.px {
		c.px[i] = Blend(c.px[i], color, alpha)
	}
}

// CopyFrom copies pixels from a canvas of identical size
func (c *Canvas) CopyFrom(src *Canvas) {
	if src.width != c.width || src.height != c.height {
		return
	}
	copy(c.px, src.px)
}

// Plot blends a single pixel
func (c *Canvas) Plot(x, y int, color RGB, alpha float64) {
	if !c.inBounds(x, y) {
		return
	}
	idx := y*c.width + x
	c.px[idx] = Blend(c.px[idx], color, alpha)
}

// PlotAdd adds light to a single pixel
func (c *Canvas) PlotAdd(x, y int, color RGB, alpha float64) {
	if !c.inBounds(x, y) {
		return
	}
	idx := y*c.width + x
	c.px[idx] = Add(c.px[idx], color, alpha)
}

// Line draws a segment, alpha fading from alpha0 at the start to alpha1 at the end
func (c *Canvas) Line(x0, y0, x1, y1 float64, color RGB, alpha0, alpha1 float64) {
	t := vmath.NewLineTraverser(x0, y0, x1, y1)
	for t.Next() {
		x, y := t.Pos()
		c.Plot(x, y, color, vmath.Lerp(alpha0, alpha1, t.Progress()))
	}
}

// FillDisk blends a filled circle, always covering at least the center pixel
func (c *Canvas) FillDisk(cx, cy, r float64, color RGB, alpha float64) {
	if r < 1 {
		c.Plot(int(math.Floor(cx)), int(math.Floor(cy)), color, alpha)
		return
	}
	minY := int(math.Floor(cy - r))
	maxY := int(math.Ceil(cy + r))
	rr := r * r
	for y := max(minY, 0); y <= min(maxY, c.height-1); y++ {
		dy := float64(y) + 0.5 - cy
		span := rr - dy*dy
		if span < 0 {
			continue
		}
		half := math.Sqrt(span)
		x0 := int(math.Floor(cx - half + 0.5))
		x1 := int(math.Floor(cx + half - 0.5))
		for x := max(x0, 0); x <= min(x1, c.width-1); x++ {
			idx := y*c.width + x
			c.px[idx] = Blend(c.px[idx], color, alpha)
		}
	}
}

// Ring blends an annulus whose alpha fades linearly from alphaIn at r0 to zero at r1
func (c *Canvas) Ring(cx, cy, r0, r1 float64, color RGB, alphaIn float64) {
	if r1 <= r0 {
		return
	}
	minY := int(math.Floor(cy - r1))
	maxY := int(math.Ceil(cy + r1))
	minX := int(math.Floor(cx - r1))
	maxX := int(math.Ceil(cx + r1))
	for y := max(minY, 0); y <= min(maxY, c.height-1); y++ {
		for x := max(minX, 0); x <= min(maxX, c.width-1); x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d < r0 || d > r1 {
				continue
			}
			a := alphaIn * (1 - (d-r0)/(r1-r0))
			idx := y*c.width + x
			c.px[idx] = Blend(c.px[idx], color, a)
		}
	}
}

// Circle draws an outline by sampling the circumference
func (c *Canvas) Circle(cx, cy, r float64, color RGB, alpha float64) {
	steps := max(int(2*math.Pi*r), 8)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Plot(int(math.Floor(cx+r*math.Cos(a))), int(math.Floor(cy+r*math.Sin(a))), color, alpha)
	}
}

// Resolve writes the canvas into the buffer as upper half blocks, top pixel in fg and bottom in bg
func (c *Canvas) Resolve(buf *RenderBuffer) {
	rows := c.height / 2
	for row := 0; row < rows; row++ {
		top := row * 2 * c.width
		bottom := top + c.width
		for x := 0; x < c.width; x++ {
			buf.SetWithBg(x, row, '▀', c.px[top+x], c.px[bottom+x])
		}
	}
}
