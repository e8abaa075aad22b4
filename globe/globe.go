// Package globe draws an orthographic world with binned emission points and
// animates scripted rotation, zoom and interactive drag
package globe

import (
	"math"
	"time"

	"github.com/lixenwraith/warpglobe/data"
	"github.com/lixenwraith/warpglobe/geo"
	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/parameter/visual"
	"github.com/lixenwraith/warpglobe/render"
	"github.com/lixenwraith/warpglobe/tween"
	"github.com/lixenwraith/warpglobe/vmath"
)

// Focus marks the region a step is about
type Focus struct {
	Lon   float64
	Lat   float64
	Label string
}

// Rect is a pixel area of the canvas
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether a pixel lies inside the rect
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Globe owns one projection and the drawable state of one view
type Globe struct {
	proj *geo.Orthographic
	rect Rect
	zoom float64

	countries []geo.Feature
	graticule []geo.Line

	cells      []data.GridCell
	scale      *data.ColorScale
	pointScale float64
	focus      *Focus

	tweens    *tween.Runner
	rotToken  *tween.Token
	zoomToken *tween.Token

	dragging    bool
	dragStartX  int
	dragStartY  int
	dragRot     geo.Rotation
	pending     bool
	pendingX    int
	pendingY    int
	dragApplied int
}

// New creates a globe centered on the initial view, animated by tweens
func New(tweens *tween.Runner) *Globe {
	g := &Globe{
		proj:       geo.NewOrthographic(),
		zoom:       1,
		graticule:  geo.Graticule(parameter.GraticuleStep, parameter.GraticuleSample),
		scale:      data.NewColorScale(data.DefaultDomain),
		pointScale: 1,
		tweens:     tweens,
	}
	g.proj.SetRotation(geo.Rotation{-parameter.GlobeInitialLon, -parameter.GlobeInitialLat, 0})
	return g
}

// SetCountries sets the outline features
func (g *Globe) SetCountries(features []geo.Feature) {
	g.countries = features
}

// Resize recomputes scale and translate for a pixel rect, rotation is kept
func (g *Globe) Resize(r Rect) {
	g.rect = r
	g.applyScale()
}

// Rect returns the pixel area
func (g *Globe) Rect() Rect {
	return g.rect
}

func (g *Globe) applyScale() {
	base := float64(min(g.rect.W, g.rect.H)) / parameter.GlobeScaleDivisor
	g.proj.SetScale(base * g.zoom)
	g.proj.SetTranslate(float64(g.rect.X)+float64(g.rect.W)/2, float64(g.rect.Y)+float64(g.rect.H)/2)
}

// Zoom returns the scale multiplier
func (g *Globe) Zoom() float64 {
	return g.zoom
}

// SetZoom sets the scale multiplier immediately
func (g *Globe) SetZoom(z float64) {
	g.zoom = z
	g.applyScale()
}

// Rotation returns the current view rotation
func (g *Globe) Rotation() geo.Rotation {
	return g.proj.Rotation()
}

// SetRotation sets the view rotation immediately
func (g *Globe) SetRotation(r geo.Rotation) {
	g.proj.SetRotation(r)
}

// Projection exposes the projection for hit testing
func (g *Globe) Projection() *geo.Orthographic {
	return g.proj
}

// SetCells replaces the drawable points
func (g *Globe) SetCells(cells []data.GridCell) {
	g.cells = cells
}

// Cells returns the drawable points
func (g *Globe) Cells() []data.GridCell {
	return g.cells
}

// SetColorScale replaces the magnitude to color mapping
func (g *Globe) SetColorScale(s *data.ColorScale) {
	g.scale = s
}

// ColorScale returns the active color scale
func (g *Globe) ColorScale() *data.ColorScale {
	return g.scale
}

// SetPointScale scales point size and opacity, used by the year crossfade
func (g *Globe) SetPointScale(s float64) {
	g.pointScale = vmath.Clamp01(s)
}

// PointScale returns the crossfade scale
func (g *Globe) PointScale() float64 {
	return g.pointScale
}

// SetFocus sets or clears (nil) the focused region
func (g *Globe) SetFocus(f *Focus) {
	g.focus = f
}

// Focus returns the focused region or nil
func (g *Globe) Focus() *Focus {
	return g.focus
}

// Rotating reports a scripted rotation in flight
func (g *Globe) Rotating() bool {
	return g.rotToken.Active()
}

// Zooming reports a scripted zoom in flight
func (g *Globe) Zooming() bool {
	return g.zoomToken.Active()
}

// CancelAnimations stops scripted rotation and zoom where they are
func (g *Globe) CancelAnimations() {
	g.rotToken.Cancel()
	g.zoomToken.Cancel()
}

// AnimateRotationTo eases from the current rotation to [-lon, -lat, roll]
// A previous rotation is cancelled, yaw takes the shorter way around
func (g *Globe) AnimateRotationTo(lon, lat float64, d time.Duration) *tween.Token {
	g.rotToken.Cancel()

	start := g.proj.Rotation()
	start[0] = vmath.WrapDegrees(start[0])
	g.proj.SetRotation(start)

	target := geo.Rotation{-lon, -lat, start[2]}
	endYaw := start[0] + vmath.WrapDegrees(target[0]-start[0])

	g.rotToken = g.tweens.Start(d, vmath.EaseCubicInOut, func(t float64) {
		if t >= 1 {
			g.proj.SetRotation(target)
			return
		}
		g.proj.SetRotation(geo.Rotation{
			vmath.Lerp(start[0], endYaw, t),
			vmath.Lerp(start[1], target[1], t),
			start[2],
		})
	}, nil)
	return g.rotToken
}

// AnimateZoomTo eases the scale multiplier from start to end, done runs on completion only
func (g *Globe) AnimateZoomTo(start, end float64, d time.Duration, done func()) *tween.Token {
	g.zoomToken.Cancel()
	g.zoomToken = g.tweens.Start(d, vmath.EaseCubicInOut, func(t float64) {
		g.SetZoom(vmath.Lerp(start, end, t))
	}, done)
	return g.zoomToken
}

// DragStart captures the pointer and rotation, cancelling any scripted rotation
func (g *Globe) DragStart(x, y int) {
	g.rotToken.Cancel()
	g.dragging = true
	g.dragStartX, g.dragStartY = x, y
	g.dragRot = g.proj.Rotation()
	g.pending = false
}

// DragMove records the latest pointer, applied once by the next Update
func (g *Globe) DragMove(x, y int) {
	if !g.dragging {
		return
	}
	g.pendingX, g.pendingY = x, y
	g.pending = true
}

// DragEnd releases the pointer, a pending move is still applied
func (g *Globe) DragEnd() {
	g.dragging = false
}

// Dragging reports whether the pointer is captured
func (g *Globe) Dragging() bool {
	return g.dragging
}

// DragApplied counts rotations applied from drag input
func (g *Globe) DragApplied() int {
	return g.dragApplied
}

// Update applies at most one pending drag rotation, called once per frame
func (g *Globe) Update() {
	if !g.pending {
		return
	}
	g.pending = false
	dx := float64(g.pendingX - g.dragStartX)
	dy := float64(g.pendingY - g.dragStartY)
	g.proj.SetRotation(geo.Rotation{
		g.dragRot[0] + dx*parameter.DragSensitivity,
		vmath.Clamp(g.dragRot[1]-dy*parameter.DragSensitivity, -90, 90),
		g.dragRot[2],
	})
	g.dragApplied++
}

// LabelAnchor returns the pixel where the focus label starts, ok false when hidden
func (g *Globe) LabelAnchor() (x, y float64, text string, ok bool) {
	if g.focus == nil || g.Rotating() || g.Zooming() {
		return 0, 0, "", false
	}
	fx, fy, visible := g.proj.Project(g.focus.Lon, g.focus.Lat)
	if !visible {
		return 0, 0, "", false
	}
	return fx + parameter.LeaderLength, fy - parameter.LeaderLength, g.focus.Label, true
}

// Draw renders the globe in z-order; while zooming only the disk and outlines are drawn
func (g *Globe) Draw(c *render.Canvas) {
	s := g.proj.Scale()
	if s <= 0 || g.rect.W <= 0 || g.rect.H <= 0 {
		return
	}
	tx, ty := g.proj.Translate()
	zooming := g.Zooming()

	c.FillDisk(tx, ty, s, visual.RgbOcean, 1)
	if zooming {
		g.drawCountries(c)
		return
	}

	c.Ring(tx, ty, s, s*(1+parameter.AtmosphereWidth), visual.RgbAtmosphere, parameter.AtmosphereAlpha)
	g.drawPoints(c)
	g.drawFocus(c)
	g.drawLines(c, g.graticule, visual.RgbGraticule, parameter.GraticuleAlpha)
	g.drawCountries(c)
}

func (g *Globe) drawPoints(c *render.Canvas) {
	if g.pointScale <= 0 || len(g.cells) == 0 {
		return
	}
	rot := g.proj.Rotation()
	radius := math.Max(1, g.proj.Scale()/parameter.PointPixelsPerScale) * 0.5 * g.pointScale
	alpha := parameter.PointAlpha * g.pointScale

	for _, cell := range g.cells {
		lon := cell.Lon + cell.JitterLon
		lat := cell.Lat + cell.JitterLat
		if !geo.FrontFacing(rot, lon, lat) {
			continue
		}
		x, y, ok := g.proj.Project(lon, lat)
		if !ok || !g.proj.InDisk(x, y) {
			continue
		}
		c.FillDisk(x, y, radius, g.scale.Color(cell.CO2), alpha)
	}
}

func (g *Globe) drawFocus(c *render.Canvas) {
	if g.focus == nil || g.Rotating() {
		return
	}
	x, y, ok := g.proj.Project(g.focus.Lon, g.focus.Lat)
	if !ok {
		return
	}
	c.Ring(x, y, parameter.HaloRadius*0.5, parameter.HaloRadius, visual.RgbHalo, 0.6)
	c.Circle(x, y, parameter.HaloRadius, visual.RgbHalo, 0.9)
	c.Line(x, y, x+parameter.LeaderLength, y-parameter.LeaderLength, visual.RgbHalo, 0.9, 0.9)
}

func (g *Globe) drawCountries(c *render.Canvas) {
	for i := range g.countries {
		for _, poly := range g.countries[i].Polygons {
			g.drawLines(c, poly, visual.RgbCountry, parameter.CountryAlpha)
		}
	}
}

// drawLines strokes polylines, segments with a hidden endpoint are skipped
func (g *Globe) drawLines(c *render.Canvas, lines []geo.Line, color render.RGB, alpha float64) {
	for _, line := range lines {
		var px, py float64
		prevOK := false
		for _, p := range line {
			x, y, ok := g.proj.Project(p.Lon, p.Lat)
			if ok && prevOK {
				c.Line(px, py, x, y, color, alpha, alpha)
			}
			px, py, prevOK = x, y, ok
		}
	}
}
