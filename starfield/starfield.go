// Package starfield animates the warp particle field behind every view
package starfield

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/parameter/visual"
	"github.com/lixenwraith/warpglobe/render"
	"github.com/lixenwraith/warpglobe/vmath"
)

// Particle is one star, recycled in place when it leaves the padded viewport
type Particle struct {
	X, Y         float64
	VX, VY       float64 // unit direction
	BaseSize     float64
	Size         float64
	Speed        float64
	Twinkle      float64 // phase, radians
	TwinkleSpeed float64
	Hue          float64
}

// WarpState holds the damped animation drivers, current values chase their targets each frame
type WarpState struct {
	Factor      float64
	Target      float64
	Alpha       float64
	AlphaTarget float64

	HuePhase       float64
	HueShift       float64
	HueShiftTarget float64
}

// Engine owns the particle set and the persistent trail surface
type Engine struct {
	particles []Particle
	warp      WarpState
	rng       *rand.Rand

	width  float64
	height float64
	trail  *render.Canvas

	last    time.Time
	hasLast bool
	paused  bool
}

// NewEngine creates an idle, fully visible starfield for a pixel area
func NewEngine(width, height int, seed uint64) *Engine {
	e := &Engine{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		warp: WarpState{
			Factor:      parameter.WarpIdle,
			Target:      parameter.WarpIdle,
			Alpha:       1,
			AlphaTarget: 1,
		},
		trail: render.NewCanvas(0, 0),
	}
	e.Resize(width, height)
	return e
}

// Resize updates the viewport, particles keep their positions
func (e *Engine) Resize(width, height int) {
	e.width, e.height = float64(width), float64(height)
	e.trail.Resize(width, height/2)
	e.trail.Fill(visual.RgbSpace)
}

// ResetParticle moves p to the center with a fresh direction and look
func (e *Engine) ResetParticle(p *Particle) {
	p.X = e.width / 2
	p.Y = e.height / 2
	angle := e.rng.Float64() * 2 * math.Pi
	p.VX = math.Cos(angle)
	p.VY = math.Sin(angle)
	p.BaseSize = parameter.StarSizeMin + e.rng.Float64()*parameter.StarSizeRange
	p.Size = p.BaseSize
	p.Speed = parameter.StarSpeedMin + e.rng.Float64()*parameter.StarSpeedRange
	p.Twinkle = e.rng.Float64() * 2 * math.Pi
	p.TwinkleSpeed = parameter.StarTwinkleSpeedMin + e.rng.Float64()*parameter.StarTwinkleSpeedRange
	p.Hue = parameter.StarHueMin + e.rng.Float64()*parameter.StarHueRange
}

// Init populates n particles, each pre-scattered outward so the first frame has no empty core
func (e *Engine) Init(n int) {
	e.particles = make([]Particle, n)
	span := math.Max(e.width, e.height)
	for i := range e.particles {
		p := &e.particles[i]
		e.ResetParticle(p)
		d := e.rng.Float64() * span
		p.X += p.VX * d
		p.Y += p.VY * d
	}
}

// Particles exposes the particle slice for inspection
func (e *Engine) Particles() []Particle {
	return e.particles
}

// SetWarpTarget sets the warp factor the field eases toward
func (e *Engine) SetWarpTarget(v float64) {
	e.warp.Target = v
}

// SetAlphaTarget sets the global opacity the field eases toward
func (e *Engine) SetAlphaTarget(v float64) {
	e.warp.AlphaTarget = vmath.Clamp01(v)
}

// SetHueShift sets the streak hue offset the field eases toward
func (e *Engine) SetHueShift(deg float64) {
	e.warp.HueShiftTarget = deg
}

// SetPaused freezes time accumulation without touching particle state
func (e *Engine) SetPaused(paused bool) {
	if e.paused && !paused {
		// Re-baseline on the next frame so the pause is not seen as one long frame
		e.hasLast = false
	}
	e.paused = paused
}

// Paused reports the pause flag
func (e *Engine) Paused() bool {
	return e.paused
}

// Warp returns a copy of the animation drivers
func (e *Engine) Warp() WarpState {
	return e.warp
}

// Frame advances the simulation to ts and returns the normalized delta used
// The first frame after init or resume yields delta 0
func (e *Engine) Frame(ts time.Time) float64 {
	if e.paused {
		e.last = ts
		return 0
	}
	if !e.hasLast {
		e.last = ts
		e.hasLast = true
	}
	delta := float64(ts.Sub(e.last)) / float64(parameter.FrameBaseline)
	e.last = ts
	if delta < 0 {
		delta = 0
	}

	w := &e.warp
	w.Factor = vmath.Approach(w.Factor, w.Target, parameter.WarpRate, delta)
	w.Alpha = vmath.Approach(w.Alpha, w.AlphaTarget, parameter.AlphaRate, delta)
	w.HueShift = vmath.Approach(w.HueShift, w.HueShiftTarget, parameter.HueShiftRate, delta)
	w.HuePhase += parameter.HuePhaseSpeed * w.Factor * delta

	pad := parameter.StarRecyclePadding
	for i := range e.particles {
		p := &e.particles[i]
		step := p.Speed * w.Factor * delta
		p.X += p.VX * step
		p.Y += p.VY * step
		p.Twinkle += p.TwinkleSpeed * delta

		if p.X < -pad || p.X > e.width+pad || p.Y < -pad || p.Y > e.height+pad {
			e.ResetParticle(p)
		}
	}
	return delta
}

// Render draws the field onto the trail surface and copies it into dst
func (e *Engine) Render(dst *render.Canvas) {
	e.trail.Wash(visual.RgbSpace, parameter.TrailFadeAlpha)

	w := e.warp
	if w.Alpha > 0.001 {
		if w.Factor < parameter.StreakThreshold {
			e.renderDots(w)
		} else {
			e.renderStreaks(w)
		}
	}
	dst.CopyFrom(e.trail)
}

func (e *Engine) renderDots(w WarpState) {
	for i := range e.particles {
		p := &e.particles[i]
		twinkle := parameter.TwinkleBase + parameter.TwinkleAmplitude*math.Sin(p.Twinkle)
		alpha := w.Alpha * twinkle
		core := p.Size * parameter.HalfBlockRadiusScale
		glow := core * parameter.GlowRadiusFactor

		e.trail.FillDisk(p.X, p.Y, glow, visual.RgbStarGlow, alpha*parameter.GlowAlpha)
		e.trail.FillDisk(p.X, p.Y, core, visual.RgbStarCore, alpha)
	}
}

func (e *Engine) renderStreaks(w WarpState) {
	lightness := parameter.StreakLightnessBase + math.Min(w.Factor, parameter.StreakLightnessCap)*parameter.StreakLightnessStep
	swing := math.Sin(w.HuePhase*2*math.Pi) * parameter.HuePhaseAmplitude

	for i := range e.particles {
		p := &e.particles[i]
		trail := w.Factor * p.Speed * parameter.StreakLengthFactor
		tailX := p.X - p.VX*trail
		tailY := p.Y - p.VY*trail

		hue := math.Mod(p.Hue+w.HueShift+swing+360, 360)
		r, g, b := colorful.Hsl(hue, parameter.StreakSaturation, math.Min(lightness, 100)/100).Clamped().RGB255()
		color := render.RGB{R: r, G: g, B: b}

		e.trail.Line(tailX, tailY, p.X, p.Y, color, w.Alpha*0.25, w.Alpha)
		e.trail.PlotAdd(int(math.Floor(p.X+0.5)), int(math.Floor(p.Y+0.5)), visual.RgbStarCore, w.Alpha*parameter.StreakHeadAlpha)
	}
}
