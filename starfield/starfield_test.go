package starfield

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/render"
)

func TestResetParticleCentersAndRandomizes(t *testing.T) {
	e := NewEngine(200, 100, 1)

	var p Particle
	p.X, p.Y = -500, 900
	e.ResetParticle(&p)

	assert.Equal(t, 0.0, math.Hypot(p.X-100, p.Y-50), "reset relocates to center")
	assert.InDelta(t, 1.0, math.Hypot(p.VX, p.VY), 1e-9)
	assert.GreaterOrEqual(t, p.Size, parameter.StarSizeMin)
	assert.Less(t, p.Size, parameter.StarSizeMin+parameter.StarSizeRange)
	assert.GreaterOrEqual(t, p.Hue, parameter.StarHueMin)
	assert.Less(t, p.Hue, parameter.StarHueMin+parameter.StarHueRange)
}

func TestResetDirectionsUniform(t *testing.T) {
	e := NewEngine(200, 100, 7)

	const n = 8000
	const buckets = 8
	var counts [buckets]int
	var p Particle
	for i := 0; i < n; i++ {
		e.ResetParticle(&p)
		angle := math.Atan2(p.VY, p.VX)
		if angle < 0 {
			angle += 2 * math.Pi
		}
		counts[int(angle/(2*math.Pi)*buckets)%buckets]++
	}
	for i, c := range counts {
		assert.InDelta(t, n/buckets, c, n/buckets*0.15, "bucket %d", i)
	}
}

func TestInitPreScatters(t *testing.T) {
	e := NewEngine(200, 100, 3)
	e.Init(parameter.StarCount)
	require.Len(t, e.Particles(), parameter.StarCount)

	away := 0
	for _, p := range e.Particles() {
		if math.Hypot(p.X-100, p.Y-50) > 1 {
			away++
		}
	}
	assert.Greater(t, away, parameter.StarCount*9/10)
}

func TestFirstFrameDeltaZero(t *testing.T) {
	e := NewEngine(200, 100, 1)
	e.Init(40)
	before := append([]Particle(nil), e.Particles()...)

	start := time.Unix(1000, 0)
	assert.Equal(t, 0.0, e.Frame(start))

	// Scatter may land past the padded box; those recycle on any frame
	pad := parameter.StarRecyclePadding
	inside := 0
	for i, p := range before {
		if p.X < -pad || p.X > 200+pad || p.Y < -pad || p.Y > 100+pad {
			continue
		}
		inside++
		got := e.Particles()[i]
		assert.Equal(t, p.X, got.X, "particle %d", i)
		assert.Equal(t, p.Y, got.Y, "particle %d", i)
		assert.Equal(t, p.Twinkle, got.Twinkle, "particle %d", i)
	}
	assert.Positive(t, inside)

	d := e.Frame(start.Add(parameter.FrameBaseline))
	assert.InDelta(t, 1.0, d, 1e-9)
}

func TestWarpConvergesWithoutOvershoot(t *testing.T) {
	e := NewEngine(200, 100, 1)
	e.Init(0)
	e.SetWarpTarget(parameter.WarpBurst)
	e.SetAlphaTarget(0)

	ts := time.Unix(0, 0)
	e.Frame(ts)
	prev := e.Warp().Factor
	for i := 0; i < 400; i++ {
		ts = ts.Add(parameter.FrameBaseline)
		e.Frame(ts)
		w := e.Warp()
		assert.LessOrEqual(t, w.Factor, parameter.WarpBurst)
		assert.GreaterOrEqual(t, w.Factor, prev)
		prev = w.Factor
	}
	assert.InDelta(t, parameter.WarpBurst, e.Warp().Factor, 1e-6)
	assert.InDelta(t, 0, e.Warp().Alpha, 1e-6)
}

func TestPauseFreezesAndRebaselines(t *testing.T) {
	e := NewEngine(200, 100, 1)
	e.Init(5)
	ts := time.Unix(0, 0)
	e.Frame(ts)

	e.SetPaused(true)
	snapshot := append([]Particle(nil), e.Particles()...)
	for i := 0; i < 10; i++ {
		ts = ts.Add(time.Second)
		assert.Equal(t, 0.0, e.Frame(ts))
	}
	assert.Equal(t, snapshot, e.Particles())

	e.SetPaused(false)
	ts = ts.Add(5 * time.Second)
	assert.Equal(t, 0.0, e.Frame(ts), "resume re-baselines")
	assert.InDelta(t, 1.0, e.Frame(ts.Add(parameter.FrameBaseline)), 1e-9)
}

func TestRecycleOutsidePadding(t *testing.T) {
	e := NewEngine(200, 100, 1)
	e.Init(1)
	p := &e.Particles()[0]
	p.X = 200 + parameter.StarRecyclePadding + 50
	p.Speed = 0

	e.Frame(time.Unix(0, 0))
	assert.Equal(t, 100.0, e.Particles()[0].X)
	assert.Equal(t, 50.0, e.Particles()[0].Y)
}

func TestRenderModes(t *testing.T) {
	e := NewEngine(40, 20, 1)
	e.Init(30)
	dst := render.NewCanvas(40, 10)

	assert.NotPanics(t, func() { e.Render(dst) })

	e.warp.Factor = parameter.WarpBurst
	assert.NotPanics(t, func() { e.Render(dst) })
}
