// Package engine runs the frame loop: one ticker, terminal events and fetch
// completions, all handled on a single goroutine
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/lixenwraith/warpglobe/audio"
	"github.com/lixenwraith/warpglobe/core"
	"github.com/lixenwraith/warpglobe/data"
	"github.com/lixenwraith/warpglobe/input"
	"github.com/lixenwraith/warpglobe/metrics"
	"github.com/lixenwraith/warpglobe/narrative"
	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/race"
	"github.com/lixenwraith/warpglobe/render"
	"github.com/lixenwraith/warpglobe/render/renderer"
	"github.com/lixenwraith/warpglobe/starfield"
)

// Audio is the cue player as seen by the loop
type Audio interface {
	narrative.Cues
	ToggleMute() bool
	Muted() bool
}

// Config wires the loop to the screen and the narrative
type Config struct {
	Screen     tcell.Screen
	ColorMode  render.ColorMode
	Controller *narrative.Controller
	Stars      *starfield.Engine
	Race       *race.Race
	Keys       *input.KeyTable
	Results    <-chan data.Result
	Audio      Audio

	Clock         clockwork.Clock
	FrameInterval time.Duration
	Logger        *zap.Logger
	Metrics       *metrics.Metrics
}

// Engine owns the screen side of the presenter
type Engine struct {
	screen  tcell.Screen
	ctrl    *narrative.Controller
	stars   *starfield.Engine
	race    *race.Race
	input   *input.Machine
	results <-chan data.Result
	audio   Audio

	clock    clockwork.Clock
	interval time.Duration
	logger   *zap.Logger
	metrics  *metrics.Metrics

	orchestrator *render.RenderOrchestrator
	width        int
	height       int

	last   time.Time
	fps    int
	frames int
	fpsAt  time.Time
}

// New builds the engine and registers every renderer
func New(cfg Config) (*Engine, error) {
	if cfg.Screen == nil {
		return nil, errors.New("engine: screen is required")
	}
	if cfg.Controller == nil {
		return nil, errors.New("engine: controller is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = parameter.FrameUpdateInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewMetricsForTesting()
	}
	if cfg.Race == nil {
		cfg.Race = race.New(nil)
	}
	if cfg.Audio == nil {
		cfg.Audio = audio.NewNop(false)
	}

	w, h := cfg.Screen.Size()
	if cfg.Stars == nil {
		cfg.Stars = starfield.NewEngine(w, h*2, uint64(cfg.Clock.Now().UnixNano()))
		cfg.Stars.Init(parameter.StarCount)
	}

	e := &Engine{
		screen:       cfg.Screen,
		ctrl:         cfg.Controller,
		stars:        cfg.Stars,
		race:         cfg.Race,
		input:        input.NewMachine(cfg.Keys),
		results:      cfg.Results,
		audio:        cfg.Audio,
		clock:        cfg.Clock,
		interval:     cfg.FrameInterval,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		orchestrator: render.NewRenderOrchestrator(cfg.Screen, cfg.ColorMode, w, h),
	}

	type rendererDef struct {
		r        render.SystemRenderer
		priority render.RenderPriority
	}
	for _, def := range []rendererDef{
		// Canvas
		{renderer.NewStarfieldRenderer(e.stars), render.PriorityBackground},
		{renderer.NewGlobeRenderer(e.ctrl), render.PriorityGlobe},
		// Cells
		{renderer.NewLabelRenderer(e.ctrl), render.PriorityText},
		{renderer.NewPanelRenderer(e.ctrl), render.PriorityPanel},
		{renderer.NewChartRenderer(e.ctrl), render.PriorityOverlay},
		{renderer.NewOverlayRenderer(e.ctrl), render.PriorityOverlay},
		{renderer.NewRaceRenderer(e.ctrl, e.race), render.PriorityOverlay},
		{renderer.NewStatusBarRenderer(e.ctrl), render.PriorityUI},
	} {
		e.orchestrator.Register(def.r, def.priority)
	}
	return e, nil
}

// Run enters the intro and loops until quit, ctx cancellation or screen shutdown
// The event poller exits once the screen is finalized
func (e *Engine) Run(ctx context.Context) error {
	e.resize()
	if err := e.ctrl.Init(); err != nil {
		return fmt.Errorf("narrative init: %w", err)
	}

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, parameter.EventQueueSize)
	core.Go(func() { e.poll(events, done) })

	ticker := e.clock.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !e.HandleEvent(ev) {
				return nil
			}
		case res := <-e.results:
			e.ctrl.HandleResult(res)
		case <-ticker.Chan():
			e.Frame()
		}
	}
}

func (e *Engine) poll(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := e.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Frame advances every animation by the time since the last frame and renders
func (e *Engine) Frame() {
	now := e.clock.Now()
	var dt time.Duration
	if !e.last.IsZero() {
		dt = min(max(now.Sub(e.last), 0), parameter.MaxFrameDelta)
	}
	e.last = now

	e.ctrl.Update(dt)
	if e.ctrl.Is(narrative.StateRaceOverlay) {
		e.race.Update(dt)
	}
	e.stars.Frame(now)

	e.orchestrator.RenderFrame(render.RenderContext{
		Now:          now,
		ScreenWidth:  e.width,
		ScreenHeight: e.height,
		FPS:          e.fps,
		Muted:        e.audio.Muted(),
	})

	e.countFrame(now)
	e.metrics.Frames.Inc()
	e.metrics.FrameDuration.Observe(e.clock.Since(now).Seconds())
}

// countFrame updates the once-per-second fps sample
func (e *Engine) countFrame(now time.Time) {
	e.frames++
	if e.fpsAt.IsZero() {
		e.fpsAt = now
		return
	}
	if elapsed := now.Sub(e.fpsAt); elapsed >= time.Second {
		e.fps = int(float64(e.frames) / elapsed.Seconds())
		e.frames = 0
		e.fpsAt = now
	}
}

// resize propagates the screen size to the surfaces, the starfield and the layout
func (e *Engine) resize() {
	w, h := e.screen.Size()
	e.width, e.height = w, h
	e.orchestrator.Resize(w, h)
	e.stars.Resize(w, h*2)
	e.ctrl.Resize(narrative.ComputeLayout(w, h))
}

// FPS returns the last fps sample
func (e *Engine) FPS() int {
	return e.fps
}
