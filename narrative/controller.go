// Package narrative coordinates the story: the warp sequences, the year gate,
// scroll-driven steps, the year toggle, overlays and back navigation
package narrative

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/lixenwraith/warpglobe/data"
	"github.com/lixenwraith/warpglobe/engine/fsm"
	"github.com/lixenwraith/warpglobe/geo"
	"github.com/lixenwraith/warpglobe/globe"
	"github.com/lixenwraith/warpglobe/metrics"
	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/story"
	"github.com/lixenwraith/warpglobe/tween"
	"github.com/lixenwraith/warpglobe/vmath"
)

// ConclusionTag is the step id used for conclusion globe loads
const ConclusionTag = story.ConclusionID

// Fetcher issues asynchronous loads, completions come back through HandleResult
type Fetcher interface {
	Request(req data.Request)
}

// Cues plays sound effects
type Cues interface {
	Warp()
	Gate()
	Flip()
}

// Stars is the starfield target surface
type Stars interface {
	SetWarpTarget(v float64)
	SetAlphaTarget(v float64)
	SetHueShift(deg float64)
	SetPaused(paused bool)
}

// Race is the race overlay surface
type Race interface {
	Restart()
	SetYearFraction(f float64)
	SetScrubbing(on bool)
}

// YearMode selects which variant of the active step is shown
type YearMode uint8

const (
	YearEvent YearMode = iota
	YearAfter
)

func (m YearMode) String() string {
	if m == YearAfter {
		return "after"
	}
	return "event"
}

// Config wires the controller to its collaborators
type Config struct {
	Story     *story.Story
	Countries []geo.Feature
	Clock     clockwork.Clock
	Tweens    *tween.Runner
	Globe     *globe.Globe
	Stars     Stars
	Race      Race
	Fetcher   Fetcher
	Cues      Cues
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

// Info is the status line summary of the displayed dataset
type Info struct {
	File   string
	Domain data.Domain
	Mode   YearMode
}

// Controller owns the narrative state, it is driven from the frame loop goroutine only
type Controller struct {
	story     *story.Story
	countries []geo.Feature
	clock     clockwork.Clock
	tweens    *tween.Runner
	globe     *globe.Globe
	stars     Stars
	race      Race
	fetcher   Fetcher
	cues      Cues
	logger    *zap.Logger
	metrics   *metrics.Metrics

	machine *fsm.Machine[*Controller]
	seq     *Sequencer
	lock    ScrollLock
	tracker *Tracker
	layout  Layout
	started bool

	// Step pointers
	active   int
	block    string
	yearMode YearMode
	revealed bool

	// Fetch tagging
	generation uint64
	stepGen    uint64
	resetGen   uint64
	domains    *data.DomainCache
	pending    map[string]bool

	// Crossfade of the year toggle
	crossToken   *tween.Token
	shrinking    bool
	awaitingSwap bool
	staged       *data.Result

	// Page flip
	flipToken *tween.Token
	flip      float64
	flipFrom  string

	chartOpen   bool
	series      []data.RegionPoint
	returnState State
	scrubbing   bool
	dragGlobe   *globe.Globe
	info        Info

	conclusion      *globe.Globe
	conclusionBuilt int
}

// New builds a controller in no state, call Init to enter the intro
func New(cfg Config) (*Controller, error) {
	if cfg.Story == nil || len(cfg.Story.Steps) == 0 {
		return nil, fmt.Errorf("%w: story has no steps", story.ErrInvalidStep)
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Tweens == nil {
		cfg.Tweens = tween.NewRunner(cfg.Clock)
	}
	if cfg.Globe == nil {
		cfg.Globe = globe.New(cfg.Tweens)
		cfg.Globe.SetCountries(cfg.Countries)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewMetricsForTesting()
	}
	if cfg.Stars == nil {
		cfg.Stars = nopStars{}
	}
	if cfg.Race == nil {
		cfg.Race = nopRace{}
	}
	if cfg.Cues == nil {
		cfg.Cues = nopCues{}
	}

	c := &Controller{
		story:     cfg.Story,
		countries: cfg.Countries,
		clock:     cfg.Clock,
		tweens:    cfg.Tweens,
		globe:     cfg.Globe,
		stars:     cfg.Stars,
		race:      cfg.Race,
		fetcher:   cfg.Fetcher,
		cues:      cfg.Cues,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		seq:       NewSequencer(cfg.Clock),
		tracker:   NewTracker(cfg.Story),
		domains:   data.NewDomainCache(),
		pending:   make(map[string]bool),
		active:    -1,
	}

	m, err := buildMachine()
	if err != nil {
		return nil, err
	}
	m.SetTransitionHook(func(from, to fsm.StateID) {
		c.metrics.Transitions.WithLabelValues(m.Name(to)).Inc()
		c.logger.Debug("transition", zap.String("from", m.Name(from)), zap.String("to", m.Name(to)))
	})
	c.machine = m
	return c, nil
}

// Init enters the intro, later calls are no-ops
func (c *Controller) Init() error {
	if c.started {
		return nil
	}
	if err := c.machine.Init(c, StateIntro); err != nil {
		return err
	}
	c.started = true
	c.resetStars(1)
	return nil
}

// Resize applies a new screen geometry
func (c *Controller) Resize(l Layout) {
	c.layout = l
	c.globe.Resize(l.Globe)
	if c.conclusion != nil {
		c.conclusion.Resize(l.ConclusionGlobe())
	}
	c.tracker.Layout(l.Panel.W, l.Panel.H)
}

// Update advances the sequencer, tweens, drag and the conclusion spin by one frame
func (c *Controller) Update(dt time.Duration) {
	c.seq.Update()
	c.tweens.Update()
	c.globe.Update()
	if c.conclusion != nil {
		c.conclusion.Update()
		if c.machine.Is(StateConclusion) && !c.conclusion.Dragging() {
			r := c.conclusion.Rotation()
			r[0] = vmath.WrapDegrees(r[0] + parameter.ConclusionSpin*dt.Seconds())
			c.conclusion.SetRotation(r)
		}
	}
	c.machine.Update(dt)
}

// Begin starts the warp-in from the intro, repeated calls while the story runs are no-ops
func (c *Controller) Begin() error {
	if !c.machine.Is(StateIntro) {
		return nil
	}
	if err := c.machine.Transition(c, StateWarpingIn); err != nil {
		return err
	}
	return c.seq.Start("warp-in", []Phase{
		{Name: "burst", Duration: parameter.WarpInBurstDuration, Enter: func() {
			c.stars.SetAlphaTarget(1)
			c.stars.SetHueShift(0)
			c.stars.SetWarpTarget(parameter.WarpBurst)
			c.cues.Warp()
		}},
		{Name: "cruise", Duration: parameter.WarpInCruiseDuration, Enter: func() {
			c.stars.SetWarpTarget(parameter.WarpCruise)
		}},
		{Name: "stop", Duration: parameter.WarpInStopDuration, Enter: func() {
			c.stars.SetWarpTarget(parameter.WarpStop)
		}},
		{Name: "fade", Duration: parameter.WarpInHoldDuration, Enter: func() {
			c.stars.SetAlphaTarget(0)
		}},
		{Name: "gate", Enter: c.openYearGate},
	})
}

func (c *Controller) openYearGate() {
	if err := c.machine.Transition(c, StateYearGate); err != nil {
		c.logger.Warn("year gate", zap.Error(err))
		return
	}
	c.cues.Gate()
}

// GateYear is the year shown by the gate counter, counting back from the present
func (c *Controller) GateYear() int {
	from := float64(c.story.PresentYear)
	to := float64(c.story.Steps[0].EventYear)
	if !c.machine.Is(StateYearGate) {
		return int(to)
	}
	t := vmath.Clamp01(float64(c.machine.TimeInState()) / float64(parameter.YearGateCountDuration))
	return int(vmath.Lerp(from, to, vmath.EaseCubicInOut(t)) + 0.5)
}

// Proceed leaves the year gate into the intro zoom, then reveals the timeline
func (c *Controller) Proceed() error {
	if !c.machine.Is(StateYearGate) {
		return nil
	}
	if err := c.machine.Transition(c, StateZooming); err != nil {
		return err
	}
	first := c.story.Steps[0]
	c.globe.SetZoom(parameter.IntroZoomStart)
	c.globe.AnimateRotationTo(first.Lon, first.Lat, parameter.IntroZoomDuration)
	c.globe.AnimateZoomTo(parameter.IntroZoomStart, 1, parameter.IntroZoomDuration, c.reveal)
	return nil
}

// reveal shows the narrative UI and activates the first step
func (c *Controller) reveal() {
	if err := c.machine.Transition(c, StateTimelineIdle); err != nil {
		c.logger.Warn("reveal", zap.Error(err))
		return
	}
	c.revealed = true
	c.tracker.ScrollToStep(0)
	c.enterStep(0)
}

// Scroll moves the narrative panel by delta lines
func (c *Controller) Scroll(delta int) {
	if delta == 0 {
		return
	}
	if !c.lock.Allow(c.clock.Now()) {
		c.metrics.ScrollSuppressed.Inc()
		return
	}

	switch {
	case c.machine.Is(StateIntro):
		// Scrolling the intro away starts the story as Begin does
		if delta > 0 {
			if err := c.Begin(); err != nil {
				c.logger.Warn("begin", zap.Error(err))
			}
		}
	case c.machine.Is(StateTimelineIdle, StateStepActive, StateZooming):
		if delta < 0 && c.tracker.AtTop() && c.machine.Is(StateTimelineIdle) {
			c.BackToIntro()
			return
		}
		if c.tracker.Scroll(delta) {
			c.reconcile()
		}
	}
}

// reconcile activates whatever the tracker has under the activation line
func (c *Controller) reconcile() {
	idx := c.tracker.ActiveStep()
	switch {
	case idx >= len(c.story.Steps):
		c.warpOut()
	case idx < 0:
		if c.machine.Is(StateStepActive) {
			c.deactivate()
		}
	case idx != c.active || c.machine.Is(StateTimelineIdle):
		c.enterStep(idx)
	}
}

// enterStep runs the step activation sequence, ignored while a cinematic state owns the view
func (c *Controller) enterStep(i int) {
	if i < 0 || i >= len(c.story.Steps) {
		return
	}
	if !c.machine.Is(StateTimelineIdle, StateStepActive) {
		c.logger.Debug("step enter ignored", zap.Int("step", i), zap.String("state", c.StateName()))
		return
	}
	if i == c.active && c.machine.Is(StateStepActive) {
		return
	}
	if !c.machine.Can(c, StateZooming) {
		return
	}
	step := &c.story.Steps[i]

	if c.block != "" && step.Block != c.block {
		c.pageFlip(c.block)
	}
	c.block = step.Block
	c.chartOpen = false

	c.active = i
	c.generation++
	c.stepGen = c.generation
	c.yearMode = YearEvent
	c.resetCrossfade()
	c.series = nil
	c.metrics.ActiveStep.Set(float64(i))
	c.globe.SetFocus(&globe.Focus{Lon: step.Lon, Lat: step.Lat, Label: step.Region})

	if err := c.machine.Transition(c, StateZooming); err != nil {
		c.logger.Warn("step zoom", zap.String("step", step.ID), zap.Error(err))
		return
	}
	c.globe.AnimateRotationTo(step.Lon, step.Lat, parameter.RotateDuration)
	c.globe.AnimateZoomTo(c.globe.Zoom(), step.Zoom, parameter.FocusZoomDuration, c.settle)

	c.requestStep(step)
	c.applyDomain(step.ID)
}

// settle ends a step zoom and catches up with scrolling done meanwhile
func (c *Controller) settle() {
	if !c.machine.Is(StateZooming) {
		return
	}
	if err := c.machine.Transition(c, StateStepActive); err != nil {
		c.logger.Warn("settle", zap.Error(err))
		return
	}
	if idx := c.tracker.ActiveStep(); idx != c.active {
		c.reconcile()
	}
}

// deactivate leaves the active step when scrolled above the first one
func (c *Controller) deactivate() {
	c.resetStep()
	c.generation++
	if err := c.machine.Transition(c, StateTimelineIdle); err != nil {
		c.logger.Warn("deactivate", zap.Error(err))
	}
}

func (c *Controller) pageFlip(from string) {
	c.flipToken.Cancel()
	c.flipFrom = from
	c.flipToken = c.tweens.Start(parameter.PageFlipDuration, vmath.EaseCubicInOut,
		func(t float64) { c.flip = t },
		func() { c.flip = 0; c.flipFrom = "" })
	c.cues.Flip()
}

func (c *Controller) requestStep(step *story.Step) {
	tag := c.tag(step.ID)
	c.fetch(data.Request{Tag: tag, Kind: data.KindYear, Paths: []string{step.EventPath()}})
	if !c.domains.Has(step.ID) && !c.pending[step.ID] {
		c.pending[step.ID] = true
		c.fetch(data.Request{Tag: tag, Kind: data.KindDomain, Paths: step.DomainPaths()})
	}
	if step.ChartFile != "" {
		c.fetch(data.Request{Tag: tag, Kind: data.KindRegion, Paths: []string{step.ChartFile}})
	}
}

func (c *Controller) fetch(req data.Request) {
	if c.fetcher != nil {
		c.fetcher.Request(req)
	}
}

func (c *Controller) tag(stepID string) data.Tag {
	return data.Tag{StepID: stepID, Generation: c.generation}
}

// applyDomain colors the globe with the cached domain of a step, if computed
func (c *Controller) applyDomain(stepID string) {
	d, ok := c.domains.Get(stepID)
	if !ok {
		return
	}
	c.globe.SetColorScale(data.NewColorScale(d))
	c.info.Domain = d
}

// ToggleYear switches the active step between its event and after years
func (c *Controller) ToggleYear() bool {
	if !c.machine.Is(StateStepActive) || c.active < 0 {
		return false
	}
	step := &c.story.Steps[c.active]
	if !step.HasAfter() {
		return false
	}

	path := step.AfterPath()
	if c.yearMode == YearAfter {
		c.yearMode = YearEvent
		path = step.EventPath()
	} else {
		c.yearMode = YearAfter
	}
	c.generation++
	c.fetch(data.Request{Tag: c.tag(step.ID), Kind: data.KindYear, Paths: []string{path}})
	c.startCrossfade()
	return true
}

// startCrossfade shrinks the points out, the dataset swaps at the minimum
func (c *Controller) startCrossfade() {
	c.crossToken.Cancel()
	c.staged = nil
	c.awaitingSwap = false
	c.shrinking = true

	from := c.globe.PointScale()
	c.crossToken = c.tweens.Start(parameter.CrossfadeDuration/2, vmath.EaseLinear,
		func(t float64) { c.globe.SetPointScale(from * (1 - t)) },
		c.crossMidpoint)
}

func (c *Controller) crossMidpoint() {
	c.shrinking = false
	if c.staged == nil {
		c.awaitingSwap = true
		return
	}
	c.showYear(*c.staged)
	c.staged = nil
	c.growPoints()
}

func (c *Controller) growPoints() {
	c.crossToken = c.tweens.Start(parameter.CrossfadeDuration/2, vmath.EaseLinear,
		func(t float64) { c.globe.SetPointScale(t) }, nil)
}

func (c *Controller) resetCrossfade() {
	c.crossToken.Cancel()
	c.shrinking = false
	c.awaitingSwap = false
	c.staged = nil
	c.globe.SetPointScale(1)
}

func (c *Controller) showYear(res data.Result) {
	c.globe.SetCells(res.Cells)
	c.info.File = res.Path
	c.info.Mode = c.yearMode
}

// HandleResult applies a fetch completion, dropping those of contexts that moved on
func (c *Controller) HandleResult(res data.Result) {
	switch res.Kind {
	case data.KindDomain:
		c.handleDomain(res)
		return
	case data.KindYear:
		if res.Tag.StepID == ConclusionTag {
			c.handleConclusion(res)
			return
		}
	}

	if !c.current(res.Tag, res.Kind) {
		c.metrics.StaleResults.Inc()
		c.logger.Debug("stale result dropped",
			zap.String("step", res.Tag.StepID),
			zap.Uint64("generation", res.Tag.Generation),
			zap.Stringer("kind", res.Kind))
		return
	}

	switch res.Kind {
	case data.KindYear:
		switch {
		case c.shrinking:
			staged := res
			c.staged = &staged
		case c.awaitingSwap:
			c.awaitingSwap = false
			c.showYear(res)
			c.growPoints()
		default:
			c.showYear(res)
		}
	case data.KindRegion:
		c.series = data.RegionSeries(res.Rows, c.story.Steps[c.active].Region)
	}
}

// current reports whether tag belongs to the active step
// Year loads must match the latest request, region loads only the step activation
func (c *Controller) current(tag data.Tag, kind data.Kind) bool {
	if c.active < 0 || c.story.Steps[c.active].ID != tag.StepID {
		return false
	}
	if kind == data.KindRegion {
		return tag.Generation >= c.stepGen
	}
	return tag.Generation == c.generation
}

func (c *Controller) handleDomain(res data.Result) {
	stepID := res.Tag.StepID
	if res.Tag.Generation < c.resetGen {
		c.metrics.StaleResults.Inc()
		return
	}
	delete(c.pending, stepID)

	d := res.Domain
	if res.Err == nil {
		c.domains.Put(stepID, d)
		d, _ = c.domains.Get(stepID)
	} else {
		d = data.DefaultDomain
	}

	switch {
	case stepID == ConclusionTag && c.conclusion != nil:
		c.conclusion.SetColorScale(data.NewColorScale(d))
	case c.active >= 0 && c.story.Steps[c.active].ID == stepID:
		c.globe.SetColorScale(data.NewColorScale(d))
		c.info.Domain = d
	}
}

func (c *Controller) handleConclusion(res data.Result) {
	if c.conclusion == nil || res.Tag.Generation < c.resetGen {
		c.metrics.StaleResults.Inc()
		return
	}
	c.conclusion.SetCells(res.Cells)
}

// warpOut leaves the timeline past the last step
func (c *Controller) warpOut() {
	if !c.machine.Can(c, StateWarpingOut) {
		return
	}
	if err := c.machine.Transition(c, StateWarpingOut); err != nil {
		c.logger.Warn("warp out", zap.Error(err))
		return
	}
	err := c.seq.Start("warp-out", []Phase{
		{Name: "burst", Duration: parameter.WarpOutBurstDuration, Enter: func() {
			c.resetStep()
			c.generation++
			c.stars.SetAlphaTarget(1)
			c.stars.SetWarpTarget(parameter.WarpBurst)
			c.stars.SetHueShift(parameter.WarpOutHueShift)
			c.cues.Warp()
		}},
		{Name: "sweep", Duration: parameter.WarpOutSweepDuration, Enter: func() {
			c.stars.SetWarpTarget(parameter.WarpCruise)
		}},
		{Name: "settle", Duration: parameter.WarpOutSettleDuration, Enter: func() {
			c.stars.SetWarpTarget(parameter.WarpIdle)
			c.stars.SetHueShift(0)
		}},
		{Name: "reveal", Enter: c.revealConclusion},
	})
	if err != nil {
		c.logger.Warn("warp out", zap.Error(err))
	}
}

func (c *Controller) revealConclusion() {
	if err := c.machine.Transition(c, StateConclusion); err != nil {
		c.logger.Warn("conclusion", zap.Error(err))
		return
	}
	c.ensureConclusion()

	path := c.story.Conclusion.GlobeFile
	if path == "" || len(c.conclusion.Cells()) > 0 {
		return
	}
	tag := c.tag(ConclusionTag)
	c.fetch(data.Request{Tag: tag, Kind: data.KindYear, Paths: []string{path}})
	if !c.domains.Has(ConclusionTag) && !c.pending[ConclusionTag] {
		c.pending[ConclusionTag] = true
		c.fetch(data.Request{Tag: tag, Kind: data.KindDomain, Paths: []string{path}})
	}
}

// ensureConclusion builds the conclusion globe once
func (c *Controller) ensureConclusion() {
	if c.conclusion != nil {
		return
	}
	g := globe.New(c.tweens)
	g.SetCountries(c.countries)
	g.Resize(c.layout.ConclusionGlobe())
	c.conclusion = g
	c.conclusionBuilt++
}

// OpenRace expands the race overlay over the timeline or the conclusion
func (c *Controller) OpenRace() error {
	if c.machine.Is(StateRaceOverlay) {
		return nil
	}
	from := c.machine.Current()
	if err := c.machine.Transition(c, StateRaceOverlay); err != nil {
		return err
	}
	c.returnState = from
	c.chartOpen = false
	c.race.Restart()
	return nil
}

// CloseRace collapses the race overlay back to where it was opened
func (c *Controller) CloseRace() error {
	if !c.machine.Is(StateRaceOverlay) {
		return nil
	}
	target := c.returnState
	if target != StateConclusion && (target != StateStepActive || c.active < 0) {
		target = StateTimelineIdle
	}
	if err := c.machine.Transition(c, target); err != nil {
		return err
	}
	if target == StateTimelineIdle {
		c.reconcile()
	}
	return nil
}

// Escape collapses whichever overlay is open
func (c *Controller) Escape() {
	switch {
	case c.machine.Is(StateRaceOverlay):
		if err := c.CloseRace(); err != nil {
			c.logger.Warn("close race", zap.Error(err))
		}
	case c.chartOpen:
		c.chartOpen = false
	}
}

// ToggleChart expands or collapses the active step's region chart
func (c *Controller) ToggleChart() bool {
	if !c.machine.Is(StateStepActive) || c.active < 0 || c.story.Steps[c.active].ChartFile == "" {
		return false
	}
	c.chartOpen = !c.chartOpen
	return true
}

// BackToIntro cancels everything in flight and returns to the intro
func (c *Controller) BackToIntro() {
	if c.machine.Is(StateIntro) {
		return
	}
	c.stopAll()
	c.resetStep()
	c.domains.Reset()
	c.pending = make(map[string]bool)
	c.generation++
	c.resetGen = c.generation
	c.revealed = false
	c.tracker.Reset()
	c.globe.SetZoom(1)
	c.resetStars(1)

	if err := c.machine.Transition(c, StateIntro); err != nil {
		c.logger.Warn("back to intro", zap.Error(err))
	}
	c.lock.Reset()
}

// BackToTimeline returns from the conclusion or an overlay to the first step
func (c *Controller) BackToTimeline() error {
	if !c.revealed || !c.machine.Can(c, StateTimelineIdle) {
		return fmt.Errorf("%w: %s -> TimelineIdle", fsm.ErrIllegalTransition, c.StateName())
	}
	c.stopAll()
	c.resetStep()
	c.generation++
	c.resetStars(0)

	if err := c.machine.Transition(c, StateTimelineIdle); err != nil {
		return err
	}
	c.lock.Reset()
	c.tracker.ScrollToStep(0)
	c.enterStep(0)
	return nil
}

// BackToRace clears the active step and opens the race overlay
func (c *Controller) BackToRace() error {
	if !c.revealed {
		return fmt.Errorf("%w: %s -> RaceOverlay", fsm.ErrIllegalTransition, c.StateName())
	}
	if c.machine.Is(StateRaceOverlay) {
		return nil
	}
	if c.machine.Is(StateZooming) {
		c.globe.CancelAnimations()
	}
	c.resetStep()
	c.generation++
	if c.machine.Is(StateStepActive, StateZooming) {
		if err := c.machine.Transition(c, StateTimelineIdle); err != nil {
			return err
		}
	}
	c.lock.Reset()
	return c.OpenRace()
}

// stopAll cancels the sequencer and every tween the controller started
func (c *Controller) stopAll() {
	c.seq.Cancel()
	c.globe.CancelAnimations()
	c.flipToken.Cancel()
	c.flip = 0
	c.flipFrom = ""
	c.endScrub()
}

// resetStep clears the active step pointers and focus
func (c *Controller) resetStep() {
	c.active = -1
	c.block = ""
	c.yearMode = YearEvent
	c.chartOpen = false
	c.series = nil
	c.resetCrossfade()
	c.globe.SetFocus(nil)
	c.globe.SetCells(nil)
	c.info = Info{}
	c.metrics.ActiveStep.Set(-1)
}

func (c *Controller) resetStars(alpha float64) {
	c.stars.SetPaused(false)
	c.stars.SetWarpTarget(parameter.WarpIdle)
	c.stars.SetAlphaTarget(alpha)
	c.stars.SetHueShift(0)
}

// DragStart routes a left press in cell coordinates to the slider or the visible globe
func (c *Controller) DragStart(x, y int) {
	c.dragGlobe = nil
	if c.machine.Is(StateRaceOverlay) {
		if c.layout.Slider.Contains(x, y) {
			c.scrubbing = true
			c.stars.SetPaused(true)
			c.race.SetScrubbing(true)
			c.race.SetYearFraction(c.sliderFraction(x))
		}
		return
	}

	g := c.ActiveGlobe()
	if g == nil || !g.Rect().Contains(x, y*2) {
		return
	}
	c.dragGlobe = g
	g.DragStart(x, y*2)
}

// DragMove follows the pointer, coalesced to one rotation per frame by the globe
func (c *Controller) DragMove(x, y int) {
	switch {
	case c.scrubbing:
		c.race.SetYearFraction(c.sliderFraction(x))
	case c.dragGlobe != nil:
		c.dragGlobe.DragMove(x, y*2)
	}
}

// DragEnd releases the pointer
func (c *Controller) DragEnd() {
	c.endScrub()
	if c.dragGlobe != nil {
		c.dragGlobe.DragEnd()
		c.dragGlobe = nil
	}
}

func (c *Controller) endScrub() {
	if !c.scrubbing {
		return
	}
	c.scrubbing = false
	c.stars.SetPaused(false)
	c.race.SetScrubbing(false)
}

func (c *Controller) sliderFraction(x int) float64 {
	s := c.layout.Slider
	if s.W <= 1 {
		return 0
	}
	return vmath.Clamp01(float64(x-s.X) / float64(s.W-1))
}

// ActiveGlobe returns the globe that owns the view, nil while none is interactive
func (c *Controller) ActiveGlobe() *globe.Globe {
	switch {
	case c.machine.Is(StateConclusion):
		return c.conclusion
	case c.machine.Is(StateTimelineIdle, StateStepActive, StateZooming):
		if c.revealed || c.machine.Is(StateZooming) {
			return c.globe
		}
	}
	return nil
}

// State returns the active state
func (c *Controller) State() State { return c.machine.Current() }

// Is reports whether the active state is any of states
func (c *Controller) Is(states ...State) bool { return c.machine.Is(states...) }

// StateName returns the active state's name
func (c *Controller) StateName() string { return c.machine.Name(c.machine.Current()) }

// Story returns the narrative being told
func (c *Controller) Story() *story.Story { return c.story }

// Tracker returns the panel layout and scroll position
func (c *Controller) Tracker() *Tracker { return c.tracker }

// Layout returns the current screen geometry
func (c *Controller) Layout() Layout { return c.layout }

// Globe returns the timeline globe
func (c *Controller) Globe() *globe.Globe { return c.globe }

// Conclusion returns the conclusion globe, nil until first shown
func (c *Controller) Conclusion() *globe.Globe { return c.conclusion }

// ActiveStep returns the active step index, -1 when none
func (c *Controller) ActiveStep() int { return c.active }

// YearMode returns the variant shown for the active step
func (c *Controller) YearMode() YearMode { return c.yearMode }

// DisplayYear returns the year of the shown variant of the active step
func (c *Controller) DisplayYear() int {
	if c.active < 0 {
		return 0
	}
	s := &c.story.Steps[c.active]
	if c.yearMode == YearAfter {
		return s.AfterYear()
	}
	return s.EventYear
}

// Revealed reports whether the narrative UI has been shown
func (c *Controller) Revealed() bool { return c.revealed }

// Locked reports whether scrolling is suppressed
func (c *Controller) Locked() bool { return c.lock.Locked() }

// Flip returns page flip progress in [0,1) and the block being turned away, 0 when idle
func (c *Controller) Flip() (float64, string) { return c.flip, c.flipFrom }

// ChartOpen reports whether the expanded region chart is shown
func (c *Controller) ChartOpen() bool { return c.chartOpen }

// Series returns the active step's region series
func (c *Controller) Series() []data.RegionPoint { return c.series }

// Info returns the displayed dataset summary
func (c *Controller) Info() Info { return c.info }

// Sequence returns the running chain and phase names
func (c *Controller) Sequence() (string, string) { return c.seq.Name(), c.seq.Phase() }

// Scrubbing reports whether the race slider is held
func (c *Controller) Scrubbing() bool { return c.scrubbing }

// Generation returns the fetch tag counter
func (c *Controller) Generation() uint64 { return c.generation }

// CurrentStep returns the active step, nil when none
func (c *Controller) CurrentStep() *story.Step {
	if c.active < 0 {
		return nil
	}
	return &c.story.Steps[c.active]
}

type nopStars struct{}

func (nopStars) SetWarpTarget(float64)  {}
func (nopStars) SetAlphaTarget(float64) {}
func (nopStars) SetHueShift(float64)    {}
func (nopStars) SetPaused(bool)         {}

type nopRace struct{}

func (nopRace) Restart()                {}
func (nopRace) SetYearFraction(float64) {}
func (nopRace) SetScrubbing(bool)       {}

type nopCues struct{}

func (nopCues) Warp() {}
func (nopCues) Gate() {}
func (nopCues) Flip() {}
