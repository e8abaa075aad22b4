package narrative

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/warpglobe/data"
	"github.com/lixenwraith/warpglobe/engine/fsm"
	"github.com/lixenwraith/warpglobe/metrics"
	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/story"
)

type fakeStars struct {
	warp, alpha, hue float64
	paused           bool
}

func (f *fakeStars) SetWarpTarget(v float64)  { f.warp = v }
func (f *fakeStars) SetAlphaTarget(v float64) { f.alpha = v }
func (f *fakeStars) SetHueShift(v float64)    { f.hue = v }
func (f *fakeStars) SetPaused(p bool)         { f.paused = p }

type fakeCues struct{ warp, gate, flip int }

func (f *fakeCues) Warp() { f.warp++ }
func (f *fakeCues) Gate() { f.gate++ }
func (f *fakeCues) Flip() { f.flip++ }

type fakeRace struct {
	restarts  int
	fraction  float64
	scrubbing bool
}

func (f *fakeRace) Restart()                  { f.restarts++ }
func (f *fakeRace) SetYearFraction(v float64) { f.fraction = v }
func (f *fakeRace) SetScrubbing(on bool)      { f.scrubbing = on }

type fakeFetcher struct{ reqs []data.Request }

func (f *fakeFetcher) Request(r data.Request) { f.reqs = append(f.reqs, r) }

// last returns the most recent request of kind for step
func (f *fakeFetcher) last(kind data.Kind, step string) (data.Request, bool) {
	for i := len(f.reqs) - 1; i >= 0; i-- {
		if f.reqs[i].Kind == kind && f.reqs[i].Tag.StepID == step {
			return f.reqs[i], true
		}
	}
	return data.Request{}, false
}

func (f *fakeFetcher) count(kind data.Kind) int {
	n := 0
	for _, r := range f.reqs {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

type harness struct {
	c       *Controller
	clock   *clockwork.FakeClock
	stars   *fakeStars
	cues    *fakeCues
	race    *fakeRace
	fetch   *fakeFetcher
	metrics *metrics.Metrics
}

func testStory(t *testing.T) *story.Story {
	t.Helper()
	st := &story.Story{
		Title:       "Test",
		PresentYear: 2024,
		Conclusion:  story.Section{Title: "Now", GlobeFile: "2014.csv"},
		Steps: []story.Step{
			{ID: "a", Block: "One", Title: "Coal", Body: "Europe burns coal.", Region: "Europe",
				Lon: 10, Lat: 50, Zoom: 1.5, EventYear: 1850, AfterYears: 30, GlobeFile: "{year}.csv", ChartFile: "regions.csv"},
			{ID: "b", Block: "One", Title: "Rail", Body: "Railways spread.", Region: "Asia",
				Lon: 100, Lat: 30, Zoom: 1.4, EventYear: 1900, GlobeFile: "{year}.csv"},
			{ID: "c", Block: "Two", Title: "Oil", Body: "Oil takes over.", Region: "South America",
				Lon: -60, Lat: -15, Zoom: 1.6, EventYear: 1990, AfterYears: 20, GlobeFile: "{year}.csv"},
		},
	}
	require.NoError(t, st.Validate())
	return st
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock:   clockwork.NewFakeClock(),
		stars:   &fakeStars{},
		cues:    &fakeCues{},
		race:    &fakeRace{},
		fetch:   &fakeFetcher{},
		metrics: metrics.NewMetricsForTesting(),
	}
	c, err := New(Config{
		Story:   testStory(t),
		Clock:   h.clock,
		Stars:   h.stars,
		Race:    h.race,
		Fetcher: h.fetch,
		Cues:    h.cues,
		Metrics: h.metrics,
	})
	require.NoError(t, err)
	require.NoError(t, c.Init())
	c.Resize(ComputeLayout(100, 40))
	h.c = c
	return h
}

// advance steps the clock and the controller in frame-sized increments
func (h *harness) advance(d time.Duration) {
	for d > 0 {
		step := min(d, parameter.FrameUpdateInterval)
		h.clock.Advance(step)
		h.c.Update(step)
		d -= step
	}
}

const warpInTotal = parameter.WarpInBurstDuration + parameter.WarpInCruiseDuration +
	parameter.WarpInStopDuration + parameter.WarpInHoldDuration

const warpOutTotal = parameter.WarpOutBurstDuration + parameter.WarpOutSweepDuration +
	parameter.WarpOutSettleDuration

// toFirstStep runs intro, warp, gate and intro zoom until step 0 is settled
func (h *harness) toFirstStep(t *testing.T) {
	t.Helper()
	require.NoError(t, h.c.Begin())
	h.advance(warpInTotal + 50*time.Millisecond)
	require.Equal(t, StateYearGate, h.c.State())
	require.NoError(t, h.c.Proceed())
	h.advance(parameter.IntroZoomDuration + 50*time.Millisecond)
	require.Equal(t, StateZooming, h.c.State())
	h.advance(parameter.FocusZoomDuration + 50*time.Millisecond)
	require.Equal(t, StateStepActive, h.c.State())
	require.Equal(t, 0, h.c.ActiveStep())
}

// scrollToStep scrolls the panel so step i sits on the activation line
func (h *harness) scrollToStep(i int) {
	tr := h.c.tracker
	target := tr.stepStart[i] - tr.activationRow()
	h.c.lock.absorb = false
	h.c.Scroll(target - tr.Offset())
}

func (h *harness) yearResult(t *testing.T, step string, cells []data.GridCell) data.Result {
	t.Helper()
	req, ok := h.fetch.last(data.KindYear, step)
	require.True(t, ok, "no year request for %s", step)
	return data.Result{Tag: req.Tag, Kind: data.KindYear, Path: req.Paths[0], Cells: cells}
}

func counterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)
	var m dto.Metric
	require.NoError(t, (<-ch).Write(&m))
	return m.GetCounter().GetValue()
}

func TestInitIdempotent(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.c.Init())
	assert.Equal(t, StateIntro, h.c.State())
	assert.Equal(t, 1.0, h.stars.alpha)
}

func TestBeginTwiceRunsOneChain(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.c.Begin())
	require.NoError(t, h.c.Begin())

	chain, phase := h.c.Sequence()
	assert.Equal(t, "warp-in", chain)
	assert.Equal(t, "burst", phase)
	assert.Equal(t, 1, h.cues.warp)
	assert.Equal(t, parameter.WarpBurst, h.stars.warp)

	h.advance(parameter.WarpInBurstDuration + 10*time.Millisecond)
	require.NoError(t, h.c.Begin())
	_, phase = h.c.Sequence()
	assert.Equal(t, "cruise", phase)
	assert.Equal(t, 1, h.cues.warp)
}

func TestScrollDownInIntroBegins(t *testing.T) {
	h := newHarness(t)
	h.c.Scroll(-3)
	assert.Equal(t, StateIntro, h.c.State())
	h.c.Scroll(3)
	assert.Equal(t, StateWarpingIn, h.c.State())
}

func TestWarpInPhases(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.c.Begin())
	assert.True(t, h.c.Locked())

	h.advance(parameter.WarpInBurstDuration + parameter.WarpInCruiseDuration + 10*time.Millisecond)
	assert.Equal(t, parameter.WarpStop, h.stars.warp)

	h.advance(parameter.WarpInStopDuration)
	assert.Equal(t, 0.0, h.stars.alpha)
	assert.Equal(t, StateWarpingIn, h.c.State())

	h.advance(parameter.WarpInHoldDuration)
	assert.Equal(t, StateYearGate, h.c.State())
	assert.True(t, h.c.Locked())
	assert.Equal(t, 1, h.cues.gate)
	assert.Equal(t, 2024, h.c.GateYear())

	h.advance(parameter.YearGateCountDuration)
	assert.Equal(t, 1850, h.c.GateYear())

	off := h.c.tracker.Offset()
	h.c.Scroll(3)
	assert.Equal(t, off, h.c.tracker.Offset())
	assert.Equal(t, 1.0, counterValue(t, h.metrics.ScrollSuppressed))
}

func TestProceedRevealsFirstStep(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)

	assert.True(t, h.c.Revealed())
	assert.False(t, h.c.Locked())
	assert.Equal(t, "Europe", h.c.Globe().Focus().Label)
	assert.InDelta(t, 1.5, h.c.Globe().Zoom(), 1e-9)

	year, ok := h.fetch.last(data.KindYear, "a")
	require.True(t, ok)
	assert.Equal(t, []string{"1850.csv"}, year.Paths)
	dom, ok := h.fetch.last(data.KindDomain, "a")
	require.True(t, ok)
	assert.Equal(t, []string{"1850.csv", "1880.csv"}, dom.Paths)
	_, ok = h.fetch.last(data.KindRegion, "a")
	assert.True(t, ok)
}

func TestExclusiveStatesGuard(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)

	require.NoError(t, h.c.seq.Start("hold", []Phase{{Name: "hold", Duration: time.Hour}}))
	err := h.c.machine.Transition(h.c, StateWarpingOut)
	assert.ErrorIs(t, err, fsm.ErrGuardRejected)
	err = h.c.machine.Transition(h.c, StateZooming)
	assert.ErrorIs(t, err, fsm.ErrGuardRejected)
	h.c.seq.Cancel()

	// Zooming cannot hand over to a warp directly
	h.scrollToStep(1)
	require.Equal(t, StateZooming, h.c.State())
	assert.ErrorIs(t, h.c.machine.Transition(h.c, StateWarpingOut), fsm.ErrIllegalTransition)
}

func TestStepEnterIgnoredWhileZooming(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)

	h.scrollToStep(1)
	require.Equal(t, StateZooming, h.c.State())
	require.Equal(t, 1, h.c.ActiveStep())

	// A late step enter for the step below arrives mid-zoom
	h.scrollToStep(2)
	assert.Equal(t, 1, h.c.ActiveStep())
	assert.Equal(t, StateZooming, h.c.State())

	// Settling reconciles with the step under the activation line
	h.advance(parameter.FocusZoomDuration + 50*time.Millisecond)
	assert.Equal(t, 2, h.c.ActiveStep())
	assert.Equal(t, StateZooming, h.c.State())
	h.advance(parameter.FocusZoomDuration + 50*time.Millisecond)
	assert.Equal(t, StateStepActive, h.c.State())
}

func TestPageFlipOnBlockChangeOnly(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)
	assert.Zero(t, h.cues.flip)

	h.scrollToStep(1)
	h.advance(parameter.FocusZoomDuration + 50*time.Millisecond)
	assert.Zero(t, h.cues.flip, "same block")

	h.scrollToStep(2)
	assert.Equal(t, 1, h.cues.flip)
	h.advance(parameter.PageFlipDuration / 2)
	p, from := h.c.Flip()
	assert.Greater(t, p, 0.0)
	assert.Equal(t, "One", from)

	h.advance(parameter.PageFlipDuration)
	p, _ = h.c.Flip()
	assert.Zero(t, p)
}

func TestStaleResultsDropped(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)
	oldA := h.yearResult(t, "a", []data.GridCell{{Lat: 50, Lon: 10, CO2: 1}})

	h.scrollToStep(1)
	h.advance(parameter.FocusZoomDuration + 50*time.Millisecond)
	require.Equal(t, 1, h.c.ActiveStep())

	h.c.HandleResult(oldA)
	assert.Empty(t, h.c.Globe().Cells())
	assert.Equal(t, 1.0, counterValue(t, h.metrics.StaleResults))

	b := h.yearResult(t, "b", []data.GridCell{{Lat: 30, Lon: 100, CO2: 2}})
	h.c.HandleResult(b)
	assert.Len(t, h.c.Globe().Cells(), 1)
	assert.Equal(t, "1900.csv", h.c.Info().File)
}

func TestYearToggleRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)

	event := []data.GridCell{{Lat: 50, Lon: 10, CO2: 1e-8, Weight: 2}, {Lat: 51, Lon: 11, CO2: 3e-8, Weight: 1}}
	after := []data.GridCell{{Lat: 50, Lon: 10, CO2: 5e-8, Weight: 4}}
	h.c.HandleResult(h.yearResult(t, "a", event))
	before := append([]data.GridCell(nil), h.c.Globe().Cells()...)

	require.True(t, h.c.ToggleYear())
	assert.Equal(t, YearAfter, h.c.YearMode())
	req, _ := h.fetch.last(data.KindYear, "a")
	assert.Equal(t, []string{"1880.csv"}, req.Paths)
	h.c.HandleResult(h.yearResult(t, "a", after))
	assert.Equal(t, before, h.c.Globe().Cells(), "swap waits for the midpoint")

	h.advance(parameter.CrossfadeDuration + 50*time.Millisecond)
	assert.Empty(t, cmp.Diff(after, h.c.Globe().Cells()))
	assert.InDelta(t, 1.0, h.c.Globe().PointScale(), 1e-9)

	require.True(t, h.c.ToggleYear())
	assert.Equal(t, YearEvent, h.c.YearMode())
	h.c.HandleResult(h.yearResult(t, "a", event))
	h.advance(parameter.CrossfadeDuration + 50*time.Millisecond)

	assert.Empty(t, cmp.Diff(before, h.c.Globe().Cells()))
	assert.Equal(t, 1, h.fetch.count(data.KindDomain), "domain is shared across variants")
}

func TestYearToggleAwaitsLateData(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)

	require.True(t, h.c.ToggleYear())
	h.advance(parameter.CrossfadeDuration/2 + 20*time.Millisecond)
	assert.Zero(t, h.c.Globe().PointScale())
	assert.True(t, h.c.awaitingSwap)

	late := []data.GridCell{{Lat: 1, Lon: 2, CO2: 3}}
	h.c.HandleResult(h.yearResult(t, "a", late))
	assert.Equal(t, late, h.c.Globe().Cells())
	h.advance(parameter.CrossfadeDuration/2 + 20*time.Millisecond)
	assert.InDelta(t, 1.0, h.c.Globe().PointScale(), 1e-9)
}

func TestYearToggleRequiresAfterVariant(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)
	h.scrollToStep(1)
	assert.False(t, h.c.ToggleYear(), "zooming")
	h.advance(parameter.FocusZoomDuration + 50*time.Millisecond)
	assert.False(t, h.c.ToggleYear(), "step b has no after year")
}

func TestDomainCachedAndApplied(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)

	req, _ := h.fetch.last(data.KindDomain, "a")
	d := data.Domain{Min: 1, Mid: 2, Max: 3}
	h.c.HandleResult(data.Result{Tag: req.Tag, Kind: data.KindDomain, Domain: d})
	assert.Equal(t, d, h.c.Globe().ColorScale().Domain())
	assert.Equal(t, d, h.c.Info().Domain)

	// Revisiting the step reuses the cached domain without a request
	h.scrollToStep(1)
	h.advance(parameter.FocusZoomDuration + 50*time.Millisecond)
	h.scrollToStep(0)
	assert.Equal(t, 2, h.fetch.count(data.KindDomain))
	assert.Equal(t, d, h.c.Globe().ColorScale().Domain())
}

func TestRegionSeriesSurvivesToggle(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)
	req, _ := h.fetch.last(data.KindRegion, "a")

	require.True(t, h.c.ToggleYear())
	h.c.HandleResult(data.Result{Tag: req.Tag, Kind: data.KindRegion, Rows: []data.RegionRow{
		{Year: 1900, Region: "Europe", Value: 2},
		{Year: 1850, Region: "Europe", Value: 1},
		{Year: 1850, Region: "Asia", Value: 9},
	}})
	assert.Equal(t, []data.RegionPoint{{Year: 1850, Value: 1}, {Year: 1900, Value: 2}}, h.c.Series())

	require.True(t, h.c.ToggleChart())
	assert.True(t, h.c.ChartOpen())
	h.c.Escape()
	assert.False(t, h.c.ChartOpen())
}

func TestScrollAboveFirstStepThenIntro(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)

	h.c.lock.absorb = false
	h.c.Scroll(-h.c.tracker.Offset())
	assert.Equal(t, StateTimelineIdle, h.c.State())
	assert.Equal(t, -1, h.c.ActiveStep())
	assert.Nil(t, h.c.Globe().Focus())

	h.c.Scroll(-3)
	assert.Equal(t, StateIntro, h.c.State())
	assert.False(t, h.c.Revealed())
}

func TestBackToIntroResetsEverything(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)
	req, _ := h.fetch.last(data.KindDomain, "a")
	h.c.HandleResult(data.Result{Tag: req.Tag, Kind: data.KindDomain, Domain: data.Domain{Min: 1, Mid: 2, Max: 3}})
	require.Equal(t, 1, h.c.domains.Len())
	require.NoError(t, h.c.OpenRace())

	h.c.BackToIntro()
	assert.Equal(t, StateIntro, h.c.State())
	assert.Equal(t, -1, h.c.ActiveStep())
	assert.Nil(t, h.c.Globe().Focus())
	assert.False(t, h.c.Locked())
	assert.False(t, h.c.lock.Absorbing())
	assert.Zero(t, h.c.domains.Len())
	assert.Zero(t, h.c.tracker.Offset())
	assert.Equal(t, parameter.WarpIdle, h.stars.warp)

	// A domain computed before the reset must not repopulate the cache
	h.c.HandleResult(data.Result{Tag: req.Tag, Kind: data.KindDomain, Domain: data.Domain{Min: 1, Mid: 2, Max: 3}})
	assert.Zero(t, h.c.domains.Len())

	h.toFirstStep(t)
}

func TestBackToIntroCancelsWarpChain(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.c.Begin())
	h.advance(parameter.WarpInBurstDuration + 10*time.Millisecond)

	h.c.BackToIntro()
	h.advance(warpInTotal)
	assert.Equal(t, StateIntro, h.c.State())
	assert.Zero(t, h.cues.gate)
	assert.False(t, h.c.seq.Running())
	assert.Equal(t, 1.0, h.stars.alpha)
}

func TestWarpOutToConclusion(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)

	h.c.lock.absorb = false
	h.c.Scroll(10_000)
	require.Equal(t, StateWarpingOut, h.c.State())
	assert.True(t, h.c.Locked())
	assert.Equal(t, parameter.WarpOutHueShift, h.stars.hue)
	assert.Equal(t, 1.0, h.stars.alpha)
	assert.Equal(t, -1, h.c.ActiveStep())
	assert.Nil(t, h.c.Globe().Focus())

	h.advance(warpOutTotal + 50*time.Millisecond)
	require.Equal(t, StateConclusion, h.c.State())
	assert.False(t, h.c.Locked())
	assert.Zero(t, h.stars.hue)
	require.NotNil(t, h.c.Conclusion())
	assert.Equal(t, h.c.Conclusion(), h.c.ActiveGlobe())

	req, ok := h.fetch.last(data.KindYear, ConclusionTag)
	require.True(t, ok)
	assert.Equal(t, []string{"2014.csv"}, req.Paths)
	h.c.HandleResult(data.Result{Tag: req.Tag, Kind: data.KindYear, Cells: []data.GridCell{{CO2: 1}}})
	assert.Len(t, h.c.Conclusion().Cells(), 1)

	first := h.c.Conclusion()
	require.NoError(t, h.c.BackToTimeline())
	assert.Equal(t, StateZooming, h.c.State())
	assert.Equal(t, 0, h.c.ActiveStep())
	h.advance(parameter.FocusZoomDuration + 50*time.Millisecond)

	h.c.lock.absorb = false
	h.c.Scroll(10_000)
	h.advance(warpOutTotal + 50*time.Millisecond)
	require.Equal(t, StateConclusion, h.c.State())
	assert.Same(t, first, h.c.Conclusion())
	assert.Equal(t, 1, h.c.conclusionBuilt)
}

func TestRaceOverlay(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)

	require.NoError(t, h.c.OpenRace())
	assert.Equal(t, StateRaceOverlay, h.c.State())
	assert.True(t, h.c.Locked())
	assert.Equal(t, 1, h.race.restarts)

	// Steps cannot activate under the overlay
	off := h.c.tracker.Offset()
	h.c.Scroll(30)
	assert.Equal(t, off, h.c.tracker.Offset())

	s := h.c.Layout().Slider
	h.c.DragStart(s.X+s.W-1, s.Y)
	assert.True(t, h.stars.paused)
	assert.True(t, h.race.scrubbing)
	assert.InDelta(t, 1.0, h.race.fraction, 1e-9)
	h.c.DragMove(s.X, s.Y)
	assert.InDelta(t, 0.0, h.race.fraction, 1e-9)
	h.c.DragEnd()
	assert.False(t, h.stars.paused)
	assert.False(t, h.race.scrubbing)

	require.NoError(t, h.c.CloseRace())
	assert.Equal(t, StateStepActive, h.c.State())
	assert.False(t, h.c.Locked())
	assert.True(t, h.c.lock.Absorbing())
}

func TestBackToRaceClearsStep(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)

	h.c.HandleResult(h.yearResult(t, "a", []data.GridCell{{Lat: 10, Lon: 20, CO2: 5}}))
	require.Len(t, h.c.Globe().Cells(), 1)

	require.NoError(t, h.c.BackToRace())
	assert.Equal(t, StateRaceOverlay, h.c.State())
	assert.Equal(t, -1, h.c.ActiveStep())
	assert.Nil(t, h.c.Globe().Focus())
	assert.Empty(t, h.c.Globe().Cells())

	// Closing re-enters the step still under the activation line
	yearReqs := h.fetch.count(data.KindYear)
	require.NoError(t, h.c.CloseRace())
	assert.Equal(t, StateZooming, h.c.State())
	assert.Equal(t, 0, h.c.ActiveStep())
	assert.NotNil(t, h.c.Globe().Focus())
	assert.Equal(t, yearReqs+1, h.fetch.count(data.KindYear))

	h.advance(parameter.FocusZoomDuration + 50*time.Millisecond)
	assert.Equal(t, StateStepActive, h.c.State())
}

func TestCloseRaceReleasesScrub(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)
	require.NoError(t, h.c.OpenRace())

	s := h.c.Layout().Slider
	h.c.DragStart(s.X+1, s.Y)
	require.True(t, h.c.Scrubbing())
	require.True(t, h.stars.paused)

	h.c.Escape()
	assert.Equal(t, StateStepActive, h.c.State())
	assert.False(t, h.c.Scrubbing())
	assert.False(t, h.stars.paused)
	assert.False(t, h.race.scrubbing)
}

func TestBackToIntroFromIntroIsNoop(t *testing.T) {
	h := newHarness(t)
	gen := h.c.Generation()
	h.c.BackToIntro()
	assert.Equal(t, StateIntro, h.c.State())
	assert.Equal(t, gen, h.c.Generation())
	assert.Equal(t, 0.0, counterValue(t, h.metrics.Transitions.WithLabelValues("Intro")))
}

func TestBackNavigationBeforeReveal(t *testing.T) {
	h := newHarness(t)
	assert.ErrorIs(t, h.c.BackToTimeline(), fsm.ErrIllegalTransition)
	assert.ErrorIs(t, h.c.BackToRace(), fsm.ErrIllegalTransition)
	assert.Error(t, h.c.OpenRace())
	assert.Equal(t, StateIntro, h.c.State())
}

func TestGlobeDragRouting(t *testing.T) {
	h := newHarness(t)
	h.toFirstStep(t)

	g := h.c.Globe()
	r := g.Rect()
	cx, cy := r.X+r.W/2, (r.Y+r.H/2)/2
	rot := g.Rotation()
	h.c.DragStart(cx, cy)
	h.c.DragMove(cx+4, cy)
	h.c.DragMove(cx+8, cy)
	h.c.Update(parameter.FrameUpdateInterval)
	h.c.DragEnd()

	assert.Equal(t, 1, g.DragApplied())
	assert.InDelta(t, rot[0]+8*parameter.DragSensitivity, g.Rotation()[0], 1e-9)

	// Presses on the panel do not grab the globe
	h.c.DragStart(h.c.Layout().Panel.X+1, 1)
	h.c.DragMove(h.c.Layout().Panel.X+9, 1)
	h.c.Update(parameter.FrameUpdateInterval)
	assert.Equal(t, 1, g.DragApplied())
}
