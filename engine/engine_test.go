package engine

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lixenwraith/warpglobe/audio"
	"github.com/lixenwraith/warpglobe/data"
	"github.com/lixenwraith/warpglobe/input"
	"github.com/lixenwraith/warpglobe/narrative"
	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/race"
	"github.com/lixenwraith/warpglobe/render"
	"github.com/lixenwraith/warpglobe/story"
)

type testEngine struct {
	*Engine
	screen tcell.SimulationScreen
	fini   func()
	clock  *clockwork.FakeClock
	audio  *audio.Nop
	race   *race.Race
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 30)
	var once sync.Once
	fini := func() { once.Do(screen.Fini) }
	t.Cleanup(fini)

	st, err := story.Default()
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	cues := audio.NewNop(false)
	ctrl, err := narrative.New(narrative.Config{Story: st, Clock: clock, Cues: cues})
	require.NoError(t, err)

	r := race.New([]data.RegionRow{
		{Year: 1850, Region: "Europe", Value: 1},
		{Year: 1850, Region: "Asia", Value: 0.5},
		{Year: 1900, Region: "Europe", Value: 3},
		{Year: 1900, Region: "Asia", Value: 2},
		{Year: 1950, Region: "Europe", Value: 5},
		{Year: 1950, Region: "Asia", Value: 6},
	})

	e, err := New(Config{
		Screen:     screen,
		ColorMode:  render.ColorModeTrueColor,
		Controller: ctrl,
		Race:       r,
		Audio:      cues,
		Clock:      clock,
	})
	require.NoError(t, err)
	e.resize()
	require.NoError(t, ctrl.Init())
	return &testEngine{Engine: e, screen: screen, fini: fini, clock: clock, audio: cues, race: r}
}

// advance runs frames for d of fake time
func (te *testEngine) advance(d time.Duration) {
	for d > 0 {
		step := min(d, parameter.FrameUpdateInterval)
		te.clock.Advance(step)
		te.Frame()
		d -= step
	}
}

// screenText returns the simulation screen as one string per row
func (te *testEngine) screenText() []string {
	cells, w, h := te.screen.GetContents()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			if r := cells[y*w+x].Runes; len(r) > 0 {
				sb.WriteRune(r[0])
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

func (te *testEngine) contains(s string) bool {
	for _, row := range te.screenText() {
		if strings.Contains(row, s) {
			return true
		}
	}
	return false
}

func key(r rune) tcell.Event {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestIntroFrame(t *testing.T) {
	te := newTestEngine(t)
	te.Frame()

	assert.True(t, te.contains("TWO CENTURIES OF CARBON"))
	assert.True(t, te.contains(parameter.IntroPrompt))
	assert.True(t, te.contains("INTRO"))
}

func TestEnterRunsWarpAndGate(t *testing.T) {
	te := newTestEngine(t)

	require.True(t, te.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	assert.True(t, te.ctrl.Is(narrative.StateWarpingIn))

	te.advance(parameter.WarpInBurstDuration + parameter.WarpInCruiseDuration +
		parameter.WarpInStopDuration + parameter.WarpInHoldDuration + 50*time.Millisecond)
	require.True(t, te.ctrl.Is(narrative.StateYearGate))
	assert.True(t, te.contains(parameter.GatePrompt))

	// Enter at the gate proceeds instead of beginning again
	require.True(t, te.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	assert.True(t, te.ctrl.Is(narrative.StateZooming))
}

func TestRaceKeysOnlyInOverlay(t *testing.T) {
	te := newTestEngine(t)

	// Before the overlay the race keys leave the race alone
	te.race.Restart()
	te.race.TogglePlay()
	require.False(t, te.race.Playing())
	te.HandleEvent(key(' '))
	assert.False(t, te.race.Playing())

	te.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	te.advance(4 * time.Second)
	te.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	te.advance(parameter.IntroZoomDuration + parameter.FocusZoomDuration + 100*time.Millisecond)
	require.True(t, te.ctrl.Is(narrative.StateStepActive))

	te.HandleEvent(key('r'))
	require.True(t, te.ctrl.Is(narrative.StateRaceOverlay))
	assert.True(t, te.race.Playing())

	te.HandleEvent(key(' '))
	assert.False(t, te.race.Playing())
	te.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	assert.Equal(t, 1900, te.race.Year())

	te.Frame()
	assert.True(t, te.contains(parameter.RaceTitle))

	// r again collapses the overlay
	te.HandleEvent(key('r'))
	assert.False(t, te.ctrl.Is(narrative.StateRaceOverlay))
}

func TestMuteToggle(t *testing.T) {
	te := newTestEngine(t)

	te.HandleEvent(key('m'))
	assert.True(t, te.audio.Muted())
	te.Frame()
	assert.True(t, te.contains(strings.TrimSpace(parameter.AudioMutedText)))
}

func TestResizeRelayouts(t *testing.T) {
	te := newTestEngine(t)

	te.screen.SetSize(60, 20)
	te.HandleEvent(tcell.NewEventResize(60, 20))
	l := te.ctrl.Layout()
	assert.Equal(t, 60, l.Cols)
	assert.Equal(t, 19, l.Status.Y)
}

func TestFPSSample(t *testing.T) {
	te := newTestEngine(t)
	te.Frame()
	te.advance(time.Second + parameter.FrameUpdateInterval)
	assert.InDelta(t, 62, te.FPS(), 3)
}

func TestQuitIntent(t *testing.T) {
	te := newTestEngine(t)
	assert.False(t, te.dispatch(input.Intent{Type: input.IntentQuit}))
	assert.False(t, te.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.True(t, te.dispatch(input.Intent{Type: input.IntentNone}))
}

func TestRunStopsOnQuitKey(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	te := newTestEngine(t)
	te.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	errc := make(chan error, 1)
	go func() { errc <- te.Run(context.Background()) }()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return on quit")
	}
	// Finalizing the screen releases the event poller
	te.fini()
}

func TestRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	te := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- te.Run(ctx) }()
	cancel()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return on cancel")
	}
	te.fini()
}
