package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/warpglobe/parameter"
)

// Player plays narrative cues through a single speaker mixer
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	rate    beep.SampleRate
	logger  *zap.Logger
	speaker bool
	muted   bool
}

// NewPlayer initializes the speaker and starts the mixer
func NewPlayer(logger *zap.Logger, muted bool) (*Player, error) {
	rate := beep.SampleRate(parameter.AudioSampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return nil, err
	}

	p := newPlayer(logger, rate, muted)
	p.speaker = true
	speaker.Play(p.mixer)
	return p, nil
}

func newPlayer(logger *zap.Logger, rate beep.SampleRate, muted bool) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		rate:   rate,
		logger: logger,
		muted:  muted,
	}
}

// Warp plays the hyperspace whoosh
func (p *Player) Warp() { p.play("warp", CreateWarpSound) }

// Gate plays the year gate chime
func (p *Player) Gate() { p.play("gate", CreateGateSound) }

// Flip plays the page turn tick
func (p *Player) Flip() { p.play("flip", CreateFlipSound) }

func (p *Player) play(name string, build func(beep.SampleRate) beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted || p.mixer == nil {
		return
	}

	s := build(p.rate)
	if p.speaker {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	} else {
		p.mixer.Add(s)
	}
	p.logger.Debug("cue", zap.String("name", name))
}

// ToggleMute flips the mute flag and returns the new state
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.muted {
		p.clear()
	}
	return p.muted
}

// Muted reports whether cues are suppressed
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Playing returns the number of cues still streaming
func (p *Player) Playing() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mixer == nil {
		return 0
	}
	if p.speaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Close stops all cues and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mixer == nil {
		return
	}
	p.clear()
	if p.speaker {
		speaker.Clear()
		speaker.Close()
	}
	p.mixer = nil
}

func (p *Player) clear() {
	if p.mixer == nil {
		return
	}
	if p.speaker {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
		return
	}
	p.mixer.Clear()
}

// Nop satisfies the cue surface when audio is unavailable
type Nop struct {
	muted bool
}

// NewNop creates a silent cue player with the given mute flag
func NewNop(muted bool) *Nop {
	return &Nop{muted: muted}
}

func (*Nop) Warp() {}
func (*Nop) Gate() {}
func (*Nop) Flip() {}

// ToggleMute tracks the flag so the status bar stays truthful
func (n *Nop) ToggleMute() bool {
	n.muted = !n.muted
	return n.muted
}

func (n *Nop) Muted() bool { return n.muted }
func (*Nop) Playing() int  { return 0 }
func (*Nop) Close()        {}
