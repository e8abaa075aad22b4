package narrative

import (
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrBusy is returned when a chain is started while another runs
var ErrBusy = errors.New("sequence already running")

// Phase is one timed step of a chain; Enter runs when the phase begins
type Phase struct {
	Name     string
	Duration time.Duration
	Enter    func()
}

// Sequencer runs one chain of phases at a time against a clock
// Phases are scheduled back to back from the chain start, late frames catch up
type Sequencer struct {
	clock   clockwork.Clock
	name    string
	phases  []Phase
	index   int
	started time.Time
	running bool
	epoch   uint64
}

// NewSequencer creates an idle sequencer
func NewSequencer(clock clockwork.Clock) *Sequencer {
	return &Sequencer{clock: clock}
}

// Start begins a chain and enters its first phase immediately
func (s *Sequencer) Start(name string, phases []Phase) error {
	if s.running {
		return ErrBusy
	}
	if len(phases) == 0 {
		return nil
	}
	s.epoch++
	s.name = name
	s.phases = phases
	s.index = 0
	s.started = s.clock.Now()
	s.running = true

	if !s.enter() {
		return nil
	}
	s.Update()
	return nil
}

// enter runs the current phase, false when Enter cancelled or replaced the chain
func (s *Sequencer) enter() bool {
	epoch := s.epoch
	if fn := s.phases[s.index].Enter; fn != nil {
		fn()
	}
	return s.running && s.epoch == epoch
}

// Update enters every phase whose start time has passed
func (s *Sequencer) Update() {
	for s.running {
		p := s.phases[s.index]
		if s.clock.Since(s.started) < p.Duration {
			return
		}
		s.started = s.started.Add(p.Duration)
		s.index++
		if s.index >= len(s.phases) {
			s.finish()
			return
		}
		if !s.enter() {
			return
		}
	}
}

// Cancel drops the whole chain, no further Enter runs
func (s *Sequencer) Cancel() {
	if s.running {
		s.finish()
	}
}

func (s *Sequencer) finish() {
	s.epoch++
	s.running = false
	s.phases = nil
	s.index = 0
}

// Running reports whether a chain is in progress
func (s *Sequencer) Running() bool {
	return s.running
}

// Name returns the running chain's name
func (s *Sequencer) Name() string {
	if !s.running {
		return ""
	}
	return s.name
}

// Phase returns the current phase name
func (s *Sequencer) Phase() string {
	if !s.running {
		return ""
	}
	return s.phases[s.index].Name
}

// Progress returns elapsed fraction of the current phase
func (s *Sequencer) Progress() float64 {
	if !s.running {
		return 0
	}
	d := s.phases[s.index].Duration
	if d <= 0 {
		return 1
	}
	return min(float64(s.clock.Since(s.started))/float64(d), 1)
}
