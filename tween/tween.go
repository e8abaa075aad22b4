// Package tween drives fixed-duration eased animations from the frame loop
package tween

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// EaseFunc maps linear progress in [0,1] to eased progress
type EaseFunc func(t float64) float64

// Token is the cancellation handle of one tween
// A cancelled or finished token never invokes its callbacks again
type Token struct {
	cancelled bool
	finished  bool
}

// Cancel stops the tween at its current value without calling done
func (t *Token) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Active reports whether the tween still runs
func (t *Token) Active() bool {
	return t != nil && !t.cancelled && !t.finished
}

// Cancelled reports whether the tween was cancelled
func (t *Token) Cancelled() bool {
	return t != nil && t.cancelled
}

type tween struct {
	token    *Token
	start    time.Time
	duration time.Duration
	ease     EaseFunc
	step     func(float64)
	done     func()
}

// Runner advances all tweens against one clock, owned by the frame loop goroutine
type Runner struct {
	clock  clockwork.Clock
	tweens []*tween
}

// NewRunner creates a runner reading time from clock
func NewRunner(clock clockwork.Clock) *Runner {
	return &Runner{clock: clock}
}

// Start registers a tween; step receives eased progress, done runs once after step(1)
// step(0) is applied immediately so the start value is visible on the same frame
func (r *Runner) Start(d time.Duration, ease EaseFunc, step func(float64), done func()) *Token {
	tok := &Token{}
	tw := &tween{
		token:    tok,
		start:    r.clock.Now(),
		duration: d,
		ease:     ease,
		step:     step,
		done:     done,
	}
	if step != nil {
		step(0)
	}
	r.tweens = append(r.tweens, tw)
	return tok
}

// Update advances every live tween, callbacks may start or cancel tweens
func (r *Runner) Update() {
	if len(r.tweens) == 0 {
		return
	}
	now := r.clock.Now()

	// Snapshot so tweens started from callbacks begin on the next frame
	snapshot := make([]*tween, len(r.tweens))
	copy(snapshot, r.tweens)

	for _, tw := range snapshot {
		if !tw.token.Active() {
			continue
		}
		t := 1.0
		if tw.duration > 0 {
			t = float64(now.Sub(tw.start)) / float64(tw.duration)
		}
		if t >= 1 {
			tw.token.finished = true
			if tw.step != nil {
				tw.step(1)
			}
			if tw.done != nil {
				tw.done()
			}
			continue
		}
		if t < 0 {
			t = 0
		}
		e := t
		if tw.ease != nil {
			e = tw.ease(t)
		}
		if tw.step != nil {
			tw.step(e)
		}
	}

	live := r.tweens[:0]
	for _, tw := range r.tweens {
		if tw.token.Active() {
			live = append(live, tw)
		}
	}
	for i := len(live); i < len(r.tweens); i++ {
		r.tweens[i] = nil
	}
	r.tweens = live
}

// Active returns the number of live tweens
func (r *Runner) Active() int {
	n := 0
	for _, tw := range r.tweens {
		if tw.token.Active() {
			n++
		}
	}
	return n
}

// CancelAll cancels every live tween
func (r *Runner) CancelAll() {
	for _, tw := range r.tweens {
		tw.token.Cancel()
	}
	r.tweens = r.tweens[:0]
}
