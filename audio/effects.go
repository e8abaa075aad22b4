package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/warpglobe/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sweep is a sine whose frequency glides from low to high and back over its duration
type sweep struct {
	low, high float64
	phase     float64
	duration  int
	position  int
	rate      beep.SampleRate
}

// NewSweep creates a rising-then-falling sine glide
func NewSweep(low, high float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{low: low, high: high, duration: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.duration)
		freq := s.low + (s.high-s.low)*math.Sin(t*math.Pi)

		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; 0 is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateWarpSound generates the whoosh played when the starfield jumps to hyperspace
func CreateWarpSound(rate beep.SampleRate) beep.Streamer {
	tone := NewEnvelope(
		NewSweep(parameter.WarpSoundLowFreq, parameter.WarpSoundHighFreq, parameter.WarpSoundDuration, rate),
		parameter.WarpSoundDuration, parameter.WarpSoundAttack, parameter.WarpSoundRelease, rate,
	)
	noise := NewEnvelope(
		NewOscillator(0, parameter.WarpSoundDuration, WaveNoise, rate),
		parameter.WarpSoundDuration, parameter.WarpSoundAttack, parameter.WarpSoundRelease, rate,
	)

	mixed := beep.Mix(newVolume(tone, 0.6), newVolume(noise, 0.25))
	return newVolume(mixed, parameter.AudioMasterVolume)
}

// CreateGateSound generates the chime that marks the year gate
func CreateGateSound(rate beep.SampleRate) beep.Streamer {
	// A5 with an octave overtone
	fund := NewEnvelope(
		NewOscillator(880.0, parameter.GateSoundDuration, WaveSine, rate),
		parameter.GateSoundDuration, parameter.GateSoundAttack, parameter.GateSoundFundamentalRelease, rate,
	)
	over := NewEnvelope(
		NewOscillator(1760.0, parameter.GateSoundDuration, WaveSine, rate),
		parameter.GateSoundDuration, parameter.GateSoundAttack, parameter.GateSoundOvertoneRelease, rate,
	)

	mixed := beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))
	return newVolume(mixed, parameter.AudioMasterVolume)
}

// CreateFlipSound generates the short paper tick of a page turn
func CreateFlipSound(rate beep.SampleRate) beep.Streamer {
	noise := NewEnvelope(
		NewOscillator(0, parameter.FlipSoundDuration, WaveNoise, rate),
		parameter.FlipSoundDuration, parameter.FlipSoundAttack, parameter.FlipSoundRelease, rate,
	)
	return newVolume(noise, parameter.AudioMasterVolume*0.4)
}
