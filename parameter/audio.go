package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	// AudioBufferDuration determines latency of the speaker buffer
	AudioBufferDuration = 100 * time.Millisecond
	// AudioMasterVolume scales every cue
	AudioMasterVolume = 0.6
)

// Warp Cue
const (
	WarpSoundDuration = 900 * time.Millisecond
	WarpSoundAttack   = 250 * time.Millisecond
	WarpSoundRelease  = 500 * time.Millisecond
	WarpSoundLowFreq  = 70.0
	WarpSoundHighFreq = 420.0
)

// Gate Cue
const (
	GateSoundDuration           = 600 * time.Millisecond
	GateSoundAttack             = 5 * time.Millisecond
	GateSoundFundamentalRelease = 550 * time.Millisecond
	GateSoundOvertoneRelease    = 200 * time.Millisecond
)

// Flip Cue
const (
	FlipSoundDuration = 120 * time.Millisecond
	FlipSoundAttack   = 10 * time.Millisecond
	FlipSoundRelease  = 90 * time.Millisecond
)
