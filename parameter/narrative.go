package parameter

import "time"

// Warp-in Sequence
const (
	WarpInBurstDuration  = 400 * time.Millisecond
	WarpInCruiseDuration = 1400 * time.Millisecond
	WarpInStopDuration   = 1400 * time.Millisecond
	// WarpInHoldDuration is the solid-color hold after the stars fade out
	WarpInHoldDuration = 600 * time.Millisecond
)

// Warp-out Sequence
const (
	WarpOutBurstDuration  = 400 * time.Millisecond
	WarpOutSweepDuration  = 1200 * time.Millisecond
	WarpOutSettleDuration = 1000 * time.Millisecond
)

// Year Gate
const (
	// YearGateCountDuration is how long the year counter takes to travel back
	YearGateCountDuration = 1800 * time.Millisecond
)

// Step Transitions
const (
	// CrossfadeDuration is the full shrink-out/shrink-in length of a year toggle
	CrossfadeDuration = 700 * time.Millisecond
	// PageFlipDuration is the panel wipe length when the active block changes
	PageFlipDuration = 450 * time.Millisecond
)

// Scrolling
const (
	// ScrollLines is the panel movement per wheel notch
	ScrollLines = 3
	// PageLines is the panel movement per PgUp/PgDn
	PageLines = 12
	// ActivationLine is the panel fraction where a step becomes active
	ActivationLine = 0.5
	// AbsorbWindow bounds how long after unlocking a residual wheel event is swallowed
	AbsorbWindow = 250 * time.Millisecond
	// StepGap is the number of blank lines between steps
	StepGap = 10
	// ChartRows is the height of a step's region chart
	ChartRows = 3
)

// Race Overlay
const (
	// RaceYearInterval is the autoplay advance interval
	RaceYearInterval = 450 * time.Millisecond
	// RaceBars is the number of bars shown
	RaceBars = 8
	// RaceSpringFrequency / RaceSpringDamping tune bar motion
	RaceSpringFrequency = 6.0
	RaceSpringDamping   = 0.9
	// RaceSpringFPS is the step rate fed to the bar springs
	RaceSpringFPS = 60
)

// Conclusion
const (
	// ConclusionSpin is the idle yaw rate of the conclusion globe (degrees per second)
	ConclusionSpin = 4.0
)
