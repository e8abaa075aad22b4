package parameter

// Layout
const (
	// GlobePanelRatio is the share of the screen width given to the globe
	GlobePanelRatio = 0.58
	// PanelPadding is the horizontal padding inside the narrative panel
	PanelPadding = 2
	// StatusBarHeight is reserved at the bottom of the screen
	StatusBarHeight = 1
)

// Key Hints
const (
	HintIntro      = " Enter begin · q quit "
	HintYearGate   = " Enter proceed "
	HintTimeline   = " ↑/↓ scroll · y year · c chart · r race · i intro · q quit "
	HintRace       = " ←/→ year · drag slider · space play · Esc close "
	HintConclusion = " drag globe · r race · t timeline · i intro · q quit "
)

// Overlays
const (
	// OverlayMargin is the horizontal gap around the race overlay box
	OverlayMargin = 8
	// ConclusionTextRows is reserved above the conclusion globe for its text
	ConclusionTextRows = 6
	// ChartExpandedRows is the height of the expanded region chart
	ChartExpandedRows = 12
)

// Panel and overlay look
const (
	// PanelAlpha is the opacity of the narrative column over the starfield
	PanelAlpha = 0.85
	// OverlayAlpha is the opacity of overlay boxes
	OverlayAlpha = 0.92
	// ActiveRowAlpha is the strength of the screen-blended active title row
	ActiveRowAlpha = 0.8
	// IntroWidth caps the intro text column
	IntroWidth = 64
	// RaceLabelWidth / RaceValueWidth are the race bar text columns
	RaceLabelWidth = 16
	RaceValueWidth = 10
)

// Overlay text
const (
	IntroPrompt    = "Press Enter or scroll down to begin"
	GatePrompt     = "Enter to proceed"
	RaceTitle      = "Emissions by region"
	RaceEmpty      = "No region data"
	ChartLoading   = "Loading series…"
	AudioOnText    = " ♪ "
	AudioMutedText = " ∅ "
)
