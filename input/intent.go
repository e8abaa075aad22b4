package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // q, Ctrl+C
	IntentEscape     // Esc, collapses the open overlay
	IntentToggleMute // m
	IntentResize     // Terminal resize event

	// Narrative
	IntentBegin          // Enter: begin in the intro, proceed at the year gate
	IntentScroll         // wheel, arrows, j/k, PgUp/PgDn; Count is signed lines
	IntentToggleYear     // y
	IntentToggleChart    // c
	IntentRace           // r
	IntentBackToIntro    // i
	IntentBackToTimeline // t
	IntentBackToRace     // R

	// Race overlay
	IntentRaceStep // ←/→; Count is signed years
	IntentRacePlay // Space

	// Mouse, X/Y are cell coordinates
	IntentDragStart
	IntentDragMove
	IntentDragEnd
)

// Intent represents a parsed semantic action
// Pure data struct with no function pointers or engine dependencies
type Intent struct {
	Type  IntentType
	Count int
	X, Y  int
}
