package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/warpglobe/parameter"
)

// KeyEntry binds a key to an intent; Count carries scroll and step amounts
type KeyEntry struct {
	Intent IntentType
	Count  int
}

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, function keys)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {Intent: IntentQuit},
			tcell.KeyEscape: {Intent: IntentEscape},
			tcell.KeyEnter:  {Intent: IntentBegin},
			tcell.KeyUp:     {Intent: IntentScroll, Count: -1},
			tcell.KeyDown:   {Intent: IntentScroll, Count: 1},
			tcell.KeyPgUp:   {Intent: IntentScroll, Count: -parameter.PageLines},
			tcell.KeyPgDn:   {Intent: IntentScroll, Count: parameter.PageLines},
			tcell.KeyLeft:   {Intent: IntentRaceStep, Count: -1},
			tcell.KeyRight:  {Intent: IntentRaceStep, Count: 1},
		},
		Runes: map[rune]KeyEntry{
			'q': {Intent: IntentQuit},
			'm': {Intent: IntentToggleMute},
			'j': {Intent: IntentScroll, Count: 1},
			'k': {Intent: IntentScroll, Count: -1},
			'y': {Intent: IntentToggleYear},
			'c': {Intent: IntentToggleChart},
			'r': {Intent: IntentRace},
			'R': {Intent: IntentBackToRace},
			'i': {Intent: IntentBackToIntro},
			't': {Intent: IntentBackToTimeline},
			'h': {Intent: IntentRaceStep, Count: -1},
			'l': {Intent: IntentRaceStep, Count: 1},
			' ': {Intent: IntentRacePlay},
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: maps.Clone(kt.SpecialKeys),
		Runes:       maps.Clone(kt.Runes),
	}
}
