package input

import (
	"sort"

	"github.com/lixenwraith/warpglobe/parameter"
)

// actionRegistry maps canonical action names to KeyEntry structs
// Used by the keymap loader to resolve action strings to bindings
var actionRegistry = map[string]KeyEntry{
	// Unbind sentinel
	"none": {},

	// System
	"quit":        {Intent: IntentQuit},
	"escape":      {Intent: IntentEscape},
	"toggle_mute": {Intent: IntentToggleMute},

	// Narrative
	"begin":            {Intent: IntentBegin},
	"scroll_up":        {Intent: IntentScroll, Count: -1},
	"scroll_down":      {Intent: IntentScroll, Count: 1},
	"page_up":          {Intent: IntentScroll, Count: -parameter.PageLines},
	"page_down":        {Intent: IntentScroll, Count: parameter.PageLines},
	"toggle_year":      {Intent: IntentToggleYear},
	"toggle_chart":     {Intent: IntentToggleChart},
	"race":             {Intent: IntentRace},
	"back_to_intro":    {Intent: IntentBackToIntro},
	"back_to_timeline": {Intent: IntentBackToTimeline},
	"back_to_race":     {Intent: IntentBackToRace},

	// Race overlay
	"race_prev": {Intent: IntentRaceStep, Count: -1},
	"race_next": {Intent: IntentRaceStep, Count: 1},
	"race_play": {Intent: IntentRacePlay},
}

// ActionEntry resolves a canonical action name to its KeyEntry
// Returns zero KeyEntry and false if name is unknown
func ActionEntry(name string) (KeyEntry, bool) {
	entry, ok := actionRegistry[name]
	return entry, ok
}

// ActionNames returns all registered action names, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
