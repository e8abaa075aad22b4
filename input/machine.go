package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/warpglobe/parameter"
)

// maxCount caps the numeric prefix
const maxCount = 999

// Machine is the input state machine
// Parses tcell events into semantic Intent
type Machine struct {
	keyTable *KeyTable

	// Numeric prefix applied to scroll and race step entries ("5j")
	count int

	// Left button state from the previous mouse event
	buttonDown bool
	lastX      int
	lastY      int
}

// NewMachine creates a new input machine; nil table selects the defaults
func NewMachine(table *KeyTable) *Machine {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Machine{keyTable: table}
}

// PendingCount returns the accumulated numeric prefix, 0 if none
func (m *Machine) PendingCount() int {
	return m.count
}

// Reset clears pending prefix and drag state
func (m *Machine) Reset() {
	m.count = 0
	m.buttonDown = false
}

// Process parses a terminal event and returns an Intent
// Returns nil if the event maps to nothing or input is incomplete
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	if ev.Key() != tcell.KeyRune {
		entry, ok := m.keyTable.SpecialKeys[ev.Key()]
		if !ok {
			m.count = 0
			return nil
		}
		return m.emit(entry)
	}

	r := ev.Rune()
	// Count accumulation; a leading zero is not a count
	if (r >= '1' && r <= '9') || (r == '0' && m.count > 0) {
		if _, bound := m.keyTable.Runes[r]; !bound {
			m.count = min(m.count*10+int(r-'0'), maxCount)
			return nil
		}
	}

	entry, ok := m.keyTable.Runes[r]
	if !ok {
		m.count = 0
		return nil
	}
	return m.emit(entry)
}

// emit builds the intent for a bound entry, consuming any count prefix
func (m *Machine) emit(entry KeyEntry) *Intent {
	count := entry.Count
	if m.count > 0 && (entry.Intent == IntentScroll || entry.Intent == IntentRaceStep) {
		count *= m.count
	}
	m.count = 0
	if entry.Intent == IntentNone {
		return nil
	}
	return &Intent{Type: entry.Intent, Count: count}
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		return &Intent{Type: IntentScroll, Count: -parameter.ScrollLines, X: x, Y: y}
	case buttons&tcell.WheelDown != 0:
		return &Intent{Type: IntentScroll, Count: parameter.ScrollLines, X: x, Y: y}
	}

	down := buttons&tcell.Button1 != 0
	prev := m.buttonDown
	moved := x != m.lastX || y != m.lastY
	m.buttonDown = down
	m.lastX, m.lastY = x, y

	switch {
	case down && !prev:
		return &Intent{Type: IntentDragStart, X: x, Y: y}
	case down && prev && moved:
		return &Intent{Type: IntentDragMove, X: x, Y: y}
	case !down && prev:
		return &Intent{Type: IntentDragEnd, X: x, Y: y}
	}
	return nil
}
