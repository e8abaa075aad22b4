package narrative

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/story"
)

// ScrollLock suppresses scrolling while cinematic states run
// After unlocking, the next scroll inside AbsorbWindow is swallowed once
type ScrollLock struct {
	locked      bool
	absorb      bool
	absorbUntil time.Time
}

// Lock suppresses every scroll until Unlock
func (l *ScrollLock) Lock() {
	l.locked = true
	l.absorb = false
}

// Unlock releases the lock and arms the absorb flag
func (l *ScrollLock) Unlock(now time.Time) {
	if !l.locked {
		return
	}
	l.locked = false
	l.absorb = true
	l.absorbUntil = now.Add(parameter.AbsorbWindow)
}

// Allow reports whether a scroll at now may move the panel, consuming the absorb flag
func (l *ScrollLock) Allow(now time.Time) bool {
	if l.locked {
		return false
	}
	if l.absorb {
		l.absorb = false
		if now.Before(l.absorbUntil) {
			return false
		}
	}
	return true
}

// Locked reports whether scrolling is suppressed
func (l *ScrollLock) Locked() bool {
	return l.locked
}

// Absorbing reports whether the next scroll would be swallowed
func (l *ScrollLock) Absorbing() bool {
	return l.absorb
}

// Reset clears the lock and the absorb flag
func (l *ScrollLock) Reset() {
	*l = ScrollLock{}
}

// LineKind classifies a panel line
type LineKind uint8

const (
	LineBlank LineKind = iota
	LineBlock
	LineTitle
	LineBody
	LineChart
)

// Line is one wrapped row of the narrative panel
type Line struct {
	Kind LineKind
	Text string
	Step int // -1 outside any step
	Row  int // chart row for LineChart
}

// Tracker lays the story out as panel lines and maps the scroll offset to the
// step under the activation line
type Tracker struct {
	story      *story.Story
	lines      []Line
	stepStart  []int
	stepEnd    int
	offset     int
	width      int
	viewHeight int
}

// NewTracker creates an unlaid tracker
func NewTracker(st *story.Story) *Tracker {
	return &Tracker{story: st}
}

// Layout wraps the story for a panel of width columns and viewHeight rows
// The step under the activation line stays under it
func (t *Tracker) Layout(width, viewHeight int) {
	active := -1
	if len(t.lines) > 0 {
		active = t.ActiveStep()
	}

	t.width = max(width, 1)
	t.viewHeight = max(viewHeight, 1)
	t.lines = t.lines[:0]
	t.stepStart = t.stepStart[:0]

	t.blank(-1, t.viewHeight/2)
	block := ""
	for i := range t.story.Steps {
		s := &t.story.Steps[i]
		if s.Block != "" && s.Block != block {
			block = s.Block
			t.text(LineBlock, -1, strings.ToUpper(s.Block))
			t.blank(-1, 1)
		}
		t.stepStart = append(t.stepStart, len(t.lines))
		t.text(LineTitle, i, s.Title)
		t.blank(i, 1)
		t.text(LineBody, i, s.Body)
		if s.ChartFile != "" {
			t.blank(i, 1)
			for r := 0; r < parameter.ChartRows; r++ {
				t.lines = append(t.lines, Line{Kind: LineChart, Step: i, Row: r})
			}
		}
		t.blank(i, parameter.StepGap)
	}
	t.stepEnd = len(t.lines)
	t.blank(-1, t.viewHeight)

	switch {
	case active >= 0 && active < len(t.stepStart):
		t.ScrollToStep(active)
	default:
		t.offset = min(t.offset, t.maxOffset())
	}
}

func (t *Tracker) blank(step, n int) {
	for range n {
		t.lines = append(t.lines, Line{Kind: LineBlank, Step: step})
	}
}

func (t *Tracker) text(kind LineKind, step int, s string) {
	for _, row := range Wrap(s, t.width) {
		t.lines = append(t.lines, Line{Kind: kind, Text: row, Step: step})
	}
}

// Scroll moves by delta lines, returns whether the offset changed
func (t *Tracker) Scroll(delta int) bool {
	next := min(max(t.offset+delta, 0), t.maxOffset())
	if next == t.offset {
		return false
	}
	t.offset = next
	return true
}

// ScrollToStep puts the first line of step i on the activation line
func (t *Tracker) ScrollToStep(i int) {
	if i < 0 || i >= len(t.stepStart) {
		return
	}
	t.offset = min(max(t.stepStart[i]-t.activationRow(), 0), t.maxOffset())
}

// Reset returns to the top
func (t *Tracker) Reset() {
	t.offset = 0
}

// ActiveStep returns the step under the activation line
// -1 above the first step, len(steps) past the last
func (t *Tracker) ActiveStep() int {
	pos := t.offset + t.activationRow()
	if len(t.stepStart) == 0 || pos < t.stepStart[0] {
		return -1
	}
	if pos >= t.stepEnd {
		return len(t.stepStart)
	}
	for i := len(t.stepStart) - 1; i >= 0; i-- {
		if pos >= t.stepStart[i] {
			return i
		}
	}
	return -1
}

// AtTop reports whether the panel cannot scroll further up
func (t *Tracker) AtTop() bool {
	return t.offset == 0
}

// Offset returns the first visible line
func (t *Tracker) Offset() int {
	return t.offset
}

// Visible returns the lines in view
func (t *Tracker) Visible() []Line {
	end := min(t.offset+t.viewHeight, len(t.lines))
	if t.offset >= end {
		return nil
	}
	return t.lines[t.offset:end]
}

// Lines returns every laid out line
func (t *Tracker) Lines() []Line {
	return t.lines
}

// ActivationRow is the panel row where a step becomes active
func (t *Tracker) activationRow() int {
	return int(float64(t.viewHeight) * parameter.ActivationLine)
}

func (t *Tracker) maxOffset() int {
	return max(len(t.lines)-t.viewHeight, 0)
}

// Wrap breaks s into rows of at most width display columns on word boundaries
// Paragraph breaks in s are kept, words wider than a row are split
func Wrap(s string, width int) []string {
	var rows []string
	for _, para := range strings.Split(strings.TrimSpace(s), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			rows = append(rows, "")
			continue
		}
		var (
			line strings.Builder
			w    int
		)
		flush := func() {
			rows = append(rows, line.String())
			line.Reset()
			w = 0
		}
		for _, word := range words {
			ww := runewidth.StringWidth(word)
			for ww > width {
				if w > 0 {
					flush()
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					// A single rune wider than the row
					head = string([]rune(word)[:1])
				}
				rows = append(rows, head)
				word = word[len(head):]
				ww = runewidth.StringWidth(word)
			}
			if ww == 0 {
				continue
			}
			switch {
			case w == 0:
			case w+1+ww <= width:
				line.WriteByte(' ')
				w++
			default:
				flush()
			}
			line.WriteString(word)
			w += ww
		}
		if w > 0 {
			flush()
		}
	}
	return rows
}
