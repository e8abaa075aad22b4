package race

import (
	"math"

	"github.com/lixenwraith/warpglobe/data"
)

// sparkRunes are the eight block heights of one chart cell
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Column is one resampled chart column
type Column struct {
	Year  int
	Value float64
	Level float64 // Value normalized to [0,1] over the series
	After bool    // strictly after the event year
}

// Columns resamples a region series to width columns and splits it at eventYear
func Columns(series []data.RegionPoint, eventYear, width int) []Column {
	if len(series) == 0 || width <= 0 {
		return nil
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range series {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	span := hi - lo

	n := min(width, len(series))
	cols := make([]Column, n)
	for i := range cols {
		idx := 0
		if n > 1 {
			idx = int(math.Round(float64(i) * float64(len(series)-1) / float64(n-1)))
		}
		p := series[idx]
		level := 1.0
		if span > 0 {
			level = (p.Value - lo) / span
		}
		cols[i] = Column{Year: p.Year, Value: p.Value, Level: level, After: p.Year > eventYear}
	}
	return cols
}

// Glyph returns the block rune for row (0 = top) of a column drawn rows tall,
// or 0 when that cell is empty
func Glyph(level float64, row, rows int) rune {
	if rows <= 0 {
		return 0
	}
	// Every column keeps at least the lowest eighth so flat series stay visible
	eighths := max(int(math.Round(level*float64(rows*8))), 1)
	fromBottom := rows - 1 - row
	fill := eighths - fromBottom*8
	switch {
	case fill <= 0:
		return 0
	case fill >= 8:
		return sparkRunes[7]
	default:
		return sparkRunes[fill-1]
	}
}

// Sparkline renders a single-row chart string
func Sparkline(cols []Column) string {
	out := make([]rune, len(cols))
	for i, c := range cols {
		out[i] = Glyph(c.Level, 0, 1)
	}
	return string(out)
}
