package race

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/warpglobe/data"
	"github.com/lixenwraith/warpglobe/parameter"
)

func sampleRows() []data.RegionRow {
	return []data.RegionRow{
		{Year: 1900, Region: "Europe", Value: 10},
		{Year: 1900, Region: "Asia", Value: 2},
		{Year: 1950, Region: "Europe", Value: 20},
		{Year: 1950, Region: "Asia", Value: 30},
		{Year: 2000, Region: "Europe", Value: 25},
		{Year: 2000, Region: "Asia", Value: 90},
	}
}

func settle(r *Race, frames int) {
	for i := 0; i < frames; i++ {
		r.Update(0)
	}
}

func TestRaceEmpty(t *testing.T) {
	r := New(nil)
	assert.True(t, r.Empty())
	r.Restart()
	assert.False(t, r.Playing())
	r.Update(time.Second)
	assert.Empty(t, r.Bars())
	assert.Equal(t, 1.0, r.Max())
	assert.Zero(t, r.Year())
}

func TestRaceAutoplayAdvances(t *testing.T) {
	r := New(sampleRows())
	r.Restart()
	require.True(t, r.Playing())
	assert.Equal(t, 1900, r.Year())

	r.Update(parameter.RaceYearInterval)
	assert.Equal(t, 1950, r.Year())

	r.Update(parameter.RaceYearInterval)
	assert.Equal(t, 2000, r.Year())
	assert.False(t, r.Playing(), "autoplay stops at the last year")

	r.Update(parameter.RaceYearInterval)
	assert.Equal(t, 2000, r.Year())
}

func TestRaceScrubbingHoldsPlayhead(t *testing.T) {
	r := New(sampleRows())
	r.Restart()
	r.SetScrubbing(true)
	r.SetYearFraction(0.5)
	assert.Equal(t, 1950, r.Year())
	assert.InDelta(t, 0.5, r.YearFraction(), 1e-9)

	r.Update(5 * parameter.RaceYearInterval)
	assert.Equal(t, 1950, r.Year())

	r.SetYearFraction(7)
	assert.Equal(t, 2000, r.Year(), "fraction is clamped")
}

func TestRaceBarsConvergeAndSort(t *testing.T) {
	r := New(sampleRows())
	r.Restart()
	r.SetYearFraction(1)
	settle(r, 600)

	bars := r.Bars()
	require.Len(t, bars, 2)
	assert.Equal(t, "Asia", bars[0].Region)
	assert.InDelta(t, 90, bars[0].Value, 0.5)
	assert.InDelta(t, 25, bars[1].Value, 0.5)
	assert.InDelta(t, 90, r.Max(), 0.5)
}

func TestRaceTargetInterpolates(t *testing.T) {
	r := New(sampleRows())
	r.SetYearFraction(0.25)
	assert.InDelta(t, 15, r.target("Europe"), 1e-9)
	assert.InDelta(t, 16, r.target("Asia"), 1e-9)
}

func TestRaceBarLimit(t *testing.T) {
	var rows []data.RegionRow
	for i := 0; i < parameter.RaceBars+4; i++ {
		rows = append(rows, data.RegionRow{Year: 2000, Region: string(rune('A' + i)), Value: float64(i)})
	}
	r := New(rows)
	assert.Len(t, r.Bars(), parameter.RaceBars)
}

func TestRaceStepAndToggle(t *testing.T) {
	r := New(sampleRows())
	r.Restart()
	r.Step(1)
	assert.False(t, r.Playing())
	assert.Equal(t, 1950, r.Year())
	r.Step(5)
	assert.Equal(t, 2000, r.Year())

	r.TogglePlay()
	assert.True(t, r.Playing())
	assert.Equal(t, 1900, r.Year(), "play at the end rewinds")
	r.TogglePlay()
	assert.False(t, r.Playing())
}

func TestColumnsSplitAtEvent(t *testing.T) {
	series := []data.RegionPoint{{1900, 1}, {1950, 3}, {2000, 5}}
	cols := Columns(series, 1950, 10)
	require.Len(t, cols, 3, "never wider than the series")
	assert.False(t, cols[0].After)
	assert.False(t, cols[1].After)
	assert.True(t, cols[2].After)
	assert.Equal(t, 0.0, cols[0].Level)
	assert.Equal(t, 1.0, cols[2].Level)
	assert.Equal(t, "▁▄█", Sparkline(cols))
}

func TestColumnsResample(t *testing.T) {
	var series []data.RegionPoint
	for y := 0; y < 100; y++ {
		series = append(series, data.RegionPoint{Year: 1900 + y, Value: float64(y)})
	}
	cols := Columns(series, 1950, 5)
	require.Len(t, cols, 5)
	assert.Equal(t, 1900, cols[0].Year)
	assert.Equal(t, 1999, cols[4].Year)

	assert.Nil(t, Columns(nil, 0, 5))
	assert.Nil(t, Columns(series, 0, 0))
}

func TestGlyphStacking(t *testing.T) {
	tests := []struct {
		level float64
		row   int
		rows  int
		want  rune
	}{
		{1, 0, 3, '█'},
		{1, 2, 3, '█'},
		{0.5, 0, 2, 0},
		{0.5, 1, 2, '█'},
		{0, 0, 1, '▁'},
		{0.5, 0, 1, '▄'},
		{0.5, 0, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Glyph(tt.level, tt.row, tt.rows), "level=%v row=%d rows=%d", tt.level, tt.row, tt.rows)
	}
}
