// Package race animates the region race-bar overlay and builds the per-step
// region sparkline
package race

import (
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/warpglobe/data"
	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/vmath"
)

// Bar is one displayed region bar
type Bar struct {
	Region string
	Value  float64 // spring-animated
	Target float64 // data value at the current year
}

// Race plays region totals year by year with spring-smoothed bars
type Race struct {
	years   []int
	regions []string
	values  map[int]map[string]float64

	spring harmonica.Spring
	pos    []float64
	vel    []float64

	index     float64
	elapsed   time.Duration
	playing   bool
	scrubbing bool
}

// New indexes rows by year and region
func New(rows []data.RegionRow) *Race {
	r := &Race{
		spring: harmonica.NewSpring(harmonica.FPS(parameter.RaceSpringFPS),
			parameter.RaceSpringFrequency, parameter.RaceSpringDamping),
	}
	r.SetRows(rows)
	return r
}

// SetRows replaces the dataset and rewinds
func (r *Race) SetRows(rows []data.RegionRow) {
	r.values = make(map[int]map[string]float64)
	r.regions = data.Regions(rows)
	for _, row := range rows {
		m, ok := r.values[row.Year]
		if !ok {
			m = make(map[string]float64)
			r.values[row.Year] = m
		}
		m[row.Region] += row.Value
	}

	r.years = r.years[:0]
	for y := range r.values {
		r.years = append(r.years, y)
	}
	sort.Ints(r.years)

	r.pos = make([]float64, len(r.regions))
	r.vel = make([]float64, len(r.regions))
	r.index = 0
	r.elapsed = 0
	r.playing = false
}

// Empty reports whether there is nothing to race
func (r *Race) Empty() bool { return len(r.years) == 0 }

// Restart rewinds to the first year, zeroes the bars and starts autoplay
func (r *Race) Restart() {
	for i := range r.pos {
		r.pos[i] = 0
		r.vel[i] = 0
	}
	r.index = 0
	r.elapsed = 0
	r.playing = !r.Empty()
	r.scrubbing = false
}

// Playing reports whether autoplay is advancing years
func (r *Race) Playing() bool { return r.playing }

// TogglePlay pauses or resumes autoplay, restarting from the first year at the end
func (r *Race) TogglePlay() {
	if r.Empty() {
		return
	}
	if r.playing {
		r.playing = false
		return
	}
	if r.index >= r.last() {
		r.index = 0
	}
	r.elapsed = 0
	r.playing = true
}

// Step moves by whole years and stops autoplay
func (r *Race) Step(delta int) {
	if r.Empty() {
		return
	}
	r.playing = false
	r.index = vmath.Clamp(math.Round(r.index)+float64(delta), 0, r.last())
}

// SetScrubbing marks a slider drag in progress; autoplay holds while set
func (r *Race) SetScrubbing(on bool) {
	r.scrubbing = on
	if on {
		r.playing = false
	}
}

// Scrubbing reports whether the slider is held
func (r *Race) Scrubbing() bool { return r.scrubbing }

// SetYearFraction positions the playhead at f in [0,1] across the year range
func (r *Race) SetYearFraction(f float64) {
	if r.Empty() {
		return
	}
	r.playing = false
	r.index = vmath.Clamp(f, 0, 1) * r.last()
}

// YearFraction is the playhead position in [0,1]
func (r *Race) YearFraction() float64 {
	if r.last() <= 0 {
		return 0
	}
	return r.index / r.last()
}

// Year is the year nearest the playhead
func (r *Race) Year() int {
	if r.Empty() {
		return 0
	}
	return r.years[int(math.Round(r.index))]
}

// YearRange returns the first and last year
func (r *Race) YearRange() (int, int) {
	if r.Empty() {
		return 0, 0
	}
	return r.years[0], r.years[len(r.years)-1]
}

// Update advances autoplay by dt and steps every bar spring once
func (r *Race) Update(dt time.Duration) {
	if r.Empty() {
		return
	}

	if r.playing && !r.scrubbing {
		r.elapsed += dt
		for r.elapsed >= parameter.RaceYearInterval {
			r.elapsed -= parameter.RaceYearInterval
			r.index = math.Floor(r.index) + 1
			if r.index >= r.last() {
				r.index = r.last()
				r.playing = false
				r.elapsed = 0
				break
			}
		}
	}

	for i, region := range r.regions {
		r.pos[i], r.vel[i] = r.spring.Update(r.pos[i], r.vel[i], r.target(region))
	}
}

// Bars returns the top regions by animated value, largest first
func (r *Race) Bars() []Bar {
	bars := make([]Bar, 0, len(r.regions))
	for i, region := range r.regions {
		bars = append(bars, Bar{Region: region, Value: math.Max(r.pos[i], 0), Target: r.target(region)})
	}
	sort.SliceStable(bars, func(i, j int) bool {
		if bars[i].Value != bars[j].Value {
			return bars[i].Value > bars[j].Value
		}
		return bars[i].Region < bars[j].Region
	})
	if len(bars) > parameter.RaceBars {
		bars = bars[:parameter.RaceBars]
	}
	return bars
}

// Max is the axis extent for the current bars
func (r *Race) Max() float64 {
	m := 0.0
	for _, b := range r.Bars() {
		m = math.Max(m, math.Max(b.Value, b.Target))
	}
	if m <= 0 {
		return 1
	}
	return m
}

// target interpolates a region's value between the years around the playhead
func (r *Race) target(region string) float64 {
	lo := int(math.Floor(r.index))
	hi := min(lo+1, len(r.years)-1)
	t := r.index - float64(lo)
	return vmath.Lerp(r.values[r.years[lo]][region], r.values[r.years[hi]][region], t)
}

func (r *Race) last() float64 { return float64(len(r.years) - 1) }
