package data

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/warpglobe/parameter/visual"
	"github.com/lixenwraith/warpglobe/render"
	"github.com/lixenwraith/warpglobe/vmath"
)

// Domain holds the color-scale breakpoints
type Domain struct {
	Min float64
	Mid float64
	Max float64
}

// DefaultDomain is used before any step domain is known
var DefaultDomain = Domain{Min: 0, Mid: 3.01215e-8, Max: 6.0243e-8}

// Quantiles sampled for a computed domain
const (
	domainLowQ  = 0.05
	domainMidQ  = 0.5
	domainHighQ = 0.95
)

// ComputeDomain derives breakpoints from the pooled cell magnitudes of every set
// Values are sorted before sampling so the argument order never matters
func ComputeDomain(sets ...[]GridCell) Domain {
	var values []float64
	for _, cells := range sets {
		for _, c := range cells {
			values = append(values, c.CO2)
		}
	}
	if len(values) == 0 {
		return DefaultDomain
	}
	sort.Float64s(values)

	d := Domain{
		Min: vmath.Quantile(values, domainLowQ),
		Mid: vmath.Quantile(values, domainMidQ),
		Max: vmath.Quantile(values, domainHighQ),
	}
	if d.Max <= d.Min {
		// Flat data, spread around the single value so colors stay defined
		d.Max = d.Min + DefaultDomain.Max
		d.Mid = (d.Min + d.Max) / 2
	}
	return d
}

// ColorScale maps a magnitude to a three-stop gradient blended in Lab space
type ColorScale struct {
	domain Domain
	low    colorful.Color
	mid    colorful.Color
	high   colorful.Color
}

func toColorful(c render.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// NewColorScale creates a green-yellow-red scale over d
func NewColorScale(d Domain) *ColorScale {
	return &ColorScale{
		domain: d,
		low:    toColorful(visual.RgbScaleLow),
		mid:    toColorful(visual.RgbScaleMid),
		high:   toColorful(visual.RgbScaleHigh),
	}
}

// Domain returns the breakpoints
func (s *ColorScale) Domain() Domain {
	return s.domain
}

// Color maps v, clamping outside the domain
func (s *ColorScale) Color(v float64) render.RGB {
	var c colorful.Color
	if v <= s.domain.Mid {
		t := vmath.Clamp01(vmath.InverseLerp(s.domain.Min, s.domain.Mid, v))
		c = s.low.BlendLab(s.mid, t)
	} else {
		t := vmath.Clamp01(vmath.InverseLerp(s.domain.Mid, s.domain.Max, v))
		c = s.mid.BlendLab(s.high, t)
	}
	r, g, b := c.Clamped().RGB255()
	return render.RGB{R: r, G: g, B: b}
}

// DomainCache maps a step id to its computed domain for the whole session
type DomainCache struct {
	domains map[string]Domain
}

// NewDomainCache creates an empty cache
func NewDomainCache() *DomainCache {
	return &DomainCache{domains: make(map[string]Domain)}
}

// Get returns the cached domain for a step
func (c *DomainCache) Get(stepID string) (Domain, bool) {
	d, ok := c.domains[stepID]
	return d, ok
}

// Put stores a step domain, the first value wins
func (c *DomainCache) Put(stepID string, d Domain) {
	if _, ok := c.domains[stepID]; ok {
		return
	}
	c.domains[stepID] = d
}

// Has reports whether a domain is cached
func (c *DomainCache) Has(stepID string) bool {
	_, ok := c.domains[stepID]
	return ok
}

// Len returns the number of cached domains
func (c *DomainCache) Len() int {
	return len(c.domains)
}

// Reset drops every key
func (c *DomainCache) Reset() {
	clear(c.domains)
}
