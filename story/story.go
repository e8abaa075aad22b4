// Package story holds the typed narrative configuration and its validation
package story

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/warpglobe/asset"
)

// ErrInvalidStep is wrapped by every validation failure
var ErrInvalidStep = errors.New("invalid step")

// ConclusionID is reserved for loads issued by the conclusion section
const ConclusionID = "conclusion"

// yearPlaceholder is substituted in file templates
const yearPlaceholder = "{year}"

// Section is a titled text block outside the timeline
type Section struct {
	Title     string `yaml:"title"`
	Body      string `yaml:"body"`
	GlobeFile string `yaml:"globe_file,omitempty"`
}

// Step is one scroll-anchored narrative unit
type Step struct {
	ID         string  `yaml:"id"`
	Block      string  `yaml:"block"`
	Title      string  `yaml:"title"`
	Body       string  `yaml:"body"`
	Region     string  `yaml:"region"`
	Lon        float64 `yaml:"lon"`
	Lat        float64 `yaml:"lat"`
	Zoom       float64 `yaml:"zoom"`
	EventYear  int     `yaml:"event_year"`
	AfterYears int     `yaml:"after_years"`
	GlobeFile  string  `yaml:"globe_file"`
	AfterFile  string  `yaml:"after_file,omitempty"`
	ChartFile  string  `yaml:"chart_file,omitempty"`
}

// Story is the whole narrative
type Story struct {
	Title       string  `yaml:"title"`
	PresentYear int     `yaml:"present_year"`
	WorldFile   string  `yaml:"world_file"`
	RegionFile  string  `yaml:"region_file,omitempty"`
	Intro       Section `yaml:"intro"`
	Conclusion  Section `yaml:"conclusion"`
	Steps       []Step  `yaml:"steps"`
}

func expand(template string, year int) string {
	return strings.ReplaceAll(template, yearPlaceholder, strconv.Itoa(year))
}

// AfterYear returns the year shown by the "after" variant
func (s *Step) AfterYear() int {
	return s.EventYear + s.AfterYears
}

// HasAfter reports whether the step has an "after" variant
func (s *Step) HasAfter() bool {
	return s.AfterFile != "" || s.AfterYears > 0
}

// EventPath resolves the event-year data file
func (s *Step) EventPath() string {
	return expand(s.GlobeFile, s.EventYear)
}

// AfterPath resolves the after-year data file, empty when absent
func (s *Step) AfterPath() string {
	switch {
	case s.AfterFile != "":
		return expand(s.AfterFile, s.AfterYear())
	case s.AfterYears > 0:
		return expand(s.GlobeFile, s.AfterYear())
	}
	return ""
}

// DomainPaths lists every file pooled into the step color domain
func (s *Step) DomainPaths() []string {
	paths := []string{s.EventPath()}
	if after := s.AfterPath(); after != "" && after != paths[0] {
		paths = append(paths, after)
	}
	return paths
}

// Load decodes and validates a story
func Load(r io.Reader) (*Story, error) {
	var st Story
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&st); err != nil {
		return nil, fmt.Errorf("decode story: %w", err)
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return &st, nil
}

// LoadFile reads a story from disk
func LoadFile(path string) (*Story, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open story: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the built-in story
func Default() (*Story, error) {
	return Load(strings.NewReader(asset.DefaultStory))
}

// Validate checks required fields and ranges of every step
func (st *Story) Validate() error {
	if len(st.Steps) == 0 {
		return fmt.Errorf("%w: story has no steps", ErrInvalidStep)
	}
	seen := make(map[string]bool, len(st.Steps))
	for i := range st.Steps {
		s := &st.Steps[i]
		switch {
		case s.ID == "":
			return fmt.Errorf("%w: step %d has no id", ErrInvalidStep, i)
		case s.ID == ConclusionID:
			return fmt.Errorf("%w: id %q is reserved", ErrInvalidStep, s.ID)
		case seen[s.ID]:
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidStep, s.ID)
		case s.Lat < -90 || s.Lat > 90:
			return fmt.Errorf("%w: %s lat %v out of range", ErrInvalidStep, s.ID, s.Lat)
		case s.Lon < -180 || s.Lon > 180:
			return fmt.Errorf("%w: %s lon %v out of range", ErrInvalidStep, s.ID, s.Lon)
		case s.Zoom <= 0:
			return fmt.Errorf("%w: %s zoom must be positive", ErrInvalidStep, s.ID)
		case s.EventYear <= 0:
			return fmt.Errorf("%w: %s event year must be positive", ErrInvalidStep, s.ID)
		case s.AfterYears < 0:
			return fmt.Errorf("%w: %s after years must not be negative", ErrInvalidStep, s.ID)
		case s.GlobeFile == "":
			return fmt.Errorf("%w: %s has no globe file", ErrInvalidStep, s.ID)
		}
		seen[s.ID] = true
	}
	if st.PresentYear == 0 {
		st.PresentYear = st.Steps[len(st.Steps)-1].AfterYear()
	}
	return nil
}

// Index returns the position of a step id, -1 when unknown
func (st *Story) Index(id string) int {
	for i := range st.Steps {
		if st.Steps[i].ID == id {
			return i
		}
	}
	return -1
}
