// Package data loads emission samples and region aggregates, bins samples into
// grid cells and maps magnitudes to colors
package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when a required CSV header is absent
var ErrMissingColumn = errors.New("missing column")

// GeoSample is one raw emission row
type GeoSample struct {
	Lat float64
	Lon float64
	CO2 float64
}

// RegionRow is one row of the long-format region aggregate table
type RegionRow struct {
	Year   int
	Region string
	Value  float64
}

// RegionPoint is one value of a region series
type RegionPoint struct {
	Year  int
	Value float64
}

// parseNumber coerces a field, malformed or non-finite values become 0
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// header maps lower-cased column names to their index
func header(r *csv.Reader) (map[string]int, error) {
	names, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv: %w", err)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(names))
	for i, n := range names {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(n, "\ufeff")))] = i
	}
	return cols, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return cr
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

// ParseSamples reads lat,lon,fco2antt rows; missing or non-numeric values parse as 0
func ParseSamples(r io.Reader) ([]GeoSample, error) {
	cr := newReader(r)
	cols, err := header(cr)
	if err != nil {
		return nil, err
	}
	latIdx, okLat := cols["lat"]
	lonIdx, okLon := cols["lon"]
	if !okLat || !okLon {
		return nil, fmt.Errorf("%w: lat/lon", ErrMissingColumn)
	}
	co2Idx, ok := cols["fco2antt"]
	if !ok {
		co2Idx = -1
	}

	var out []GeoSample
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read sample row %d: %w", len(out)+2, err)
		}
		out = append(out, GeoSample{
			Lat: parseNumber(field(rec, latIdx)),
			Lon: parseNumber(field(rec, lonIdx)),
			CO2: parseNumber(field(rec, co2Idx)),
		})
	}
	return out, nil
}

// ParseRegionRows reads year,region,value rows; the value is the "value" column or else the third column
func ParseRegionRows(r io.Reader) ([]RegionRow, error) {
	cr := newReader(r)
	cols, err := header(cr)
	if err != nil {
		return nil, err
	}
	yearIdx, ok := cols["year"]
	if !ok {
		if yearIdx, ok = cols["time"]; !ok {
			return nil, fmt.Errorf("%w: year", ErrMissingColumn)
		}
	}
	regionIdx, ok := cols["region"]
	if !ok {
		return nil, fmt.Errorf("%w: region", ErrMissingColumn)
	}
	valueIdx, ok := cols["value"]
	if !ok {
		valueIdx = 2
	}

	var out []RegionRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read region row %d: %w", len(out)+2, err)
		}
		region := strings.TrimSpace(field(rec, regionIdx))
		if region == "" {
			continue
		}
		out = append(out, RegionRow{
			Year:   int(parseNumber(field(rec, yearIdx))),
			Region: region,
			Value:  parseNumber(field(rec, valueIdx)),
		})
	}
	return out, nil
}

// RegionSeries extracts one region's values ordered by year
func RegionSeries(rows []RegionRow, region string) []RegionPoint {
	var out []RegionPoint
	for _, row := range rows {
		if strings.EqualFold(row.Region, region) {
			out = append(out, RegionPoint{Year: row.Year, Value: row.Value})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Regions lists distinct region names in first-seen order
func Regions(rows []RegionRow) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		if !seen[row.Region] {
			seen[row.Region] = true
			out = append(out, row.Region)
		}
	}
	return out
}

// YearRange returns the first and last year present
func YearRange(rows []RegionRow) (int, int) {
	if len(rows) == 0 {
		return 0, 0
	}
	lo, hi := rows[0].Year, rows[0].Year
	for _, row := range rows[1:] {
		lo = min(lo, row.Year)
		hi = max(hi, row.Year)
	}
	return lo, hi
}
