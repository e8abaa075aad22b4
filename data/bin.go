package data

import (
	"hash/fnv"
	"math"
	"sort"

	"github.com/lixenwraith/warpglobe/parameter"
)

// GridCell is the aggregation unit drawn on the globe
type GridCell struct {
	Lat       float64
	Lon       float64
	CO2       float64 // mean of member samples
	Weight    int     // member count
	JitterLat float64
	JitterLon float64
}

type binKey struct {
	lat int
	lon int
}

// roundHalfUp matches the browser rounding of the source data pipeline
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Bin aggregates samples into binSize-degree cells ordered by lat then lon
// Each cell carries a deterministic jitter derived from its key
func Bin(samples []GeoSample, binSize float64) []GridCell {
	if binSize <= 0 {
		binSize = parameter.BinSize
	}

	type acc struct {
		sum float64
		n   int
	}
	bins := make(map[binKey]*acc)
	for _, s := range samples {
		k := binKey{lat: roundHalfUp(s.Lat / binSize), lon: roundHalfUp(s.Lon / binSize)}
		a := bins[k]
		if a == nil {
			a = &acc{}
			bins[k] = a
		}
		a.sum += s.CO2
		a.n++
	}

	cells := make([]GridCell, 0, len(bins))
	for k, a := range bins {
		jLat, jLon := jitter(k)
		cells = append(cells, GridCell{
			Lat:       float64(k.lat) * binSize,
			Lon:       float64(k.lon) * binSize,
			CO2:       a.sum / float64(a.n),
			Weight:    a.n,
			JitterLat: jLat * binSize,
			JitterLon: jLon * binSize,
		})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Lat != cells[j].Lat {
			return cells[i].Lat < cells[j].Lat
		}
		return cells[i].Lon < cells[j].Lon
	})
	return cells
}

// jitter hashes a key into two offsets within ±JitterAmplitude
func jitter(k binKey) (float64, float64) {
	h := fnv.New64a()
	var buf [8]byte
	lat, lon := uint32(int32(k.lat)), uint32(int32(k.lon))
	buf[0], buf[1], buf[2], buf[3] = byte(lat), byte(lat>>8), byte(lat>>16), byte(lat>>24)
	buf[4], buf[5], buf[6], buf[7] = byte(lon), byte(lon>>8), byte(lon>>16), byte(lon>>24)
	h.Write(buf[:])
	sum := h.Sum64()

	a := float64(sum&0xffffffff)/float64(math.MaxUint32)*2 - 1
	b := float64(sum>>32)/float64(math.MaxUint32)*2 - 1
	return a * parameter.JitterAmplitude, b * parameter.JitterAmplitude
}
