package geo

import "math"

// LonLat is a geographic position in degrees
type LonLat struct {
	Lon, Lat float64
}

// Line is a sampled polyline on the sphere
type Line []LonLat

// Graticule returns meridians and parallels every step degrees, sampled every sample degrees
// Parallels stop short of the poles, meridians run pole to pole
func Graticule(step, sample float64) []Line {
	if step <= 0 || sample <= 0 {
		return nil
	}
	var lines []Line

	for lon := -180.0; lon < 180; lon += step {
		n := int(math.Ceil(180 / sample))
		line := make(Line, 0, n+1)
		for i := 0; i <= n; i++ {
			lat := math.Min(-90+float64(i)*sample, 90)
			line = append(line, LonLat{Lon: lon, Lat: lat})
		}
		lines = append(lines, line)
	}

	for lat := -90 + step; lat < 90; lat += step {
		n := int(math.Ceil(360 / sample))
		line := make(Line, 0, n+1)
		for i := 0; i <= n; i++ {
			lon := math.Min(-180+float64(i)*sample, 180)
			line = append(line, LonLat{Lon: lon, Lat: lat})
		}
		lines = append(lines, line)
	}
	return lines
}
