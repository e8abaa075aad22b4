package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector, used for points on the unit sphere
type Vec3F struct {
	X, Y, Z float64
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// V3FFromLonLat returns the unit vector for a lon/lat pair in degrees
// X points at (0, 0), Y at (90E, 0), Z at the north pole
func V3FFromLonLat(lon, lat float64) Vec3F {
	lambda, phi := Radians(lon), Radians(lat)
	cosPhi := math.Cos(phi)
	return Vec3F{
		X: math.Cos(lambda) * cosPhi,
		Y: math.Sin(lambda) * cosPhi,
		Z: math.Sin(phi),
	}
}

// V3FToLonLat is the inverse of V3FFromLonLat for unit vectors
func V3FToLonLat(v Vec3F) (lon, lat float64) {
	return Degrees(math.Atan2(v.Y, v.X)), Degrees(math.Asin(Clamp(v.Z, -1, 1)))
}
