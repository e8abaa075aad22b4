// Package geo holds spherical geometry for the globe: orthographic projection,
// visibility tests, graticule generation and TopoJSON decoding
package geo

import (
	"math"

	"github.com/lixenwraith/warpglobe/vmath"
)

// Rotation is a three-axis view rotation [yaw, pitch, roll] in degrees
// A rotation of [-lon, -lat, roll] centers the view on (lon, lat)
type Rotation [3]float64

// Center returns the lon/lat at the middle of the view
func (r Rotation) Center() (lon, lat float64) {
	return vmath.WrapDegrees(-r[0]), -r[1]
}

// Orthographic projects lon/lat onto a disk, clipped to the facing hemisphere
type Orthographic struct {
	rot   Rotation
	scale float64
	tx    float64
	ty    float64

	// Cached rotation terms
	dLambda float64
	cosDPhi float64
	sinDPhi float64
	cosDGam float64
	sinDGam float64
}

// NewOrthographic creates a projection with unit scale centered at origin
func NewOrthographic() *Orthographic {
	p := &Orthographic{scale: 1}
	p.SetRotation(Rotation{})
	return p
}

// Rotation returns the current rotation
func (p *Orthographic) Rotation() Rotation {
	return p.rot
}

// SetRotation updates rotation and cached trigonometry
func (p *Orthographic) SetRotation(r Rotation) {
	p.rot = r
	p.dLambda = vmath.Radians(r[0])
	dPhi := vmath.Radians(r[1])
	dGam := vmath.Radians(r[2])
	p.cosDPhi, p.sinDPhi = math.Cos(dPhi), math.Sin(dPhi)
	p.cosDGam, p.sinDGam = math.Cos(dGam), math.Sin(dGam)
}

// Scale returns the disk radius in pixels
func (p *Orthographic) Scale() float64 {
	return p.scale
}

// SetScale sets the disk radius in pixels
func (p *Orthographic) SetScale(s float64) {
	p.scale = s
}

// Translate returns the disk center in pixels
func (p *Orthographic) Translate() (float64, float64) {
	return p.tx, p.ty
}

// SetTranslate sets the disk center in pixels
func (p *Orthographic) SetTranslate(x, y float64) {
	p.tx, p.ty = x, y
}

// rotate applies yaw then the pitch/roll rotation, returning radians
func (p *Orthographic) rotate(lambda, phi float64) (float64, float64) {
	lambda += p.dLambda
	if lambda > math.Pi {
		lambda -= 2 * math.Pi
	} else if lambda < -math.Pi {
		lambda += 2 * math.Pi
	}

	cosPhi := math.Cos(phi)
	x := math.Cos(lambda) * cosPhi
	y := math.Sin(lambda) * cosPhi
	z := math.Sin(phi)
	k := z*p.cosDPhi + x*p.sinDPhi

	return math.Atan2(y*p.cosDGam-k*p.sinDGam, x*p.cosDPhi-z*p.sinDPhi),
		math.Asin(vmath.Clamp(k*p.cosDGam+y*p.sinDGam, -1, 1))
}

// Project maps lon/lat (degrees) to pixels, ok is false on the far hemisphere
func (p *Orthographic) Project(lon, lat float64) (x, y float64, ok bool) {
	lambda, phi := p.rotate(vmath.Radians(lon), vmath.Radians(lat))
	cosPhi := math.Cos(phi)
	if cosPhi*math.Cos(lambda) <= 0 {
		return 0, 0, false
	}
	ux := cosPhi * math.Sin(lambda)
	uy := math.Sin(phi)
	return p.tx + p.scale*ux, p.ty - p.scale*uy, true
}

// InDisk reports whether a pixel lies within the projected disk
func (p *Orthographic) InDisk(x, y float64) bool {
	dx, dy := x-p.tx, y-p.ty
	return dx*dx+dy*dy <= p.scale*p.scale
}

// FrontFacing reports whether lon/lat lies on the hemisphere facing the viewer
func FrontFacing(rot Rotation, lon, lat float64) bool {
	lon0, lat0 := rot.Center()
	return vmath.V3FDot(vmath.V3FFromLonLat(lon0, lat0), vmath.V3FFromLonLat(lon, lat)) > 0
}
