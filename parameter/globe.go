package parameter

import "time"

// Projection
const (
	// GlobeScaleDivisor: base scale = min(width, height) / divisor
	GlobeScaleDivisor = 2.2

	// GlobeInitialLon/Lat is the initial view center (degrees)
	GlobeInitialLon = 80.0
	GlobeInitialLat = 10.0

	// GraticuleStep is the spacing of meridians and parallels (degrees)
	GraticuleStep = 15.0
	// GraticuleSample is the sampling step along graticule lines (degrees)
	GraticuleSample = 3.0

	// DragSensitivity maps pointer pixels to rotation degrees
	DragSensitivity = 0.25

	// BinSize is the grid cell size for point aggregation (degrees)
	BinSize = 1.0
	// JitterAmplitude is the maximum deterministic offset applied to a grid cell (degrees)
	JitterAmplitude = 0.3
)

// Globe Look
const (
	// AtmosphereWidth is the glow ring width relative to the disk radius
	AtmosphereWidth = 0.08
	// AtmosphereAlpha is the glow opacity at the disk edge
	AtmosphereAlpha = 0.35

	// PointAlpha is the opacity of a data point at full crossfade scale
	PointAlpha = 0.9
	// PointPixelsPerScale: point size = max(1, scale / PointPixelsPerScale)
	PointPixelsPerScale = 60.0

	// HaloRadius is the focus halo radius (pixels)
	HaloRadius = 4.0
	// LeaderLength is the focus label leader line length (pixels)
	LeaderLength = 10.0

	// GraticuleAlpha / CountryAlpha are line opacities
	GraticuleAlpha = 0.55
	CountryAlpha   = 0.85
)

// Globe Motion
const (
	// RotateDuration is the scripted rotation length for step focus changes
	RotateDuration = 1200 * time.Millisecond
	// FocusZoomDuration is the scripted zoom length for step focus changes
	FocusZoomDuration = 1200 * time.Millisecond

	// IntroZoomStart is the scale multiplier the intro approach starts from
	IntroZoomStart = 0.15
	// IntroZoomDuration is the intro approach length
	IntroZoomDuration = 1600 * time.Millisecond
)
