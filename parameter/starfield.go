package parameter

// Starfield Population
const (
	// StarCount is the number of particles created at init
	StarCount = 260

	// StarSizeMin/Range define the base size distribution (pixels)
	StarSizeMin   = 0.7
	StarSizeRange = 1.4

	// StarSpeedMin/Range define per-particle speed multipliers (pixels per baseline frame)
	StarSpeedMin   = 0.6
	StarSpeedRange = 2.1

	// StarTwinkleSpeedMin/Range define twinkle phase advance per baseline frame (radians)
	StarTwinkleSpeedMin   = 0.015
	StarTwinkleSpeedRange = 0.025

	// StarHueMin/Range define streak hue (degrees)
	StarHueMin   = 180.0
	StarHueRange = 40.0

	// StarRecyclePadding is how far past the canvas edge a particle may travel before recycling
	StarRecyclePadding = 80.0
)

// Warp Levels
const (
	WarpIdle   = 0.25
	WarpCruise = 0.6
	WarpBurst  = 40.0
	// WarpStop is the near-stop level used before the stars fade out
	WarpStop = 0.02

	// WarpRate is the fraction of the warp gap closed per baseline frame
	WarpRate = 0.1
	// AlphaRate is the fraction of the opacity gap closed per baseline frame
	AlphaRate = 0.08
	// HueShiftRate is the fraction of the hue shift gap closed per baseline frame
	HueShiftRate = 0.04

	// StreakThreshold switches rendering from dots to motion streaks
	StreakThreshold = 1.5
	// StreakLengthFactor scales trail length by warp and speed
	StreakLengthFactor = 0.8
	// StreakHeadAlpha is the additive light at the head of each streak
	StreakHeadAlpha = 0.5
	// StreakSaturation is the HSL saturation of streaks
	StreakSaturation = 0.8
	// StreakLightnessBase/Step/Cap: lightness = base + min(warp, cap) * step (percent)
	StreakLightnessBase = 60.0
	StreakLightnessStep = 10.0
	StreakLightnessCap  = 4.0

	// WarpOutHueShift is the hue offset swept in while returning to the present
	WarpOutHueShift = 150.0

	// HuePhaseSpeed is the hue cycling phase advance per unit of warp per frame
	HuePhaseSpeed = 0.002
	// HuePhaseAmplitude is the hue swing of the cycling phase (degrees)
	HuePhaseAmplitude = 12.0
)

// Starfield Look
const (
	// TwinkleBase/Amplitude: alpha multiplier = base + amplitude*sin(phase)
	TwinkleBase      = 0.7
	TwinkleAmplitude = 0.3

	// GlowRadiusFactor is the glow radius relative to particle size
	GlowRadiusFactor = 2.2
	// GlowAlpha is the glow opacity relative to the core
	GlowAlpha = 0.45

	// HalfBlockRadiusScale shrinks browser-sized radii to half-block pixels
	HalfBlockRadiusScale = 0.5

	// TrailFadeAlpha is the background wash applied each frame, leaving faint motion blur
	TrailFadeAlpha = 0.9
)
