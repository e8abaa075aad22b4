package render

// BlendMode defines compositing operations using a bitmask (Flags | Op)
type BlendMode uint8

// Blend Operations (0-15)
const (
	opAlpha  uint8 = 0x01
	opScreen uint8 = 0x05
)

// Blend Flags
const (
	flagBg uint8 = 0x10 // Apply operation to Background
	flagFg uint8 = 0x20 // Apply operation to Foreground
)

// Pre-defined Blend Modes
const (
	BlendAlpha    = BlendMode(opAlpha | flagBg | flagFg)
	BlendScreenBg = BlendMode(opScreen | flagBg)
)

// apply runs the blend operation encoded in op on a single channel set
func apply(op uint8, dst, src RGB, alpha float64) RGB {
	switch op {
	case opAlpha:
		return Blend(dst, src, alpha)
	case opScreen:
		return Screen(dst, src, alpha)
	}
	return dst
}
