package tracer

import "github.com/taigrr/prism/pkg/math3d"

// Colors are Vec3 values with channels in [0, 1]. Packed colors are 24-bit
// 0xRRGGBB integers.
var (
	White  = math3d.V3(1, 1, 1)
	Black  = math3d.V3(0, 0, 0)
	Red    = math3d.V3(1, 0, 0)
	Green  = math3d.V3(0, 1, 0)
	Blue   = math3d.V3(0, 0, 1)
	Yellow = math3d.V3(1, 1, 0)
	Purple = math3d.V3(1, 0, 1)
	Cyan   = math3d.V3(0, 1, 1)
	Orange = math3d.V3(1, 0.5, 0)
)

// Gray returns a gray-scale color with all channels set to v.
func Gray(v float64) math3d.Vec3 {
	return math3d.V3(v, v, v)
}

// PackRGB converts a color to 0xRRGGBB. Channels are clamped to [0, 1].
func PackRGB(c math3d.Vec3) uint32 {
	c = c.Clamp(0, 1)
	return uint32(c.X*0xFF)<<16 | uint32(c.Y*0xFF)<<8 | uint32(c.Z*0xFF)
}

// UnpackRGB converts 0xRRGGBB to a color.
func UnpackRGB(c uint32) math3d.Vec3 {
	return math3d.V3(
		float64(0xFF&(c>>16))/0xFF,
		float64(0xFF&(c>>8))/0xFF,
		float64(0xFF&c)/0xFF,
	)
}
