package imaging

import (
	"math"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// intensity is the displayable range of a channel before quantization
var intensity = core.NewInterval(0, 0.999)

// Color is a linear or gamma-encoded RGB triple, nominally in [0,1]
type Color struct {
	R, G, B float64
}

// NewColor creates a new color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromVec3 interprets a vector as an RGB triple
func ColorFromVec3(v core.Vec3) Color {
	return Color{R: v.X, G: v.Y, B: v.Z}
}

// Vec3 returns the color as a vector
func (c Color) Vec3() core.Vec3 {
	return core.NewVec3(c.R, c.G, c.B)
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Scale returns the color multiplied by s
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// LinearToGamma applies gamma 2 encoding; non-positive values map to 0
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// Gamma returns the color with gamma 2 encoding applied to each channel
func (c Color) Gamma() Color {
	return Color{LinearToGamma(c.R), LinearToGamma(c.G), LinearToGamma(c.B)}
}

// QuantizeChannel clamps a channel to [0, 0.999] and scales it to [0, 255]
func QuantizeChannel(x float64) uint8 {
	if math.IsNaN(x) {
		return 0
	}
	return uint8(256 * intensity.Clamp(x))
}

// Bytes returns the quantized 8-bit channels
func (c Color) Bytes() (r, g, b uint8) {
	return QuantizeChannel(c.R), QuantizeChannel(c.G), QuantizeChannel(c.B)
}
