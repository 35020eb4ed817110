// Package colors has helpers for preparing colors before they are given to
// materials, like moving them between gamma and linear space.
//
// The renderer never converts colors itself, it only normalizes them to [0,1].
package colors

import (
	"image/color"
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/mandykoh/prism/srgb"
)

const Gamma = 2.2

// GammaToLinear maps every color channel from gamma space to linear space using a gamma of 2.2.
// Alpha is returned unmodified
func GammaToLinear(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: powByte(c.R, Gamma),
		G: powByte(c.G, Gamma),
		B: powByte(c.B, Gamma),
		A: c.A,
	}
}

// LinearToGamma is the inverse of GammaToLinear
func LinearToGamma(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: powByte(c.R, 1/Gamma),
		G: powByte(c.G, 1/Gamma),
		B: powByte(c.B, 1/Gamma),
		A: c.A,
	}
}

func powByte(b uint8, exp float64) uint8 {
	v := math.Pow(float64(b)/255, exp)
	return uint8(math.Round(v * 255))
}

// SRGBToLinear is like GammaToLinear but uses the exact piecewise sRGB transfer function
func SRGBToLinear(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: unitToByte(srgb.From8Bit(c.R)),
		G: unitToByte(srgb.From8Bit(c.G)),
		B: unitToByte(srgb.From8Bit(c.B)),
		A: c.A,
	}
}

// LinearToSRGB is the inverse of SRGBToLinear
func LinearToSRGB(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: srgb.To8Bit(float32(c.R) / 255),
		G: srgb.To8Bit(float32(c.G) / 255),
		B: srgb.To8Bit(float32(c.B) / 255),
		A: c.A,
	}
}

func unitToByte(v float32) uint8 {

	if v <= 0 {
		return 0
	}

	if v >= 1 {
		return 255
	}

	return uint8(math.Round(float64(v) * 255))
}

// Normalize returns the color with every channel (including alpha) in [0,1]
func Normalize(c color.RGBA) gglm.Vec4 {
	return gglm.NewVec4(
		float32(c.R)/255,
		float32(c.G)/255,
		float32(c.B)/255,
		float32(c.A)/255,
	)
}
