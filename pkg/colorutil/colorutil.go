// Package colorutil provides shared color utilities for diagram rendering.
package colorutil

import (
	"image/color"
	"math"
)

// Common drawing colors.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Gray  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// HSVToRGB converts hue in degrees and saturation/value in [0,1] to an
// opaque RGBA color.
func HSVToRGB(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = math.Max(0, math.Min(1, s))
	v = math.Max(0, math.Min(1, v))

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// goldenAngle spreads successive hues as far apart as possible.
const goldenAngle = 137.50776405003785

// NetColor returns a distinct color for the i-th net. Neighbouring indices
// get well separated hues.
func NetColor(i int) color.RGBA {
	return HSVToRGB(float64(i)*goldenAngle, 0.75, 0.8)
}
