package colorutil

import (
	"image/color"
	"testing"
)

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		h, s, v float64
		want    color.RGBA
	}{
		{0, 1, 1, color.RGBA{255, 0, 0, 255}},
		{120, 1, 1, color.RGBA{0, 255, 0, 255}},
		{240, 1, 1, color.RGBA{0, 0, 255, 255}},
		{360, 1, 1, color.RGBA{255, 0, 0, 255}},
		{-60, 1, 1, color.RGBA{255, 0, 255, 255}},
		{200, 0, 1, White},
		{90, 1, 0, Black},
	}
	for _, tt := range tests {
		if got := HSVToRGB(tt.h, tt.s, tt.v); got != tt.want {
			t.Errorf("HSVToRGB(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.v, got, tt.want)
		}
	}
}

func TestNetColorDistinct(t *testing.T) {
	seen := make(map[color.RGBA]int)
	for i := 0; i < 16; i++ {
		c := NetColor(i)
		if j, dup := seen[c]; dup {
			t.Errorf("NetColor(%d) repeats NetColor(%d): %v", i, j, c)
		}
		seen[c] = i
	}
}
