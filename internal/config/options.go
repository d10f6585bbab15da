package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"schematic-core/pkg/colorutil"
)

// Preference keys read by RenderOptionsFrom.
const (
	KeyScale       = "render.scale"
	KeyPadding     = "render.padding"
	KeyStrokeWidth = "render.stroke_width"
	KeyDotRadius   = "render.dot_radius"
	KeyFontSize    = "render.font_size"
	KeyBackground  = "render.background"
	KeyLabels      = "render.labels"
)

// RenderOptions configures PNG export of a diagram.
type RenderOptions struct {
	Scale       float64 // Pixels per diagram unit
	Padding     float64 // Margin around the diagram bounds, in pixels
	StrokeWidth float64 // Line width for shapes and wires
	DotRadius   float64 // Radius of terminal dots (0 = no dots)
	FontSize    float64 // Net label size in points
	Background  color.RGBA
	Labels      bool // Whether to draw net labels
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Scale:       2,
		Padding:     24,
		StrokeWidth: 2,
		DotRadius:   3,
		FontSize:    11,
		Background:  colorutil.White,
		Labels:      true,
	}
}

// RenderOptionsFrom overlays the render preferences stored in p on the
// defaults. Invalid values keep the default.
func RenderOptionsFrom(p *Prefs) RenderOptions {
	opts := DefaultRenderOptions()
	positive := func(key string, dst *float64) {
		if v := p.FloatWithFallback(key, *dst); v > 0 {
			*dst = v
		}
	}
	positive(KeyScale, &opts.Scale)
	positive(KeyPadding, &opts.Padding)
	positive(KeyStrokeWidth, &opts.StrokeWidth)
	positive(KeyFontSize, &opts.FontSize)
	if v := p.FloatWithFallback(KeyDotRadius, opts.DotRadius); v >= 0 {
		opts.DotRadius = v
	}
	if s := p.String(KeyBackground, ""); s != "" {
		if c, err := ParseHexColor(s); err == nil {
			opts.Background = c
		}
	}
	opts.Labels = p.Bool(KeyLabels, opts.Labels)
	return opts
}

// Store writes opts into p.
func (o RenderOptions) Store(p *Prefs) {
	p.SetFloat(KeyScale, o.Scale)
	p.SetFloat(KeyPadding, o.Padding)
	p.SetFloat(KeyStrokeWidth, o.StrokeWidth)
	p.SetFloat(KeyDotRadius, o.DotRadius)
	p.SetFloat(KeyFontSize, o.FontSize)
	p.SetString(KeyBackground, HexColor(o.Background))
	p.SetBool(KeyLabels, o.Labels)
}

// ParseHexColor parses "#rrggbb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("config: invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("config: invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// HexColor formats c as "#rrggbb".
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
