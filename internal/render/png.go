package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"schematic-core/internal/cell"
	"schematic-core/internal/config"
	"schematic-core/internal/diag"
	"schematic-core/internal/netlist"
	"schematic-core/internal/shape"
	"schematic-core/pkg/colorutil"
)

// ErrEmpty is returned when exporting a scene with nothing to draw.
var ErrEmpty = errors.New("render: nothing to export")

func loadFace(size float64) (font.Face, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

type bounds struct {
	minX, minY, maxX, maxY int
	empty                  bool
}

func (b *bounds) add(h Handle) {
	if b.empty {
		*b = bounds{minX: h.X, minY: h.Y, maxX: h.X, maxY: h.Y}
		return
	}
	b.minX = min(b.minX, h.X)
	b.minY = min(b.minY, h.Y)
	b.maxX = max(b.maxX, h.X)
	b.maxY = max(b.maxY, h.Y)
}

// Draw paints every finalized shape from the mirrored handle coordinates.
// Wires take the color of the net their terminals belong to; terminals of
// nets get a dot and, with opts.Labels, the net name.
func (b *Backend) Draw(opts config.RenderOptions, nets []netlist.Labeled) (*gg.Context, error) {
	box := bounds{empty: true}
	for _, s := range b.scene.Shapes() {
		for _, p := range b.batches[s.ID()] {
			if h, ok := b.handles[p]; ok {
				box.add(*h)
			}
		}
	}
	if box.empty {
		return nil, ErrEmpty
	}

	width := int(math.Ceil(float64(box.maxX-box.minX)*opts.Scale + 2*opts.Padding))
	height := int(math.Ceil(float64(box.maxY-box.minY)*opts.Scale + 2*opts.Padding))
	px := func(h Handle) (float64, float64) {
		return float64(h.X-box.minX)*opts.Scale + opts.Padding,
			float64(h.Y-box.minY)*opts.Scale + opts.Padding
	}

	dc := gg.NewContext(max(width, 1), max(height, 1))
	dc.SetColor(opts.Background)
	dc.Clear()
	dc.SetLineWidth(opts.StrokeWidth)

	netOf := make(map[cell.PointID]int)
	for i, n := range nets {
		for _, p := range n.Terminals {
			netOf[p] = i
		}
	}
	g := b.scene.Graph()

	// Wires first so terminals and bodies draw on top.
	shapes := b.scene.Shapes()
	for _, pass := range []bool{true, false} {
		for _, s := range shapes {
			if s.Kind().IsRouting() != pass {
				continue
			}
			var c color.Color = colorutil.Black
			if pass {
				c = colorutil.Gray
				if ts := netlist.ShapeConnections(b.scene, g, s.ID()); len(ts) > 0 {
					if i, ok := netOf[ts[0]]; ok {
						c = colorutil.NetColor(i)
					}
				}
			}
			b.drawShape(dc, s, c, px)
		}
	}

	if opts.DotRadius > 0 || opts.Labels {
		var face font.Face
		if opts.Labels {
			f, err := loadFace(opts.FontSize)
			if err != nil {
				return nil, err
			}
			face = f
			dc.SetFontFace(face)
		}
		for i, n := range nets {
			dc.SetColor(colorutil.NetColor(i))
			for j, p := range n.Terminals {
				h, ok := b.handles[p]
				if !ok {
					continue
				}
				x, y := px(*h)
				if opts.DotRadius > 0 {
					dc.DrawCircle(x, y, opts.DotRadius)
					dc.Fill()
				}
				if face != nil && j == 0 {
					dc.DrawStringAnchored(n.Name, x+opts.DotRadius+2, y-opts.DotRadius-2, 0, 0)
				}
			}
		}
	}
	return dc, nil
}

func (b *Backend) drawShape(dc *gg.Context, s *shape.Shape, c color.Color, px func(Handle) (float64, float64)) {
	var hs []Handle
	for _, p := range b.batches[s.ID()] {
		if h, ok := b.handles[p]; ok {
			hs = append(hs, *h)
		}
	}
	if len(hs) == 0 {
		return
	}
	dc.SetColor(c)

	if s.Kind() == shape.Group {
		x0, y0 := px(hs[0])
		x1, y1 := x0, y0
		for _, h := range hs[1:] {
			x, y := px(h)
			x0, y0 = math.Min(x0, x), math.Min(y0, y)
			x1, y1 = math.Max(x1, x), math.Max(y1, y)
		}
		dc.SetDash(4, 4)
		dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
		dc.Stroke()
		dc.SetDash()
		return
	}

	x, y := px(hs[0])
	dc.MoveTo(x, y)
	for _, h := range hs[1:] {
		dc.LineTo(px(h))
	}
	if s.Kind().Closed() {
		dc.ClosePath()
	}
	dc.Stroke()
}

// WritePNG draws the scene and encodes it as PNG to w.
func (b *Backend) WritePNG(w io.Writer, opts config.RenderOptions, nets []netlist.Labeled) error {
	dc, err := b.Draw(opts, nets)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG draws the scene into the PNG file at path.
func (b *Backend) SavePNG(path string, opts config.RenderOptions, nets []netlist.Labeled) error {
	dc, err := b.Draw(opts, nets)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return err
	}
	diag.Logger().Info("export written", "path", path, "width", dc.Width(), "height", dc.Height())
	return nil
}
