package series

import (
	"schematic-core/internal/cell"
	"schematic-core/internal/shape"
	"schematic-core/pkg/geometry"
)

// Plot draws a Series as a polyline. The polyline's anchor marks the
// origin and sample i sits at (anchor.X + i*step, anchor.Y - v*scale), so
// larger values are higher on screen. Samples are placed from the anchor's
// position at the time of each series change: after the whole polyline is
// moved, new samples land next to the moved ones. Moving the anchor alone
// takes effect at the next change.
type Plot struct {
	series *Series
	line   *shape.Shape

	step  float64
	scale float64

	cancel func()
}

// NewPlot creates a polyline in sc bound to s.
func NewPlot(sc *shape.Scene, s *Series, origin geometry.Point2D, step, scale float64, hooks shape.Hooks) *Plot {
	p := &Plot{
		series: s,
		step:   step,
		scale:  scale,
	}
	p.line = sc.NewShape(shape.Polyline, "plot", p.entries(origin), hooks)
	p.cancel = s.Observe(&Observer{
		Inserted: func(i int, _ float64) { p.inserted(i) },
		Removed:  func(i int, _ float64) { p.removed(i) },
		Changed:  func(i int, _, v float64) { p.changed(i, v) },
	})
	return p
}

// Shape returns the bound polyline.
func (p *Plot) Shape() *shape.Shape { return p.line }

// Series returns the plotted series.
func (p *Plot) Series() *Series { return p.series }

// Close stops tracking the series. The polyline keeps its last state.
func (p *Plot) Close() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Origin returns the current position of the anchor.
func (p *Plot) Origin() geometry.Point2D {
	return p.line.Graph().Point(p.line.Anchor())
}

func (p *Plot) sample(i int, v float64) geometry.Point2D {
	return place(p.Origin(), i, v, p.step, p.scale)
}

func place(origin geometry.Point2D, i int, v, step, scale float64) geometry.Point2D {
	return geometry.Point2D{
		X: origin.X + float64(i)*step,
		Y: origin.Y - v*scale,
	}
}

func (p *Plot) entries(origin geometry.Point2D) []shape.Entry {
	entries := make([]shape.Entry, 0, p.series.Len()+1)
	entries = append(entries, shape.AtPoint(origin))
	for i, v := range p.series.values {
		entries = append(entries, shape.AtPoint(place(origin, i, v, p.step, p.scale)))
	}
	return entries
}

func (p *Plot) inserted(i int) {
	p.line.InsertAt(i+1, shape.AtPoint(p.sample(i, p.series.At(i))))
	p.relayout(i + 1)
}

func (p *Plot) removed(i int) {
	if _, err := p.line.RemoveAt(i + 1); err != nil {
		return
	}
	p.relayout(i)
}

func (p *Plot) changed(i int, v float64) {
	p.line.Graph().SetPoint(p.point(i), p.sample(i, v))
}

// relayout shifts the samples from index from onwards to their x slots.
func (p *Plot) relayout(from int) {
	for i := from; i < p.series.Len(); i++ {
		p.line.Graph().SetPoint(p.point(i), p.sample(i, p.series.At(i)))
	}
}

// point returns the polyline point drawing sample i, one past the anchor.
func (p *Plot) point(i int) cell.PointID {
	pts := p.line.Points()
	if i+1 >= len(pts) {
		return cell.PointID{}
	}
	return pts[i+1]
}
