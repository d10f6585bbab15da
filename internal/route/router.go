package route

import (
	"errors"

	"schematic-core/internal/cell"
	"schematic-core/internal/diag"
	"schematic-core/internal/shape"
	"schematic-core/pkg/geometry"
)

// ErrShortWire is returned when a router is bound to a wire with fewer
// than two points.
var ErrShortWire = errors.New("route: wire needs a start and an end point")

// Via is an intermediate point the path must pass through. Moving a pinned
// via reroutes the wire; an unpinned via is only read on the next reroute.
type Via struct {
	Point  cell.PointID
	Pinned bool
}

// Router keeps a wire's point list orthogonal. The wire's anchor is the
// start pin and its last point at bind time is the end pin; everything in
// between is recomputed.
type Router struct {
	wire  *shape.Shape
	graph *cell.Graph

	start, end cell.PointID
	vias       []Via

	cancels []func()
	routing bool
	dirty   bool
	routes  int
}

// New binds a router to wire and routes it once.
func New(wire *shape.Shape, vias ...Via) (*Router, error) {
	pts := wire.Points()
	if len(pts) < 2 {
		return nil, ErrShortWire
	}
	r := &Router{
		wire:  wire,
		graph: wire.Graph(),
		start: pts[0],
		end:   pts[len(pts)-1],
	}
	r.SetVias(vias...)
	return r, nil
}

// Wire returns the routed shape.
func (r *Router) Wire() *shape.Shape { return r.wire }

// Vias returns the current via list.
func (r *Router) Vias() []Via { return append([]Via(nil), r.vias...) }

// Routes returns how many times the wire has been rerouted.
func (r *Router) Routes() int { return r.routes }

// SetVias replaces the via list, resubscribes to the pinned points and
// reroutes.
func (r *Router) SetVias(vias ...Via) {
	r.unsubscribe()
	r.vias = append([]Via(nil), vias...)
	r.subscribe(r.start)
	r.subscribe(r.end)
	for _, v := range r.vias {
		if v.Pinned {
			r.subscribe(v.Point)
		}
	}
	r.Route()
}

func (r *Router) subscribe(p cell.PointID) {
	r.cancels = append(r.cancels, r.graph.OnMove(p, func(cell.PointID) { r.Route() }))
}

func (r *Router) unsubscribe() {
	for _, cancel := range r.cancels {
		cancel()
	}
	r.cancels = nil
}

// Close stops tracking pin moves. The wire keeps its last route.
func (r *Router) Close() {
	r.unsubscribe()
}

// Route recomputes the bend points and reconciles them into the wire.
// Called while a route is in progress, it schedules one more pass instead
// of recursing.
func (r *Router) Route() {
	if r.routing {
		r.dirty = true
		return
	}
	r.routing = true
	defer func() { r.routing = false }()
	for {
		r.dirty = false
		r.wire.SetPoints(r.plan())
		r.routes++
		if !r.dirty {
			return
		}
	}
}

// plan builds the desired point list: pins by reference with a coordinate
// entry for each bend, so existing bend points are moved in place.
func (r *Router) plan() []shape.Entry {
	pins := make([]cell.PointID, 0, len(r.vias)+2)
	pins = append(pins, r.start)
	for _, v := range r.vias {
		if !r.graph.PointAlive(v.Point) {
			diag.Logger().Debug("released via skipped", "wire", r.wire.ID(), "point", v.Point)
			continue
		}
		pins = append(pins, v.Point)
	}
	pins = append(pins, r.end)

	entries := make([]shape.Entry, 0, 2*len(pins))
	in := headingNone
	for i := 0; i+1 < len(pins); i++ {
		p0, p1 := r.graph.Point(pins[i]), r.graph.Point(pins[i+1])
		entries = append(entries, shape.Ref(pins[i]))
		if p0 == p1 {
			continue
		}
		if c, ok := bend(in, p0, p1); ok {
			entries = append(entries, shape.AtPoint(c))
			in = headingOf(c, p1)
		} else {
			in = headingOf(p0, p1)
		}
	}
	return append(entries, shape.Ref(r.end))
}

// Path returns the wire's current coordinates.
func (r *Router) Path() []geometry.Point2D {
	return r.wire.Coordinates()
}
