package shape

import (
	"slices"

	"schematic-core/internal/cell"
)

// Scene registers the shapes of one diagram session and resolves owner
// ids back to shapes.
type Scene struct {
	graph  *cell.Graph
	shapes map[cell.OwnerID]*Shape
	order  []cell.OwnerID
	next   cell.OwnerID
}

// NewScene creates an empty scene whose shapes live in g.
func NewScene(g *cell.Graph) *Scene {
	return &Scene{
		graph:  g,
		shapes: make(map[cell.OwnerID]*Shape),
	}
}

// Graph returns the cell graph shared by the scene's shapes.
func (sc *Scene) Graph() *cell.Graph { return sc.graph }

// NewShape creates and registers a shape with the initial point list.
// A nil hooks value installs NopHooks.
func (sc *Scene) NewShape(kind Kind, className string, entries []Entry, hooks Hooks) *Shape {
	if hooks == nil {
		hooks = NopHooks{}
	}
	sc.next++
	s := &Shape{
		id:        sc.next,
		kind:      kind,
		className: className,
		scene:     sc,
		graph:     sc.graph,
		hooks:     hooks,
	}
	sc.shapes[s.id] = s
	sc.order = append(sc.order, s.id)
	s.SetPoints(entries)
	return s
}

// Shape returns the shape registered under id, or nil.
func (sc *Scene) Shape(id cell.OwnerID) *Shape {
	return sc.shapes[id]
}

// Shapes returns the live shapes in creation order.
func (sc *Scene) Shapes() []*Shape {
	out := make([]*Shape, 0, len(sc.order))
	for _, id := range sc.order {
		out = append(out, sc.shapes[id])
	}
	return out
}

// Owners returns the ids of the live shapes in creation order.
func (sc *Scene) Owners() []cell.OwnerID {
	return slices.Clone(sc.order)
}

// IsRouting reports whether id names a routing shape.
func (sc *Scene) IsRouting(id cell.OwnerID) bool {
	s := sc.shapes[id]
	return s != nil && s.kind.IsRouting()
}

// PointsOf returns the point list of the shape registered under id.
func (sc *Scene) PointsOf(id cell.OwnerID) []cell.PointID {
	if s := sc.shapes[id]; s != nil {
		return s.Points()
	}
	return nil
}

func (sc *Scene) unregister(s *Shape) {
	if sc.shapes[s.id] != s {
		return
	}
	delete(sc.shapes, s.id)
	sc.order = slices.DeleteFunc(sc.order, func(id cell.OwnerID) bool { return id == s.id })
}
