// Package session ties the cell graph, shapes, nets, rotations and wire
// routers of one diagram together and publishes change events.
package session

import (
	"fmt"
	"slices"
	"sync"

	"schematic-core/internal/cell"
	"schematic-core/internal/diag"
	"schematic-core/internal/netlist"
	"schematic-core/internal/rotate"
	"schematic-core/internal/route"
	"schematic-core/internal/shape"
	"schematic-core/pkg/geometry"
)

// EventType identifies different session events.
type EventType int

const (
	EventShapeAdded      EventType = iota // data: *shape.Shape
	EventShapeRemoved                     // data: cell.OwnerID
	EventNetsChanged                      // data: nil
	EventRotationChanged                  // data: float64 degrees
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Session holds the state of one diagram. Apart from event registration it
// is not safe for concurrent use.
type Session struct {
	mu sync.RWMutex

	graph     *cell.Graph
	scene     *shape.Scene
	nets      *netlist.Namespace
	hooks     shape.Hooks
	rotations []*rotate.Transform
	centers   []cell.PointID
	routers   map[cell.OwnerID]*route.Router

	// Event listeners
	listeners map[EventType][]EventListener
}

// New creates an empty session.
func New() *Session {
	g := cell.NewGraph()
	return &Session{
		graph:     g,
		scene:     shape.NewScene(g),
		nets:      netlist.NewNamespace(),
		routers:   make(map[cell.OwnerID]*route.Router),
		listeners: make(map[EventType][]EventListener),
	}
}

// Graph returns the cell graph.
func (s *Session) Graph() *cell.Graph { return s.graph }

// Scene returns the shape registry.
func (s *Session) Scene() *shape.Scene { return s.scene }

// Namespace returns the session's net names.
func (s *Session) Namespace() *netlist.Namespace { return s.nets }

// SetHooks installs the hooks given to shapes created from now on.
func (s *Session) SetHooks(h shape.Hooks) { s.hooks = h }

// Hooks returns the hooks given to new shapes, possibly nil.
func (s *Session) Hooks() shape.Hooks { return s.hooks }

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// AddShape creates a shape with the session hooks.
func (s *Session) AddShape(kind shape.Kind, className string, entries ...shape.Entry) *shape.Shape {
	sh := s.scene.NewShape(kind, className, entries, s.hooks)
	diag.Logger().Debug("shape added", "shape", sh.ID(), "kind", kind, "points", sh.Len())
	s.Emit(EventShapeAdded, sh)
	return sh
}

// AddComponent creates a component whose points are its terminals.
func (s *Session) AddComponent(className string, terminals ...geometry.Point2D) *shape.Shape {
	entries := make([]shape.Entry, len(terminals))
	for i, p := range terminals {
		entries[i] = shape.AtPoint(p)
	}
	return s.AddShape(shape.Group, className, entries...)
}

// AddWire creates a wire whose ends follow from and to, routed
// orthogonally through vias. The wire reroutes whenever an end or a pinned
// via moves.
func (s *Session) AddWire(from, to cell.PointID, vias ...route.Via) (*shape.Shape, error) {
	if !s.graph.PointAlive(from) || !s.graph.PointAlive(to) {
		return nil, fmt.Errorf("add wire: %w", cell.ErrStaleCell)
	}
	w := s.scene.NewShape(shape.Wire, "wire", []shape.Entry{
		shape.AtPoint(s.graph.Point(from)),
		shape.AtPoint(s.graph.Point(to)),
	}, s.hooks)
	pts := w.Points()
	if err := s.graph.FollowPoint(pts[0], from); err != nil {
		w.Destroy()
		return nil, fmt.Errorf("add wire: %w", err)
	}
	if err := s.graph.FollowPoint(pts[1], to); err != nil {
		w.Destroy()
		return nil, fmt.Errorf("add wire: %w", err)
	}
	r, err := route.New(w, vias...)
	if err != nil {
		w.Destroy()
		return nil, fmt.Errorf("add wire: %w", err)
	}
	s.routers[w.ID()] = r
	diag.Logger().Debug("wire added", "shape", w.ID(), "from", from, "to", to, "vias", len(vias))
	s.Emit(EventShapeAdded, w)
	s.Emit(EventNetsChanged, nil)
	return w, nil
}

// Router returns the router of the wire registered under id, or nil.
func (s *Session) Router(id cell.OwnerID) *route.Router {
	return s.routers[id]
}

// AddRotation creates a rotation about a new point at center. The point
// belongs to the session and is released by Close.
func (s *Session) AddRotation(center geometry.Point2D) *rotate.Transform {
	c := s.graph.NewPoint(center)
	s.centers = append(s.centers, c)
	t := rotate.New(s.graph, c)
	t.OnChange(func(degrees float64) { s.Emit(EventRotationChanged, degrees) })
	s.rotations = append(s.rotations, t)
	return t
}

// Rotations returns the session's rotations.
func (s *Session) Rotations() []*rotate.Transform {
	return slices.Clone(s.rotations)
}

// Remove destroys sh, stopping its router and dropping it from every
// rotation.
func (s *Session) Remove(sh *shape.Shape) {
	id := sh.ID()
	if r := s.routers[id]; r != nil {
		r.Close()
		delete(s.routers, id)
	}
	for _, t := range s.rotations {
		t.RemoveTarget(sh)
	}
	sh.Destroy()
	s.Emit(EventShapeRemoved, id)
	s.Emit(EventNetsChanged, nil)
}

// Connections returns the terminals connected to sh.
func (s *Session) Connections(sh *shape.Shape) []cell.PointID {
	return netlist.ShapeConnections(s.scene, s.graph, sh.ID())
}

// Netlist extracts and names every connected group of terminals.
func (s *Session) Netlist() []netlist.Labeled {
	return s.nets.Label(s.scene, s.graph, netlist.Extract(s.scene, s.graph))
}

// Close stops every router, destroys every shape, newest first, and
// releases the rotation centres.
func (s *Session) Close() {
	for id, r := range s.routers {
		r.Close()
		delete(s.routers, id)
	}
	shapes := s.scene.Shapes()
	for i := len(shapes) - 1; i >= 0; i-- {
		shapes[i].Destroy()
	}
	for _, c := range s.centers {
		s.graph.ReleasePoint(c)
	}
	s.centers = nil
	s.rotations = nil
	diag.Logger().Info("session closed", "shapes", len(shapes))
}
