// Package render is a reference consumer of the shape hooks and cell
// sinks. It mirrors every owned point into an integer drawable handle and
// exports the scene as a PNG.
package render

import (
	"slices"

	"schematic-core/internal/cell"
	"schematic-core/internal/shape"
)

// Handle is the drawable attached to a point. X and Y hold the rounded
// coordinates last mirrored through the point's sinks.
type Handle struct {
	ID   int
	X, Y int
}

type axisSink struct {
	h *Handle
	y bool
}

func (s axisSink) SetMirroredValue(v int) {
	if s.y {
		s.h.Y = v
	} else {
		s.h.X = v
	}
}

// Backend implements shape.Hooks for every shape of a scene.
type Backend struct {
	scene   *shape.Scene
	handles map[cell.PointID]*Handle
	batches map[cell.OwnerID][]cell.PointID
	nextID  int

	// Finalized counts PointsFinalized calls, for batching diagnostics.
	Finalized int
}

var (
	_ shape.Hooks        = (*Backend)(nil)
	_ shape.ShapeRemover = (*Backend)(nil)
)

// NewBackend creates a backend for shapes of sc. Pass it as the hooks of
// every shape created in sc.
func NewBackend(sc *shape.Scene) *Backend {
	return &Backend{
		scene:   sc,
		handles: make(map[cell.PointID]*Handle),
		batches: make(map[cell.OwnerID][]cell.PointID),
	}
}

// PointAdded attaches a handle to p and wires its axis sinks.
func (b *Backend) PointAdded(s *shape.Shape, p cell.PointID) {
	h, ok := b.handles[p]
	if !ok {
		b.nextID++
		h = &Handle{ID: b.nextID}
		b.handles[p] = h
	}
	x, y := s.Graph().Axes(p)
	s.Graph().SetSink(x, axisSink{h: h})
	s.Graph().SetSink(y, axisSink{h: h, y: true})
}

// PointRemoved detaches the handle of p.
func (b *Backend) PointRemoved(s *shape.Shape, p cell.PointID) {
	if _, ok := b.handles[p]; !ok {
		return
	}
	delete(b.handles, p)
	x, y := s.Graph().Axes(p)
	s.Graph().SetSink(x, nil)
	s.Graph().SetSink(y, nil)
}

// PointsFinalized stores the ordered list drawn for s.
func (b *Backend) PointsFinalized(s *shape.Shape, points []cell.PointID) {
	b.Finalized++
	b.batches[s.ID()] = slices.Clone(points)
}

// ShapeRemoved forgets the batch of s.
func (b *Backend) ShapeRemoved(s *shape.Shape) {
	delete(b.batches, s.ID())
}

// Handle returns the drawable attached to p.
func (b *Backend) Handle(p cell.PointID) (Handle, bool) {
	h, ok := b.handles[p]
	if !ok {
		return Handle{}, false
	}
	return *h, true
}

// Len returns the number of live handles.
func (b *Backend) Len() int { return len(b.handles) }

// Batch returns the last finalized point list of the shape registered
// under id.
func (b *Backend) Batch(id cell.OwnerID) []cell.PointID {
	return slices.Clone(b.batches[id])
}
