package shape

import (
	"errors"
	"slices"

	"schematic-core/internal/cell"
	"schematic-core/internal/diag"
	"schematic-core/pkg/geometry"
)

// ErrAnchorRemoval is returned when removing the anchor of a non-empty shape.
var ErrAnchorRemoval = errors.New("shape: cannot remove the anchor point")

// Shape is an ordered list of point cells. Index 0 is the anchor, the
// shape's reference position, and is never removed while the shape has
// points.
type Shape struct {
	id        cell.OwnerID
	kind      Kind
	className string

	scene  *Scene
	graph  *cell.Graph
	points []cell.PointID
	hooks  Hooks
}

// ID returns the owner id recorded on the shape's points.
func (s *Shape) ID() cell.OwnerID { return s.id }

// Kind returns the shape variant.
func (s *Shape) Kind() Kind { return s.kind }

// ClassName returns the style class of the shape.
func (s *Shape) ClassName() string { return s.className }

// SetClassName changes the style class of the shape.
func (s *Shape) SetClassName(name string) { s.className = name }

// Graph returns the cell graph the shape's points live in.
func (s *Shape) Graph() *cell.Graph { return s.graph }

// Len returns the number of points.
func (s *Shape) Len() int { return len(s.points) }

// Points returns a copy of the ordered point list.
func (s *Shape) Points() []cell.PointID {
	return slices.Clone(s.points)
}

// Anchor returns the first point, or the zero PointID for an empty shape.
func (s *Shape) Anchor() cell.PointID {
	if len(s.points) == 0 {
		return cell.PointID{}
	}
	return s.points[0]
}

// Coordinates returns the current position of every point, in order.
func (s *Shape) Coordinates() []geometry.Point2D {
	out := make([]geometry.Point2D, len(s.points))
	for i, id := range s.points {
		out[i] = s.graph.Point(id)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the shape.
func (s *Shape) Bounds() geometry.Rect {
	return geometry.BoundingBox(s.Coordinates())
}

// HitTest reports whether p lies inside a closed shape or within tol of
// one of its segments.
func (s *Shape) HitTest(p geometry.Point2D, tol float64) bool {
	pts := s.Coordinates()
	if s.kind.Closed() && geometry.PointInPolygon(p, pts) {
		return true
	}
	if len(pts) == 1 {
		return p.Distance(pts[0]) <= tol
	}
	for i := 0; i+1 < len(pts); i++ {
		if geometry.DistanceToSegment(p, pts[i], pts[i+1]) <= tol {
			return true
		}
	}
	if s.kind.Closed() && len(pts) > 2 {
		return geometry.DistanceToSegment(p, pts[len(pts)-1], pts[0]) <= tol
	}
	return false
}

// MoveBy translates every independent point of the shape. Points that
// follow another point stay attached to it.
func (s *Shape) MoveBy(dx, dy float64) {
	for _, id := range s.Points() {
		if !s.graph.Followed(id).IsZero() {
			continue
		}
		s.graph.SetPoint(id, s.graph.Point(id).Add(geometry.Pt(dx, dy)))
	}
}

// InsertAt inserts e before index. The index is clamped so the anchor
// stays first.
func (s *Shape) InsertAt(index int, e Entry) {
	lo := 1
	if len(s.points) == 0 {
		lo = 0
	}
	if index < lo || index > len(s.points) {
		diag.Logger().Debug("insert index clamped", "shape", s.id, "index", index, "len", len(s.points))
		index = min(max(index, lo), len(s.points))
	}
	entries := Refs(s.points)
	entries = slices.Insert(entries, index, e)
	s.SetPoints(entries)
}

// RemoveAt removes the point at index. Removing the anchor of a non-empty
// shape returns ErrAnchorRemoval; any other out-of-range index is ignored
// and reported as false.
func (s *Shape) RemoveAt(index int) (bool, error) {
	if index == 0 && len(s.points) > 0 {
		return false, ErrAnchorRemoval
	}
	if index < 0 || index >= len(s.points) {
		diag.Logger().Debug("remove index out of range ignored", "shape", s.id, "index", index, "len", len(s.points))
		return false, nil
	}
	entries := Refs(s.points)
	entries = slices.Delete(entries, index, index+1)
	s.SetPoints(entries)
	return true, nil
}

// SetAt replaces the point at index. A coordinate entry moves the
// existing point in place. Out-of-range indices are ignored.
func (s *Shape) SetAt(index int, e Entry) bool {
	if index < 0 || index >= len(s.points) {
		diag.Logger().Debug("set index out of range ignored", "shape", s.id, "index", index, "len", len(s.points))
		return false
	}
	entries := Refs(s.points)
	entries[index] = e
	s.SetPoints(entries)
	return true
}

// Destroy removes every point from the shape, releases the points it owns
// and unregisters the shape from its scene.
func (s *Shape) Destroy() {
	points := s.points
	s.points = nil
	for _, id := range points {
		s.dropPoint(id)
	}
	if r, ok := s.hooks.(ShapeRemover); ok {
		r.ShapeRemoved(s)
	}
	if s.scene != nil {
		s.scene.unregister(s)
	}
}
