package shape

import (
	"schematic-core/internal/cell"
	"schematic-core/internal/diag"
	"schematic-core/pkg/geometry"
)

// Entry is one element of a desired point list: either a reference to an
// existing point cell or plain coordinates.
type Entry struct {
	ref cell.PointID
	at  geometry.Point2D
}

// Ref reuses an existing point by reference.
func Ref(id cell.PointID) Entry {
	return Entry{ref: id}
}

// At asks for a point at (x, y), reusing the point already at the same
// list position when possible.
func At(x, y float64) Entry {
	return Entry{at: geometry.Point2D{X: x, Y: y}}
}

// AtPoint is At for a Point2D.
func AtPoint(p geometry.Point2D) Entry {
	return Entry{at: p}
}

// IsRef reports whether the entry references an existing point.
func (e Entry) IsRef() bool {
	return !e.ref.IsZero()
}

// Refs turns a point list into reference entries.
func Refs(ids []cell.PointID) []Entry {
	entries := make([]Entry, len(ids))
	for i, id := range ids {
		entries[i] = Ref(id)
	}
	return entries
}

// SetPoints replaces the shape's point list with entries.
//
// Matching is positional first: a coordinate entry at index i moves the
// old point at index i in place, unless that point is referenced elsewhere
// in entries or already reused. Referenced points are kept by identity, so
// a pure reorder creates and removes nothing. Points not owned by the
// shape before become owned and fire PointAdded; points that drop out fire
// PointRemoved once. The old anchor is never dropped: if entries does not
// keep it, it is prepended. PointsFinalized fires once at the end.
func (s *Shape) SetPoints(entries []Entry) {
	g := s.graph
	old := s.points

	referenced := make(map[cell.PointID]bool, len(entries))
	for _, e := range entries {
		if e.IsRef() {
			referenced[e.ref] = true
		}
	}

	final := make([]cell.PointID, 0, len(entries)+1)
	kept := make(map[cell.PointID]bool, len(entries)+1)
	var added []cell.PointID

	for i, e := range entries {
		var id cell.PointID
		switch {
		case e.IsRef():
			id = e.ref
			if !g.PointAlive(id) {
				diag.Logger().Debug("released point in point list skipped", "shape", s.id, "point", id)
				continue
			}
			if kept[id] {
				continue
			}
			if g.Owner(id) != s.id {
				g.SetOwner(id, s.id)
				added = append(added, id)
			}
		case i < len(old) && !referenced[old[i]] && !kept[old[i]] && g.PointAlive(old[i]):
			id = old[i]
			g.SetPoint(id, e.at)
		default:
			id = g.NewPoint(e.at)
			g.SetOwner(id, s.id)
			added = append(added, id)
		}
		final = append(final, id)
		kept[id] = true
	}

	if len(old) > 0 && !kept[old[0]] && g.PointAlive(old[0]) {
		final = append([]cell.PointID{old[0]}, final...)
		kept[old[0]] = true
	}

	var removed []cell.PointID
	for _, id := range old {
		if !kept[id] {
			removed = append(removed, id)
			kept[id] = true // fire once even if listed twice
		}
	}

	s.points = final

	for _, id := range added {
		s.hooks.PointAdded(s, id)
	}
	for _, id := range removed {
		s.dropPoint(id)
	}
	s.hooks.PointsFinalized(s, s.Points())
}

// dropPoint fires the removal hook and releases the point if the shape
// owned it. Shared points are left alive.
func (s *Shape) dropPoint(id cell.PointID) {
	s.hooks.PointRemoved(s, id)
	if s.graph.Owner(id) == s.id {
		s.graph.SetOwner(id, cell.NoOwner)
		s.graph.ReleasePoint(id)
	}
}
