// Package route synthesises orthogonal wire paths and keeps a wire's bend
// points up to date while its pinned points move.
package route

import "schematic-core/pkg/geometry"

// heading is the direction of the segment arriving at a point.
type heading int

const (
	headingNone heading = iota
	headingHorizontal
	headingVertical
)

func headingOf(from, to geometry.Point2D) heading {
	switch {
	case from == to:
		return headingNone
	case from.Y == to.Y:
		return headingHorizontal
	case from.X == to.X:
		return headingVertical
	}
	return headingNone
}

// bend returns the corner joining p0 to p1, continuing the incoming
// heading so the path does not double back at a via. Without a known
// heading the bend goes along x first. ok is false when p0 and p1 already
// share an axis.
func bend(in heading, p0, p1 geometry.Point2D) (corner geometry.Point2D, ok bool) {
	if p0.SharesAxis(p1) {
		return geometry.Point2D{}, false
	}
	if in == headingVertical {
		return geometry.Point2D{X: p0.X, Y: p1.Y}, true
	}
	return geometry.Point2D{X: p1.X, Y: p0.Y}, true
}

// Orthogonal returns a path through pins in which every segment is
// horizontal or vertical. Pins that already share an axis are joined
// directly; other pairs get one bend. Coincident consecutive pins collapse
// into one.
func Orthogonal(pins []geometry.Point2D) []geometry.Point2D {
	if len(pins) == 0 {
		return nil
	}
	out := make([]geometry.Point2D, 0, 2*len(pins))
	in := headingNone
	for i := 0; i+1 < len(pins); i++ {
		p0, p1 := pins[i], pins[i+1]
		if p0 == p1 {
			continue
		}
		out = append(out, p0)
		if c, ok := bend(in, p0, p1); ok {
			out = append(out, c)
			in = headingOf(c, p1)
		} else {
			in = headingOf(p0, p1)
		}
	}
	return append(out, pins[len(pins)-1])
}

// IsOrthogonal reports whether every segment of path is horizontal or
// vertical.
func IsOrthogonal(path []geometry.Point2D) bool {
	for i := 0; i+1 < len(path); i++ {
		if !path[i].SharesAxis(path[i+1]) {
			return false
		}
	}
	return true
}
