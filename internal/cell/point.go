package cell

import (
	"slices"

	"schematic-core/internal/diag"
	"schematic-core/pkg/geometry"
)

type pointSlot struct {
	gen  uint32
	live bool

	x, y      ValueID
	owner     OwnerID
	followed  PointID
	followers []PointID // registration order
}

func (g *Graph) point(id PointID) *pointSlot {
	if id.IsZero() || int(id.index) >= len(g.points) {
		return nil
	}
	s := &g.points[id.index]
	if !s.live || s.gen != id.gen {
		return nil
	}
	return s
}

// NewPoint allocates an independent point cell at p.
func (g *Graph) NewPoint(p geometry.Point2D) PointID {
	x := g.NewValue(p.X)
	y := g.NewValue(p.Y)

	var index uint32
	if n := len(g.freePoints); n > 0 {
		index = g.freePoints[n-1]
		g.freePoints = g.freePoints[:n-1]
	} else {
		index = uint32(len(g.points))
		g.points = append(g.points, pointSlot{})
	}
	s := &g.points[index]
	if s.gen == 0 {
		s.gen = 1
	}
	s.live = true
	s.x, s.y = x, y
	return PointID{index: index, gen: s.gen}
}

// NewPointFollowing allocates a point cell that follows other.
func (g *Graph) NewPointFollowing(other PointID) (PointID, error) {
	if g.point(other) == nil {
		return PointID{}, ErrStaleCell
	}
	id := g.NewPoint(g.Point(other))
	if err := g.FollowPoint(id, other); err != nil {
		g.ReleasePoint(id)
		return PointID{}, err
	}
	return id, nil
}

// PointAlive reports whether id refers to a live point cell.
func (g *Graph) PointAlive(id PointID) bool {
	return g.point(id) != nil
}

// Point returns the coordinates of id, or the origin for a stale handle.
func (g *Graph) Point(id PointID) geometry.Point2D {
	s := g.point(id)
	if s == nil {
		return geometry.Point2D{}
	}
	return geometry.Point2D{X: g.Value(s.x), Y: g.Value(s.y)}
}

// X returns the x coordinate of id.
func (g *Graph) X(id PointID) float64 { return g.Point(id).X }

// Y returns the y coordinate of id.
func (g *Graph) Y(id PointID) float64 { return g.Point(id).Y }

// Axes returns the value cells backing id.
func (g *Graph) Axes(id PointID) (x, y ValueID) {
	if s := g.point(id); s != nil {
		return s.x, s.y
	}
	return ValueID{}, ValueID{}
}

// SetPoint moves id to p. On a following point the write is forwarded to
// the followed point, which stays the single source of truth.
func (g *Graph) SetPoint(id PointID, p geometry.Point2D) {
	s := g.point(id)
	if s == nil {
		diag.Logger().Debug("move of released point ignored", "point", id)
		return
	}
	x, y := s.x, s.y
	g.SetValue(x, p.X)
	g.SetValue(y, p.Y)
}

// SetX moves id horizontally.
func (g *Graph) SetX(id PointID, v float64) {
	if s := g.point(id); s != nil {
		g.SetValue(s.x, v)
	}
}

// SetY moves id vertically.
func (g *Graph) SetY(id PointID, v float64) {
	if s := g.point(id); s != nil {
		g.SetValue(s.y, v)
	}
}

// Owner returns the shape owning id.
func (g *Graph) Owner(id PointID) OwnerID {
	if s := g.point(id); s != nil {
		return s.owner
	}
	return NoOwner
}

// SetOwner records the shape owning id.
func (g *Graph) SetOwner(id PointID, owner OwnerID) {
	if s := g.point(id); s != nil {
		s.owner = owner
	}
}

// Followed returns the point id follows, or the zero PointID.
func (g *Graph) Followed(id PointID) PointID {
	if s := g.point(id); s != nil {
		return s.followed
	}
	return PointID{}
}

// PointFollowers returns the points following id in registration order.
func (g *Graph) PointFollowers(id PointID) []PointID {
	if s := g.point(id); s != nil {
		return slices.Clone(s.followers)
	}
	return nil
}

// FollowPoint makes id follow other. Any previous allegiance is dropped
// first. A zero other makes id independent again, frozen at its last
// followed coordinates. Following itself is a no-op.
func (g *Graph) FollowPoint(id, other PointID) error {
	if g.point(id) == nil {
		return ErrStaleCell
	}
	if other.IsZero() {
		g.unfollowPoint(id)
		return nil
	}
	if other == id {
		return nil
	}
	if g.point(other) == nil {
		return ErrStaleCell
	}
	if g.pointDependsOn(other, id) {
		diag.Logger().Debug("point follow cycle rejected", "point", id, "target", other)
		return ErrFollowCycle
	}

	g.unfollowPoint(id)
	s, o := g.point(id), g.point(other)
	x, y := s.x, s.y
	ox, oy := o.x, o.y
	o.followers = append(o.followers, id)
	s.followed = other

	if err := g.Follow(x, ox); err != nil {
		g.unfollowPoint(id)
		return err
	}
	if err := g.Follow(y, oy); err != nil {
		g.unfollowPoint(id)
		return err
	}
	return nil
}

func (g *Graph) pointDependsOn(id, target PointID) bool {
	for cur := id; !cur.IsZero(); {
		if cur == target {
			return true
		}
		s := g.point(cur)
		if s == nil {
			return false
		}
		cur = s.followed
	}
	return false
}

func (g *Graph) unfollowPoint(id PointID) {
	s := g.point(id)
	if s == nil || s.followed.IsZero() {
		return
	}
	if o := g.point(s.followed); o != nil {
		o.followers = removePointID(o.followers, id)
	}
	s.followed = PointID{}
	x, y := s.x, s.y
	_ = g.Follow(x, ValueID{})
	_ = g.Follow(y, ValueID{})
}

// ConnectedPoints returns every point reachable from id through follow
// edges in either direction, breadth-first, starting with id itself.
func (g *Graph) ConnectedPoints(id PointID) []PointID {
	if g.point(id) == nil {
		return nil
	}
	seen := map[PointID]bool{id: true}
	out := []PointID{id}
	for i := 0; i < len(out); i++ {
		s := g.point(out[i])
		next := append([]PointID{s.followed}, s.followers...)
		for _, n := range next {
			if n.IsZero() || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// DetachEverything makes every follower of id independent, leaving each at
// its present coordinates.
func (g *Graph) DetachEverything(id PointID) {
	s := g.point(id)
	if s == nil {
		return
	}
	for _, f := range slices.Clone(s.followers) {
		g.unfollowPoint(f)
	}
}

// OnMove registers fn to run whenever either coordinate of id changes.
// A diagonal move calls fn once per axis.
func (g *Graph) OnMove(id PointID, fn func(PointID)) (cancel func()) {
	s := g.point(id)
	if s == nil {
		return func() {}
	}
	cx := g.OnChange(s.x, func(float64) { fn(id) })
	cy := g.OnChange(s.y, func(float64) { fn(id) })
	return func() {
		cx()
		cy()
	}
}

// ReleasePoint destroys id and its axis cells. Followers are orphaned at
// their current coordinates first.
func (g *Graph) ReleasePoint(id PointID) {
	if g.point(id) == nil {
		return
	}
	g.DetachEverything(id)
	g.unfollowPoint(id)
	s := g.point(id)
	x, y := s.x, s.y
	*s = pointSlot{gen: nextGen(s.gen)}
	g.freePoints = append(g.freePoints, id.index)
	g.ReleaseValue(x)
	g.ReleaseValue(y)
}
