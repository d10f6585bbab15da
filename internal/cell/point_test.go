package cell

import (
	"errors"
	"testing"

	"schematic-core/pkg/geometry"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestFollowPointCopiesAndTracks(t *testing.T) {
	g := NewGraph()
	terminal := g.NewPoint(geometry.Pt(10, 20))
	end := g.NewPoint(geometry.Pt(0, 0))

	if err := g.FollowPoint(end, terminal); err != nil {
		t.Fatal(err)
	}
	diff(t, geometry.Pt(10, 20), g.Point(end))

	g.SetPoint(terminal, geometry.Pt(15, 25))
	diff(t, geometry.Pt(15, 25), g.Point(end))
	diff(t, terminal, g.Followed(end))
	diff(t, []PointID{end}, g.PointFollowers(terminal))
}

func TestSetPointForwardsToFollowed(t *testing.T) {
	g := NewGraph()
	root := g.NewPoint(geometry.Pt(1, 1))
	mid, _ := g.NewPointFollowing(root)
	leaf, _ := g.NewPointFollowing(mid)

	g.SetPoint(leaf, geometry.Pt(7, 8))
	for _, id := range []PointID{root, mid, leaf} {
		diff(t, geometry.Pt(7, 8), g.Point(id))
	}
	if !g.Followed(leaf).Equal(mid) {
		t.Error("forwarded write must not break the follow")
	}
}

func TestFollowPointSwitchAllegiance(t *testing.T) {
	g := NewGraph()
	a := g.NewPoint(geometry.Pt(0, 0))
	b := g.NewPoint(geometry.Pt(50, 50))
	p, _ := g.NewPointFollowing(a)

	if err := g.FollowPoint(p, b); err != nil {
		t.Fatal(err)
	}
	diff(t, geometry.Pt(50, 50), g.Point(p))
	if len(g.PointFollowers(a)) != 0 {
		t.Error("old followed point still lists p")
	}
	g.SetPoint(a, geometry.Pt(-1, -1))
	diff(t, geometry.Pt(50, 50), g.Point(p))
}

func TestUnfollowPointFreezes(t *testing.T) {
	g := NewGraph()
	a := g.NewPoint(geometry.Pt(3, 4))
	p, _ := g.NewPointFollowing(a)

	if err := g.FollowPoint(p, PointID{}); err != nil {
		t.Fatal(err)
	}
	g.SetPoint(a, geometry.Pt(9, 9))
	diff(t, geometry.Pt(3, 4), g.Point(p))

	// p is independently movable again.
	g.SetPoint(p, geometry.Pt(1, 2))
	diff(t, geometry.Pt(1, 2), g.Point(p))
	diff(t, geometry.Pt(9, 9), g.Point(a))
}

func TestFollowPointCycle(t *testing.T) {
	g := NewGraph()
	a := g.NewPoint(geometry.Pt(0, 0))
	b, _ := g.NewPointFollowing(a)
	c, _ := g.NewPointFollowing(b)

	if err := g.FollowPoint(a, c); !errors.Is(err, ErrFollowCycle) {
		t.Errorf("FollowPoint(a, c) = %v, want ErrFollowCycle", err)
	}
	if err := g.FollowPoint(a, a); err != nil {
		t.Errorf("self follow = %v, want nil", err)
	}
	if !g.Followed(a).IsZero() {
		t.Error("a must stay independent")
	}
}

func TestConnectedPoints(t *testing.T) {
	g := NewGraph()
	hub := g.NewPoint(geometry.Pt(0, 0))
	a, _ := g.NewPointFollowing(hub)
	b, _ := g.NewPointFollowing(hub)
	c, _ := g.NewPointFollowing(a)
	lone := g.NewPoint(geometry.Pt(5, 5))

	got := g.ConnectedPoints(c)
	if got[0] != c {
		t.Errorf("ConnectedPoints must start with the query point, got %v", got)
	}
	sortIDs := cmpopts.SortSlices(func(x, y PointID) bool { return x.Less(y) })
	diff(t, []PointID{hub, a, b, c}, got, sortIDs)
	diff(t, []PointID{lone}, g.ConnectedPoints(lone))
}

func TestDetachEverything(t *testing.T) {
	g := NewGraph()
	hub := g.NewPoint(geometry.Pt(2, 2))
	a, _ := g.NewPointFollowing(hub)
	b, _ := g.NewPointFollowing(hub)

	g.DetachEverything(hub)
	g.SetPoint(hub, geometry.Pt(100, 100))
	for _, id := range []PointID{a, b} {
		diff(t, geometry.Pt(2, 2), g.Point(id))
		if !g.Followed(id).IsZero() {
			t.Errorf("%v still follows", id)
		}
	}
}

func TestOnMove(t *testing.T) {
	g := NewGraph()
	a := g.NewPoint(geometry.Pt(0, 0))
	p, _ := g.NewPointFollowing(a)

	var moves int
	cancel := g.OnMove(p, func(id PointID) {
		if id != p {
			t.Errorf("OnMove reported %v, want %v", id, p)
		}
		moves++
	})
	g.SetPoint(a, geometry.Pt(1, 0))
	g.SetPoint(a, geometry.Pt(2, 3))
	cancel()
	g.SetPoint(a, geometry.Pt(9, 9))
	if moves != 3 {
		t.Errorf("moves = %d, want 3", moves)
	}
}

func TestReleasePoint(t *testing.T) {
	g := NewGraph()
	terminal := g.NewPoint(geometry.Pt(4, 4))
	end, _ := g.NewPointFollowing(terminal)
	before, _ := g.Stats()

	g.ReleasePoint(terminal)
	if g.PointAlive(terminal) {
		t.Fatal("terminal should be released")
	}
	if !g.Followed(end).IsZero() {
		t.Error("end should be orphaned")
	}
	diff(t, geometry.Pt(4, 4), g.Point(end))

	values, points := g.Stats()
	if values != before-2 || points != 1 {
		t.Errorf("Stats = (%d, %d), want (%d, 1)", values, points, before-2)
	}
	if _, err := g.NewPointFollowing(terminal); !errors.Is(err, ErrStaleCell) {
		t.Errorf("following a released point = %v, want ErrStaleCell", err)
	}
}

func TestPointIDKeyRoundTrip(t *testing.T) {
	g := NewGraph()
	for i := 0; i < 3; i++ {
		g.NewPoint(geometry.Pt(0, 0))
	}
	id := g.NewPoint(geometry.Pt(1, 1))
	if got := PointIDFromKey(id.Key()); got != id {
		t.Errorf("PointIDFromKey(Key()) = %v, want %v", got, id)
	}
}
