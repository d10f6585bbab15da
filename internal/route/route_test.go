package route

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"schematic-core/internal/cell"
	"schematic-core/internal/shape"
	"schematic-core/pkg/geometry"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func pts(xy ...float64) []geometry.Point2D {
	out := make([]geometry.Point2D, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, geometry.Pt(xy[i], xy[i+1]))
	}
	return out
}

func TestOrthogonal(t *testing.T) {
	tests := []struct {
		name string
		pins []geometry.Point2D
		want []geometry.Point2D
	}{
		{"single bend", pts(10, 20, 30, 30), pts(10, 20, 30, 20, 30, 30)},
		{"already horizontal", pts(0, 5, 40, 5), pts(0, 5, 40, 5)},
		{"already vertical", pts(7, 0, 7, -9), pts(7, 0, 7, -9)},
		{"coincident pins", pts(3, 3, 3, 3), pts(3, 3)},
		{"coincident via", pts(0, 0, 10, 10, 10, 10), pts(0, 0, 10, 0, 10, 10)},
		// Arriving vertically at the via, the next bend keeps going vertically.
		{"continues vertical", pts(0, 0, 0, 10, 20, 30), pts(0, 0, 0, 10, 0, 30, 20, 30)},
		// The first bend ends vertical, so the second one does too.
		{"two bends", pts(0, 0, 10, 10, 30, 40), pts(0, 0, 10, 0, 10, 10, 10, 40, 30, 40)},
		{"empty", nil, nil},
		{"single pin", pts(1, 2), pts(1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Orthogonal(tt.pins)
			diff(t, tt.want, got)
			if !IsOrthogonal(got) {
				t.Errorf("path %v is not orthogonal", got)
			}
		})
	}
}

func TestOrthogonalSharesExactlyOneAxis(t *testing.T) {
	path := Orthogonal(pts(10, 20, 30, 30))
	if len(path) != 3 {
		t.Fatalf("len(path) = %d, want 3", len(path))
	}
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		if (a.X == b.X) == (a.Y == b.Y) {
			t.Errorf("segment %v -> %v does not share exactly one axis", a, b)
		}
	}
}

type countingHooks struct {
	shape.NopHooks
	added, removed int
}

func (h *countingHooks) PointAdded(*shape.Shape, cell.PointID)   { h.added++ }
func (h *countingHooks) PointRemoved(*shape.Shape, cell.PointID) { h.removed++ }

func newWire(t *testing.T, from, to geometry.Point2D) (*cell.Graph, *shape.Shape, *countingHooks) {
	t.Helper()
	sc := shape.NewScene(cell.NewGraph())
	h := &countingHooks{}
	w := sc.NewShape(shape.Wire, "wire", []shape.Entry{shape.AtPoint(from), shape.AtPoint(to)}, h)
	return sc.Graph(), w, h
}

func TestRouterRoutesOnBind(t *testing.T) {
	_, w, _ := newWire(t, geometry.Pt(10, 20), geometry.Pt(30, 30))
	r, err := New(w)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	diff(t, pts(10, 20, 30, 20, 30, 30), r.Path())
	diff(t, 3, w.Len())
}

func TestRouterFollowsPinMoves(t *testing.T) {
	g, w, h := newWire(t, geometry.Pt(0, 0), geometry.Pt(50, 50))
	r, err := New(w)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	bendPoint := w.Points()[1]
	h.added, h.removed = 0, 0

	g.SetPoint(w.Points()[2], geometry.Pt(80, 60))

	diff(t, pts(0, 0, 80, 0, 80, 60), r.Path())
	diff(t, bendPoint, w.Points()[1])
	if h.added != 0 || h.removed != 0 {
		t.Errorf("bend was recreated: %d added, %d removed", h.added, h.removed)
	}

	// Lining the pins up drops the bend.
	g.SetPoint(w.Points()[2], geometry.Pt(80, 0))
	diff(t, pts(0, 0, 80, 0), r.Path())
	diff(t, 1, h.removed)
}

func TestRouterTracksFollowedTerminal(t *testing.T) {
	g, w, _ := newWire(t, geometry.Pt(0, 0), geometry.Pt(40, 40))
	terminal := g.NewPoint(geometry.Pt(40, 40))
	end := w.Points()[1]
	if err := g.FollowPoint(end, terminal); err != nil {
		t.Fatal(err)
	}
	r, err := New(w)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	g.SetPoint(terminal, geometry.Pt(-20, 40))
	diff(t, pts(0, 0, -20, 0, -20, 40), r.Path())
}

func TestRouterVias(t *testing.T) {
	g, w, _ := newWire(t, geometry.Pt(0, 0), geometry.Pt(100, 100))
	pinned := g.NewPoint(geometry.Pt(50, 20))
	loose := g.NewPoint(geometry.Pt(70, 60))
	r, err := New(w, Via{Point: pinned, Pinned: true}, Via{Point: loose})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if !IsOrthogonal(r.Path()) {
		t.Fatalf("path %v is not orthogonal", r.Path())
	}

	before := r.Routes()
	g.SetPoint(loose, geometry.Pt(75, 60))
	diff(t, before, r.Routes())

	g.SetX(pinned, 55)
	if r.Routes() == before {
		t.Error("moving a pinned via did not reroute")
	}
	if !IsOrthogonal(r.Path()) {
		t.Errorf("path %v is not orthogonal", r.Path())
	}
}

func TestRouterClose(t *testing.T) {
	g, w, _ := newWire(t, geometry.Pt(0, 0), geometry.Pt(10, 10))
	r, err := New(w)
	if err != nil {
		t.Fatal(err)
	}
	r.Close()
	n := r.Routes()
	g.SetPoint(w.Points()[2], geometry.Pt(30, 30))
	diff(t, n, r.Routes())
}

func TestRouterReentrantMove(t *testing.T) {
	g, w, _ := newWire(t, geometry.Pt(0, 0), geometry.Pt(10, 10))
	r, err := New(w)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	// A listener that snaps the end pin to a grid moves it again mid-route.
	end := w.Points()[len(w.Points())-1]
	cancel := g.OnMove(end, func(p cell.PointID) {
		snapped := g.Point(p).Scale(0.1).Round().Scale(10)
		g.SetPoint(p, snapped)
	})
	defer cancel()

	g.SetPoint(end, geometry.Pt(33, 47))
	diff(t, pts(0, 0, 30, 0, 30, 50), r.Path())
}

func TestNewShortWire(t *testing.T) {
	sc := shape.NewScene(cell.NewGraph())
	w := sc.NewShape(shape.Wire, "", []shape.Entry{shape.At(0, 0)}, nil)
	if _, err := New(w); err != ErrShortWire {
		t.Errorf("New() error = %v, want ErrShortWire", err)
	}
}
