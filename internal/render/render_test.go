package render

import (
	"bytes"
	"errors"
	"image/png"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"schematic-core/internal/cell"
	"schematic-core/internal/config"
	"schematic-core/internal/diag"
	"schematic-core/internal/netlist"
	"schematic-core/internal/shape"
	"schematic-core/pkg/geometry"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func newScene() (*shape.Scene, *Backend) {
	sc := shape.NewScene(cell.NewGraph())
	return sc, NewBackend(sc)
}

func TestSinksMirrorRoundedCoordinates(t *testing.T) {
	sc, b := newScene()
	s := sc.NewShape(shape.Polyline, "", []shape.Entry{shape.At(1.4, 2.6), shape.At(10, 10)}, b)
	p := s.Points()[0]

	h, ok := b.Handle(p)
	if !ok {
		t.Fatal("no handle for added point")
	}
	diff(t, 1, h.X)
	diff(t, 3, h.Y)

	sc.Graph().SetPoint(p, geometry.Pt(-7.5, 40.49))
	h, _ = b.Handle(p)
	diff(t, -8, h.X)
	diff(t, 40, h.Y)
}

func TestFollowingPointMirrorsTarget(t *testing.T) {
	sc, b := newScene()
	g := sc.Graph()
	part := sc.NewShape(shape.Line, "", []shape.Entry{shape.At(0, 0)}, b)
	wire := sc.NewShape(shape.Wire, "", []shape.Entry{shape.At(50, 50), shape.At(0, 0)}, b)
	end := wire.Points()[1]
	if err := g.FollowPoint(end, part.Anchor()); err != nil {
		t.Fatal(err)
	}

	part.MoveBy(12, 3)
	h, _ := b.Handle(end)
	diff(t, Handle{ID: h.ID, X: 12, Y: 3}, h)
}

func TestBatchingAndRemoval(t *testing.T) {
	sc, b := newScene()
	s := sc.NewShape(shape.Polygon, "", []shape.Entry{shape.At(0, 0), shape.At(5, 0), shape.At(0, 5)}, b)
	diff(t, 1, b.Finalized)
	diff(t, s.Points(), b.Batch(s.ID()))
	diff(t, 3, b.Len())

	dropped := s.Points()[2]
	if _, err := s.RemoveAt(2); err != nil {
		t.Fatal(err)
	}
	diff(t, 2, b.Finalized)
	diff(t, 2, b.Len())
	if _, ok := b.Handle(dropped); ok {
		t.Error("removed point kept its handle")
	}

	s.Destroy()
	diff(t, 0, b.Len())
	if got := b.Batch(s.ID()); len(got) != 0 {
		t.Errorf("Batch() after destroy = %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	sc, b := newScene()
	g := sc.Graph()
	r1 := sc.NewShape(shape.Line, "part", []shape.Entry{shape.At(0, 0), shape.At(20, 0)}, b)
	r2 := sc.NewShape(shape.Line, "part", []shape.Entry{shape.At(80, 50), shape.At(100, 50)}, b)
	w := sc.NewShape(shape.Wire, "wire", []shape.Entry{shape.At(20, 0), shape.At(80, 50)}, b)
	if err := g.FollowPoint(w.Points()[0], r1.Points()[1]); err != nil {
		t.Fatal(err)
	}
	if err := g.FollowPoint(w.Points()[1], r2.Points()[0]); err != nil {
		t.Fatal(err)
	}
	sc.NewShape(shape.Group, "frame", []shape.Entry{shape.At(0, 0), shape.At(100, 50)}, b)

	ns := netlist.NewNamespace()
	nets := ns.Label(sc, g, netlist.Extract(sc, g))

	opts := config.DefaultRenderOptions()
	var buf bytes.Buffer
	if err := b.WritePNG(&buf, opts, nets); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 248, img.Bounds().Dx())
	diff(t, 148, img.Bounds().Dy())

	orig := diag.Logger()
	t.Cleanup(func() { diag.SetLogger(orig) })
	var log bytes.Buffer
	diag.SetLogger(slog.New(slog.NewTextHandler(&log, nil)))

	path := filepath.Join(t.TempDir(), "scene.png")
	opts.Labels = false
	if err := b.SavePNG(path, opts, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(log.String(), "export written") {
		t.Errorf("missing export record in %q", log.String())
	}
}

func TestWritePNGEmpty(t *testing.T) {
	_, b := newScene()
	var buf bytes.Buffer
	if err := b.WritePNG(&buf, config.DefaultRenderOptions(), nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("WritePNG() error = %v, want ErrEmpty", err)
	}
}
