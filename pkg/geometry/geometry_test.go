package geometry

import (
	"math"
	"testing"
)

func TestFromPolar(t *testing.T) {
	center := Pt(10, 10)
	tests := []struct {
		angle float64
		want  Point2D
	}{
		{0, Pt(20, 10)},
		{math.Pi / 2, Pt(10, 0)},
		{math.Pi, Pt(0, 10)},
		{-math.Pi / 2, Pt(10, 20)},
	}
	for _, tt := range tests {
		if got := FromPolar(center, 10, tt.angle); !got.Near(tt.want, 1e-9) {
			t.Errorf("FromPolar(%v) = %v, want %v", tt.angle, got, tt.want)
		}
	}
}

func TestSharesAxis(t *testing.T) {
	if !Pt(1, 2).SharesAxis(Pt(1, 5)) {
		t.Error("vertical segment should share x")
	}
	if !Pt(1, 2).SharesAxis(Pt(7, 2)) {
		t.Error("horizontal segment should share y")
	}
	if Pt(1, 2).SharesAxis(Pt(3, 4)) {
		t.Error("diagonal segment should not share an axis")
	}
}

func TestBoundingBox(t *testing.T) {
	got := BoundingBox([]Point2D{Pt(3, 4), Pt(-1, 10), Pt(5, 2)})
	want := Rect{X: -1, Y: 2, Width: 6, Height: 8}
	if got != want {
		t.Errorf("BoundingBox = %+v, want %+v", got, want)
	}
	if (BoundingBox(nil) != Rect{}) {
		t.Error("empty input should give a zero rect")
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Point2D{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	if !PointInPolygon(Pt(5, 5), square) {
		t.Error("center should be inside")
	}
	if PointInPolygon(Pt(15, 5), square) {
		t.Error("point right of square should be outside")
	}
}

func TestDistanceToSegment(t *testing.T) {
	if d := DistanceToSegment(Pt(5, 3), Pt(0, 0), Pt(10, 0)); d != 3 {
		t.Errorf("distance = %v, want 3", d)
	}
	if d := DistanceToSegment(Pt(-3, 4), Pt(0, 0), Pt(10, 0)); d != 5 {
		t.Errorf("distance past the end = %v, want 5", d)
	}
}
