// Package geometry provides basic geometric types used throughout the diagram core.
package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Point2D represents a 2D point with floating-point coordinates.
// Screen convention: X grows to the right, Y grows downward.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Pt is shorthand for NewPoint2D.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// Round returns the point with both coordinates rounded to the nearest integer.
func (p Point2D) Round() Point2D {
	return Point2D{X: math.Round(p.X), Y: math.Round(p.Y)}
}

// Near reports whether both coordinates are within tol of other.
func (p Point2D) Near(other Point2D, tol float64) bool {
	return scalar.EqualWithinAbs(p.X, other.X, tol) && scalar.EqualWithinAbs(p.Y, other.Y, tol)
}

// SharesAxis reports whether the segment p→other is horizontal or vertical.
func (p Point2D) SharesAxis(other Point2D) bool {
	return p.X == other.X || p.Y == other.Y
}

// FromPolar returns the point at radius and angle from center. Angles are
// measured counter-clockwise as seen on screen, so +π/2 is directly above
// the center.
func FromPolar(center Point2D, radius, angle float64) Point2D {
	sin, cos := math.Sincos(angle)
	return Point2D{X: center.X + radius*cos, Y: center.Y - radius*sin}
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Rect represents a rectangle with floating-point coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
func BoundingBox(points []Point2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
