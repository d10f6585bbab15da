// Command routetest routes a wire through a list of pins and prints the
// resulting orthogonal path.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"schematic-core/internal/cell"
	"schematic-core/internal/route"
	"schematic-core/internal/shape"
	"schematic-core/pkg/geometry"
)

func parsePoint(s string) (geometry.Point2D, error) {
	x, y, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return geometry.Point2D{}, fmt.Errorf("point %q: want x,y", s)
	}
	px, err := strconv.ParseFloat(x, 64)
	if err != nil {
		return geometry.Point2D{}, fmt.Errorf("point %q: %w", s, err)
	}
	py, err := strconv.ParseFloat(y, 64)
	if err != nil {
		return geometry.Point2D{}, fmt.Errorf("point %q: %w", s, err)
	}
	return geometry.Point2D{X: px, Y: py}, nil
}

func parsePoints(s string) ([]geometry.Point2D, error) {
	var pts []geometry.Point2D
	for _, f := range strings.Fields(s) {
		p, err := parsePoint(f)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func printPath(label string, path []geometry.Point2D) {
	fmt.Printf("%s (%d points, orthogonal=%v)\n", label, len(path), route.IsOrthogonal(path))
	fmt.Printf("  %-4s %10s %10s\n", "#", "X", "Y")
	for i, p := range path {
		fmt.Printf("  %-4d %10.2f %10.2f\n", i, p.X, p.Y)
	}
}

func main() {
	pinsFlag := flag.String("pins", "10,20 30,30", "Space-separated x,y pins: start, vias, end")
	moveFlag := flag.String("move", "", "Move the end pin to x,y and print the rerouted path")
	flag.Parse()

	pins, err := parsePoints(*pinsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid pins: %v\n", err)
		os.Exit(1)
	}
	if len(pins) < 2 {
		fmt.Println("Usage: routetest -pins \"x,y x,y [x,y ...]\" [-move x,y]")
		os.Exit(1)
	}

	printPath("Path", route.Orthogonal(pins))

	if *moveFlag == "" {
		return
	}
	to, err := parsePoint(*moveFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid move: %v\n", err)
		os.Exit(1)
	}

	sc := shape.NewScene(cell.NewGraph())
	g := sc.Graph()
	wire := sc.NewShape(shape.Wire, "wire", []shape.Entry{shape.AtPoint(pins[0]), shape.AtPoint(pins[len(pins)-1])}, nil)
	var vias []route.Via
	for _, p := range pins[1 : len(pins)-1] {
		vias = append(vias, route.Via{Point: g.NewPoint(p), Pinned: true})
	}
	r, err := route.New(wire, vias...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Routing failed: %v\n", err)
		os.Exit(1)
	}
	defer r.Close()

	pts := wire.Points()
	g.SetPoint(pts[len(pts)-1], to)
	fmt.Println()
	printPath(fmt.Sprintf("After moving end to %v (%d reroutes)", to, r.Routes()), r.Path())
}
