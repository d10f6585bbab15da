package netlist

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"

	"schematic-core/internal/cell"
)

// Owners resolves owner ids to shapes. *shape.Scene implements it.
type Owners interface {
	// Owners returns every live shape id.
	Owners() []cell.OwnerID

	// IsRouting reports whether the shape is a routing shape (a wire).
	IsRouting(id cell.OwnerID) bool

	// PointsOf returns the shape's ordered point list.
	PointsOf(id cell.OwnerID) []cell.PointID
}

// connectivityGraph builds an undirected graph whose nodes are point
// handles. Follow relations become edges, and the points of each routing
// shape are chained so a walk that reaches one point of a wire continues
// through the wire's other points. Points of non-routing shapes are not
// joined to each other.
func connectivityGraph(sc Owners, g *cell.Graph, extra ...cell.PointID) *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	seen := make(map[cell.PointID]bool)

	var addFollowEdges func(p cell.PointID)
	addFollowEdges = func(p cell.PointID) {
		if seen[p] || !g.PointAlive(p) {
			return
		}
		for _, q := range g.ConnectedPoints(p) {
			seen[q] = true
			if ug.Node(q.Key()) == nil {
				ug.AddNode(simple.Node(q.Key()))
			}
			if f := g.Followed(q); !f.IsZero() && f != q {
				ug.SetEdge(ug.NewEdge(simple.Node(q.Key()), simple.Node(f.Key())))
			}
		}
	}

	for _, owner := range sc.Owners() {
		points := sc.PointsOf(owner)
		for _, p := range points {
			addFollowEdges(p)
		}
		if !sc.IsRouting(owner) {
			continue
		}
		for i := 0; i+1 < len(points); i++ {
			a, b := points[i], points[i+1]
			if a == b || !g.PointAlive(a) || !g.PointAlive(b) {
				continue
			}
			ug.SetEdge(ug.NewEdge(simple.Node(a.Key()), simple.Node(b.Key())))
		}
	}
	for _, p := range extra {
		addFollowEdges(p)
	}
	return ug
}

// isTerminal reports whether p is owned by a non-routing shape.
func isTerminal(sc Owners, g *cell.Graph, p cell.PointID) bool {
	owner := g.Owner(p)
	return owner != cell.NoOwner && !sc.IsRouting(owner)
}

// Connections returns the terminal points reachable from start through
// follow relations and routing shapes, deduplicated and sorted by handle.
// Intermediate wire points are walked through but never reported.
func Connections(sc Owners, g *cell.Graph, start ...cell.PointID) []cell.PointID {
	ug := connectivityGraph(sc, g, start...)

	var terminals []cell.PointID
	bf := traverse.BreadthFirst{
		Visit: func(n graph.Node) {
			p := cell.PointIDFromKey(n.ID())
			if isTerminal(sc, g, p) {
				terminals = append(terminals, p)
			}
		},
	}
	// The walker keeps its visited set across walks, so reconverging
	// paths and repeated start points are expanded once.
	for _, p := range start {
		n := ug.Node(p.Key())
		if n == nil {
			continue
		}
		bf.Walk(ug, n, nil)
	}
	sortPoints(terminals)
	return terminals
}

// ShapeConnections returns the terminals connected to any point of the
// shape registered under id.
func ShapeConnections(sc Owners, g *cell.Graph, id cell.OwnerID) []cell.PointID {
	return Connections(sc, g, sc.PointsOf(id)...)
}

// Extract partitions every terminal of the scene into groups joined by
// wires or follow relations. Terminals with nothing attached form
// single-member groups. Groups are sorted by their first handle.
func Extract(sc Owners, g *cell.Graph) [][]cell.PointID {
	ug := connectivityGraph(sc, g)

	var groups [][]cell.PointID
	for _, comp := range topo.ConnectedComponents(ug) {
		var group []cell.PointID
		for _, n := range comp {
			if p := cell.PointIDFromKey(n.ID()); isTerminal(sc, g, p) {
				group = append(group, p)
			}
		}
		if len(group) == 0 {
			continue
		}
		sortPoints(group)
		groups = append(groups, group)
	}
	slices.SortFunc(groups, func(a, b []cell.PointID) int {
		return comparePoints(a[0], b[0])
	})
	return groups
}

func comparePoints(a, b cell.PointID) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}

func sortPoints(ps []cell.PointID) {
	slices.SortFunc(ps, comparePoints)
}
