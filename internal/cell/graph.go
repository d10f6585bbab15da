package cell

// Graph is the arena that owns every value and point cell of a diagram
// session.
type Graph struct {
	values     []valueSlot
	freeValues []uint32

	points     []pointSlot
	freePoints []uint32

	nextListener uint64
}

// NewGraph creates an empty cell graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Stats returns the number of live value and point cells.
func (g *Graph) Stats() (values, points int) {
	for i := range g.values {
		if g.values[i].live {
			values++
		}
	}
	for i := range g.points {
		if g.points[i].live {
			points++
		}
	}
	return values, points
}

// removeValueID deletes the first occurrence of id, keeping order.
func removeValueID(ids []ValueID, id ValueID) []ValueID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// removePointID deletes the first occurrence of id, keeping order.
func removePointID(ids []PointID, id PointID) []PointID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
