package session

import (
	"encoding/json"
	"os"

	"schematic-core/pkg/geometry"
)

// ShapeData is the serialized form of a shape.
type ShapeData struct {
	ID     uint32             `json:"id"`
	Kind   string             `json:"kind"`
	Class  string             `json:"class,omitempty"`
	Points []geometry.Point2D `json:"points"`
}

// NetData is the serialized form of an extracted net.
type NetData struct {
	Name      string             `json:"name"`
	Terminals []geometry.Point2D `json:"terminals"`
}

// Snapshot is a point-in-time export of a session.
type Snapshot struct {
	Version int         `json:"version"`
	Shapes  []ShapeData `json:"shapes"`
	Nets    []NetData   `json:"nets"`
}

// Snapshot captures the current shapes and nets.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{Version: 1}
	for _, sh := range s.scene.Shapes() {
		snap.Shapes = append(snap.Shapes, ShapeData{
			ID:     uint32(sh.ID()),
			Kind:   sh.Kind().String(),
			Class:  sh.ClassName(),
			Points: sh.Coordinates(),
		})
	}
	for _, n := range s.Netlist() {
		nd := NetData{Name: n.Name}
		for _, p := range n.Terminals {
			nd.Terminals = append(nd.Terminals, s.graph.Point(p))
		}
		snap.Nets = append(snap.Nets, nd)
	}
	return snap
}

// SaveSnapshot writes the snapshot as indented JSON to path.
func (s *Session) SaveSnapshot(path string) error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
