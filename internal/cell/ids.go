// Package cell implements the reactive value and point cells diagrams are
// built from.
//
// All cells live in a Graph arena and are addressed by generational
// handles. A cell may follow another cell of the same kind: its value is
// then copied from the source and updated synchronously whenever the
// source changes. Writes to a following cell are forwarded to the root of
// its follow chain.
//
// A Graph is not safe for concurrent use. Every mutation, including all
// cascading propagation and listener callbacks, completes before the call
// returns.
package cell

import (
	"errors"
	"fmt"
)

var (
	// ErrFollowCycle is returned when a follow would make a cell depend on itself.
	ErrFollowCycle = errors.New("cell: follow would create a cycle")

	// ErrStaleCell is returned when a handle refers to a released cell.
	ErrStaleCell = errors.New("cell: handle refers to a released cell")
)

// ValueID addresses a value cell. The zero ValueID means "no cell".
type ValueID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether id is the empty handle.
func (id ValueID) IsZero() bool { return id.gen == 0 }

// Equal reports whether both handles address the same cell.
func (id ValueID) Equal(other ValueID) bool { return id == other }

func (id ValueID) String() string {
	if id.IsZero() {
		return "v-"
	}
	return fmt.Sprintf("v%d.%d", id.index, id.gen)
}

// PointID addresses a point cell. The zero PointID means "no point".
type PointID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether id is the empty handle.
func (id PointID) IsZero() bool { return id.gen == 0 }

// Equal reports whether both handles address the same point.
func (id PointID) Equal(other PointID) bool { return id == other }

func (id PointID) String() string {
	if id.IsZero() {
		return "p-"
	}
	return fmt.Sprintf("p%d.%d", id.index, id.gen)
}

// Key packs the handle into an int64, suitable as a graph node ID.
func (id PointID) Key() int64 {
	return int64(id.index)<<32 | int64(id.gen)
}

// PointIDFromKey is the inverse of PointID.Key.
func PointIDFromKey(key int64) PointID {
	return PointID{index: uint32(key >> 32), gen: uint32(key)}
}

// Less orders handles by slot index, then generation.
func (id PointID) Less(other PointID) bool {
	if id.index != other.index {
		return id.index < other.index
	}
	return id.gen < other.gen
}

// OwnerID identifies the shape that owns a point. It is a weak
// back-reference: the cell package never dereferences it.
type OwnerID uint32

// NoOwner marks an unowned point.
const NoOwner OwnerID = 0

// Sink receives the rounded value of a cell every time it changes.
// Rendering layers use it to keep a drawable's native position attribute
// in sync without the core knowing about any drawing API.
type Sink interface {
	SetMirroredValue(v int)
}

// nextGen advances a slot generation, skipping zero.
func nextGen(gen uint32) uint32 {
	gen++
	if gen == 0 {
		gen = 1
	}
	return gen
}
