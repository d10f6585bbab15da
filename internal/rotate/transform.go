// Package rotate turns the points of registered shapes about a centre
// point, applying only the change since the angle each shape last saw.
package rotate

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"schematic-core/internal/cell"
	"schematic-core/internal/diag"
	"schematic-core/pkg/geometry"
)

// Target is a shape whose points a Transform rotates.
type Target interface {
	ID() cell.OwnerID
	Points() []cell.PointID
}

type listener struct {
	id uint64
	fn func(degrees float64)
}

// Transform rotates its targets about a centre point. It is not safe for
// concurrent use.
type Transform struct {
	graph   *cell.Graph
	center  cell.PointID
	degrees float64

	targets []Target
	applied map[cell.OwnerID]float64 // radians last used per target

	listeners []listener
	nextID    uint64
}

// New creates a transform about center at angle zero.
func New(g *cell.Graph, center cell.PointID) *Transform {
	return &Transform{
		graph:   g,
		center:  center,
		applied: make(map[cell.OwnerID]float64),
	}
}

// Angle returns the current angle in degrees.
func (t *Transform) Angle() float64 { return t.degrees }

// Center returns the point rotated about.
func (t *Transform) Center() cell.PointID { return t.center }

// SetCenter changes the centre point. Already applied rotations stay.
func (t *Transform) SetCenter(center cell.PointID) { t.center = center }

// Targets returns the registered targets in order.
func (t *Transform) Targets() []Target { return slices.Clone(t.targets) }

// AddTarget registers s. Adding a registered target does nothing. The
// target's current pose is taken to be at the current angle, so adding
// does not move it.
func (t *Transform) AddTarget(s Target) {
	if t.index(s.ID()) >= 0 {
		return
	}
	t.targets = append(t.targets, s)
	t.applied[s.ID()] = geometry.Radians(t.degrees)
}

// RemoveTarget unregisters s. Removing an unknown target does nothing.
func (t *Transform) RemoveTarget(s Target) {
	i := t.index(s.ID())
	if i < 0 {
		return
	}
	t.targets = slices.Delete(t.targets, i, i+1)
	delete(t.applied, s.ID())
}

func (t *Transform) index(id cell.OwnerID) int {
	return slices.IndexFunc(t.targets, func(s Target) bool { return s.ID() == id })
}

// OnChange registers fn to run whenever the angle changes, before targets
// are rotated.
func (t *Transform) OnChange(fn func(degrees float64)) (cancel func()) {
	t.nextID++
	id := t.nextID
	t.listeners = append(t.listeners, listener{id: id, fn: fn})
	return func() {
		t.listeners = slices.DeleteFunc(t.listeners, func(l listener) bool { return l.id == id })
	}
}

// SetAngle rotates every target to degrees. Setting the current angle is a
// no-op, so repeating an angle cannot accumulate drift.
func (t *Transform) SetAngle(degrees float64) {
	if degrees == t.degrees {
		return
	}
	t.degrees = degrees
	for _, l := range slices.Clone(t.listeners) {
		l.fn(degrees)
	}

	rad := geometry.Radians(degrees)
	for _, s := range slices.Clone(t.targets) {
		delta := rad - t.applied[s.ID()]
		if delta != 0 {
			t.rotate(s, delta)
		}
		t.applied[s.ID()] = rad
	}
}

func (t *Transform) rotate(s Target, delta float64) {
	c := t.graph.Point(t.center)
	origin := r2.Vec{X: c.X, Y: -c.Y}
	for _, id := range s.Points() {
		if !t.graph.PointAlive(id) {
			diag.Logger().Debug("released point skipped by rotation", "shape", s.ID(), "point", id)
			continue
		}
		p := t.graph.Point(id)
		// Screen y grows downward; flip it so angles turn counter-clockwise.
		off := r2.Sub(r2.Vec{X: p.X, Y: -p.Y}, origin)
		radius := r2.Norm(off)
		angle := math.Atan2(off.Y, off.X)
		t.graph.SetPoint(id, geometry.FromPolar(c, radius, angle+delta))
	}
}
