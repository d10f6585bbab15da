// Package series provides an observed sequence of samples and binds it to
// a polyline so edits to the data redraw the diagram.
package series

import (
	"slices"

	"schematic-core/internal/diag"
)

// Observer receives every mutation of a Series synchronously. Nil fields
// are skipped.
type Observer struct {
	Inserted func(index int, v float64)
	Removed  func(index int, v float64)
	Changed  func(index int, old, v float64)
}

// Series is an ordered list of samples with explicit mutators.
type Series struct {
	values    []float64
	observers []*Observer
}

// New creates a series holding a copy of values.
func New(values ...float64) *Series {
	return &Series{values: slices.Clone(values)}
}

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.values) }

// At returns sample i, or 0 when i is out of range.
func (s *Series) At(i int) float64 {
	if i < 0 || i >= len(s.values) {
		return 0
	}
	return s.values[i]
}

// Values returns a copy of the samples.
func (s *Series) Values() []float64 { return slices.Clone(s.values) }

// Observe registers o. The returned function unregisters it.
func (s *Series) Observe(o *Observer) (cancel func()) {
	s.observers = append(s.observers, o)
	return func() {
		s.observers = slices.DeleteFunc(s.observers, func(x *Observer) bool { return x == o })
	}
}

// Insert adds v before index i. The index is clamped to [0, Len()].
func (s *Series) Insert(i int, v float64) {
	if i < 0 || i > len(s.values) {
		diag.Logger().Debug("series insert index clamped", "index", i, "len", len(s.values))
		i = min(max(i, 0), len(s.values))
	}
	s.values = slices.Insert(s.values, i, v)
	for _, o := range slices.Clone(s.observers) {
		if o.Inserted != nil {
			o.Inserted(i, v)
		}
	}
}

// Append adds v at the end.
func (s *Series) Append(v float64) {
	s.Insert(len(s.values), v)
}

// Remove deletes sample i. Out-of-range indices are ignored.
func (s *Series) Remove(i int) bool {
	if i < 0 || i >= len(s.values) {
		diag.Logger().Debug("series remove index ignored", "index", i, "len", len(s.values))
		return false
	}
	v := s.values[i]
	s.values = slices.Delete(s.values, i, i+1)
	for _, o := range slices.Clone(s.observers) {
		if o.Removed != nil {
			o.Removed(i, v)
		}
	}
	return true
}

// SetAt replaces sample i. Out-of-range indices are ignored, and writing
// the current value notifies nobody.
func (s *Series) SetAt(i int, v float64) bool {
	if i < 0 || i >= len(s.values) {
		diag.Logger().Debug("series set index ignored", "index", i, "len", len(s.values))
		return false
	}
	old := s.values[i]
	if old == v {
		return true
	}
	s.values[i] = v
	for _, o := range slices.Clone(s.observers) {
		if o.Changed != nil {
			o.Changed(i, old, v)
		}
	}
	return true
}
