package cell

import (
	"math"
	"slices"

	"schematic-core/internal/diag"
)

type listener struct {
	id uint64
	fn func(float64)
}

type valueSlot struct {
	gen  uint32
	live bool

	value     float64
	source    ValueID
	followers []ValueID // registration order
	sink      Sink
	listeners []listener
}

// value returns the slot for id, or nil if id is stale.
// The pointer is only valid until the next allocation or callback.
func (g *Graph) value(id ValueID) *valueSlot {
	if id.IsZero() || int(id.index) >= len(g.values) {
		return nil
	}
	s := &g.values[id.index]
	if !s.live || s.gen != id.gen {
		return nil
	}
	return s
}

// NewValue allocates an independent value cell.
func (g *Graph) NewValue(v float64) ValueID {
	var index uint32
	if n := len(g.freeValues); n > 0 {
		index = g.freeValues[n-1]
		g.freeValues = g.freeValues[:n-1]
	} else {
		index = uint32(len(g.values))
		g.values = append(g.values, valueSlot{})
	}
	s := &g.values[index]
	if s.gen == 0 {
		s.gen = 1
	}
	s.live = true
	s.value = v
	return ValueID{index: index, gen: s.gen}
}

// NewValueFollowing allocates a value cell that follows src.
func (g *Graph) NewValueFollowing(src ValueID) (ValueID, error) {
	if g.value(src) == nil {
		return ValueID{}, ErrStaleCell
	}
	id := g.NewValue(g.value(src).value)
	if err := g.Follow(id, src); err != nil {
		g.ReleaseValue(id)
		return ValueID{}, err
	}
	return id, nil
}

// Alive reports whether id refers to a live value cell.
func (g *Graph) Alive(id ValueID) bool {
	return g.value(id) != nil
}

// Value returns the current value of id, or 0 for a stale handle.
func (g *Graph) Value(id ValueID) float64 {
	if s := g.value(id); s != nil {
		return s.value
	}
	return 0
}

// Source returns the cell id follows, or the zero ValueID.
func (g *Graph) Source(id ValueID) ValueID {
	if s := g.value(id); s != nil {
		return s.source
	}
	return ValueID{}
}

// Followers returns the cells following id in registration order.
func (g *Graph) Followers(id ValueID) []ValueID {
	if s := g.value(id); s != nil {
		return slices.Clone(s.followers)
	}
	return nil
}

// SetValue writes v to id. A following cell forwards the write to the root
// of its follow chain. Writing the current value notifies nobody.
func (g *Graph) SetValue(id ValueID, v float64) {
	s := g.value(id)
	if s == nil {
		diag.Logger().Debug("set on released value cell ignored", "cell", id)
		return
	}
	for !s.source.IsZero() {
		id = s.source
		if s = g.value(id); s == nil {
			return
		}
	}
	g.assign(id, v)
}

// assign stores v into id without forwarding and propagates on change.
func (g *Graph) assign(id ValueID, v float64) {
	s := g.value(id)
	if s == nil || s.value == v {
		return
	}
	s.value = v
	g.notify(id)
}

// notify mirrors the value of id into its sink, fires its listeners and
// pushes the value depth-first to its followers.
func (g *Graph) notify(id ValueID) {
	s := g.value(id)
	if s == nil {
		return
	}
	v := s.value
	if s.sink != nil {
		s.sink.SetMirroredValue(int(math.Round(v)))
	}
	for _, l := range slices.Clone(s.listeners) {
		l.fn(v)
	}

	// Listeners may have released the cell or changed it re-entrantly.
	s = g.value(id)
	if s == nil {
		return
	}
	for _, f := range slices.Clone(s.followers) {
		cur := g.value(id)
		if cur == nil {
			return
		}
		if fs := g.value(f); fs == nil || fs.source != id {
			continue
		}
		g.assign(f, cur.value)
	}
}

// Follow makes id follow src. A zero src stops following and leaves the
// value where it is. Following itself is a no-op. Following a cell that
// already depends on id returns ErrFollowCycle and changes nothing.
func (g *Graph) Follow(id, src ValueID) error {
	if g.value(id) == nil {
		return ErrStaleCell
	}
	if src.IsZero() {
		g.detachValue(id)
		return nil
	}
	if src == id {
		return nil
	}
	if g.value(src) == nil {
		return ErrStaleCell
	}
	if g.valueDependsOn(src, id) {
		diag.Logger().Debug("value follow cycle rejected", "cell", id, "source", src)
		return ErrFollowCycle
	}

	g.detachValue(id)
	ss := g.value(src)
	ss.followers = append(ss.followers, id)
	s := g.value(id)
	s.source = src
	s.value = ss.value
	g.notify(id)
	return nil
}

// valueDependsOn reports whether id's source chain reaches target.
func (g *Graph) valueDependsOn(id, target ValueID) bool {
	for cur := id; !cur.IsZero(); {
		if cur == target {
			return true
		}
		s := g.value(cur)
		if s == nil {
			return false
		}
		cur = s.source
	}
	return false
}

func (g *Graph) detachValue(id ValueID) {
	s := g.value(id)
	if s == nil || s.source.IsZero() {
		return
	}
	if ss := g.value(s.source); ss != nil {
		ss.followers = removeValueID(ss.followers, id)
	}
	s.source = ValueID{}
}

// OnChange registers fn to run after every change of id. The returned
// function unregisters it.
func (g *Graph) OnChange(id ValueID, fn func(float64)) (cancel func()) {
	s := g.value(id)
	if s == nil {
		return func() {}
	}
	g.nextListener++
	lid := g.nextListener
	s.listeners = append(s.listeners, listener{id: lid, fn: fn})
	return func() {
		s := g.value(id)
		if s == nil {
			return
		}
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool { return l.id == lid })
	}
}

// SetSink installs the external sink for id and mirrors the current value
// into it immediately. A nil sink removes it.
func (g *Graph) SetSink(id ValueID, sink Sink) {
	s := g.value(id)
	if s == nil {
		return
	}
	s.sink = sink
	if sink != nil {
		sink.SetMirroredValue(int(math.Round(s.value)))
	}
}

// ReleaseValue destroys id. It stops following its source and every
// follower is orphaned at its current value.
func (g *Graph) ReleaseValue(id ValueID) {
	s := g.value(id)
	if s == nil {
		return
	}
	g.detachValue(id)
	s = g.value(id)
	for _, f := range s.followers {
		if fs := g.value(f); fs != nil && fs.source == id {
			fs.source = ValueID{}
		}
	}
	*s = valueSlot{gen: nextGen(s.gen)}
	g.freeValues = append(g.freeValues, id.index)
}
