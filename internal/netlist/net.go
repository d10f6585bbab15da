// Package netlist derives electrical connectivity from the follow graph
// and keeps named nets in an explicit per-session namespace.
package netlist

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"schematic-core/internal/cell"
)

var (
	// ErrDuplicateNet is returned when a net name is already taken in a namespace.
	ErrDuplicateNet = errors.New("netlist: duplicate net name")

	// ErrUnknownNet is returned when a net name is not registered.
	ErrUnknownNet = errors.New("netlist: unknown net")
)

// Net is a named label over points considered joined. Its connectivity
// is derived on every query, never cached.
type Net struct {
	name    string
	members []cell.PointID
}

// Name returns the net name.
func (n *Net) Name() string { return n.name }

// Members returns the points the net was labelled with.
func (n *Net) Members() []cell.PointID { return slices.Clone(n.members) }

// Add labels p as part of the net. Adding a member twice does nothing.
func (n *Net) Add(p cell.PointID) {
	if !slices.Contains(n.members, p) {
		n.members = append(n.members, p)
	}
}

// Terminals returns every terminal connected to any member.
func (n *Net) Terminals(sc Owners, g *cell.Graph) []cell.PointID {
	return Connections(sc, g, n.members...)
}

// Namespace is the registry of net names for one diagram session.
type Namespace struct {
	nets map[string]*Net
	seq  int
}

// NewNamespace creates an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{nets: make(map[string]*Net)}
}

// NextName returns the next unused auto-generated name.
func (ns *Namespace) NextName() string {
	for {
		ns.seq++
		name := autoName(ns.seq)
		if _, taken := ns.nets[name]; !taken {
			return name
		}
	}
}

// NewNet registers a net. An empty name is replaced by NextName. A name
// already registered returns ErrDuplicateNet.
func (ns *Namespace) NewNet(name string, members ...cell.PointID) (*Net, error) {
	if name == "" {
		name = ns.NextName()
	}
	if _, taken := ns.nets[name]; taken {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateNet, name)
	}
	n := &Net{name: name}
	for _, p := range members {
		n.Add(p)
	}
	ns.nets[name] = n
	return n, nil
}

// Net returns the net registered under name, or nil.
func (ns *Namespace) Net(name string) *Net {
	return ns.nets[name]
}

// Names returns the registered names in sorted order.
func (ns *Namespace) Names() []string {
	names := make([]string, 0, len(ns.nets))
	for name := range ns.nets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Remove unregisters name.
func (ns *Namespace) Remove(name string) error {
	if _, ok := ns.nets[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNet, name)
	}
	delete(ns.nets, name)
	return nil
}

// Rename moves the net registered under oldName to newName.
func (ns *Namespace) Rename(oldName, newName string) error {
	n, ok := ns.nets[oldName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNet, oldName)
	}
	if oldName == newName {
		return nil
	}
	if _, taken := ns.nets[newName]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicateNet, newName)
	}
	delete(ns.nets, oldName)
	n.name = newName
	ns.nets[newName] = n
	return nil
}

// Labeled is a connected group of terminals with its display name.
type Labeled struct {
	Name      string
	Terminals []cell.PointID
}

// Label names the connected groups produced by Extract. It does not
// change the namespace. A group takes the best name among the registered
// nets whose terminals touch it. When a user name is split across several
// groups the later groups get instance names ("GND#2"); an auto name
// already given to an earlier group is not reused. Groups without a name
// get auto names the namespace has not handed out yet.
func (ns *Namespace) Label(sc Owners, g *cell.Graph, groups [][]cell.PointID) []Labeled {
	owner := make(map[cell.PointID]string)
	for _, name := range ns.Names() {
		for _, p := range ns.nets[name].Terminals(sc, g) {
			if cur, ok := owner[p]; ok {
				owner[p] = BetterNetName(cur, name)
			} else {
				owner[p] = name
			}
		}
	}

	labeled := make(map[string]bool)
	used := make(map[string]int) // groups labelled per base name
	free := func(name string) bool {
		_, registered := ns.nets[name]
		return !registered && !labeled[name]
	}
	seq := ns.seq
	fresh := func() string {
		for {
			seq++
			if name := autoName(seq); free(name) {
				return name
			}
		}
	}

	out := make([]Labeled, 0, len(groups))
	for _, group := range groups {
		name := ""
		for _, p := range group {
			if cand, ok := owner[p]; ok {
				if name == "" {
					name = cand
				} else {
					name = BetterNetName(name, cand)
				}
			}
		}
		base := BaseNetName(name)
		switch {
		case name == "":
			name = fresh()
		case used[base] == 0 && !labeled[name]:
		case IsAutoName(base):
			name = fresh()
		default:
			n := used[base] + 1
			for !free(instanceName(base, n)) {
				n++
			}
			name = instanceName(base, n)
		}
		used[BaseNetName(name)]++
		labeled[name] = true
		out = append(out, Labeled{Name: name, Terminals: slices.Clone(group)})
	}
	return out
}
