// Package shape implements diagram shapes as ordered lists of point cells
// and the reconciler that replaces a shape's point list while keeping
// point identity.
package shape

// Kind identifies the variant of a shape.
type Kind int

const (
	Polygon  Kind = iota // closed outline
	Polyline             // open path, e.g. a plotted waveform
	Line                 // two-point segment
	Group                // reference points of a group of shapes
	Wire                 // routing path joining terminals through bends
)

func (k Kind) String() string {
	switch k {
	case Polygon:
		return "Polygon"
	case Polyline:
		return "Polyline"
	case Line:
		return "Line"
	case Group:
		return "Group"
	case Wire:
		return "Wire"
	default:
		return "Unknown"
	}
}

// IsRouting reports whether shapes of this kind only connect other
// shapes. Points owned by routing shapes are never terminals.
func (k Kind) IsRouting() bool {
	return k == Wire
}

// Closed reports whether the last point joins back to the anchor.
func (k Kind) Closed() bool {
	return k == Polygon
}
