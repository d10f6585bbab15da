package shape

import "schematic-core/internal/cell"

// Hooks is implemented by whatever renders a shape. The core calls it
// synchronously from point-list reconciliation.
type Hooks interface {
	// PointAdded is called when a point becomes owned by the shape.
	PointAdded(s *Shape, p cell.PointID)

	// PointRemoved is called once for every point dropped from the shape.
	PointRemoved(s *Shape, p cell.PointID)

	// PointsFinalized is called once per reconciliation with the final
	// ordered point list.
	PointsFinalized(s *Shape, points []cell.PointID)
}

// ShapeRemover is an optional extension of Hooks notified when a shape is
// destroyed, after PointRemoved has run for each of its points.
type ShapeRemover interface {
	ShapeRemoved(s *Shape)
}

// NopHooks ignores every notification.
type NopHooks struct{}

func (NopHooks) PointAdded(*Shape, cell.PointID)        {}
func (NopHooks) PointRemoved(*Shape, cell.PointID)      {}
func (NopHooks) PointsFinalized(*Shape, []cell.PointID) {}
