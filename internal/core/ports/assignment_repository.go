package ports

import (
	"context"

	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
)

// AssignmentRepository persists driver assignments. Callers lock the owning
// shipment before writing, which makes the active-pair check race free.
type AssignmentRepository interface {
	// Add inserts an assignment. A second active assignment for the same
	// shipment and type fails with errs.ErrConflict.
	Add(ctx context.Context, a *assignment.Assignment) error

	// Update stores a new state. Activating a second assignment for the same
	// shipment and type fails with errs.ErrConflict.
	Update(ctx context.Context, a *assignment.Assignment) error

	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// ListByShipment returns assignments oldest first.
	ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*assignment.Assignment, error)

	// FindActive returns the accepted or in-progress assignment of the given
	// type for a shipment, or nil when there is none.
	FindActive(ctx context.Context, shipmentID kernel.UUID, t assignment.Type) (*assignment.Assignment, error)
}
