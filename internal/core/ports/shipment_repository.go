// Package ports defines the contracts between the lifecycle core and its
// infrastructure: repositories bound to a unit of work, the notification
// outbox and the notification sink.
package ports

import (
	"context"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
)

// ShipmentRepository persists Shipment aggregates.
type ShipmentRepository interface {
	// Add inserts a new shipment. A duplicate tracking number or master
	// tracking id fails with errs.ErrConflict.
	Add(ctx context.Context, s *shipment.Shipment) error

	// Update stores the new state of an existing shipment.
	Update(ctx context.Context, s *shipment.Shipment) error

	// Get loads a shipment without locking it. Use for reads only.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate loads a shipment and locks it until the unit of work ends.
	// Every mutation of a shipment or its dependents starts here, which
	// serializes concurrent operations on the same shipment.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByTrackingNumber loads a shipment by its public tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error)

	// Delete removes a shipment together with its packages, ledger rows and
	// assignments.
	Delete(ctx context.Context, id kernel.UUID) error

	TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error)
	MasterTrackingIDExists(ctx context.Context, masterTrackingID string) (bool, error)
}
