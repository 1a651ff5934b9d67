package ports

import (
	"context"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
)

// PackageRepository persists the packages of a shipment. Callers lock the
// owning shipment before writing.
type PackageRepository interface {
	Add(ctx context.Context, p *shipment.Package) error
	Update(ctx context.Context, p *shipment.Package) error
	Get(ctx context.Context, id kernel.UUID) (*shipment.Package, error)

	// ListByShipment returns packages in sub-tracking order (A, B, ... Z, AA).
	ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.Package, error)
}
