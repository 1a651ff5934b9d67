package ports

import (
	"context"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/payment"
)

// PaymentRepository persists payments. Callers lock the owning shipment
// before writing.
type PaymentRepository interface {
	// Add inserts a payment. A duplicate transaction id fails with
	// errs.ErrConflict.
	Add(ctx context.Context, p *payment.Payment) error
	Update(ctx context.Context, p *payment.Payment) error
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// ListByShipment returns payments oldest first.
	ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*payment.Payment, error)

	TransactionIDExists(ctx context.Context, transactionID string) (bool, error)
}
