package ports

import (
	"context"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/tracking"
)

// TrackingEventRepository is the append-only store of tracking events.
// It has no methods to change or remove an event.
type TrackingEventRepository interface {
	Append(ctx context.Context, e *tracking.Event) error

	// ListByShipment returns events newest first: by timestamp descending,
	// then by insertion order descending for equal timestamps.
	ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*tracking.Event, error)
}

// StatusHistoryRepository is the append-only store of status records.
type StatusHistoryRepository interface {
	Append(ctx context.Context, r *tracking.StatusRecord) error

	// ListByShipment returns records newest first, ordered like events.
	ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*tracking.StatusRecord, error)
}
