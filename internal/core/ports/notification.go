package ports

import (
	"context"
	"time"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/notification"
)

// OutboxEntry is a queued notification waiting for delivery.
type OutboxEntry struct {
	ID        kernel.UUID
	Message   notification.Message
	Attempts  int
	CreatedAt time.Time
}

// NotificationOutbox stores notifications in the same transaction as the
// lifecycle change that produced them.
type NotificationOutbox interface {
	// Enqueue stores msgs as pending entries created at at.
	Enqueue(ctx context.Context, at time.Time, msgs ...notification.Message) error

	// Pending returns up to limit undelivered entries, oldest first, skipping
	// entries whose claim is still running at now. Within a unit of work the
	// returned rows are reserved for the caller.
	Pending(ctx context.Context, limit int, now time.Time) ([]OutboxEntry, error)

	// Claim hides an entry from other relays until until. The claim lets a
	// relay deliver outside the unit of work that picked the entry.
	Claim(ctx context.Context, id kernel.UUID, until time.Time) error

	// MarkDelivered records a delivery and drops the claim.
	MarkDelivered(ctx context.Context, id kernel.UUID, at time.Time) error

	// MarkFailed records a failed delivery attempt and drops the claim. A dead
	// entry is never returned by Pending again.
	MarkFailed(ctx context.Context, id kernel.UUID, attempts int, lastErr string, dead bool) error
}

// NotificationSink delivers one notification to its user. Delivery is best
// effort; the core only guarantees the message was emitted.
type NotificationSink interface {
	Notify(ctx context.Context, msg notification.Message) error
}
