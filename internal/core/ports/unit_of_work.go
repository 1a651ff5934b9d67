package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of one lifecycle operation. Every
// repository it returns works inside the transaction started by Begin.
// Repositories used without Begin read committed state directly.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit makes every change since Begin visible at once.
	Commit(ctx context.Context) error

	// Rollback discards every change since Begin. It is safe to call after
	// Commit, which makes it usable in a defer.
	Rollback(ctx context.Context) error

	ShipmentRepository() ShipmentRepository
	PackageRepository() PackageRepository
	TrackingEventRepository() TrackingEventRepository
	StatusHistoryRepository() StatusHistoryRepository
	AssignmentRepository() AssignmentRepository
	PaymentRepository() PaymentRepository
	NotificationOutbox() NotificationOutbox
}
