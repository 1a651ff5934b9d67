// Package commands contains the lifecycle operations that modify state.
// Every handler follows the same shape: validate the command, open a unit of
// work, lock the shipment, authorize against freshly loaded bindings, apply
// the domain change, persist aggregate and ledger together, commit.
package commands

import (
	"context"

	"arenoexpress/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
		PackageRepository() ports.PackageRepository
	}

	LedgerRepoFactory interface {
		TrackingEventRepository() ports.TrackingEventRepository
		StatusHistoryRepository() ports.StatusHistoryRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	OutboxFactory interface {
		NotificationOutbox() ports.NotificationOutbox
	}

	// UoW spans the shipment, its dependents, the ledger and the outbox. Used
	// by every lifecycle operation.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   s, err := uow.ShipmentRepository().GetForUpdate(ctx, id)
	//   // ... change s, append ledger entries, enqueue notifications
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ShipmentRepoFactory
		LedgerRepoFactory
		AssignmentRepoFactory
		PaymentRepoFactory
		OutboxFactory
	}

	// UoWFactory creates new unit of work instances for lifecycle operations.
	UoWFactory interface {
		Create() UoW
	}

	// OutboxUoW is the narrow unit of work of the notification relay.
	OutboxUoW interface {
		TxManager
		OutboxFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
