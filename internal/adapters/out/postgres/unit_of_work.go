// Package postgres provides the GORM-based Unit of Work over the shipment,
// package, ledger, assignment, payment and outbox tables.
//
// Every repository returned by a unit of work runs inside the transaction
// opened by Begin. Before Begin, and after Commit or Rollback, the same
// repositories run directly on the connection pool, which is how queries
// read committed state.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	s, err := uow.ShipmentRepository().GetForUpdate(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// change s, append ledger rows, enqueue notifications
//
//	return uow.Commit(ctx)
//
// Concurrency:
//   - each UnitOfWork instance owns at most one transaction; create one per
//     operation and never share it between goroutines
//   - GetForUpdate takes a row lock on the shipment, which serializes every
//     mutation of that shipment and its dependents
//   - the outbox relay claims rows with SKIP LOCKED and does not block
//     lifecycle operations
package postgres

import (
	"context"

	"arenoexpress/internal/adapters/out/postgres/assignmentrepo"
	"arenoexpress/internal/adapters/out/postgres/outboxrepo"
	"arenoexpress/internal/adapters/out/postgres/packagerepo"
	"arenoexpress/internal/adapters/out/postgres/paymentrepo"
	"arenoexpress/internal/adapters/out/postgres/shipmentrepo"
	"arenoexpress/internal/adapters/out/postgres/trackingrepo"
	"arenoexpress/internal/core/ports"

	"gorm.io/gorm"
)

var _ ports.UnitOfWork = (*GormUnitOfWork)(nil)

// GormUnitOfWorkFactory creates UnitOfWork instances using one GORM
// connection pool.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens a transaction. Calling it again while the transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. It fails with gorm.ErrInvalidTransaction
// when none is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Without an open transaction it does
// nothing, so it can be deferred right after Begin.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn())
}

func (uow *GormUnitOfWork) PackageRepository() ports.PackageRepository {
	return packagerepo.NewGormPackageRepository(uow.conn())
}

func (uow *GormUnitOfWork) TrackingEventRepository() ports.TrackingEventRepository {
	return trackingrepo.NewGormEventRepository(uow.conn())
}

func (uow *GormUnitOfWork) StatusHistoryRepository() ports.StatusHistoryRepository {
	return trackingrepo.NewGormStatusHistoryRepository(uow.conn())
}

func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn())
}

func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn())
}

func (uow *GormUnitOfWork) NotificationOutbox() ports.NotificationOutbox {
	return outboxrepo.NewGormOutbox(uow.conn())
}
