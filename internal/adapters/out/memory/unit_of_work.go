package memory

import (
	"context"
	"errors"

	"arenoexpress/internal/core/ports"
)

var (
	ErrTransactionAlreadyStarted = errors.New("transaction already started")
	ErrNoActiveTransaction       = errors.New("no active transaction")
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

type UnitOfWork struct {
	store *Store
	tx    *state
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// UnitOfWorkFactory hands out units of work over one shared store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) UnitOfWorkFactory {
	return UnitOfWorkFactory{store: store}
}

func (f UnitOfWorkFactory) Create() ports.UnitOfWork {
	return NewUnitOfWork(f.store)
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTransactionAlreadyStarted
	}
	if err := u.store.acquire(ctx); err != nil {
		return err
	}
	u.tx = u.store.committed.Load().clone()
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil {
		return ErrNoActiveTransaction
	}
	u.store.committed.Store(u.tx)
	u.tx = nil
	u.store.release()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return nil
	}
	u.tx = nil
	u.store.release()
	return nil
}

func (u *UnitOfWork) read() *state {
	if u.tx != nil {
		return u.tx
	}
	return u.store.committed.Load()
}

func (u *UnitOfWork) write() (*state, error) {
	if u.tx == nil {
		return nil, ErrNoActiveTransaction
	}
	return u.tx, nil
}

func (u *UnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentRepository{uow: u}
}

func (u *UnitOfWork) PackageRepository() ports.PackageRepository {
	return packageRepository{uow: u}
}

func (u *UnitOfWork) TrackingEventRepository() ports.TrackingEventRepository {
	return eventRepository{uow: u}
}

func (u *UnitOfWork) StatusHistoryRepository() ports.StatusHistoryRepository {
	return statusHistoryRepository{uow: u}
}

func (u *UnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentRepository{uow: u}
}

func (u *UnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentRepository{uow: u}
}

func (u *UnitOfWork) NotificationOutbox() ports.NotificationOutbox {
	return outbox{uow: u}
}
