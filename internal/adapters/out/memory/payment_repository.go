package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/pkg/errs"
)

type paymentRepository struct {
	uow *UnitOfWork
}

func (r paymentRepository) Add(_ context.Context, p *payment.Payment) error {
	st, err := r.uow.write()
	if err != nil {
		return err
	}
	snap := p.Snapshot()
	if _, ok := st.shipments[snap.ShipmentID]; !ok {
		return errs.NewObjectNotFoundError("shipment id", snap.ShipmentID)
	}
	for _, row := range st.payments {
		if row.snap.ID.IsEqual(snap.ID) {
			return errs.NewConflictError("payment id")
		}
		if row.snap.TransactionID == snap.TransactionID {
			return errs.NewConflictErrorWithCause("transaction id", fmt.Errorf("%s is taken", snap.TransactionID))
		}
	}
	st.payments[snap.ID] = paymentRow{snap: snap, seq: st.next()}
	return nil
}

func (r paymentRepository) Update(_ context.Context, p *payment.Payment) error {
	st, err := r.uow.write()
	if err != nil {
		return err
	}
	row, ok := st.payments[p.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("payment id", p.ID())
	}
	row.snap = p.Snapshot()
	st.payments[p.ID()] = row
	return nil
}

func (r paymentRepository) Get(_ context.Context, id kernel.UUID) (*payment.Payment, error) {
	row, ok := r.uow.read().payments[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("payment id", id)
	}
	return payment.RestorePayment(row.snap)
}

func (r paymentRepository) ListByShipment(_ context.Context, shipmentID kernel.UUID) ([]*payment.Payment, error) {
	var rows []paymentRow
	for _, row := range r.uow.read().payments {
		if row.snap.ShipmentID.IsEqual(shipmentID) {
			rows = append(rows, row)
		}
	}
	slices.SortFunc(rows, func(a, b paymentRow) int {
		return cmp.Or(a.snap.CreatedAt.Compare(b.snap.CreatedAt), cmp.Compare(a.seq, b.seq))
	})

	payments := make([]*payment.Payment, 0, len(rows))
	for _, row := range rows {
		p, err := payment.RestorePayment(row.snap)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (r paymentRepository) TransactionIDExists(_ context.Context, transactionID string) (bool, error) {
	for _, row := range r.uow.read().payments {
		if row.snap.TransactionID == transactionID {
			return true, nil
		}
	}
	return false, nil
}
