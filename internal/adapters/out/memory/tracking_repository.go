package memory

import (
	"cmp"
	"context"
	"slices"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/pkg/errs"
)

type eventRepository struct {
	uow *UnitOfWork
}

func (r eventRepository) Append(_ context.Context, e *tracking.Event) error {
	st, err := r.uow.write()
	if err != nil {
		return err
	}
	if err = e.Validate(); err != nil {
		return err
	}
	if _, ok := st.shipments[e.ShipmentID()]; !ok {
		return errs.NewObjectNotFoundError("shipment id", e.ShipmentID())
	}
	st.events = append(st.events, eventRow{event: e, seq: st.next()})
	return nil
}

func (r eventRepository) ListByShipment(_ context.Context, shipmentID kernel.UUID) ([]*tracking.Event, error) {
	var rows []eventRow
	for _, row := range r.uow.read().events {
		if row.event.ShipmentID().IsEqual(shipmentID) {
			rows = append(rows, row)
		}
	}
	slices.SortFunc(rows, func(a, b eventRow) int {
		return cmp.Or(
			b.event.Timestamp().Compare(a.event.Timestamp()),
			cmp.Compare(b.seq, a.seq),
		)
	})

	events := make([]*tracking.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.event)
	}
	return events, nil
}

type statusHistoryRepository struct {
	uow *UnitOfWork
}

func (r statusHistoryRepository) Append(_ context.Context, rec *tracking.StatusRecord) error {
	st, err := r.uow.write()
	if err != nil {
		return err
	}
	if err = rec.Validate(); err != nil {
		return err
	}
	if _, ok := st.shipments[rec.ShipmentID()]; !ok {
		return errs.NewObjectNotFoundError("shipment id", rec.ShipmentID())
	}
	st.records = append(st.records, recordRow{record: rec, seq: st.next()})
	return nil
}

func (r statusHistoryRepository) ListByShipment(_ context.Context, shipmentID kernel.UUID) ([]*tracking.StatusRecord, error) {
	var rows []recordRow
	for _, row := range r.uow.read().records {
		if row.record.ShipmentID().IsEqual(shipmentID) {
			rows = append(rows, row)
		}
	}
	slices.SortFunc(rows, func(a, b recordRow) int {
		return cmp.Or(
			b.record.Timestamp().Compare(a.record.Timestamp()),
			cmp.Compare(b.seq, a.seq),
		)
	})

	records := make([]*tracking.StatusRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.record)
	}
	return records, nil
}
