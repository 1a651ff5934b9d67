package memory

import (
	"context"
	"fmt"
	"slices"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/errs"
)

type shipmentRepository struct {
	uow *UnitOfWork
}

func (r shipmentRepository) Add(_ context.Context, s *shipment.Shipment) error {
	st, err := r.uow.write()
	if err != nil {
		return err
	}
	snap := s.Snapshot()
	if _, ok := st.shipments[snap.ID]; ok {
		return errs.NewConflictError("shipment id")
	}
	for _, other := range st.shipments {
		if other.TrackingNumber == snap.TrackingNumber {
			return errs.NewConflictErrorWithCause("tracking number", fmt.Errorf("%s is taken", snap.TrackingNumber))
		}
		if other.MasterTrackingID == snap.MasterTrackingID {
			return errs.NewConflictErrorWithCause("master tracking id", fmt.Errorf("%s is taken", snap.MasterTrackingID))
		}
	}
	st.shipments[snap.ID] = snap
	return nil
}

func (r shipmentRepository) Update(_ context.Context, s *shipment.Shipment) error {
	st, err := r.uow.write()
	if err != nil {
		return err
	}
	if _, ok := st.shipments[s.ID()]; !ok {
		return errs.NewObjectNotFoundError("shipment id", s.ID())
	}
	st.shipments[s.ID()] = s.Snapshot()
	return nil
}

func (r shipmentRepository) Get(_ context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	snap, ok := r.uow.read().shipments[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipment id", id)
	}
	return shipment.RestoreShipment(snap)
}

// GetForUpdate needs no row lock: the unit of work already excludes every
// other writer.
func (r shipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if _, err := r.uow.write(); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r shipmentRepository) GetByTrackingNumber(_ context.Context, trackingNumber string) (*shipment.Shipment, error) {
	for _, snap := range r.uow.read().shipments {
		if snap.TrackingNumber == trackingNumber {
			return shipment.RestoreShipment(snap)
		}
	}
	return nil, errs.NewObjectNotFoundError("tracking number", trackingNumber)
}

func (r shipmentRepository) Delete(_ context.Context, id kernel.UUID) error {
	st, err := r.uow.write()
	if err != nil {
		return err
	}
	if _, ok := st.shipments[id]; !ok {
		return errs.NewObjectNotFoundError("shipment id", id)
	}
	delete(st.shipments, id)
	for pid, row := range st.packages {
		if row.snap.ShipmentID.IsEqual(id) {
			delete(st.packages, pid)
		}
	}
	for aid, row := range st.assignments {
		if row.snap.ShipmentID.IsEqual(id) {
			delete(st.assignments, aid)
		}
	}
	for pid, row := range st.payments {
		if row.snap.ShipmentID.IsEqual(id) {
			delete(st.payments, pid)
		}
	}
	st.events = slices.DeleteFunc(st.events, func(row eventRow) bool {
		return row.event.ShipmentID().IsEqual(id)
	})
	st.records = slices.DeleteFunc(st.records, func(row recordRow) bool {
		return row.record.ShipmentID().IsEqual(id)
	})
	return nil
}

func (r shipmentRepository) TrackingNumberExists(_ context.Context, trackingNumber string) (bool, error) {
	for _, snap := range r.uow.read().shipments {
		if snap.TrackingNumber == trackingNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r shipmentRepository) MasterTrackingIDExists(_ context.Context, masterTrackingID string) (bool, error) {
	for _, snap := range r.uow.read().shipments {
		if snap.MasterTrackingID == masterTrackingID {
			return true, nil
		}
	}
	return false, nil
}
