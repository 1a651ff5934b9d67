package commands

import (
	"context"
	"time"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/notification"
	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/core/domain/services"
	"arenoexpress/internal/pkg/errs"
)

// persistTransition stores a status change: the shipment row, one status
// record, one tracking event and the queued notifications.
func persistTransition(ctx context.Context, uow UoW, s *shipment.Shipment, tr services.Transition, at time.Time) error {
	if err := uow.ShipmentRepository().Update(ctx, s); err != nil {
		return err
	}
	return appendLedger(ctx, uow, tr, at)
}

// appendLedger stores the ledger entries and notifications of tr without
// touching the shipment row.
func appendLedger(ctx context.Context, uow UoW, tr services.Transition, at time.Time) error {
	if err := uow.StatusHistoryRepository().Append(ctx, tr.Record); err != nil {
		return err
	}
	if err := uow.TrackingEventRepository().Append(ctx, tr.Event); err != nil {
		return err
	}
	return enqueue(ctx, uow, at, tr.Notifications...)
}

func enqueue(ctx context.Context, uow UoW, at time.Time, msgs ...notification.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	return uow.NotificationOutbox().Enqueue(ctx, at, msgs...)
}

// appendEvent records a ledger event that does not change the shipment status.
func appendEvent(
	ctx context.Context,
	uow UoW,
	shipmentID kernel.UUID,
	eventType tracking.EventType,
	actor access.Actor,
	location kernel.Location,
	description string,
	metadata map[string]string,
	at time.Time,
) error {
	actorID := actor.ID()
	event, err := tracking.NewEvent(tracking.EventParams{
		ID:          kernel.NewUUID(),
		ShipmentID:  shipmentID,
		Type:        eventType,
		Location:    location,
		Description: description,
		Timestamp:   at,
		CreatedBy:   &actorID,
		Metadata:    metadata,
	})
	if err != nil {
		return err
	}
	return uow.TrackingEventRepository().Append(ctx, event)
}

// lockAssignment loads an assignment and its shipment, locking the shipment.
// The assignment is read again after the lock so it reflects any change
// committed while this unit of work was waiting.
func lockAssignment(ctx context.Context, uow UoW, id kernel.UUID) (*assignment.Assignment, *shipment.Shipment, error) {
	a, err := uow.AssignmentRepository().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	s, err := uow.ShipmentRepository().GetForUpdate(ctx, a.ShipmentID())
	if err != nil {
		return nil, nil, err
	}
	a, err = uow.AssignmentRepository().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return a, s, nil
}

// lockPayment loads a payment and locks its shipment, like lockAssignment.
func lockPayment(ctx context.Context, uow UoW, id kernel.UUID) (*payment.Payment, *shipment.Shipment, error) {
	p, err := uow.PaymentRepository().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	s, err := uow.ShipmentRepository().GetForUpdate(ctx, p.ShipmentID())
	if err != nil {
		return nil, nil, err
	}
	p, err = uow.PaymentRepository().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p, s, nil
}

// lockPackage loads a package and locks its shipment, like lockAssignment.
func lockPackage(ctx context.Context, uow UoW, id kernel.UUID) (*shipment.Package, *shipment.Shipment, error) {
	p, err := uow.PackageRepository().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	s, err := uow.ShipmentRepository().GetForUpdate(ctx, p.ShipmentID())
	if err != nil {
		return nil, nil, err
	}
	p, err = uow.PackageRepository().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p, s, nil
}

// attachPhotos appends photos[i] to the i-th package of the shipment. There
// may be fewer photos than packages but not more.
func attachPhotos(ctx context.Context, uow UoW, shipmentID kernel.UUID, photos []string) error {
	if len(photos) == 0 {
		return nil
	}
	packages, err := uow.PackageRepository().ListByShipment(ctx, shipmentID)
	if err != nil {
		return err
	}
	if len(photos) > len(packages) {
		return errs.NewValueIsOutOfRangeError("photo count", len(photos), 0, len(packages))
	}
	for i, ref := range photos {
		p := packages[i]
		if err := p.AddPhoto(ref); err != nil {
			return err
		}
		if err := uow.PackageRepository().Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// completeDriverTask completes the driver's in-progress assignment of type t,
// if there is one.
func completeDriverTask(
	ctx context.Context,
	uow UoW,
	shipmentID kernel.UUID,
	t assignment.Type,
	driverID kernel.UUID,
	location kernel.Location,
	at time.Time,
) error {
	a, err := uow.AssignmentRepository().FindActive(ctx, shipmentID, t)
	if err != nil {
		return err
	}
	if a == nil || !a.IsAssignedTo(driverID) || a.Status() != assignment.InProgress {
		return nil
	}
	if err := a.Complete(at, location); err != nil {
		return err
	}
	return uow.AssignmentRepository().Update(ctx, a)
}
