package commands

import (
	"context"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/services"
)

// RecordPickupCommandHandler marks a shipment picked up by its bound driver.
// It sets the pickup date, attaches the photos, completes the driver's
// in-progress pickup assignment if there is one, and appends the
// picked_up record with a pickup_completed event.
type RecordPickupCommandHandler struct {
	uowFactory   UoWFactory
	policy       services.AccessPolicy
	transitioner services.StatusTransitioner
	clock        kernel.Clock
}

func NewRecordPickupCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	transitioner services.StatusTransitioner,
	clock kernel.Clock,
) RecordPickupCommandHandler {
	return RecordPickupCommandHandler{
		uowFactory:   uowFactory,
		policy:       policy,
		transitioner: transitioner,
		clock:        clock,
	}
}

func (h RecordPickupCommandHandler) Handle(ctx context.Context, cmd RecordPickupCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	actor := cmd.Actor()
	evidence := cmd.Evidence()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}
	if err = h.policy.Authorize(actor, access.ActionRecordPickup, s.Bindings()); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	from := s.Status()
	if err = s.MarkPickedUp(now); err != nil {
		return nil, err
	}
	tr, err := h.transitioner.Describe(s, from, actor, evidence.Location, evidence.Notes)
	if err != nil {
		return nil, err
	}

	if err = attachPhotos(ctx, uow, s.ID(), evidence.Photos); err != nil {
		return nil, err
	}
	if err = completeDriverTask(ctx, uow, s.ID(), assignment.Pickup, actor.ID(), evidence.Location, now); err != nil {
		return nil, err
	}
	if err = persistTransition(ctx, uow, s, tr, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
