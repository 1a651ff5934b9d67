package commands

import (
	"context"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/services"
)

// RecordDeliveryCommandHandler completes a shipment. Only the bound driver may
// do it and only from a status that can be delivered.
type RecordDeliveryCommandHandler struct {
	uowFactory   UoWFactory
	policy       services.AccessPolicy
	transitioner services.StatusTransitioner
	clock        kernel.Clock
}

func NewRecordDeliveryCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	transitioner services.StatusTransitioner,
	clock kernel.Clock,
) RecordDeliveryCommandHandler {
	return RecordDeliveryCommandHandler{
		uowFactory:   uowFactory,
		policy:       policy,
		transitioner: transitioner,
		clock:        clock,
	}
}

func (h RecordDeliveryCommandHandler) Handle(ctx context.Context, cmd RecordDeliveryCommand) (*shipment.Shipment, error) {
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
	if err = h.policy.Authorize(actor, access.ActionRecordDelivery, s.Bindings()); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	from := s.Status()
	if err = s.MarkDelivered(cmd.Kind(), evidence.Signature, now); err != nil {
		return nil, err
	}
	tr, err := h.transitioner.Describe(s, from, actor, evidence.Location, evidence.Notes)
	if err != nil {
		return nil, err
	}

	if err = attachPhotos(ctx, uow, s.ID(), evidence.Photos); err != nil {
		return nil, err
	}
	if err = completeDriverTask(ctx, uow, s.ID(), assignment.Delivery, actor.ID(), evidence.Location, now); err != nil {
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
