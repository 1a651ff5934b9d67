package commands

import (
	"context"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/services"
)

// TransitionStatusCommandHandler applies a status change and appends exactly
// one status record and one tracking event for it. Sender and receiver are
// notified for the statuses that carry a notification.
//
// Errors:
//   - errs.ErrObjectNotFound: no such shipment
//   - errs.ErrAccessDenied: actor is not admin, bound agent or bound driver
//   - errs.ErrInvalidTransition: target is not adjacent to the current status
type TransitionStatusCommandHandler struct {
	uowFactory   UoWFactory
	policy       services.AccessPolicy
	transitioner services.StatusTransitioner
	clock        kernel.Clock
}

func NewTransitionStatusCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	transitioner services.StatusTransitioner,
	clock kernel.Clock,
) TransitionStatusCommandHandler {
	return TransitionStatusCommandHandler{
		uowFactory:   uowFactory,
		policy:       policy,
		transitioner: transitioner,
		clock:        clock,
	}
}

func (h TransitionStatusCommandHandler) Handle(ctx context.Context, cmd TransitionStatusCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

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
	if err = h.policy.Authorize(cmd.Actor(), access.ActionTransition, s.Bindings()); err != nil {
		return nil, err
	}

	tr, err := h.transitioner.Transition(s, cmd.Target(), cmd.Actor(), cmd.Location(), cmd.Notes())
	if err != nil {
		return nil, err
	}
	if err = persistTransition(ctx, uow, s, tr, h.clock.Now()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
