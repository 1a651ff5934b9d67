package commands

import (
	"context"
	"fmt"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/notification"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/services"
	"arenoexpress/internal/pkg/errs"
)

// CreateAssignmentCommandHandler creates a pending driver assignment and
// binds the driver to the shipment.
//
// A pickup assignment on a Booked shipment also schedules the pickup: the
// shipment moves to AwaitingPickup through the state machine and gets the
// matching status record and pickup_scheduled event. The driver is notified
// through the outbox.
//
// Errors:
//   - errs.ErrConflict: the shipment already has an accepted or in-progress
//     assignment of the same type
//   - errs.ErrInvalidState: the shipment is finished
type CreateAssignmentCommandHandler struct {
	uowFactory   UoWFactory
	policy       services.AccessPolicy
	transitioner services.StatusTransitioner
	clock        kernel.Clock
}

func NewCreateAssignmentCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	transitioner services.StatusTransitioner,
	clock kernel.Clock,
) CreateAssignmentCommandHandler {
	return CreateAssignmentCommandHandler{
		uowFactory:   uowFactory,
		policy:       policy,
		transitioner: transitioner,
		clock:        clock,
	}
}

func (h CreateAssignmentCommandHandler) Handle(ctx context.Context, cmd CreateAssignmentCommand) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	actor := cmd.Actor()

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
	if err = h.policy.Authorize(actor, access.ActionManageAssignments, s.Bindings()); err != nil {
		return nil, err
	}

	active, err := uow.AssignmentRepository().FindActive(ctx, s.ID(), cmd.Type())
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, errs.NewConflictErrorWithCause("assignment",
			fmt.Errorf("%s assignment %s is already %s", active.Type(), active.ID(), active.Status()))
	}

	now := h.clock.Now()
	a, err := assignment.NewAssignment(kernel.NewUUID(), s.ID(), cmd.DriverID(), cmd.VehicleID(),
		cmd.Type(), cmd.Notes(), cmd.EstimatedMinutes(), now)
	if err != nil {
		return nil, err
	}
	if err = s.AssignDriver(cmd.DriverID()); err != nil {
		return nil, err
	}
	if err = uow.AssignmentRepository().Add(ctx, a); err != nil {
		return nil, err
	}

	if a.Type() == assignment.Pickup && s.Status() == shipment.Booked {
		tr, err := h.transitioner.Transition(s, shipment.AwaitingPickup, actor, kernel.EmptyLocation(), "Pickup scheduled")
		if err != nil {
			return nil, err
		}
		if err = persistTransition(ctx, uow, s, tr, now); err != nil {
			return nil, err
		}
	} else if err = uow.ShipmentRepository().Update(ctx, s); err != nil {
		return nil, err
	}

	if err = enqueue(ctx, uow, now, notification.ForDriverAssignment(s, a)); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return a, nil
}
