package commands

import (
	"context"
	"fmt"
	"time"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/core/domain/services"
	"arenoexpress/internal/pkg/errs"
)

// AssignmentActionCommandHandler drives an assignment through its
// sub-machine under the shipment lock.
//
// Side effects on the shipment ledger:
//   - starting a pickup appends pickup_started
//   - starting a delivery on a shipment at its destination moves it to
//     OutForDelivery
//   - failing a delivery appends delivery_attempted
type AssignmentActionCommandHandler struct {
	uowFactory   UoWFactory
	policy       services.AccessPolicy
	transitioner services.StatusTransitioner
	clock        kernel.Clock
}

func NewAssignmentActionCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	transitioner services.StatusTransitioner,
	clock kernel.Clock,
) AssignmentActionCommandHandler {
	return AssignmentActionCommandHandler{
		uowFactory:   uowFactory,
		policy:       policy,
		transitioner: transitioner,
		clock:        clock,
	}
}

func (h AssignmentActionCommandHandler) Handle(ctx context.Context, cmd AssignmentActionCommand) (*assignment.Assignment, error) {
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

	a, s, err := lockAssignment(ctx, uow, cmd.AssignmentID())
	if err != nil {
		return nil, err
	}
	if err = h.authorize(cmd, a, s); err != nil {
		return nil, err
	}
	if err = h.apply(ctx, uow, cmd, a, s, h.clock.Now()); err != nil {
		return nil, err
	}
	if err = uow.AssignmentRepository().Update(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (h AssignmentActionCommandHandler) authorize(cmd AssignmentActionCommand, a *assignment.Assignment, s *shipment.Shipment) error {
	switch cmd.Action() {
	case CancelAssignment:
		return h.policy.Authorize(cmd.Actor(), access.ActionManageAssignments, s.Bindings())
	case FailAssignment:
		return h.policy.AuthorizeAssignmentFailure(cmd.Actor(), a)
	default:
		return h.policy.AuthorizeAssignmentWork(cmd.Actor(), a)
	}
}

func (h AssignmentActionCommandHandler) apply(
	ctx context.Context,
	uow UoW,
	cmd AssignmentActionCommand,
	a *assignment.Assignment,
	s *shipment.Shipment,
	now time.Time,
) error {
	actor := cmd.Actor()

	switch cmd.Action() {
	case AcceptAssignment:
		active, err := uow.AssignmentRepository().FindActive(ctx, a.ShipmentID(), a.Type())
		if err != nil {
			return err
		}
		if active != nil && !active.ID().IsEqual(a.ID()) {
			return errs.NewConflictErrorWithCause("assignment",
				fmt.Errorf("%s assignment %s is already %s", active.Type(), active.ID(), active.Status()))
		}
		return a.Accept(now)

	case StartAssignment:
		if err := a.Start(now, cmd.Location()); err != nil {
			return err
		}
		if a.Type() == assignment.Pickup {
			return appendEvent(ctx, uow, s.ID(), tracking.EventPickupStarted, actor, cmd.Location(),
				"Driver started pickup", map[string]string{"assignment_id": a.ID().String()}, now)
		}
		if s.Status() == shipment.ArrivedAtDestination {
			tr, err := h.transitioner.Transition(s, shipment.OutForDelivery, actor, cmd.Location(), "")
			if err != nil {
				return err
			}
			return persistTransition(ctx, uow, s, tr, now)
		}
		return nil

	case CompleteAssignment:
		return a.Complete(now, cmd.Location())

	case CancelAssignment:
		return a.Cancel(cmd.Reason())

	case FailAssignment:
		if err := a.Fail(cmd.Reason()); err != nil {
			return err
		}
		if a.Type() == assignment.Delivery {
			description := "Delivery attempt failed"
			if cmd.Reason() != "" {
				description += ": " + cmd.Reason()
			}
			return appendEvent(ctx, uow, s.ID(), tracking.EventDeliveryAttempted, actor, cmd.Location(),
				description, map[string]string{"assignment_id": a.ID().String()}, now)
		}
		return nil

	default:
		return errs.NewValueIsInvalidError("assignment action")
	}
}
