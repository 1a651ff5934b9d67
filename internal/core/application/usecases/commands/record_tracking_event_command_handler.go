package commands

import (
	"context"
	"fmt"
	"time"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/core/domain/services"
	"arenoexpress/internal/pkg/errs"
)

type RecordTrackingEventCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewRecordTrackingEventCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	clock kernel.Clock,
) RecordTrackingEventCommandHandler {
	return RecordTrackingEventCommandHandler{uowFactory: uowFactory, policy: policy, clock: clock}
}

func (h RecordTrackingEventCommandHandler) Handle(ctx context.Context, cmd RecordTrackingEventCommand) (*tracking.Event, error) {
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
	if err = h.policy.Authorize(cmd.Actor(), access.ActionRecordEvent, s.Bindings()); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	at, ok := cmd.Timestamp()
	if !ok {
		at = now
	}
	if at.After(now) {
		return nil, errs.NewValueIsInvalidErrorWithCause("timestamp",
			fmt.Errorf("%s is in the future", at.Format(time.RFC3339)))
	}
	actorID := cmd.Actor().ID()
	event, err := tracking.NewEvent(tracking.EventParams{
		ID:          kernel.NewUUID(),
		ShipmentID:  s.ID(),
		Type:        cmd.EventType(),
		Location:    cmd.Location(),
		Description: cmd.Description(),
		Timestamp:   at,
		CreatedBy:   &actorID,
		Metadata:    cmd.Metadata(),
	})
	if err != nil {
		return nil, err
	}
	if err = uow.TrackingEventRepository().Append(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return event, nil
}
