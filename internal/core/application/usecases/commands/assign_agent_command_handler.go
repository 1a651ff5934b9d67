package commands

import (
	"context"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/services"
)

// AssignAgentCommandHandler rebinds the agent of an open shipment. The
// previous agent loses access from the moment the unit of work commits.
type AssignAgentCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
}

func NewAssignAgentCommandHandler(uowFactory UoWFactory, policy services.AccessPolicy) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h AssignAgentCommandHandler) Handle(ctx context.Context, cmd AssignAgentCommand) (*shipment.Shipment, error) {
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
	if err = h.policy.Authorize(cmd.Actor(), access.ActionAssignAgent, s.Bindings()); err != nil {
		return nil, err
	}
	if err = s.AssignAgent(cmd.AgentID()); err != nil {
		return nil, err
	}
	if err = uow.ShipmentRepository().Update(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
