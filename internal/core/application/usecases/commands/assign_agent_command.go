package commands

import (
	"errors"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand binds a shipment to an agent station, replacing any
// previous agent.
type AssignAgentCommand struct {
	actor      access.Actor
	shipmentID kernel.UUID
	agentID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignAgentCommand(actor access.Actor, shipmentID, agentID kernel.UUID) (AssignAgentCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate(), agentID.Validate()); err != nil {
		return AssignAgentCommand{}, err
	}
	return AssignAgentCommand{
		actor:      actor,
		shipmentID: shipmentID,
		agentID:    agentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

func (c AssignAgentCommand) Actor() access.Actor {
	return c.actor
}

func (c AssignAgentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c AssignAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}
