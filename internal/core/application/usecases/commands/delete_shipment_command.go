package commands

import (
	"errors"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/guard"
)

var ErrDeleteShipmentCommandIsNotConstructed = errors.New(
	"DeleteShipmentCommand must be created via NewDeleteShipmentCommand constructor",
)

// DeleteShipmentCommand removes a shipment that has not been picked up yet.
type DeleteShipmentCommand struct {
	actor      access.Actor
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteShipmentCommand(actor access.Actor, shipmentID kernel.UUID) (DeleteShipmentCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate()); err != nil {
		return DeleteShipmentCommand{}, err
	}
	return DeleteShipmentCommand{actor: actor, shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteShipmentCommandIsNotConstructed)
}

func (c DeleteShipmentCommand) Actor() access.Actor {
	return c.actor
}

func (c DeleteShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
