package commands

import (
	"errors"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/guard"
)

var ErrTransitionStatusCommandIsNotConstructed = errors.New(
	"TransitionStatusCommand must be created via NewTransitionStatusCommand constructor",
)

// TransitionStatusCommand moves a shipment to another status along the
// transition table.
//
// Example:
//
//	target, err := shipment.ParseStatus("in_transit")
//	if err != nil {
//	    return err
//	}
//	cmd, err := NewTransitionStatusCommand(actor, shipmentID, target, loc, "left Nairobi hub")
type TransitionStatusCommand struct {
	actor      access.Actor
	shipmentID kernel.UUID
	target     shipment.Status
	location   kernel.Location
	notes      string

	guard guard.ConstructorGuard
}

func NewTransitionStatusCommand(
	actor access.Actor,
	shipmentID kernel.UUID,
	target shipment.Status,
	location kernel.Location,
	notes string,
) (TransitionStatusCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate(), target.Validate()); err != nil {
		return TransitionStatusCommand{}, err
	}
	return TransitionStatusCommand{
		actor:      actor,
		shipmentID: shipmentID,
		target:     target,
		location:   location,
		notes:      notes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionStatusCommandIsNotConstructed)
}

func (c TransitionStatusCommand) Actor() access.Actor {
	return c.actor
}

func (c TransitionStatusCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c TransitionStatusCommand) Target() shipment.Status {
	return c.target
}

func (c TransitionStatusCommand) Location() kernel.Location {
	return c.location
}

func (c TransitionStatusCommand) Notes() string {
	return c.notes
}
