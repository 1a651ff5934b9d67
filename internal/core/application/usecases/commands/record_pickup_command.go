package commands

import (
	"errors"
	"slices"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/guard"
)

var ErrRecordPickupCommandIsNotConstructed = errors.New(
	"RecordPickupCommand must be created via NewRecordPickupCommand constructor",
)

// Evidence is what a driver captures at pickup or delivery. Photos[i] is
// attached to the i-th package of the shipment in sub-tracking order.
// Signature is only used on delivery.
type Evidence struct {
	Location  kernel.Location
	Notes     string
	Signature string
	Photos    []string
}

func (e Evidence) clone() Evidence {
	e.Photos = slices.Clone(e.Photos)
	return e
}

// RecordPickupCommand is the bound driver collecting the shipment.
type RecordPickupCommand struct {
	actor      access.Actor
	shipmentID kernel.UUID
	evidence   Evidence

	guard guard.ConstructorGuard
}

func NewRecordPickupCommand(actor access.Actor, shipmentID kernel.UUID, evidence Evidence) (RecordPickupCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate()); err != nil {
		return RecordPickupCommand{}, err
	}
	return RecordPickupCommand{
		actor:      actor,
		shipmentID: shipmentID,
		evidence:   evidence.clone(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPickupCommand) Validate() error {
	return c.guard.Validate(ErrRecordPickupCommandIsNotConstructed)
}

func (c RecordPickupCommand) Actor() access.Actor {
	return c.actor
}

func (c RecordPickupCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c RecordPickupCommand) Evidence() Evidence {
	return c.evidence.clone()
}
