package commands

import (
	"errors"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/errs"
	"arenoexpress/internal/pkg/guard"
)

var ErrRecordDeliveryCommandIsNotConstructed = errors.New(
	"RecordDeliveryCommand must be created via NewRecordDeliveryCommand constructor",
)

// RecordDeliveryCommand is the bound driver handing the shipment over. Kind is
// shipment.Delivered for a door delivery or shipment.PickedUpByReceiver when
// the receiver collects it.
type RecordDeliveryCommand struct {
	actor      access.Actor
	shipmentID kernel.UUID
	kind       shipment.Status
	evidence   Evidence

	guard guard.ConstructorGuard
}

func NewRecordDeliveryCommand(
	actor access.Actor,
	shipmentID kernel.UUID,
	kind shipment.Status,
	evidence Evidence,
) (RecordDeliveryCommand, error) {
	var kindErr error
	if !kind.IsCompleted() {
		kindErr = errs.NewValueIsInvalidError("delivery kind")
	}
	if err := errors.Join(actor.Validate(), shipmentID.Validate(), kindErr); err != nil {
		return RecordDeliveryCommand{}, err
	}
	return RecordDeliveryCommand{
		actor:      actor,
		shipmentID: shipmentID,
		kind:       kind,
		evidence:   evidence.clone(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryCommandIsNotConstructed)
}

func (c RecordDeliveryCommand) Actor() access.Actor {
	return c.actor
}

func (c RecordDeliveryCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c RecordDeliveryCommand) Kind() shipment.Status {
	return c.kind
}

func (c RecordDeliveryCommand) Evidence() Evidence {
	return c.evidence.clone()
}
