package commands

import (
	"errors"
	"strings"
	"time"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/errs"
	"arenoexpress/internal/pkg/guard"
)

var ErrBookShipmentCommandIsNotConstructed = errors.New(
	"BookShipmentCommand must be created via NewBookShipmentCommand constructor",
)

// BookShipmentParams is the booking request. SenderID may be omitted when a
// sender books for themselves; agents and admins must name the sender.
type BookShipmentParams struct {
	SenderID            *kernel.UUID
	ReceiverID          kernel.UUID
	PickupAddress       string
	DeliveryAddress     string
	ShipmentFee         kernel.Money
	TotalAmount         kernel.Money
	IsBusinessCourier   bool
	SpecialInstructions string
	PickupDate          *time.Time
	Packages            []shipment.PackageDetails
}

// BookShipmentCommand creates a shipment with at least one package.
//
// Example:
//
//	cmd, err := NewBookShipmentCommand(actor, BookShipmentParams{
//	    ReceiverID:      receiverID,
//	    PickupAddress:   "12 Moi Avenue, Nairobi",
//	    DeliveryAddress: "4 Nyerere Road, Mombasa",
//	    Packages:        []shipment.PackageDetails{{Description: "Books", Weight: 2}},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid booking: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type BookShipmentCommand struct {
	actor  access.Actor
	params BookShipmentParams

	guard guard.ConstructorGuard
}

func NewBookShipmentCommand(actor access.Actor, params BookShipmentParams) (BookShipmentCommand, error) {
	var pkgErr, addrErr error
	if len(params.Packages) == 0 {
		pkgErr = errs.NewValueIsRequiredError("packages")
	}
	if strings.TrimSpace(params.PickupAddress) == "" || strings.TrimSpace(params.DeliveryAddress) == "" {
		addrErr = errs.NewValueIsRequiredError("pickup and delivery address")
	}

	var senderErr error
	if params.SenderID != nil {
		senderErr = params.SenderID.Validate()
	}

	if err := errors.Join(
		actor.Validate(),
		params.ReceiverID.Validate(),
		senderErr,
		pkgErr,
		addrErr,
	); err != nil {
		return BookShipmentCommand{}, err
	}

	params.Packages = append([]shipment.PackageDetails(nil), params.Packages...)
	return BookShipmentCommand{actor: actor, params: params, guard: guard.NewConstructorGuard()}, nil
}

func (c BookShipmentCommand) Validate() error {
	return c.guard.Validate(ErrBookShipmentCommandIsNotConstructed)
}

func (c BookShipmentCommand) Actor() access.Actor {
	return c.actor
}

func (c BookShipmentCommand) Params() BookShipmentParams {
	p := c.params
	p.Packages = append([]shipment.PackageDetails(nil), c.params.Packages...)
	return p
}
