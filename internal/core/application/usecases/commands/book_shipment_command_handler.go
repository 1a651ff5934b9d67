package commands

import (
	"context"
	"fmt"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/services"
	"arenoexpress/internal/pkg/errs"
)

// BookingResult is the booked shipment and its packages in sub-tracking order.
type BookingResult struct {
	Shipment *shipment.Shipment
	Packages []*shipment.Package
}

// BookShipmentCommandHandler books a shipment.
//
// In one unit of work it generates the tracking number and master tracking
// id, creates the shipment in Booked status, creates the packages with
// sub-tracking ids A, B, ..., appends the initial status record and the
// booked event, and queues a shipment_booked notification for sender and
// receiver. A walk-in booking made by an agent binds that agent.
type BookShipmentCommandHandler struct {
	uowFactory   UoWFactory
	policy       services.AccessPolicy
	generator    *services.IdentifierGenerator
	transitioner services.StatusTransitioner
	clock        kernel.Clock
}

func NewBookShipmentCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	generator *services.IdentifierGenerator,
	transitioner services.StatusTransitioner,
	clock kernel.Clock,
) BookShipmentCommandHandler {
	return BookShipmentCommandHandler{
		uowFactory:   uowFactory,
		policy:       policy,
		generator:    generator,
		transitioner: transitioner,
		clock:        clock,
	}
}

func (h BookShipmentCommandHandler) Handle(ctx context.Context, cmd BookShipmentCommand) (BookingResult, error) {
	if err := cmd.Validate(); err != nil {
		return BookingResult{}, err
	}
	actor := cmd.Actor()
	params := cmd.Params()

	if err := h.policy.Authorize(actor, access.ActionBook, access.Bindings{}); err != nil {
		return BookingResult{}, err
	}
	senderID, err := resolveSender(actor, params.SenderID)
	if err != nil {
		return BookingResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return BookingResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipments := uow.ShipmentRepository()
	trackingNumber, err := h.generator.TrackingNumber(ctx, shipments.TrackingNumberExists)
	if err != nil {
		return BookingResult{}, err
	}
	masterTrackingID, err := h.generator.MasterTrackingID(ctx, shipments.MasterTrackingIDExists)
	if err != nil {
		return BookingResult{}, err
	}

	var agentID *kernel.UUID
	if actor.Role() == access.RoleAgent {
		id := actor.ID()
		agentID = &id
	}

	now := h.clock.Now()
	s, err := shipment.NewShipment(shipment.BookingDetails{
		ID:                  kernel.NewUUID(),
		TrackingNumber:      trackingNumber,
		MasterTrackingID:    masterTrackingID,
		SenderID:            senderID,
		ReceiverID:          params.ReceiverID,
		AgentID:             agentID,
		PickupAddress:       params.PickupAddress,
		DeliveryAddress:     params.DeliveryAddress,
		ShipmentFee:         params.ShipmentFee,
		TotalAmount:         params.TotalAmount,
		PickupDate:          params.PickupDate,
		SpecialInstructions: params.SpecialInstructions,
		IsBusinessCourier:   params.IsBusinessCourier,
		CreatedAt:           now,
	})
	if err != nil {
		return BookingResult{}, err
	}

	packages := make([]*shipment.Package, 0, len(params.Packages))
	for _, details := range params.Packages {
		p, err := newPackage(h.generator, s, details)
		if err != nil {
			return BookingResult{}, err
		}
		packages = append(packages, p)
	}

	if err = shipments.Add(ctx, s); err != nil {
		return BookingResult{}, err
	}
	for _, p := range packages {
		if err = uow.PackageRepository().Add(ctx, p); err != nil {
			return BookingResult{}, err
		}
	}

	tr, err := h.transitioner.Booking(s, actor)
	if err != nil {
		return BookingResult{}, err
	}
	if err = appendLedger(ctx, uow, tr, now); err != nil {
		return BookingResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return BookingResult{}, err
	}
	return BookingResult{Shipment: s, Packages: packages}, nil
}

// resolveSender returns the sender of a new booking. Senders book for
// themselves; other roles must name the sender.
func resolveSender(actor access.Actor, senderID *kernel.UUID) (kernel.UUID, error) {
	if actor.Role() == access.RoleSender {
		if senderID != nil && !senderID.IsEqual(actor.ID()) {
			return kernel.UUID{}, errs.NewAccessDeniedErrorWithCause(access.ActionBook.String(),
				fmt.Errorf("a sender cannot book on behalf of %s", senderID))
		}
		return actor.ID(), nil
	}
	if senderID == nil {
		return kernel.UUID{}, errs.NewValueIsRequiredError("sender id")
	}
	return *senderID, nil
}

// newPackage allocates the next ordinal of s and builds the package for it.
func newPackage(gen *services.IdentifierGenerator, s *shipment.Shipment, details shipment.PackageDetails) (*shipment.Package, error) {
	subTrackingID, err := services.SubTrackingID(s.TrackingNumber(), s.AllocatePackageOrdinal())
	if err != nil {
		return nil, err
	}
	return shipment.NewPackage(kernel.NewUUID(), s.ID(), subTrackingID, gen.QRCode(subTrackingID), details)
}
