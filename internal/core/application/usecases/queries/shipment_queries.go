package queries

import (
	"errors"
	"strings"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/pkg/errs"
	"arenoexpress/internal/pkg/guard"
)

var (
	ErrTrackShipmentQueryIsNotConstructed = errors.New(
		"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
	)
	ErrGetShipmentQueryIsNotConstructed = errors.New(
		"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
	)
	ErrGetTrackingHistoryQueryIsNotConstructed = errors.New(
		"GetTrackingHistoryQuery must be created via NewGetTrackingHistoryQuery constructor",
	)
	ErrGetPaymentQueryIsNotConstructed = errors.New(
		"GetPaymentQuery must be created via NewGetPaymentQuery constructor",
	)
)

// TrackShipmentQuery is the authenticated counterpart of PublicTrackQuery.
type TrackShipmentQuery struct {
	actor          access.Actor
	trackingNumber string

	guard guard.ConstructorGuard
}

func NewTrackShipmentQuery(actor access.Actor, trackingNumber string) (TrackShipmentQuery, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	var tnErr error
	if trackingNumber == "" {
		tnErr = errs.NewValueIsRequiredError("tracking number")
	}
	if err := errors.Join(actor.Validate(), tnErr); err != nil {
		return TrackShipmentQuery{}, err
	}
	return TrackShipmentQuery{actor: actor, trackingNumber: trackingNumber, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackShipmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed)
}

func (q TrackShipmentQuery) Actor() access.Actor {
	return q.actor
}

func (q TrackShipmentQuery) TrackingNumber() string {
	return q.trackingNumber
}

// GetShipmentQuery loads a shipment with everything hanging off it.
type GetShipmentQuery struct {
	actor      access.Actor
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(actor access.Actor, shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate()); err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{actor: actor, shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

func (q GetShipmentQuery) Actor() access.Actor {
	return q.actor
}

func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// GetTrackingHistoryQuery loads the ledger of a shipment.
type GetTrackingHistoryQuery struct {
	actor      access.Actor
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTrackingHistoryQuery(actor access.Actor, shipmentID kernel.UUID) (GetTrackingHistoryQuery, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate()); err != nil {
		return GetTrackingHistoryQuery{}, err
	}
	return GetTrackingHistoryQuery{actor: actor, shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTrackingHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingHistoryQueryIsNotConstructed)
}

func (q GetTrackingHistoryQuery) Actor() access.Actor {
	return q.actor
}

func (q GetTrackingHistoryQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

type GetPaymentQuery struct {
	actor     access.Actor
	paymentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPaymentQuery(actor access.Actor, paymentID kernel.UUID) (GetPaymentQuery, error) {
	if err := errors.Join(actor.Validate(), paymentID.Validate()); err != nil {
		return GetPaymentQuery{}, err
	}
	return GetPaymentQuery{actor: actor, paymentID: paymentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPaymentQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentQueryIsNotConstructed)
}

func (q GetPaymentQuery) Actor() access.Actor {
	return q.actor
}

func (q GetPaymentQuery) PaymentID() kernel.UUID {
	return q.paymentID
}

// ShipmentDetails is the full view of a shipment for a bound party.
type ShipmentDetails struct {
	Shipment    *shipment.Shipment
	Packages    []*shipment.Package
	Assignments []*assignment.Assignment
	Payments    []*payment.Payment
	Events      []*tracking.Event
}

// TrackingHistory is the ledger of a shipment, newest entries first.
type TrackingHistory struct {
	ShipmentID    kernel.UUID
	Events        []*tracking.Event
	StatusHistory []*tracking.StatusRecord
}
