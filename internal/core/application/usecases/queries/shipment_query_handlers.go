package queries

import (
	"context"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/services"
)

// ShipmentQueryHandler serves the authenticated read operations. Every view
// is gated by the visibility rule: admin, or a party bound to the shipment.
type ShipmentQueryHandler struct {
	readers ReaderFactory
	policy  services.AccessPolicy
}

func NewShipmentQueryHandler(readers ReaderFactory, policy services.AccessPolicy) ShipmentQueryHandler {
	return ShipmentQueryHandler{readers: readers, policy: policy}
}

func (h ShipmentQueryHandler) HandleTrack(ctx context.Context, query TrackShipmentQuery) (ShipmentDetails, error) {
	if err := query.Validate(); err != nil {
		return ShipmentDetails{}, err
	}
	r := h.readers.Create()

	s, err := r.ShipmentRepository().GetByTrackingNumber(ctx, query.TrackingNumber())
	if err != nil {
		return ShipmentDetails{}, err
	}
	return h.details(ctx, r, query.Actor(), s)
}

func (h ShipmentQueryHandler) HandleGet(ctx context.Context, query GetShipmentQuery) (ShipmentDetails, error) {
	if err := query.Validate(); err != nil {
		return ShipmentDetails{}, err
	}
	r := h.readers.Create()

	s, err := r.ShipmentRepository().Get(ctx, query.ShipmentID())
	if err != nil {
		return ShipmentDetails{}, err
	}
	return h.details(ctx, r, query.Actor(), s)
}

func (h ShipmentQueryHandler) HandleHistory(ctx context.Context, query GetTrackingHistoryQuery) (TrackingHistory, error) {
	if err := query.Validate(); err != nil {
		return TrackingHistory{}, err
	}
	r := h.readers.Create()

	s, err := r.ShipmentRepository().Get(ctx, query.ShipmentID())
	if err != nil {
		return TrackingHistory{}, err
	}
	if err = h.policy.Authorize(query.Actor(), access.ActionView, s.Bindings()); err != nil {
		return TrackingHistory{}, err
	}

	events, err := r.TrackingEventRepository().ListByShipment(ctx, s.ID())
	if err != nil {
		return TrackingHistory{}, err
	}
	records, err := r.StatusHistoryRepository().ListByShipment(ctx, s.ID())
	if err != nil {
		return TrackingHistory{}, err
	}
	return TrackingHistory{ShipmentID: s.ID(), Events: events, StatusHistory: records}, nil
}

func (h ShipmentQueryHandler) HandlePayment(ctx context.Context, query GetPaymentQuery) (*payment.Payment, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	r := h.readers.Create()

	p, err := r.PaymentRepository().Get(ctx, query.PaymentID())
	if err != nil {
		return nil, err
	}
	s, err := r.ShipmentRepository().Get(ctx, p.ShipmentID())
	if err != nil {
		return nil, err
	}
	if err = h.policy.AuthorizePaymentView(query.Actor(), p, s.Bindings()); err != nil {
		return nil, err
	}
	return p, nil
}

func (h ShipmentQueryHandler) details(ctx context.Context, r Reader, actor access.Actor, s *shipment.Shipment) (ShipmentDetails, error) {
	if err := h.policy.Authorize(actor, access.ActionView, s.Bindings()); err != nil {
		return ShipmentDetails{}, err
	}

	packages, err := r.PackageRepository().ListByShipment(ctx, s.ID())
	if err != nil {
		return ShipmentDetails{}, err
	}
	assignments, err := r.AssignmentRepository().ListByShipment(ctx, s.ID())
	if err != nil {
		return ShipmentDetails{}, err
	}
	payments, err := r.PaymentRepository().ListByShipment(ctx, s.ID())
	if err != nil {
		return ShipmentDetails{}, err
	}
	events, err := r.TrackingEventRepository().ListByShipment(ctx, s.ID())
	if err != nil {
		return ShipmentDetails{}, err
	}

	return ShipmentDetails{
		Shipment:    s,
		Packages:    packages,
		Assignments: assignments,
		Payments:    payments,
		Events:      events,
	}, nil
}
