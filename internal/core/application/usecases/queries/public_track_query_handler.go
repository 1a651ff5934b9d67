package queries

import (
	"context"
	"errors"

	"arenoexpress/internal/pkg/errs"
)

// PublicTrackQueryHandler serves unauthenticated tracking. An unknown
// tracking number yields a bare not-found error that names nothing.
type PublicTrackQueryHandler struct {
	readers ReaderFactory
}

func NewPublicTrackQueryHandler(readers ReaderFactory) PublicTrackQueryHandler {
	return PublicTrackQueryHandler{readers: readers}
}

func (h PublicTrackQueryHandler) Handle(ctx context.Context, query PublicTrackQuery) (PublicTrackingView, error) {
	if err := query.Validate(); err != nil {
		return PublicTrackingView{}, err
	}
	r := h.readers.Create()

	s, err := r.ShipmentRepository().GetByTrackingNumber(ctx, query.TrackingNumber())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return PublicTrackingView{}, errs.NewObjectNotFoundError("tracking number", "shipment")
	}
	if err != nil {
		return PublicTrackingView{}, err
	}

	events, err := r.TrackingEventRepository().ListByShipment(ctx, s.ID())
	if err != nil {
		return PublicTrackingView{}, err
	}

	view := PublicTrackingView{
		TrackingNumber:  s.TrackingNumber(),
		Status:          s.Status().String(),
		PickupAddress:   s.PickupAddress(),
		DeliveryAddress: s.DeliveryAddress(),
		Events:          make([]PublicEvent, 0, len(events)),
	}
	for _, e := range events {
		view.Events = append(view.Events, PublicEvent{
			EventType:   e.Type().String(),
			Location:    e.Location().String(),
			Description: e.Description(),
			Timestamp:   e.Timestamp(),
		})
	}
	return view, nil
}
