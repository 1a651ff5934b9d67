package queries

import (
	"errors"
	"strings"
	"time"

	"arenoexpress/internal/pkg/errs"
	"arenoexpress/internal/pkg/guard"
)

var ErrPublicTrackQueryIsNotConstructed = errors.New(
	"PublicTrackQuery must be created via NewPublicTrackQuery constructor",
)

// PublicTrackQuery looks a shipment up by tracking number without
// authentication.
//
// Example:
//
//	query, err := NewPublicTrackQuery("TRK20260A1B2C3D")
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type PublicTrackQuery struct {
	trackingNumber string

	guard guard.ConstructorGuard
}

func NewPublicTrackQuery(trackingNumber string) (PublicTrackQuery, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return PublicTrackQuery{}, errs.NewValueIsRequiredError("tracking number")
	}
	return PublicTrackQuery{trackingNumber: trackingNumber, guard: guard.NewConstructorGuard()}, nil
}

func (q PublicTrackQuery) Validate() error {
	return q.guard.Validate(ErrPublicTrackQueryIsNotConstructed)
}

func (q PublicTrackQuery) TrackingNumber() string {
	return q.trackingNumber
}

// PublicTrackingView is the redacted view anyone holding a tracking number
// may see. It carries no party identifiers, amounts or event authors.
type PublicTrackingView struct {
	TrackingNumber  string        `json:"tracking_number"`
	Status          string        `json:"status"`
	PickupAddress   string        `json:"pickup_address"`
	DeliveryAddress string        `json:"delivery_address"`
	Events          []PublicEvent `json:"events"`
}

type PublicEvent struct {
	EventType   string    `json:"event_type"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
