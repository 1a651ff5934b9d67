package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"
)

// Type classifies a notification for the receiving application.
type Type int

const (
	TypeUnknown Type = iota
	ShipmentBooked
	PickupCompleted
	InTransit
	OutForDelivery
	Delivered
	PickedUp
	PaymentReceived
	PaymentFailed
	DriverAssigned
)

var typeNames = map[Type]string{
	ShipmentBooked:  "shipment_booked",
	PickupCompleted: "pickup_completed",
	InTransit:       "in_transit",
	OutForDelivery:  "out_for_delivery",
	Delivered:       "delivered",
	PickedUp:        "picked_up",
	PaymentReceived: "payment_received",
	PaymentFailed:   "payment_failed",
	DriverAssigned:  "driver_assigned",
}

func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("notification type",
		fmt.Errorf("%q is not a valid notification type", s))
}

func (t Type) Validate() error {
	if _, ok := typeNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("notification type",
			fmt.Errorf("%d is not a valid notification type", t))
	}
	return nil
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Message is one notification addressed to one user. Messages are queued in
// the same unit of work as the change that caused them and delivered later.
type Message struct {
	UserID     kernel.UUID
	ShipmentID *kernel.UUID
	Type       Type
	Title      string
	Body       string
	Metadata   map[string]string
}

// Validate checks the fields a sink relies on.
func (m Message) Validate() error {
	var titleErr error
	if strings.TrimSpace(m.Title) == "" {
		titleErr = errs.NewValueIsRequiredError("notification title")
	}
	return errors.Join(m.UserID.Validate(), m.Type.Validate(), titleErr)
}

type messageJSON struct {
	UserID     string            `json:"user_id"`
	ShipmentID *string           `json:"shipment_id,omitempty"`
	Type       string            `json:"type"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// MarshalJSON renders the wire form published by the broker sinks.
func (m Message) MarshalJSON() ([]byte, error) {
	out := messageJSON{
		UserID:   m.UserID.String(),
		Type:     m.Type.String(),
		Title:    m.Title,
		Message:  m.Body,
		Metadata: maps.Clone(m.Metadata),
	}
	if m.ShipmentID != nil {
		id := m.ShipmentID.String()
		out.ShipmentID = &id
	}
	return json.Marshal(out)
}
