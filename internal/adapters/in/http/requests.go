package http

import (
	"strings"
	"time"

	"arenoexpress/internal/core/application/usecases/commands"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/errs"
)

type PackageRequest struct {
	Description         string  `json:"description"`
	Weight              float64 `json:"weight"`
	Length              float64 `json:"length"`
	Width               float64 `json:"width"`
	Height              float64 `json:"height"`
	IsFragile           bool    `json:"is_fragile"`
	Insurance           string  `json:"insurance"`
	DeclaredValue       string  `json:"declared_value"`
	SpecialInstructions string  `json:"special_instructions"`
}

func (r PackageRequest) toDetails() (shipment.PackageDetails, error) {
	insurance, err := parseMoney(r.Insurance)
	if err != nil {
		return shipment.PackageDetails{}, err
	}
	declared, err := parseMoney(r.DeclaredValue)
	if err != nil {
		return shipment.PackageDetails{}, err
	}
	return shipment.PackageDetails{
		Description:         r.Description,
		Weight:              r.Weight,
		Length:              r.Length,
		Width:               r.Width,
		Height:              r.Height,
		IsFragile:           r.IsFragile,
		Insurance:           insurance,
		DeclaredValue:       declared,
		SpecialInstructions: r.SpecialInstructions,
	}, nil
}

type BookShipmentRequest struct {
	SenderID            *string          `json:"sender_id"`
	ReceiverID          string           `json:"receiver_id"`
	PickupAddress       string           `json:"pickup_address"`
	DeliveryAddress     string           `json:"delivery_address"`
	ShipmentFee         string           `json:"shipment_fee"`
	TotalAmount         string           `json:"total_amount"`
	IsBusinessCourier   bool             `json:"is_business_courier"`
	SpecialInstructions string           `json:"special_instructions"`
	PickupDate          *time.Time       `json:"pickup_date"`
	Packages            []PackageRequest `json:"packages"`
}

func (r BookShipmentRequest) toParams() (commands.BookShipmentParams, error) {
	receiverID, err := parseUUID("receiver_id", r.ReceiverID)
	if err != nil {
		return commands.BookShipmentParams{}, err
	}
	var senderID *kernel.UUID
	if r.SenderID != nil {
		id, err := parseUUID("sender_id", *r.SenderID)
		if err != nil {
			return commands.BookShipmentParams{}, err
		}
		senderID = &id
	}
	fee, err := parseMoney(r.ShipmentFee)
	if err != nil {
		return commands.BookShipmentParams{}, err
	}
	total, err := parseMoney(r.TotalAmount)
	if err != nil {
		return commands.BookShipmentParams{}, err
	}

	packages := make([]shipment.PackageDetails, 0, len(r.Packages))
	for _, p := range r.Packages {
		details, err := p.toDetails()
		if err != nil {
			return commands.BookShipmentParams{}, err
		}
		packages = append(packages, details)
	}

	return commands.BookShipmentParams{
		SenderID:            senderID,
		ReceiverID:          receiverID,
		PickupAddress:       r.PickupAddress,
		DeliveryAddress:     r.DeliveryAddress,
		ShipmentFee:         fee,
		TotalAmount:         total,
		IsBusinessCourier:   r.IsBusinessCourier,
		SpecialInstructions: r.SpecialInstructions,
		PickupDate:          r.PickupDate,
		Packages:            packages,
	}, nil
}

type TransitionRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// EvidenceRequest is the body of pickup and delivery. Kind is only read by
// delivery: "delivered" (default) or "picked_up_by_receiver".
type EvidenceRequest struct {
	Kind      string   `json:"kind"`
	Location  string   `json:"location"`
	Notes     string   `json:"notes"`
	Signature string   `json:"signature"`
	Photos    []string `json:"photos"`
}

func (r EvidenceRequest) toEvidence() (commands.Evidence, error) {
	loc, err := kernel.NewLocation(r.Location)
	if err != nil {
		return commands.Evidence{}, err
	}
	return commands.Evidence{Location: loc, Notes: r.Notes, Signature: r.Signature, Photos: r.Photos}, nil
}

type AssignAgentRequest struct {
	AgentID string `json:"agent_id"`
}

type TrackingEventRequest struct {
	EventType   string            `json:"event_type"`
	Location    string            `json:"location"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
	Timestamp   *time.Time        `json:"timestamp"`
}

type PhotoRequest struct {
	Ref string `json:"ref"`
}

type CreateAssignmentRequest struct {
	DriverID          string  `json:"driver_id"`
	AssignmentType    string  `json:"assignment_type"`
	VehicleID         *string `json:"vehicle_id"`
	Notes             string  `json:"notes"`
	EstimatedDuration int     `json:"estimated_duration"`
}

type AssignmentActionRequest struct {
	Location string `json:"location"`
	Reason   string `json:"reason"`
}

type CreatePaymentRequest struct {
	PaymentType     string         `json:"payment_type"`
	Amount          string         `json:"amount"`
	PaymentMethod   string         `json:"payment_method"`
	GatewayResponse map[string]any `json:"gateway_response"`
}

type PaymentActionRequest struct {
	Reason          string         `json:"reason"`
	GatewayResponse map[string]any `json:"gateway_response"`
}

func parseUUID(field, s string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(strings.TrimSpace(s))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return id, nil
}

// parseMoney reads a decimal amount; an empty string is zero.
func parseMoney(s string) (kernel.Money, error) {
	if strings.TrimSpace(s) == "" {
		return kernel.NewMoney(0)
	}
	return kernel.ParseMoney(s)
}
