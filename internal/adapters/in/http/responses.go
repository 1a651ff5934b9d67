package http

import (
	"time"

	"arenoexpress/internal/core/application/usecases/commands"
	"arenoexpress/internal/core/application/usecases/queries"
	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/model/tracking"
)

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type ShipmentResponse struct {
	ID                  kernel.UUID  `json:"id"`
	TrackingNumber      string       `json:"tracking_number"`
	MasterTrackingID    string       `json:"master_tracking_id"`
	SenderID            kernel.UUID  `json:"sender_id"`
	ReceiverID          kernel.UUID  `json:"receiver_id"`
	AgentID             *kernel.UUID `json:"agent_id,omitempty"`
	DriverID            *kernel.UUID `json:"driver_id,omitempty"`
	PickupAddress       string       `json:"pickup_address"`
	DeliveryAddress     string       `json:"delivery_address"`
	Status              string       `json:"status"`
	PaymentStatus       string       `json:"payment_status"`
	ShipmentFee         kernel.Money `json:"shipment_fee"`
	TotalAmount         kernel.Money `json:"total_amount"`
	PickupDate          *time.Time   `json:"pickup_date,omitempty"`
	DeliveryDate        *time.Time   `json:"delivery_date,omitempty"`
	DeliverySignature   string       `json:"delivery_signature,omitempty"`
	SpecialInstructions string       `json:"special_instructions,omitempty"`
	IsBusinessCourier   bool         `json:"is_business_courier"`
	CreatedAt           time.Time    `json:"created_at"`
}

func toShipmentResponse(s *shipment.Shipment) ShipmentResponse {
	snap := s.Snapshot()
	return ShipmentResponse{
		ID:                  snap.ID,
		TrackingNumber:      snap.TrackingNumber,
		MasterTrackingID:    snap.MasterTrackingID,
		SenderID:            snap.SenderID,
		ReceiverID:          snap.ReceiverID,
		AgentID:             snap.AgentID,
		DriverID:            snap.DriverID,
		PickupAddress:       snap.PickupAddress,
		DeliveryAddress:     snap.DeliveryAddress,
		Status:              snap.Status.String(),
		PaymentStatus:       snap.PaymentStatus.String(),
		ShipmentFee:         snap.ShipmentFee,
		TotalAmount:         snap.TotalAmount,
		PickupDate:          snap.PickupDate,
		DeliveryDate:        snap.DeliveryDate,
		DeliverySignature:   snap.DeliverySignature,
		SpecialInstructions: snap.SpecialInstructions,
		IsBusinessCourier:   snap.IsBusinessCourier,
		CreatedAt:           snap.CreatedAt,
	}
}

type PackageResponse struct {
	ID                  kernel.UUID  `json:"id"`
	ShipmentID          kernel.UUID  `json:"shipment_id"`
	SubTrackingID       string       `json:"sub_tracking_id"`
	QRCode              string       `json:"qr_code"`
	Description         string       `json:"description"`
	Weight              float64      `json:"weight"`
	Length              float64      `json:"length"`
	Width               float64      `json:"width"`
	Height              float64      `json:"height"`
	ChargeableWeight    float64      `json:"chargeable_weight"`
	IsFragile           bool         `json:"is_fragile"`
	Insurance           kernel.Money `json:"insurance"`
	DeclaredValue       kernel.Money `json:"declared_value"`
	SpecialInstructions string       `json:"special_instructions,omitempty"`
	Photos              []string     `json:"photos"`
}

func toPackageResponse(p *shipment.Package) PackageResponse {
	d := p.Details()
	photos := p.Photos()
	if photos == nil {
		photos = []string{}
	}
	return PackageResponse{
		ID:                  p.ID(),
		ShipmentID:          p.ShipmentID(),
		SubTrackingID:       p.SubTrackingID(),
		QRCode:              p.QRCode(),
		Description:         d.Description,
		Weight:              d.Weight,
		Length:              d.Length,
		Width:               d.Width,
		Height:              d.Height,
		ChargeableWeight:    p.ChargeableWeight(),
		IsFragile:           d.IsFragile,
		Insurance:           d.Insurance,
		DeclaredValue:       d.DeclaredValue,
		SpecialInstructions: d.SpecialInstructions,
		Photos:              photos,
	}
}

type EventResponse struct {
	ID          kernel.UUID       `json:"id"`
	EventType   string            `json:"event_type"`
	Location    string            `json:"location"`
	Description string            `json:"description"`
	Timestamp   time.Time         `json:"timestamp"`
	CreatedBy   *kernel.UUID      `json:"created_by,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func toEventResponse(e *tracking.Event) EventResponse {
	return EventResponse{
		ID:          e.ID(),
		EventType:   e.Type().String(),
		Location:    e.Location().String(),
		Description: e.Description(),
		Timestamp:   e.Timestamp(),
		CreatedBy:   e.CreatedBy(),
		Metadata:    e.Metadata(),
	}
}

type StatusRecordResponse struct {
	ID        kernel.UUID `json:"id"`
	Status    string      `json:"status"`
	Location  string      `json:"location"`
	Notes     string      `json:"notes,omitempty"`
	UpdatedBy kernel.UUID `json:"updated_by"`
	Timestamp time.Time   `json:"timestamp"`
}

type AssignmentResponse struct {
	ID                kernel.UUID  `json:"id"`
	ShipmentID        kernel.UUID  `json:"shipment_id"`
	DriverID          kernel.UUID  `json:"driver_id"`
	VehicleID         *kernel.UUID `json:"vehicle_id,omitempty"`
	AssignmentType    string       `json:"assignment_type"`
	Status            string       `json:"status"`
	AssignedAt        time.Time    `json:"assigned_at"`
	AcceptedAt        *time.Time   `json:"accepted_at,omitempty"`
	StartedAt         *time.Time   `json:"started_at,omitempty"`
	CompletedAt       *time.Time   `json:"completed_at,omitempty"`
	Notes             string       `json:"notes,omitempty"`
	Location          string       `json:"location,omitempty"`
	EstimatedDuration int          `json:"estimated_duration"`
}

func toAssignmentResponse(a *assignment.Assignment) AssignmentResponse {
	snap := a.Snapshot()
	return AssignmentResponse{
		ID:                snap.ID,
		ShipmentID:        snap.ShipmentID,
		DriverID:          snap.DriverID,
		VehicleID:         snap.VehicleID,
		AssignmentType:    snap.Type.String(),
		Status:            snap.Status.String(),
		AssignedAt:        snap.AssignedAt,
		AcceptedAt:        snap.AcceptedAt,
		StartedAt:         snap.StartedAt,
		CompletedAt:       snap.CompletedAt,
		Notes:             snap.Notes,
		Location:          snap.Location.String(),
		EstimatedDuration: snap.EstimatedDuration,
	}
}

type PaymentResponse struct {
	ID              kernel.UUID    `json:"id"`
	ShipmentID      kernel.UUID    `json:"shipment_id"`
	UserID          kernel.UUID    `json:"user_id"`
	PaymentType     string         `json:"payment_type"`
	Amount          kernel.Money   `json:"amount"`
	PaymentMethod   string         `json:"payment_method"`
	TransactionID   string         `json:"transaction_id"`
	Status          string         `json:"status"`
	PaymentDate     *time.Time     `json:"payment_date,omitempty"`
	GatewayResponse map[string]any `json:"gateway_response,omitempty"`
	RefundReason    string         `json:"refund_reason,omitempty"`
	FailureReason   string         `json:"failure_reason,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

func toPaymentResponse(p *payment.Payment) PaymentResponse {
	snap := p.Snapshot()
	return PaymentResponse{
		ID:              snap.ID,
		ShipmentID:      snap.ShipmentID,
		UserID:          snap.UserID,
		PaymentType:     snap.Type.String(),
		Amount:          snap.Amount,
		PaymentMethod:   snap.Method.String(),
		TransactionID:   snap.TransactionID,
		Status:          snap.Status.String(),
		PaymentDate:     snap.PaymentDate,
		GatewayResponse: snap.GatewayResponse,
		RefundReason:    snap.RefundReason,
		FailureReason:   snap.FailureReason,
		CreatedAt:       snap.CreatedAt,
	}
}

type BookingResponse struct {
	Shipment ShipmentResponse  `json:"shipment"`
	Packages []PackageResponse `json:"packages"`
}

func toBookingResponse(r commands.BookingResult) BookingResponse {
	return BookingResponse{
		Shipment: toShipmentResponse(r.Shipment),
		Packages: mapSlice(r.Packages, toPackageResponse),
	}
}

type ShipmentDetailsResponse struct {
	Shipment    ShipmentResponse     `json:"shipment"`
	Packages    []PackageResponse    `json:"packages"`
	Assignments []AssignmentResponse `json:"assignments"`
	Payments    []PaymentResponse    `json:"payments"`
	Events      []EventResponse      `json:"events"`
}

func toShipmentDetailsResponse(d queries.ShipmentDetails) ShipmentDetailsResponse {
	return ShipmentDetailsResponse{
		Shipment:    toShipmentResponse(d.Shipment),
		Packages:    mapSlice(d.Packages, toPackageResponse),
		Assignments: mapSlice(d.Assignments, toAssignmentResponse),
		Payments:    mapSlice(d.Payments, toPaymentResponse),
		Events:      mapSlice(d.Events, toEventResponse),
	}
}

type HistoryResponse struct {
	ShipmentID    kernel.UUID            `json:"shipment_id"`
	Events        []EventResponse        `json:"events"`
	StatusHistory []StatusRecordResponse `json:"status_history"`
}

func toHistoryResponse(h queries.TrackingHistory) HistoryResponse {
	return HistoryResponse{
		ShipmentID: h.ShipmentID,
		Events:     mapSlice(h.Events, toEventResponse),
		StatusHistory: mapSlice(h.StatusHistory, func(r *tracking.StatusRecord) StatusRecordResponse {
			return StatusRecordResponse{
				ID:        r.ID(),
				Status:    r.Status().String(),
				Location:  r.Location().String(),
				Notes:     r.Notes(),
				UpdatedBy: r.UpdatedBy(),
				Timestamp: r.Timestamp(),
			}
		}),
	}
}

// mapSlice never returns nil so empty lists render as [].
func mapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
