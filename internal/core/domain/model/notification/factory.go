package notification

import (
	"fmt"
	"maps"

	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/core/domain/model/shipment"
)

// statusNotifications lists the statuses that notify sender and receiver.
// Any other status changes silently.
var statusNotifications = map[shipment.Status]Type{
	shipment.PickedUp:           PickupCompleted,
	shipment.InTransit:          InTransit,
	shipment.OutForDelivery:     OutForDelivery,
	shipment.Delivered:          Delivered,
	shipment.PickedUpByReceiver: PickedUp,
}

// TypeForStatus returns the notification type for status, if it has one.
func TypeForStatus(status shipment.Status) (Type, bool) {
	t, ok := statusNotifications[status]
	return t, ok
}

// ForStatusChange builds one message for the sender and one for the receiver
// when status is in the notification table, and nothing otherwise.
func ForStatusChange(s *shipment.Shipment, status shipment.Status) []Message {
	t, ok := TypeForStatus(status)
	if !ok {
		return nil
	}
	return toParties(s, t,
		"Shipment Status Update",
		fmt.Sprintf("Your shipment %s status has been updated to %s.", s.TrackingNumber(), status),
		map[string]string{"tracking_number": s.TrackingNumber(), "status": status.String()},
	)
}

// ForBooking tells sender and receiver that the shipment was booked.
func ForBooking(s *shipment.Shipment) []Message {
	return toParties(s, ShipmentBooked,
		"Shipment Booked",
		fmt.Sprintf("Your shipment %s has been successfully booked.", s.TrackingNumber()),
		map[string]string{"tracking_number": s.TrackingNumber()},
	)
}

// ForDriverAssignment tells the driver about a new task.
func ForDriverAssignment(s *shipment.Shipment, a *assignment.Assignment) Message {
	id := s.ID()
	return Message{
		UserID:     a.DriverID(),
		ShipmentID: &id,
		Type:       DriverAssigned,
		Title:      "New Assignment",
		Body: fmt.Sprintf("You have been assigned the %s of shipment %s.",
			a.Type(), s.TrackingNumber()),
		Metadata: map[string]string{
			"assignment_id":   a.ID().String(),
			"assignment_type": a.Type().String(),
			"tracking_number": s.TrackingNumber(),
		},
	}
}

// ForPaymentCompleted tells the payer their payment went through.
func ForPaymentCompleted(p *payment.Payment) Message {
	return toPayer(p, PaymentReceived,
		"Payment Received",
		fmt.Sprintf("Payment of %s has been received.", p.Amount()))
}

// ForPaymentFailed tells the payer their payment was rejected.
func ForPaymentFailed(p *payment.Payment) Message {
	return toPayer(p, PaymentFailed,
		"Payment Failed",
		fmt.Sprintf("Payment of %s could not be processed: %s", p.Amount(), p.FailureReason()))
}

func toParties(s *shipment.Shipment, t Type, title, body string, meta map[string]string) []Message {
	id := s.ID()
	out := make([]Message, 0, 2)
	for _, user := range []kernel.UUID{s.SenderID(), s.ReceiverID()} {
		out = append(out, Message{
			UserID:     user,
			ShipmentID: &id,
			Type:       t,
			Title:      title,
			Body:       body,
			Metadata:   maps.Clone(meta),
		})
	}
	return out
}

func toPayer(p *payment.Payment, t Type, title, body string) Message {
	id := p.ShipmentID()
	return Message{
		UserID:     p.UserID(),
		ShipmentID: &id,
		Type:       t,
		Title:      title,
		Body:       body,
		Metadata: map[string]string{
			"payment_id":     p.ID().String(),
			"transaction_id": p.TransactionID(),
			"amount":         p.Amount().String(),
		},
	}
}
