package tracking

import (
	"fmt"

	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/errs"
)

// EventType is the taxonomy of ledger entries. Status transitions map onto a
// fixed subset through EventTypeForStatus; the rest are recorded for actions
// that do not move the shipment (pickup started, delivery attempts, payments).
type EventType int

const (
	EventUnknown EventType = iota
	EventBooked
	EventPickupScheduled
	EventPickupStarted
	EventPickupCompleted
	EventReceivedAtAgent
	EventInTransit
	EventArrivedAtHub
	EventDispatched
	EventArrivedAtDestination
	EventOutForDelivery
	EventDeliveryAttempted
	EventDelivered
	EventPickedUpByReceiver
	EventReturnInitiated
	EventReturned
	EventPaymentInitiated
	EventPaymentReceived
	EventPaymentFailed
	EventPaymentRefunded
	EventPaymentCancelled
)

var eventTypeNames = map[EventType]string{
	EventBooked:               "booked",
	EventPickupScheduled:      "pickup_scheduled",
	EventPickupStarted:        "pickup_started",
	EventPickupCompleted:      "pickup_completed",
	EventReceivedAtAgent:      "received_at_agent",
	EventInTransit:            "in_transit",
	EventArrivedAtHub:         "arrived_at_hub",
	EventDispatched:           "dispatched",
	EventArrivedAtDestination: "arrived_at_destination",
	EventOutForDelivery:       "out_for_delivery",
	EventDeliveryAttempted:    "delivery_attempted",
	EventDelivered:            "delivered",
	EventPickedUpByReceiver:   "picked_up_by_receiver",
	EventReturnInitiated:      "return_initiated",
	EventReturned:             "returned",
	EventPaymentInitiated:     "payment_initiated",
	EventPaymentReceived:      "payment_received",
	EventPaymentFailed:        "payment_failed",
	EventPaymentRefunded:      "payment_refunded",
	EventPaymentCancelled:     "payment_cancelled",
}

var statusEvents = map[shipment.Status]EventType{
	shipment.Booked:                  EventBooked,
	shipment.AwaitingPickup:          EventPickupScheduled,
	shipment.PickedUp:                EventPickupCompleted,
	shipment.ReceivedAtAgent:         EventReceivedAtAgent,
	shipment.InTransit:               EventInTransit,
	shipment.ArrivedAtHub:            EventArrivedAtHub,
	shipment.DispatchedToDestination: EventDispatched,
	shipment.ArrivedAtDestination:    EventArrivedAtDestination,
	shipment.OutForDelivery:          EventOutForDelivery,
	shipment.Delivered:               EventDelivered,
	shipment.PickedUpByReceiver:      EventPickedUpByReceiver,
	shipment.Returned:                EventReturned,
}

// EventTypeForStatus returns the event recorded when a shipment enters status.
// Every recognized status has exactly one entry.
func EventTypeForStatus(status shipment.Status) (EventType, error) {
	if t, ok := statusEvents[status]; ok {
		return t, nil
	}
	return EventUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("no event type for status %s", status))
}

// IsStatusEvent reports whether t is recorded only by status transitions.
func (t EventType) IsStatusEvent() bool {
	for _, st := range statusEvents {
		if st == t {
			return true
		}
	}
	return false
}

// ParseEventType maps an event type name ("pickup_started") onto EventType.
func ParseEventType(s string) (EventType, error) {
	for t, name := range eventTypeNames {
		if name == s {
			return t, nil
		}
	}
	return EventUnknown, errs.NewValueIsInvalidErrorWithCause("event type", fmt.Errorf("%q is not a valid event type", s))
}

func (t EventType) Validate() error {
	if _, ok := eventTypeNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("event type", fmt.Errorf("%d is not a valid event type", t))
	}
	return nil
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}
