package shipment

import (
	"fmt"

	"arenoexpress/internal/pkg/errs"
)

// Status is the single source of truth for where a shipment is in its
// lifecycle. Changes go through TransitionTo, which only follows the edges of
// the transition table below.
//
// State transitions:
//
//	Booked                  ──> AwaitingPickup, PickedUp
//	AwaitingPickup          ──> PickedUp
//	PickedUp                ──> ReceivedAtAgent, InTransit, Returned
//	ReceivedAtAgent         ──> InTransit, Returned
//	InTransit               ──> ArrivedAtHub, ArrivedAtDestination, Returned
//	ArrivedAtHub            ──> InTransit (hub to hub), DispatchedToDestination, Returned
//	DispatchedToDestination ──> ArrivedAtDestination, Returned
//	ArrivedAtDestination    ──> OutForDelivery, Delivered, PickedUpByReceiver, Returned
//	OutForDelivery          ──> Delivered, PickedUpByReceiver, Returned
//
// Delivered, PickedUpByReceiver and Returned are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Booked is the initial status assigned when a shipment is created.
	Booked

	// AwaitingPickup means a pickup has been scheduled with a driver.
	AwaitingPickup

	// PickedUp means a driver has collected the packages from the sender.
	PickedUp

	// ReceivedAtAgent means the packages were handed in at an agent station.
	ReceivedAtAgent

	// InTransit means the packages are moving between network nodes.
	InTransit

	// ArrivedAtHub means the packages reached an intermediate hub.
	ArrivedAtHub

	// DispatchedToDestination means the packages left the last hub for the destination.
	DispatchedToDestination

	// ArrivedAtDestination means the packages are at the destination station.
	ArrivedAtDestination

	// OutForDelivery means a driver is on the way to the receiver.
	OutForDelivery

	// Delivered means the receiver got the packages at the delivery address.
	Delivered

	// PickedUpByReceiver means the receiver collected the packages at the station.
	PickedUpByReceiver

	// Returned means the shipment went back to the sender. Terminal.
	Returned
)

var statusNames = map[Status]string{
	Booked:                  "booked",
	AwaitingPickup:          "awaiting_pickup",
	PickedUp:                "picked_up",
	ReceivedAtAgent:         "received_at_agent",
	InTransit:               "in_transit",
	ArrivedAtHub:            "arrived_at_hub",
	DispatchedToDestination: "dispatched_to_destination",
	ArrivedAtDestination:    "arrived_at_destination",
	OutForDelivery:          "out_for_delivery",
	Delivered:               "delivered",
	PickedUpByReceiver:      "picked_up_by_receiver",
	Returned:                "returned",
}

// transitions lists, for every status, the statuses it may move to.
// A status absent from the map, or mapped to nothing, is terminal.
var transitions = map[Status][]Status{
	Booked:                  {AwaitingPickup, PickedUp},
	AwaitingPickup:          {PickedUp},
	PickedUp:                {ReceivedAtAgent, InTransit, Returned},
	ReceivedAtAgent:         {InTransit, Returned},
	InTransit:               {ArrivedAtHub, ArrivedAtDestination, Returned},
	ArrivedAtHub:            {InTransit, DispatchedToDestination, Returned},
	DispatchedToDestination: {ArrivedAtDestination, Returned},
	ArrivedAtDestination:    {OutForDelivery, Delivered, PickedUpByReceiver, Returned},
	OutForDelivery:          {Delivered, PickedUpByReceiver, Returned},
}

// Statuses returns the twelve recognized statuses in lifecycle order.
func Statuses() []Status {
	return []Status{
		Booked, AwaitingPickup, PickedUp, ReceivedAtAgent, InTransit, ArrivedAtHub,
		DispatchedToDestination, ArrivedAtDestination, OutForDelivery,
		Delivered, PickedUpByReceiver, Returned,
	}
}

// ParseStatus maps a status name ("picked_up") onto Status.
//
// Returns:
//   - the matching Status
//   - a ValueIsInvalidError when the name is not one of the twelve statuses
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the twelve recognized statuses.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name used in payloads and notifications,
// or "unknown" for values outside the enum.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// CanBePickedUp holds only for Booked and AwaitingPickup.
func (s Status) CanBePickedUp() bool {
	return s == Booked || s == AwaitingPickup
}

// CanBeDelivered holds only for ArrivedAtDestination and OutForDelivery.
func (s Status) CanBeDelivered() bool {
	return s == ArrivedAtDestination || s == OutForDelivery
}

// IsCompleted holds for the two successful terminal statuses.
func (s Status) IsCompleted() bool {
	return s == Delivered || s == PickedUpByReceiver
}

func (s Status) IsReturned() bool {
	return s == Returned
}

// IsTerminal holds when no further transition is possible.
func (s Status) IsTerminal() bool {
	return s.IsCompleted() || s.IsReturned()
}

// NextStatuses returns the statuses reachable in one step from s.
func (s Status) NextStatuses() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether target is one edge away from s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates a move from s to target.
//
// Returns:
//   - (target, nil) when the edge exists
//   - (Unknown, ValueIsInvalidError) when target is not a recognized status
//   - (Unknown, InvalidTransitionError) when target is recognized but not
//     reachable from s; the error matches errs.ErrInvalidState
//
// Example:
//
//	next, err := shipment.Booked.TransitionTo(shipment.Delivered)
//	// err: invalid transition: booked -> delivered
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError(s, target)
	}
	return target, nil
}
