package services

import (
	"errors"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/notification"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/pkg/errs"
)

// Transition is everything an accepted status change produces. The caller
// persists all of it, together with the shipment, in one unit of work.
type Transition struct {
	From          shipment.Status
	To            shipment.Status
	Record        *tracking.StatusRecord
	Event         *tracking.Event
	Notifications []notification.Message
}

// StatusTransitioner applies status changes to a shipment and derives the
// ledger entries and notifications that go with them.
//
// Business rules:
//   - the move must be an edge of the transition table
//   - every accepted move yields exactly one status record and one event
//   - the event type comes from tracking.EventTypeForStatus
//   - sender and receiver are notified only for statuses in the
//     notification table
//
// StatusTransitioner writes nothing itself; on any error the caller rolls
// back and no partial state exists.
type StatusTransitioner struct {
	clock kernel.Clock
}

func NewStatusTransitioner(clock kernel.Clock) (StatusTransitioner, error) {
	if clock == nil {
		return StatusTransitioner{}, errs.NewValueIsRequiredError("clock")
	}
	return StatusTransitioner{clock: clock}, nil
}

// Transition moves s to target and describes the move.
//
// Returns:
//   - InvalidTransitionError when target is not adjacent to the current status
//   - ValueIsInvalidError when target is not a recognized status
//
// Example:
//
//	tr, err := transitioner.Transition(s, shipment.InTransit, actor, loc, "left Nairobi hub")
//	if err != nil {
//	    return err
//	}
//	// persist s, tr.Record, tr.Event, then enqueue tr.Notifications
func (t StatusTransitioner) Transition(
	s *shipment.Shipment,
	target shipment.Status,
	actor access.Actor,
	location kernel.Location,
	notes string,
) (Transition, error) {
	if err := s.Validate(); err != nil {
		return Transition{}, err
	}
	from := s.Status()
	if err := s.TransitionTo(target); err != nil {
		return Transition{}, err
	}
	return t.Describe(s, from, actor, location, notes)
}

// Describe builds the record, event and notifications for a status change
// that s already went through (for example by MarkPickedUp). from is the
// status before the change.
func (t StatusTransitioner) Describe(
	s *shipment.Shipment,
	from shipment.Status,
	actor access.Actor,
	location kernel.Location,
	notes string,
) (Transition, error) {
	to := s.Status()
	eventType, err := tracking.EventTypeForStatus(to)
	if err != nil {
		return Transition{}, err
	}

	description := notes
	if description == "" {
		description = "Status updated to " + to.String()
	}

	record, event, err := t.ledgerEntries(s, actor, location, notes, eventType, description,
		map[string]string{"from": from.String(), "to": to.String()})
	if err != nil {
		return Transition{}, err
	}

	return Transition{
		From:          from,
		To:            to,
		Record:        record,
		Event:         event,
		Notifications: notification.ForStatusChange(s, to),
	}, nil
}

// Booking describes the creation of s: the initial Booked status record, the
// booked event and the booking notifications for sender and receiver.
func (t StatusTransitioner) Booking(s *shipment.Shipment, actor access.Actor) (Transition, error) {
	if err := s.Validate(); err != nil {
		return Transition{}, err
	}
	if s.Status() != shipment.Booked {
		return Transition{}, errs.NewInvalidStateError("shipment is not booked")
	}

	record, event, err := t.ledgerEntries(s, actor, kernel.EmptyLocation(), "Shipment booked",
		tracking.EventBooked, "Shipment booked", nil)
	if err != nil {
		return Transition{}, err
	}

	return Transition{
		From:          shipment.Unknown,
		To:            shipment.Booked,
		Record:        record,
		Event:         event,
		Notifications: notification.ForBooking(s),
	}, nil
}

func (t StatusTransitioner) ledgerEntries(
	s *shipment.Shipment,
	actor access.Actor,
	location kernel.Location,
	notes string,
	eventType tracking.EventType,
	description string,
	metadata map[string]string,
) (*tracking.StatusRecord, *tracking.Event, error) {
	now := t.clock.Now()
	actorID := actor.ID()

	record, recErr := tracking.NewStatusRecord(kernel.NewUUID(), s.ID(), s.Status(), location, notes, actorID, now)
	event, evErr := tracking.NewEvent(tracking.EventParams{
		ID:          kernel.NewUUID(),
		ShipmentID:  s.ID(),
		Type:        eventType,
		Location:    location,
		Description: description,
		Timestamp:   now,
		CreatedBy:   &actorID,
		Metadata:    metadata,
	})
	if err := errors.Join(recErr, evErr); err != nil {
		return nil, nil, err
	}
	return record, event, nil
}
