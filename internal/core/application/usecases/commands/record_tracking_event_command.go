package commands

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/pkg/errs"
	"arenoexpress/internal/pkg/guard"
)

var ErrRecordTrackingEventCommandIsNotConstructed = errors.New(
	"RecordTrackingEventCommand must be created via NewRecordTrackingEventCommand constructor",
)

// RecordTrackingEventCommand appends a checkpoint event that does not change
// the shipment status, such as a delivery attempt. Event types that status
// transitions produce are rejected. A nil timestamp means now; a timestamp in
// the future is rejected by the handler.
type RecordTrackingEventCommand struct {
	actor       access.Actor
	shipmentID  kernel.UUID
	eventType   tracking.EventType
	location    kernel.Location
	description string
	metadata    map[string]string
	timestamp   *time.Time

	guard guard.ConstructorGuard
}

func NewRecordTrackingEventCommand(
	actor access.Actor,
	shipmentID kernel.UUID,
	eventType tracking.EventType,
	location kernel.Location,
	description string,
	metadata map[string]string,
	timestamp *time.Time,
) (RecordTrackingEventCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate(), eventType.Validate()); err != nil {
		return RecordTrackingEventCommand{}, err
	}
	if eventType.IsStatusEvent() {
		return RecordTrackingEventCommand{}, errs.NewValueIsInvalidErrorWithCause("event type",
			fmt.Errorf("%s is recorded by status transitions only", eventType))
	}
	var ts *time.Time
	if timestamp != nil {
		t := *timestamp
		ts = &t
	}
	return RecordTrackingEventCommand{
		actor:       actor,
		shipmentID:  shipmentID,
		eventType:   eventType,
		location:    location,
		description: description,
		metadata:    maps.Clone(metadata),
		timestamp:   ts,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RecordTrackingEventCommand) Validate() error {
	return c.guard.Validate(ErrRecordTrackingEventCommandIsNotConstructed)
}

func (c RecordTrackingEventCommand) Actor() access.Actor {
	return c.actor
}

func (c RecordTrackingEventCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c RecordTrackingEventCommand) EventType() tracking.EventType {
	return c.eventType
}

func (c RecordTrackingEventCommand) Location() kernel.Location {
	return c.location
}

func (c RecordTrackingEventCommand) Description() string {
	return c.description
}

func (c RecordTrackingEventCommand) Metadata() map[string]string {
	return maps.Clone(c.metadata)
}

// Timestamp returns the explicit event time, if one was given.
func (c RecordTrackingEventCommand) Timestamp() (time.Time, bool) {
	if c.timestamp == nil {
		return time.Time{}, false
	}
	return *c.timestamp, true
}
