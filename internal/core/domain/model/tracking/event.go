package tracking

import (
	"errors"
	"maps"
	"strings"
	"time"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// EventParams describes a ledger entry to be appended.
type EventParams struct {
	ID          kernel.UUID
	ShipmentID  kernel.UUID
	Type        EventType
	Location    kernel.Location
	Description string
	Timestamp   time.Time
	CreatedBy   *kernel.UUID
	Metadata    map[string]string
}

// Event is one immutable entry of a shipment's tracking ledger. It has no
// setters: once built, its timestamp, type and description never change.
// CreatedBy is nil for entries produced by the system itself.
type Event struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	eventType   EventType
	location    kernel.Location
	description string
	timestamp   time.Time
	createdBy   *kernel.UUID
	metadata    map[string]string

	isConstructed bool
}

// NewEvent validates p and returns the event. Timestamp is required; callers
// default it to the clock time of acceptance. Metadata is copied.
func NewEvent(p EventParams) (*Event, error) {
	var tsErr error
	if p.Timestamp.IsZero() {
		tsErr = errs.NewValueIsRequiredError("timestamp")
	}

	var byErr error
	if p.CreatedBy != nil {
		byErr = p.CreatedBy.Validate()
	}

	if err := errors.Join(
		p.ID.Validate(),
		p.ShipmentID.Validate(),
		p.Type.Validate(),
		tsErr,
		byErr,
	); err != nil {
		return nil, err
	}

	var createdBy *kernel.UUID
	if p.CreatedBy != nil {
		c := *p.CreatedBy
		createdBy = &c
	}

	return &Event{
		id:            p.ID,
		shipmentID:    p.ShipmentID,
		eventType:     p.Type,
		location:      p.Location,
		description:   strings.TrimSpace(p.Description),
		timestamp:     p.Timestamp,
		createdBy:     createdBy,
		metadata:      maps.Clone(p.Metadata),
		isConstructed: true,
	}, nil
}

func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

func (e *Event) ID() kernel.UUID {
	return e.id
}

func (e *Event) ShipmentID() kernel.UUID {
	return e.shipmentID
}

func (e *Event) Type() EventType {
	return e.eventType
}

func (e *Event) Location() kernel.Location {
	return e.location
}

func (e *Event) Description() string {
	return e.description
}

func (e *Event) Timestamp() time.Time {
	return e.timestamp
}

func (e *Event) CreatedBy() *kernel.UUID {
	if e.createdBy == nil {
		return nil
	}
	c := *e.createdBy
	return &c
}

// Metadata returns a copy of the event metadata, or nil when there is none.
func (e *Event) Metadata() map[string]string {
	return maps.Clone(e.metadata)
}

// Params returns the values the event was built from, for persistence.
func (e *Event) Params() EventParams {
	return EventParams{
		ID:          e.id,
		ShipmentID:  e.shipmentID,
		Type:        e.eventType,
		Location:    e.location,
		Description: e.description,
		Timestamp:   e.timestamp,
		CreatedBy:   e.CreatedBy(),
		Metadata:    e.Metadata(),
	}
}
