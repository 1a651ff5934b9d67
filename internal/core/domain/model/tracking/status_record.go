package tracking

import (
	"errors"
	"strings"
	"time"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/errs"
)

var ErrStatusRecordIsNotConstructed = errors.New("StatusRecord must be created via NewStatusRecord constructor")

// StatusRecord is one row of a shipment's status history: the status entered,
// who moved it there, and the free-text location and notes they gave.
// One record exists per accepted transition, including the initial Booked.
type StatusRecord struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	status     shipment.Status
	location   kernel.Location
	notes      string
	updatedBy  kernel.UUID
	timestamp  time.Time

	isConstructed bool
}

func NewStatusRecord(
	id, shipmentID kernel.UUID,
	status shipment.Status,
	location kernel.Location,
	notes string,
	updatedBy kernel.UUID,
	timestamp time.Time,
) (*StatusRecord, error) {
	var tsErr error
	if timestamp.IsZero() {
		tsErr = errs.NewValueIsRequiredError("timestamp")
	}

	if err := errors.Join(
		id.Validate(),
		shipmentID.Validate(),
		status.Validate(),
		updatedBy.Validate(),
		tsErr,
	); err != nil {
		return nil, err
	}

	return &StatusRecord{
		id:            id,
		shipmentID:    shipmentID,
		status:        status,
		location:      location,
		notes:         strings.TrimSpace(notes),
		updatedBy:     updatedBy,
		timestamp:     timestamp,
		isConstructed: true,
	}, nil
}

func (r *StatusRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrStatusRecordIsNotConstructed
	}
	return nil
}

func (r *StatusRecord) ID() kernel.UUID {
	return r.id
}

func (r *StatusRecord) ShipmentID() kernel.UUID {
	return r.shipmentID
}

func (r *StatusRecord) Status() shipment.Status {
	return r.status
}

func (r *StatusRecord) Location() kernel.Location {
	return r.location
}

func (r *StatusRecord) Notes() string {
	return r.notes
}

func (r *StatusRecord) UpdatedBy() kernel.UUID {
	return r.updatedBy
}

func (r *StatusRecord) Timestamp() time.Time {
	return r.timestamp
}
