// Package trackingrepo persists the two append-only ledgers of a shipment:
// tracking events and status records. Neither table is ever updated; the
// migration installs triggers that reject UPDATE statements.
package trackingrepo

import (
	"time"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// EventDTO is the tracking_events table. Seq is assigned by the database
// and breaks ties between events with the same timestamp.
type EventDTO struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Seq         int64             `gorm:"type:bigserial;<-:false"`
	ShipmentID  uuid.UUID         `gorm:"type:uuid;not null;index:idx_tracking_events_shipment_ts,priority:1"`
	EventType   int               `gorm:"type:smallint;not null"`
	Location    string            `gorm:"type:varchar(255)"`
	Description string            `gorm:"type:text"`
	Timestamp   time.Time         `gorm:"not null;index:idx_tracking_events_shipment_ts,priority:2"`
	CreatedBy   *uuid.UUID        `gorm:"type:uuid"`
	Metadata    map[string]string `gorm:"serializer:json;type:jsonb"`
}

func (EventDTO) TableName() string {
	return "tracking_events"
}

// StatusRecordDTO is the status_history table.
type StatusRecordDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int64     `gorm:"type:bigserial;<-:false"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index:idx_status_history_shipment_ts,priority:1"`
	Status     int       `gorm:"type:smallint;not null"`
	Location   string    `gorm:"type:varchar(255)"`
	Notes      string    `gorm:"type:text"`
	UpdatedBy  uuid.UUID `gorm:"type:uuid;not null"`
	Timestamp  time.Time `gorm:"not null;index:idx_status_history_shipment_ts,priority:2"`
}

func (StatusRecordDTO) TableName() string {
	return "status_history"
}

func eventFromDomain(e *tracking.Event) EventDTO {
	return EventDTO{
		ID:          e.ID().Bytes(),
		ShipmentID:  e.ShipmentID().Bytes(),
		EventType:   int(e.Type()),
		Location:    e.Location().String(),
		Description: e.Description(),
		Timestamp:   e.Timestamp(),
		CreatedBy:   kernel.OptionalBytes(e.CreatedBy()),
		Metadata:    e.Metadata(),
	}
}

func eventToDomain(dto EventDTO) (*tracking.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.OptionalUUIDFromBytes(dto.CreatedBy)
	if err != nil {
		return nil, err
	}
	loc, err := kernel.NewLocation(dto.Location)
	if err != nil {
		return nil, err
	}

	return tracking.NewEvent(tracking.EventParams{
		ID:          id,
		ShipmentID:  shipmentID,
		Type:        tracking.EventType(dto.EventType),
		Location:    loc,
		Description: dto.Description,
		Timestamp:   dto.Timestamp,
		CreatedBy:   createdBy,
		Metadata:    dto.Metadata,
	})
}

func recordFromDomain(r *tracking.StatusRecord) StatusRecordDTO {
	return StatusRecordDTO{
		ID:         r.ID().Bytes(),
		ShipmentID: r.ShipmentID().Bytes(),
		Status:     int(r.Status()),
		Location:   r.Location().String(),
		Notes:      r.Notes(),
		UpdatedBy:  r.UpdatedBy().Bytes(),
		Timestamp:  r.Timestamp(),
	}
}

func recordToDomain(dto StatusRecordDTO) (*tracking.StatusRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	updatedBy, err := kernel.UUIDFromBytes(dto.UpdatedBy[:])
	if err != nil {
		return nil, err
	}
	loc, err := kernel.NewLocation(dto.Location)
	if err != nil {
		return nil, err
	}

	return tracking.NewStatusRecord(id, shipmentID, shipment.Status(dto.Status), loc, dto.Notes, updatedBy, dto.Timestamp)
}
