// Package outboxrepo is the transactional notification outbox. Lifecycle
// operations insert rows in their own transaction; the relay job claims
// pending rows with FOR UPDATE SKIP LOCKED and stamps claimed_until before it
// commits, so several relays never send the same row twice while the claim
// runs.
package outboxrepo

import (
	"time"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/notification"
	"arenoexpress/internal/core/ports"

	"github.com/google/uuid"
)

// EntryDTO is the notification_outbox table.
type EntryDTO struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Seq              int64             `gorm:"type:bigserial;<-:false"`
	UserID           uuid.UUID         `gorm:"type:uuid;not null"`
	ShipmentID       *uuid.UUID        `gorm:"type:uuid;index"`
	NotificationType int               `gorm:"type:smallint;not null"`
	Title            string            `gorm:"type:text;not null"`
	Body             string            `gorm:"type:text"`
	Metadata         map[string]string `gorm:"serializer:json;type:jsonb"`
	Attempts         int               `gorm:"type:int;not null;default:0"`
	LastError        string            `gorm:"type:text"`
	Dead             bool              `gorm:"not null;default:false"`
	CreatedAt        time.Time         `gorm:"not null;index"`
	ClaimedUntil     *time.Time
	DeliveredAt      *time.Time
}

func (EntryDTO) TableName() string {
	return "notification_outbox"
}

func fromMessage(id kernel.UUID, msg notification.Message, at time.Time) EntryDTO {
	return EntryDTO{
		ID:               id.Bytes(),
		UserID:           msg.UserID.Bytes(),
		ShipmentID:       kernel.OptionalBytes(msg.ShipmentID),
		NotificationType: int(msg.Type),
		Title:            msg.Title,
		Body:             msg.Body,
		Metadata:         msg.Metadata,
		CreatedAt:        at,
	}
}

func toEntry(dto EntryDTO) (ports.OutboxEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxEntry{}, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return ports.OutboxEntry{}, err
	}
	shipmentID, err := kernel.OptionalUUIDFromBytes(dto.ShipmentID)
	if err != nil {
		return ports.OutboxEntry{}, err
	}

	msg := notification.Message{
		UserID:     userID,
		ShipmentID: shipmentID,
		Type:       notification.Type(dto.NotificationType),
		Title:      dto.Title,
		Body:       dto.Body,
		Metadata:   dto.Metadata,
	}
	if err = msg.Validate(); err != nil {
		return ports.OutboxEntry{}, err
	}
	return ports.OutboxEntry{ID: id, Message: msg, Attempts: dto.Attempts, CreatedAt: dto.CreatedAt}, nil
}
