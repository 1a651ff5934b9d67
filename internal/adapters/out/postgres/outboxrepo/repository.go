package outboxrepo

import (
	"context"
	"time"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/notification"
	"arenoexpress/internal/core/ports"
	"arenoexpress/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutbox implements ports.NotificationOutbox using GORM.
type GormOutbox struct {
	db *gorm.DB
}

func NewGormOutbox(db *gorm.DB) *GormOutbox {
	return &GormOutbox{db: db}
}

func (o *GormOutbox) Enqueue(ctx context.Context, at time.Time, msgs ...notification.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	dtos := make([]EntryDTO, 0, len(msgs))
	for _, msg := range msgs {
		if err := msg.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromMessage(kernel.NewUUID(), msg, at))
	}
	return o.db.WithContext(ctx).Create(&dtos).Error
}

// Pending locks the returned rows until the transaction ends and skips rows
// already locked or claimed by another relay.
func (o *GormOutbox) Pending(ctx context.Context, limit int, now time.Time) ([]ports.OutboxEntry, error) {
	var dtos []EntryDTO
	if err := o.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("delivered_at IS NULL AND dead = ?", false).
		Where("claimed_until IS NULL OR claimed_until <= ?", now).
		Order("created_at, seq").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]ports.OutboxEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toEntry(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (o *GormOutbox) Claim(ctx context.Context, id kernel.UUID, until time.Time) error {
	return o.update(ctx, id, map[string]any{"claimed_until": until})
}

func (o *GormOutbox) MarkDelivered(ctx context.Context, id kernel.UUID, at time.Time) error {
	return o.update(ctx, id, map[string]any{"delivered_at": at, "claimed_until": nil})
}

func (o *GormOutbox) MarkFailed(ctx context.Context, id kernel.UUID, attempts int, lastErr string, dead bool) error {
	return o.update(ctx, id, map[string]any{
		"attempts":      attempts,
		"last_error":    lastErr,
		"dead":          dead,
		"claimed_until": nil,
	})
}

func (o *GormOutbox) update(ctx context.Context, id kernel.UUID, columns map[string]any) error {
	result := o.db.WithContext(ctx).Model(&EntryDTO{}).Where("id = ?", id.Bytes()).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox entry", id.String())
	}
	return nil
}
