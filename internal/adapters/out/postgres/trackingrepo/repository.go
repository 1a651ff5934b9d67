package trackingrepo

import (
	"context"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/tracking"

	"gorm.io/gorm"
)

// newestFirst is the ledger read order: timestamp, then insertion order.
const newestFirst = `"timestamp" DESC, seq DESC`

// GormEventRepository implements ports.TrackingEventRepository.
type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Append(ctx context.Context, e *tracking.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	dto := eventFromDomain(e)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormEventRepository) ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*tracking.Event, error) {
	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order(newestFirst).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]*tracking.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := eventToDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// GormStatusHistoryRepository implements ports.StatusHistoryRepository.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

func (r *GormStatusHistoryRepository) Append(ctx context.Context, rec *tracking.StatusRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	dto := recordFromDomain(rec)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormStatusHistoryRepository) ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*tracking.StatusRecord, error) {
	var dtos []StatusRecordDTO
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order(newestFirst).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*tracking.StatusRecord, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := recordToDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
