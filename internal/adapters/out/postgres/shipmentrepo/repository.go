package shipmentrepo

import (
	"context"
	"errors"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dependentTables hold rows keyed by shipment_id, deleted children first.
var dependentTables = []string{
	"tracking_events",
	"status_history",
	"payments",
	"driver_assignments",
	"packages",
}

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db *gorm.DB
}

func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("tracking number", err)
		}
		return err
	}
	return nil
}

func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	// Select("*") writes zero values too: a cleared driver or signature must
	// reach the row.
	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", aggregate.ID().String())
	}
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

// GetForUpdate takes a row lock held until the surrounding transaction ends.
func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

func (r *GormShipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_number = ?", trackingNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking number", trackingNumber)
		}
		return nil, err
	}
	return toDomain(dto)
}

// Delete removes the shipment and every row that refers to it. Run it inside
// a unit of work so the cascade is atomic.
func (r *GormShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	for _, table := range dependentTables {
		if err := db.Exec("DELETE FROM "+table+" WHERE shipment_id = ?", id.Bytes()).Error; err != nil {
			return err
		}
	}

	result := db.Delete(&ShipmentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", id.String())
	}
	return nil
}

func (r *GormShipmentRepository) TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error) {
	return r.exists(ctx, "tracking_number = ?", trackingNumber)
}

func (r *GormShipmentRepository) MasterTrackingIDExists(ctx context.Context, masterTrackingID string) (bool, error) {
	return r.exists(ctx, "master_tracking_id = ?", masterTrackingID)
}

func (r *GormShipmentRepository) first(db *gorm.DB, cond string, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := db.First(&dto, cond, id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormShipmentRepository) exists(ctx context.Context, cond string, value string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where(cond, value).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
