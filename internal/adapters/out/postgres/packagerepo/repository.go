package packagerepo

import (
	"context"
	"errors"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPackageRepository implements ports.PackageRepository using GORM.
type GormPackageRepository struct {
	db *gorm.DB
}

func NewGormPackageRepository(db *gorm.DB) *GormPackageRepository {
	return &GormPackageRepository{db: db}
}

func (r *GormPackageRepository) Add(ctx context.Context, p *shipment.Package) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("sub tracking id", err)
		}
		return err
	}
	return nil
}

func (r *GormPackageRepository) Update(ctx context.Context, p *shipment.Package) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	result := r.db.WithContext(ctx).Model(&PackageDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("package", p.ID().String())
	}
	return nil
}

func (r *GormPackageRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// ListByShipment orders by suffix length first so that -Z sorts before -AA.
func (r *GormPackageRepository) ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.Package, error) {
	var dtos []PackageDTO
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("length(sub_tracking_id), sub_tracking_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	packages := make([]*shipment.Package, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, nil
}
