package assignmentrepo

import (
	"context"
	"errors"

	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"

	"gorm.io/gorm"
)

// activeStatuses are the statuses covered by the one-active-per-type index.
var activeStatuses = []int{int(assignment.Accepted), int(assignment.InProgress)}

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

func (r *GormAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	return conflict(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return conflict(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", a.ID().String())
	}
	return nil
}

func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormAssignmentRepository) ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("assigned_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *GormAssignmentRepository) FindActive(ctx context.Context, shipmentID kernel.UUID, t assignment.Type) (*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ? AND assignment_type = ? AND status IN ?", shipmentID.Bytes(), int(t), activeStatuses).
		Limit(1).
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}
	return toDomain(dtos[0])
}

func conflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause("active assignment", err)
	}
	return err
}
