// Package assignmentrepo persists driver assignments.
package assignmentrepo

import (
	"time"

	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO is the driver_assignments table. The one-active-per-type
// rule is enforced by a partial unique index created in Migrate.
type AssignmentDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	VehicleID         *uuid.UUID `gorm:"type:uuid"`
	AssignmentType    int        `gorm:"type:smallint;not null"`
	Status            int        `gorm:"type:smallint;not null"`
	AssignedAt        time.Time  `gorm:"not null"`
	AcceptedAt        *time.Time
	StartedAt         *time.Time
	CompletedAt       *time.Time
	Notes             string `gorm:"type:text"`
	Location          string `gorm:"type:varchar(255)"`
	EstimatedDuration int    `gorm:"type:int;not null"`
}

func (AssignmentDTO) TableName() string {
	return "driver_assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	snap := a.Snapshot()
	return AssignmentDTO{
		ID:                snap.ID.Bytes(),
		ShipmentID:        snap.ShipmentID.Bytes(),
		DriverID:          snap.DriverID.Bytes(),
		VehicleID:         kernel.OptionalBytes(snap.VehicleID),
		AssignmentType:    int(snap.Type),
		Status:            int(snap.Status),
		AssignedAt:        snap.AssignedAt,
		AcceptedAt:        snap.AcceptedAt,
		StartedAt:         snap.StartedAt,
		CompletedAt:       snap.CompletedAt,
		Notes:             snap.Notes,
		Location:          snap.Location.String(),
		EstimatedDuration: snap.EstimatedDuration,
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.OptionalUUIDFromBytes(dto.VehicleID)
	if err != nil {
		return nil, err
	}
	loc, err := kernel.NewLocation(dto.Location)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(assignment.Snapshot{
		ID:                id,
		ShipmentID:        shipmentID,
		DriverID:          driverID,
		VehicleID:         vehicleID,
		Type:              assignment.Type(dto.AssignmentType),
		Status:            assignment.Status(dto.Status),
		AssignedAt:        dto.AssignedAt,
		AcceptedAt:        dto.AcceptedAt,
		StartedAt:         dto.StartedAt,
		CompletedAt:       dto.CompletedAt,
		Notes:             dto.Notes,
		Location:          loc,
		EstimatedDuration: dto.EstimatedDuration,
	})
}
