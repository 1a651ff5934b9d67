// Package shipmentrepo persists the Shipment aggregate root.
package shipmentrepo

import (
	"time"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO is the shipments table. Enumerations are stored as their
// integer values, money as integer cents.
type ShipmentDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingNumber      string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	MasterTrackingID    string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	SenderID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReceiverID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	AgentID             *uuid.UUID `gorm:"type:uuid;index"`
	DriverID            *uuid.UUID `gorm:"type:uuid;index"`
	PickupAddress       string     `gorm:"type:text;not null"`
	DeliveryAddress     string     `gorm:"type:text;not null"`
	Status              int        `gorm:"type:smallint;not null;index"`
	PaymentStatus       int        `gorm:"type:smallint;not null"`
	ShipmentFeeCents    int64      `gorm:"type:bigint;not null"`
	TotalAmountCents    int64      `gorm:"type:bigint;not null"`
	PickupDate          *time.Time
	DeliveryDate        *time.Time
	DeliverySignature   string `gorm:"type:text"`
	SpecialInstructions string `gorm:"type:text"`
	IsBusinessCourier   bool   `gorm:"not null"`
	PackageSequence     int    `gorm:"type:int;not null"`
	CreatedAt           time.Time
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	snap := s.Snapshot()
	return ShipmentDTO{
		ID:                  snap.ID.Bytes(),
		TrackingNumber:      snap.TrackingNumber,
		MasterTrackingID:    snap.MasterTrackingID,
		SenderID:            snap.SenderID.Bytes(),
		ReceiverID:          snap.ReceiverID.Bytes(),
		AgentID:             kernel.OptionalBytes(snap.AgentID),
		DriverID:            kernel.OptionalBytes(snap.DriverID),
		PickupAddress:       snap.PickupAddress,
		DeliveryAddress:     snap.DeliveryAddress,
		Status:              int(snap.Status),
		PaymentStatus:       int(snap.PaymentStatus),
		ShipmentFeeCents:    snap.ShipmentFee.Cents(),
		TotalAmountCents:    snap.TotalAmount.Cents(),
		PickupDate:          snap.PickupDate,
		DeliveryDate:        snap.DeliveryDate,
		DeliverySignature:   snap.DeliverySignature,
		SpecialInstructions: snap.SpecialInstructions,
		IsBusinessCourier:   snap.IsBusinessCourier,
		PackageSequence:     snap.PackageSequence,
		CreatedAt:           snap.CreatedAt,
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}
	receiverID, err := kernel.UUIDFromBytes(dto.ReceiverID[:])
	if err != nil {
		return nil, err
	}
	agentID, err := kernel.OptionalUUIDFromBytes(dto.AgentID)
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.OptionalUUIDFromBytes(dto.DriverID)
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoney(dto.ShipmentFeeCents)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalAmountCents)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(shipment.Snapshot{
		ID:                  id,
		TrackingNumber:      dto.TrackingNumber,
		MasterTrackingID:    dto.MasterTrackingID,
		SenderID:            senderID,
		ReceiverID:          receiverID,
		AgentID:             agentID,
		DriverID:            driverID,
		PickupAddress:       dto.PickupAddress,
		DeliveryAddress:     dto.DeliveryAddress,
		Status:              shipment.Status(dto.Status),
		PaymentStatus:       shipment.PaymentStatus(dto.PaymentStatus),
		ShipmentFee:         fee,
		TotalAmount:         total,
		PickupDate:          dto.PickupDate,
		DeliveryDate:        dto.DeliveryDate,
		DeliverySignature:   dto.DeliverySignature,
		SpecialInstructions: dto.SpecialInstructions,
		IsBusinessCourier:   dto.IsBusinessCourier,
		PackageSequence:     dto.PackageSequence,
		CreatedAt:           dto.CreatedAt,
	})
}
