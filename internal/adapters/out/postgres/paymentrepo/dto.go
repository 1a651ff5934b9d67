// Package paymentrepo persists payments.
package paymentrepo

import (
	"time"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// PaymentDTO is the payments table. The gateway response is opaque and kept
// as jsonb.
type PaymentDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ShipmentID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	PaymentType     int            `gorm:"type:smallint;not null"`
	AmountCents     int64          `gorm:"type:bigint;not null"`
	Method          int            `gorm:"type:smallint;not null"`
	TransactionID   string         `gorm:"type:varchar(32);not null;uniqueIndex"`
	Status          int            `gorm:"type:smallint;not null"`
	PaymentDate     *time.Time
	GatewayResponse map[string]any `gorm:"serializer:json;type:jsonb"`
	RefundReason    string         `gorm:"type:text"`
	FailureReason   string         `gorm:"type:text"`
	CreatedAt       time.Time
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	snap := p.Snapshot()
	return PaymentDTO{
		ID:              snap.ID.Bytes(),
		ShipmentID:      snap.ShipmentID.Bytes(),
		UserID:          snap.UserID.Bytes(),
		PaymentType:     int(snap.Type),
		AmountCents:     snap.Amount.Cents(),
		Method:          int(snap.Method),
		TransactionID:   snap.TransactionID,
		Status:          int(snap.Status),
		PaymentDate:     snap.PaymentDate,
		GatewayResponse: snap.GatewayResponse,
		RefundReason:    snap.RefundReason,
		FailureReason:   snap.FailureReason,
		CreatedAt:       snap.CreatedAt,
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.AmountCents)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(payment.Snapshot{
		ID:              id,
		ShipmentID:      shipmentID,
		UserID:          userID,
		Type:            payment.Type(dto.PaymentType),
		Amount:          amount,
		Method:          payment.Method(dto.Method),
		TransactionID:   dto.TransactionID,
		Status:          payment.Status(dto.Status),
		PaymentDate:     dto.PaymentDate,
		GatewayResponse: dto.GatewayResponse,
		RefundReason:    dto.RefundReason,
		FailureReason:   dto.FailureReason,
		CreatedAt:       dto.CreatedAt,
	})
}
