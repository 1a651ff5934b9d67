// Package packagerepo persists the packages of a shipment.
package packagerepo

import (
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PackageDTO is the packages table. Photo references are kept in a text
// array in the order they were added.
type PackageDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ShipmentID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	SubTrackingID       string         `gorm:"type:varchar(48);not null;uniqueIndex"`
	QRCode              string         `gorm:"type:varchar(96);not null"`
	Description         string         `gorm:"type:text"`
	Weight              float64        `gorm:"not null"`
	Length              float64        `gorm:"not null"`
	Width               float64        `gorm:"not null"`
	Height              float64        `gorm:"not null"`
	IsFragile           bool           `gorm:"not null"`
	InsuranceCents      int64          `gorm:"type:bigint;not null"`
	DeclaredValueCents  int64          `gorm:"type:bigint;not null"`
	SpecialInstructions string         `gorm:"type:text"`
	Photos              pq.StringArray `gorm:"type:text[];not null"`
}

func (PackageDTO) TableName() string {
	return "packages"
}

func fromDomain(p *shipment.Package) PackageDTO {
	snap := p.Snapshot()
	photos := pq.StringArray(snap.Photos)
	if photos == nil {
		photos = pq.StringArray{}
	}
	return PackageDTO{
		ID:                  snap.ID.Bytes(),
		ShipmentID:          snap.ShipmentID.Bytes(),
		SubTrackingID:       snap.SubTrackingID,
		QRCode:              snap.QRCode,
		Description:         snap.Details.Description,
		Weight:              snap.Details.Weight,
		Length:              snap.Details.Length,
		Width:               snap.Details.Width,
		Height:              snap.Details.Height,
		IsFragile:           snap.Details.IsFragile,
		InsuranceCents:      snap.Details.Insurance.Cents(),
		DeclaredValueCents:  snap.Details.DeclaredValue.Cents(),
		SpecialInstructions: snap.Details.SpecialInstructions,
		Photos:              photos,
	}
}

func toDomain(dto PackageDTO) (*shipment.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	insurance, err := kernel.NewMoney(dto.InsuranceCents)
	if err != nil {
		return nil, err
	}
	declared, err := kernel.NewMoney(dto.DeclaredValueCents)
	if err != nil {
		return nil, err
	}

	return shipment.RestorePackage(shipment.PackageSnapshot{
		ID:            id,
		ShipmentID:    shipmentID,
		SubTrackingID: dto.SubTrackingID,
		QRCode:        dto.QRCode,
		Details: shipment.PackageDetails{
			Description:         dto.Description,
			Weight:              dto.Weight,
			Length:              dto.Length,
			Width:               dto.Width,
			Height:              dto.Height,
			IsFragile:           dto.IsFragile,
			Insurance:           insurance,
			DeclaredValue:       declared,
			SpecialInstructions: dto.SpecialInstructions,
		},
		Photos: dto.Photos,
	})
}
