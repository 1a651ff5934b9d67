package shipment_test

import (
	"math"
	"testing"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPackage(t *testing.T, d shipment.PackageDetails) *shipment.Package {
	t.Helper()
	p, err := shipment.NewPackage(kernel.NewUUID(), kernel.NewUUID(), "TRK2026ABCD1234-A", "QR_ABCDEFGHIJKL_TRK2026ABCD1234-A", d)
	require.NoError(t, err)
	return p
}

func TestNewPackage(t *testing.T) {
	t.Run("should reject negative dimensions", func(t *testing.T) {
		_, err := shipment.NewPackage(kernel.NewUUID(), kernel.NewUUID(), "TRK-A", "", shipment.PackageDetails{
			Weight: -1,
			Height: -0.5,
		})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, errs.KindValidationFailed, errs.KindOf(err))
		assert.Contains(t, err.Error(), "weight")
		assert.Contains(t, err.Error(), "height")
	})

	t.Run("should reject NaN", func(t *testing.T) {
		_, err := shipment.NewPackage(kernel.NewUUID(), kernel.NewUUID(), "TRK-A", "", shipment.PackageDetails{
			Length: math.NaN(),
		})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require sub tracking id", func(t *testing.T) {
		_, err := shipment.NewPackage(kernel.NewUUID(), kernel.NewUUID(), "  ", "", shipment.PackageDetails{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestPackage_Weights(t *testing.T) {
	tests := []struct {
		name       string
		details    shipment.PackageDetails
		volumetric float64
		chargeable float64
	}{
		{
			name:       "bulky and light",
			details:    shipment.PackageDetails{Weight: 2, Length: 50, Width: 40, Height: 30},
			volumetric: 12,
			chargeable: 12,
		},
		{
			name:       "small and heavy",
			details:    shipment.PackageDetails{Weight: 8, Length: 10, Width: 10, Height: 10},
			volumetric: 0.2,
			chargeable: 8,
		},
		{
			name:       "no dimensions",
			details:    shipment.PackageDetails{Weight: 1.5},
			volumetric: 0,
			chargeable: 1.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPackage(t, tt.details)
			assert.InDelta(t, tt.volumetric, p.VolumetricWeight(), 1e-9)
			assert.InDelta(t, tt.chargeable, p.ChargeableWeight(), 1e-9)
		})
	}
}

func TestPackage_AddPhoto(t *testing.T) {
	p := newPackage(t, shipment.PackageDetails{})

	require.NoError(t, p.AddPhoto("photos/1.jpg"))
	require.NoError(t, p.AddPhoto("photos/2.jpg"))
	require.ErrorIs(t, p.AddPhoto(""), errs.ErrValueIsRequired)

	assert.Equal(t, []string{"photos/1.jpg", "photos/2.jpg"}, p.Photos())

	photos := p.Photos()
	photos[0] = "tampered"
	assert.Equal(t, "photos/1.jpg", p.Photos()[0])
}

func TestPackage_UpdateDetails(t *testing.T) {
	p := newPackage(t, shipment.PackageDetails{Description: "Books", Weight: 3})
	require.NoError(t, p.AddPhoto("photos/1.jpg"))
	subID := p.SubTrackingID()

	require.NoError(t, p.UpdateDetails(shipment.PackageDetails{Description: " Textbooks ", Weight: 4, IsFragile: true}))
	assert.Equal(t, "Textbooks", p.Details().Description)
	assert.True(t, p.Details().IsFragile)
	assert.Equal(t, subID, p.SubTrackingID())
	assert.Len(t, p.Photos(), 1)

	require.ErrorIs(t, p.UpdateDetails(shipment.PackageDetails{Weight: -4}), errs.ErrValueIsOutOfRange)
	assert.InDelta(t, 4, p.Details().Weight, 1e-9)
}

func TestPackage_SnapshotRoundTrip(t *testing.T) {
	p := newPackage(t, shipment.PackageDetails{Description: "Shoes", Weight: 1})
	require.NoError(t, p.AddPhoto("photos/a.jpg"))

	restored, err := shipment.RestorePackage(p.Snapshot())

	require.NoError(t, err)
	assert.Equal(t, p.Snapshot(), restored.Snapshot())
}
