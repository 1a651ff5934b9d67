package shipment

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"
)

// VolumetricDivisor converts cubic centimetres into volumetric kilograms.
const VolumetricDivisor = 5000.0

var ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage constructor")

// PackageDetails are the sender-declared attributes of a package. Every
// numeric field must be non-negative.
type PackageDetails struct {
	Description         string
	Weight              float64
	Length              float64
	Width               float64
	Height              float64
	IsFragile           bool
	Insurance           kernel.Money
	DeclaredValue       kernel.Money
	SpecialInstructions string
}

// PackageSnapshot is the flat state of a Package.
type PackageSnapshot struct {
	ID            kernel.UUID
	ShipmentID    kernel.UUID
	SubTrackingID string
	QRCode        string
	Details       PackageDetails
	Photos        []string
}

// Package is one physical parcel of a shipment. Its subTrackingID and qrCode
// are fixed at creation; photos only grow.
type Package struct {
	id            kernel.UUID
	shipmentID    kernel.UUID
	subTrackingID string
	qrCode        string
	details       PackageDetails
	photos        []string

	isConstructed bool
}

// NewPackage creates a package with the identifiers allocated for it.
func NewPackage(id, shipmentID kernel.UUID, subTrackingID, qrCode string, details PackageDetails) (*Package, error) {
	p := &Package{
		subTrackingID: subTrackingID,
		qrCode:        qrCode,
		photos:        []string{},
		isConstructed: true,
	}

	var idErr error
	if strings.TrimSpace(subTrackingID) == "" {
		idErr = errs.NewValueIsRequiredError("sub tracking id")
	}

	if err := errors.Join(
		id.Validate(),
		shipmentID.Validate(),
		idErr,
		validateDetails(details),
	); err != nil {
		return nil, err
	}

	p.id = id
	p.shipmentID = shipmentID
	p.details = normalizeDetails(details)
	return p, nil
}

func RestorePackage(snap PackageSnapshot) (*Package, error) {
	p, err := NewPackage(snap.ID, snap.ShipmentID, snap.SubTrackingID, snap.QRCode, snap.Details)
	if err != nil {
		return nil, err
	}
	p.photos = append(p.photos, snap.Photos...)
	return p, nil
}

func (p *Package) Snapshot() PackageSnapshot {
	return PackageSnapshot{
		ID:            p.id,
		ShipmentID:    p.shipmentID,
		SubTrackingID: p.subTrackingID,
		QRCode:        p.qrCode,
		Details:       p.details,
		Photos:        p.Photos(),
	}
}

func (p *Package) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackageIsNotConstructed
	}
	return nil
}

func (p *Package) ID() kernel.UUID {
	return p.id
}

func (p *Package) ShipmentID() kernel.UUID {
	return p.shipmentID
}

func (p *Package) SubTrackingID() string {
	return p.subTrackingID
}

func (p *Package) QRCode() string {
	return p.qrCode
}

func (p *Package) Details() PackageDetails {
	return p.details
}

// Photos returns a copy of the photo references in the order they were added.
func (p *Package) Photos() []string {
	out := make([]string, len(p.photos))
	copy(out, p.photos)
	return out
}

// Volume is length × width × height in cubic centimetres.
func (p *Package) Volume() float64 {
	return p.details.Length * p.details.Width * p.details.Height
}

func (p *Package) VolumetricWeight() float64 {
	return p.Volume() / VolumetricDivisor
}

// ChargeableWeight is the larger of the actual and the volumetric weight.
func (p *Package) ChargeableWeight() float64 {
	return math.Max(p.details.Weight, p.VolumetricWeight())
}

// AddPhoto appends an opaque photo reference. Existing references are never
// reordered or removed.
func (p *Package) AddPhoto(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return errs.NewValueIsRequiredError("photo reference")
	}
	p.photos = append(p.photos, ref)
	return nil
}

// UpdateDetails replaces the declared attributes. Identifiers and photos are
// kept.
func (p *Package) UpdateDetails(details PackageDetails) error {
	if err := validateDetails(details); err != nil {
		return err
	}
	p.details = normalizeDetails(details)
	return nil
}

func validateDetails(d PackageDetails) error {
	var err error
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"weight", d.Weight},
		{"length", d.Length},
		{"width", d.Width},
		{"height", d.Height},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(f.name, fmt.Errorf("%v is not a number", f.value)))
			continue
		}
		if f.value < 0 {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError(f.name, f.value, 0, "max"))
		}
	}
	return err
}

func normalizeDetails(d PackageDetails) PackageDetails {
	d.Description = strings.TrimSpace(d.Description)
	d.SpecialInstructions = strings.TrimSpace(d.SpecialInstructions)
	return d
}
