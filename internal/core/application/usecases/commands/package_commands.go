package commands

import (
	"errors"
	"strings"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/errs"
	"arenoexpress/internal/pkg/guard"
)

var (
	ErrAddPackageCommandIsNotConstructed = errors.New(
		"AddPackageCommand must be created via NewAddPackageCommand constructor",
	)
	ErrUpdatePackageCommandIsNotConstructed = errors.New(
		"UpdatePackageCommand must be created via NewUpdatePackageCommand constructor",
	)
	ErrAddPackagePhotoCommandIsNotConstructed = errors.New(
		"AddPackagePhotoCommand must be created via NewAddPackagePhotoCommand constructor",
	)
)

// AddPackageCommand adds a package to an open shipment. The package gets the
// next sub-tracking letter; letters of deleted packages are never reused.
type AddPackageCommand struct {
	actor      access.Actor
	shipmentID kernel.UUID
	details    shipment.PackageDetails

	guard guard.ConstructorGuard
}

func NewAddPackageCommand(actor access.Actor, shipmentID kernel.UUID, details shipment.PackageDetails) (AddPackageCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate()); err != nil {
		return AddPackageCommand{}, err
	}
	return AddPackageCommand{actor: actor, shipmentID: shipmentID, details: details, guard: guard.NewConstructorGuard()}, nil
}

func (c AddPackageCommand) Validate() error {
	return c.guard.Validate(ErrAddPackageCommandIsNotConstructed)
}

func (c AddPackageCommand) Actor() access.Actor {
	return c.actor
}

func (c AddPackageCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c AddPackageCommand) Details() shipment.PackageDetails {
	return c.details
}

// UpdatePackageCommand replaces the descriptive details of a package.
// Identifiers and photos are kept.
type UpdatePackageCommand struct {
	actor     access.Actor
	packageID kernel.UUID
	details   shipment.PackageDetails

	guard guard.ConstructorGuard
}

func NewUpdatePackageCommand(actor access.Actor, packageID kernel.UUID, details shipment.PackageDetails) (UpdatePackageCommand, error) {
	if err := errors.Join(actor.Validate(), packageID.Validate()); err != nil {
		return UpdatePackageCommand{}, err
	}
	return UpdatePackageCommand{actor: actor, packageID: packageID, details: details, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdatePackageCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePackageCommandIsNotConstructed)
}

func (c UpdatePackageCommand) Actor() access.Actor {
	return c.actor
}

func (c UpdatePackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

func (c UpdatePackageCommand) Details() shipment.PackageDetails {
	return c.details
}

// AddPackagePhotoCommand appends a photo reference to a package.
type AddPackagePhotoCommand struct {
	actor     access.Actor
	packageID kernel.UUID
	ref       string

	guard guard.ConstructorGuard
}

func NewAddPackagePhotoCommand(actor access.Actor, packageID kernel.UUID, ref string) (AddPackagePhotoCommand, error) {
	var refErr error
	if strings.TrimSpace(ref) == "" {
		refErr = errs.NewValueIsRequiredError("photo")
	}
	if err := errors.Join(actor.Validate(), packageID.Validate(), refErr); err != nil {
		return AddPackagePhotoCommand{}, err
	}
	return AddPackagePhotoCommand{actor: actor, packageID: packageID, ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c AddPackagePhotoCommand) Validate() error {
	return c.guard.Validate(ErrAddPackagePhotoCommandIsNotConstructed)
}

func (c AddPackagePhotoCommand) Actor() access.Actor {
	return c.actor
}

func (c AddPackagePhotoCommand) PackageID() kernel.UUID {
	return c.packageID
}

func (c AddPackagePhotoCommand) Ref() string {
	return c.ref
}
