package commands

import (
	"context"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/services"
	"arenoexpress/internal/pkg/errs"
)

// PackageCommandHandler handles the package operations. All of them lock the
// owning shipment first, so ordinals are allocated one at a time.
type PackageCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	generator  *services.IdentifierGenerator
}

func NewPackageCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	generator *services.IdentifierGenerator,
) PackageCommandHandler {
	return PackageCommandHandler{uowFactory: uowFactory, policy: policy, generator: generator}
}

func (h PackageCommandHandler) HandleAdd(ctx context.Context, cmd AddPackageCommand) (*shipment.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}
	if err = h.policy.Authorize(cmd.Actor(), access.ActionManagePackages, s.Bindings()); err != nil {
		return nil, err
	}
	if err = openForPackages(s); err != nil {
		return nil, err
	}

	p, err := newPackage(h.generator, s, cmd.Details())
	if err != nil {
		return nil, err
	}
	if err = uow.ShipmentRepository().Update(ctx, s); err != nil {
		return nil, err
	}
	if err = uow.PackageRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (h PackageCommandHandler) HandleUpdate(ctx context.Context, cmd UpdatePackageCommand) (*shipment.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, s, err := lockPackage(ctx, uow, cmd.PackageID())
	if err != nil {
		return nil, err
	}
	if err = h.policy.Authorize(cmd.Actor(), access.ActionManagePackages, s.Bindings()); err != nil {
		return nil, err
	}
	if err = openForPackages(s); err != nil {
		return nil, err
	}
	if err = p.UpdateDetails(cmd.Details()); err != nil {
		return nil, err
	}
	if err = uow.PackageRepository().Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (h PackageCommandHandler) HandleAddPhoto(ctx context.Context, cmd AddPackagePhotoCommand) (*shipment.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, s, err := lockPackage(ctx, uow, cmd.PackageID())
	if err != nil {
		return nil, err
	}
	if err = h.policy.Authorize(cmd.Actor(), access.ActionAddPhoto, s.Bindings()); err != nil {
		return nil, err
	}
	if err = p.AddPhoto(cmd.Ref()); err != nil {
		return nil, err
	}
	if err = uow.PackageRepository().Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// openForPackages rejects package changes on a finished shipment.
func openForPackages(s *shipment.Shipment) error {
	if s.Status().IsTerminal() {
		return errs.NewInvalidStateError("shipment " + s.Status().String() + " accepts no package changes")
	}
	return nil
}
