package commands

import (
	"context"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/services"
)

// DeleteShipmentCommandHandler deletes a booked shipment. Packages, ledger
// rows and assignments go with it.
type DeleteShipmentCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
}

func NewDeleteShipmentCommandHandler(uowFactory UoWFactory, policy services.AccessPolicy) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if err = h.policy.Authorize(cmd.Actor(), access.ActionDelete, s.Bindings()); err != nil {
		return err
	}
	if err = s.ValidateDeletable(); err != nil {
		return err
	}
	if err = uow.ShipmentRepository().Delete(ctx, s.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
