package commands

import (
	"context"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/core/domain/services"
)

// CreatePaymentCommandHandler creates a payment with a fresh transaction id
// and appends a payment_initiated event. With CouplingAtCreation a
// shipment_fee payment marks the shipment paid right away.
type CreatePaymentCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	generator  *services.IdentifierGenerator
	coupling   PaymentCoupling
	clock      kernel.Clock
}

func NewCreatePaymentCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	generator *services.IdentifierGenerator,
	coupling PaymentCoupling,
	clock kernel.Clock,
) CreatePaymentCommandHandler {
	return CreatePaymentCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		generator:  generator,
		coupling:   coupling,
		clock:      clock,
	}
}

func (h CreatePaymentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	actor := cmd.Actor()

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
	if err = h.policy.Authorize(actor, access.ActionCreatePayment, s.Bindings()); err != nil {
		return nil, err
	}

	txID, err := h.generator.TransactionID(ctx, uow.PaymentRepository().TransactionIDExists)
	if err != nil {
		return nil, err
	}
	now := h.clock.Now()
	p, err := payment.NewPayment(kernel.NewUUID(), s.ID(), actor.ID(), cmd.Type(), cmd.Amount(),
		cmd.Method(), txID, cmd.Gateway(), now)
	if err != nil {
		return nil, err
	}
	if err = uow.PaymentRepository().Add(ctx, p); err != nil {
		return nil, err
	}
	if err = appendEvent(ctx, uow, s.ID(), tracking.EventPaymentInitiated, actor, kernel.EmptyLocation(),
		"Payment of "+p.Amount().String()+" initiated", paymentMetadata(p), now); err != nil {
		return nil, err
	}

	if status, ok := h.coupling.onCreated(p); ok {
		if err = s.ChangePaymentStatus(status); err != nil {
			return nil, err
		}
		if err = uow.ShipmentRepository().Update(ctx, s); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func paymentMetadata(p *payment.Payment) map[string]string {
	return map[string]string{
		"payment_id":     p.ID().String(),
		"transaction_id": p.TransactionID(),
		"payment_type":   p.Type().String(),
		"amount":         p.Amount().String(),
		"status":         p.Status().String(),
	}
}
