package commands

import (
	"context"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/notification"
	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/core/domain/services"
	"arenoexpress/internal/pkg/errs"
)

// PaymentActionCommandHandler settles, refunds or cancels a payment under the
// shipment lock. Every accepted step appends one tracking event; completion
// and failure also notify the payer.
//
// Who may do what:
//   - complete, fail: admin, bound agent, bound driver
//   - refund: admin
//   - cancel: the payer or an admin
type PaymentActionCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	coupling   PaymentCoupling
	clock      kernel.Clock
}

func NewPaymentActionCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	coupling PaymentCoupling,
	clock kernel.Clock,
) PaymentActionCommandHandler {
	return PaymentActionCommandHandler{uowFactory: uowFactory, policy: policy, coupling: coupling, clock: clock}
}

func (h PaymentActionCommandHandler) Handle(ctx context.Context, cmd PaymentActionCommand) (*payment.Payment, error) {
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

	p, s, err := lockPayment(ctx, uow, cmd.PaymentID())
	if err != nil {
		return nil, err
	}
	if err = h.authorize(cmd, p, s); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	var (
		eventType   tracking.EventType
		description string
		msgs        []notification.Message
	)
	switch cmd.Action() {
	case CompletePayment:
		err = p.MarkAsCompleted(cmd.Gateway(), now)
		eventType, description = tracking.EventPaymentReceived, "Payment of "+p.Amount().String()+" received"
		msgs = []notification.Message{notification.ForPaymentCompleted(p)}
	case FailPayment:
		err = p.MarkAsFailed(cmd.Reason(), cmd.Gateway())
		eventType, description = tracking.EventPaymentFailed, "Payment failed: "+cmd.Reason()
		msgs = []notification.Message{notification.ForPaymentFailed(p)}
	case RefundPayment:
		err = p.Refund(cmd.Reason())
		eventType, description = tracking.EventPaymentRefunded, "Payment refunded: "+cmd.Reason()
	case CancelPayment:
		err = p.Cancel()
		eventType, description = tracking.EventPaymentCancelled, "Payment cancelled"
	default:
		err = errs.NewValueIsInvalidError("payment action")
	}
	if err != nil {
		return nil, err
	}

	if err = uow.PaymentRepository().Update(ctx, p); err != nil {
		return nil, err
	}
	if err = appendEvent(ctx, uow, s.ID(), eventType, actor, kernel.EmptyLocation(),
		description, paymentMetadata(p), now); err != nil {
		return nil, err
	}
	if err = enqueue(ctx, uow, now, msgs...); err != nil {
		return nil, err
	}

	if status, ok := h.coupling.onSettled(p); ok {
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

func (h PaymentActionCommandHandler) authorize(cmd PaymentActionCommand, p *payment.Payment, s *shipment.Shipment) error {
	switch cmd.Action() {
	case RefundPayment:
		return h.policy.Authorize(cmd.Actor(), access.ActionRefundPayment, s.Bindings())
	case CancelPayment:
		return h.policy.AuthorizePaymentCancel(cmd.Actor(), p)
	default:
		return h.policy.Authorize(cmd.Actor(), access.ActionSettlePayment, s.Bindings())
	}
}
