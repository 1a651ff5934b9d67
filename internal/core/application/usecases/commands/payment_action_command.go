package commands

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/pkg/errs"
	"arenoexpress/internal/pkg/guard"
)

var ErrPaymentActionCommandIsNotConstructed = errors.New(
	"PaymentActionCommand must be created via NewPaymentActionCommand constructor",
)

// PaymentAction is a step of the payment state machine.
type PaymentAction int

const (
	PaymentActionUnknown PaymentAction = iota
	CompletePayment
	FailPayment
	RefundPayment
	CancelPayment
)

var paymentActionNames = map[PaymentAction]string{
	CompletePayment: "complete",
	FailPayment:     "fail",
	RefundPayment:   "refund",
	CancelPayment:   "cancel",
}

func ParsePaymentAction(s string) (PaymentAction, error) {
	for a, name := range paymentActionNames {
		if name == s {
			return a, nil
		}
	}
	return PaymentActionUnknown, errs.NewValueIsInvalidErrorWithCause("payment action",
		fmt.Errorf("%q is not a known action", s))
}

func (a PaymentAction) Validate() error {
	if _, ok := paymentActionNames[a]; !ok {
		return errs.NewValueIsInvalidError("payment action")
	}
	return nil
}

func (a PaymentAction) String() string {
	if name, ok := paymentActionNames[a]; ok {
		return name
	}
	return "unknown"
}

// PaymentActionCommand applies one step to a payment. Fail and refund need a
// reason; complete and fail may carry the gateway response.
type PaymentActionCommand struct {
	actor     access.Actor
	paymentID kernel.UUID
	action    PaymentAction
	reason    string
	gateway   payment.GatewayResponse

	guard guard.ConstructorGuard
}

func NewPaymentActionCommand(
	actor access.Actor,
	paymentID kernel.UUID,
	action PaymentAction,
	reason string,
	gateway payment.GatewayResponse,
) (PaymentActionCommand, error) {
	var reasonErr error
	if (action == FailPayment || action == RefundPayment) && strings.TrimSpace(reason) == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}
	if err := errors.Join(actor.Validate(), paymentID.Validate(), action.Validate(), reasonErr); err != nil {
		return PaymentActionCommand{}, err
	}
	return PaymentActionCommand{
		actor:     actor,
		paymentID: paymentID,
		action:    action,
		reason:    reason,
		gateway:   maps.Clone(gateway),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PaymentActionCommand) Validate() error {
	return c.guard.Validate(ErrPaymentActionCommandIsNotConstructed)
}

func (c PaymentActionCommand) Actor() access.Actor {
	return c.actor
}

func (c PaymentActionCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

func (c PaymentActionCommand) Action() PaymentAction {
	return c.action
}

func (c PaymentActionCommand) Reason() string {
	return c.reason
}

func (c PaymentActionCommand) Gateway() payment.GatewayResponse {
	return maps.Clone(c.gateway)
}
