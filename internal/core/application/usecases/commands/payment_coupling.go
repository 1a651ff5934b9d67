package commands

import (
	"fmt"

	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/errs"
)

// PaymentCoupling decides when a shipment_fee payment moves the shipment's
// payment status.
type PaymentCoupling int

const (
	// CouplingAtCreation marks the shipment paid as soon as a shipment_fee
	// payment is created. It is the default.
	CouplingAtCreation PaymentCoupling = iota
	// CouplingAtCompletion follows the payment: completion marks the
	// shipment paid, failure failed and refund refunded.
	CouplingAtCompletion
)

var couplingNames = map[PaymentCoupling]string{
	CouplingAtCreation:   "at_creation",
	CouplingAtCompletion: "at_completion",
}

// ParsePaymentCoupling reads the configured coupling. An empty string selects
// CouplingAtCreation.
func ParsePaymentCoupling(s string) (PaymentCoupling, error) {
	if s == "" {
		return CouplingAtCreation, nil
	}
	for c, name := range couplingNames {
		if name == s {
			return c, nil
		}
	}
	return CouplingAtCreation, errs.NewValueIsInvalidErrorWithCause("payment coupling",
		fmt.Errorf("%q is not one of at_creation, at_completion", s))
}

func (c PaymentCoupling) String() string {
	return couplingNames[c]
}

// onCreated returns the shipment payment status that creating p implies, if any.
func (c PaymentCoupling) onCreated(p *payment.Payment) (shipment.PaymentStatus, bool) {
	if c == CouplingAtCreation && p.Type() == payment.ShipmentFee {
		return shipment.PaymentPaid, true
	}
	return shipment.PaymentUnknown, false
}

// onSettled returns the shipment payment status that p reaching its current
// status implies, if any.
func (c PaymentCoupling) onSettled(p *payment.Payment) (shipment.PaymentStatus, bool) {
	if c != CouplingAtCompletion || p.Type() != payment.ShipmentFee {
		return shipment.PaymentUnknown, false
	}
	switch p.Status() {
	case payment.Completed:
		return shipment.PaymentPaid, true
	case payment.Failed:
		return shipment.PaymentFailed, true
	case payment.Refunded:
		return shipment.PaymentRefunded, true
	default:
		return shipment.PaymentUnknown, false
	}
}
