package shipment

import (
	"fmt"

	"arenoexpress/internal/pkg/errs"
)

// PaymentStatus is the shipment-level settlement flag. It evolves
// independently of Status: a shipment may be delivered while unpaid.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
	PaymentRefunded
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentPending:  "pending",
	PaymentPaid:     "paid",
	PaymentFailed:   "failed",
	PaymentRefunded: "refunded",
}

func (p PaymentStatus) Validate() error {
	if _, ok := paymentStatusNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

func (p PaymentStatus) String() string {
	if name, ok := paymentStatusNames[p]; ok {
		return name
	}
	return "unknown"
}
