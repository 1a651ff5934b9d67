package payment

import (
	"fmt"

	"arenoexpress/internal/pkg/errs"
)

// Type is what a payment settles.
type Type int

const (
	TypeUnknown Type = iota
	ShipmentFee
	ProductPayment
	ReturnFee
	Insurance
)

var typeNames = map[Type]string{
	ShipmentFee:    "shipment_fee",
	ProductPayment: "product_payment",
	ReturnFee:      "return_fee",
	Insurance:      "insurance",
}

func ParseType(s string) (Type, error) {
	return parse(typeNames, s, "payment type")
}

func (t Type) Validate() error {
	return validate(typeNames, t, "payment type")
}

func (t Type) String() string {
	return name(typeNames, t)
}

// Method is how the payer pays.
type Method int

const (
	MethodUnknown Method = iota
	Cash
	Card
	MobileMoney
	BankTransfer
)

var methodNames = map[Method]string{
	Cash:         "cash",
	Card:         "card",
	MobileMoney:  "mobile_money",
	BankTransfer: "bank_transfer",
}

func ParseMethod(s string) (Method, error) {
	return parse(methodNames, s, "payment method")
}

func (m Method) Validate() error {
	return validate(methodNames, m, "payment method")
}

func (m Method) String() string {
	return name(methodNames, m)
}

func parse[T enum](names map[T]string, s, param string) (T, error) {
	for v, n := range names {
		if n == s {
			return v, nil
		}
	}
	var zero T
	return zero, errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q is not a valid %s", s, param))
}

func validate[T enum](names map[T]string, v T, param string) error {
	if _, ok := names[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%d is not a valid %s", v, param))
	}
	return nil
}

func name[T enum](names map[T]string, v T) string {
	if n, ok := names[v]; ok {
		return n
	}
	return "unknown"
}

type enum interface {
	~int
}
