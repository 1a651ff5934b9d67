package assignment

import (
	"fmt"

	"arenoexpress/internal/pkg/errs"
)

// Type is the leg a driver is assigned to. It is fixed at creation.
type Type int

const (
	TypeUnknown Type = iota
	Pickup
	Delivery
)

var typeNames = map[Type]string{
	Pickup:   "pickup",
	Delivery: "delivery",
}

func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("assignment type",
		fmt.Errorf("%q is not a valid assignment type", s))
}

func (t Type) Validate() error {
	if _, ok := typeNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("assignment type",
			fmt.Errorf("%d is not a valid assignment type", t))
	}
	return nil
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}
