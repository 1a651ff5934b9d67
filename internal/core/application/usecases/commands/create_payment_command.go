package commands

import (
	"errors"
	"maps"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/pkg/guard"
)

var ErrCreatePaymentCommandIsNotConstructed = errors.New(
	"CreatePaymentCommand must be created via NewCreatePaymentCommand constructor",
)

// CreatePaymentCommand opens a pending payment on a shipment. The actor is
// the payer.
type CreatePaymentCommand struct {
	actor       access.Actor
	shipmentID  kernel.UUID
	paymentType payment.Type
	amount      kernel.Money
	method      payment.Method
	gateway     payment.GatewayResponse

	guard guard.ConstructorGuard
}

func NewCreatePaymentCommand(
	actor access.Actor,
	shipmentID kernel.UUID,
	paymentType payment.Type,
	amount kernel.Money,
	method payment.Method,
	gateway payment.GatewayResponse,
) (CreatePaymentCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		shipmentID.Validate(),
		paymentType.Validate(),
		method.Validate(),
	); err != nil {
		return CreatePaymentCommand{}, err
	}
	return CreatePaymentCommand{
		actor:       actor,
		shipmentID:  shipmentID,
		paymentType: paymentType,
		amount:      amount,
		method:      method,
		gateway:     maps.Clone(gateway),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentCommandIsNotConstructed)
}

func (c CreatePaymentCommand) Actor() access.Actor {
	return c.actor
}

func (c CreatePaymentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CreatePaymentCommand) Type() payment.Type {
	return c.paymentType
}

func (c CreatePaymentCommand) Amount() kernel.Money {
	return c.amount
}

func (c CreatePaymentCommand) Method() payment.Method {
	return c.method
}

func (c CreatePaymentCommand) Gateway() payment.GatewayResponse {
	return maps.Clone(c.gateway)
}
