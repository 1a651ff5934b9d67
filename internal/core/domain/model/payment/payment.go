package payment

import (
	"errors"
	"maps"
	"strings"
	"time"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"
)

var (
	// ErrPaymentIsNotConstructed is returned when a Payment was declared
	// instead of built by NewPayment or RestorePayment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")
)

// GatewayResponse is the opaque JSON object returned by a payment provider.
type GatewayResponse map[string]any

// Snapshot is the flat state of a Payment.
type Snapshot struct {
	ID              kernel.UUID
	ShipmentID      kernel.UUID
	UserID          kernel.UUID
	Type            Type
	Amount          kernel.Money
	Method          Method
	TransactionID   string
	Status          Status
	PaymentDate     *time.Time
	GatewayResponse GatewayResponse
	RefundReason    string
	FailureReason   string
	CreatedAt       time.Time
}

// Payment is money owed or paid by one user for one shipment.
//
// Payment follows these invariants:
//   - transactionID is unique and never changes
//   - amount is non-negative fixed-point
//   - status only moves forward (see Status); a failed, cancelled or
//     refunded payment never becomes pending again
//   - a failed guard leaves the payment unchanged
type Payment struct {
	id              kernel.UUID
	shipmentID      kernel.UUID
	userID          kernel.UUID
	paymentType     Type
	amount          kernel.Money
	method          Method
	transactionID   string
	status          Status
	paymentDate     *time.Time
	gatewayResponse GatewayResponse
	refundReason    string
	failureReason   string
	createdAt       time.Time

	isConstructed bool
}

// NewPayment creates a Pending payment.
//
// Example:
//
//	fee, _ := kernel.ParseMoney("50.00")
//	p, err := payment.NewPayment(kernel.NewUUID(), shipmentID, payerID,
//	    payment.ShipmentFee, fee, payment.MobileMoney, "TXN20260314AB12CD34", nil, clock.Now())
func NewPayment(
	id, shipmentID, userID kernel.UUID,
	paymentType Type,
	amount kernel.Money,
	method Method,
	transactionID string,
	gateway GatewayResponse,
	createdAt time.Time,
) (*Payment, error) {
	return build(Snapshot{
		ID:              id,
		ShipmentID:      shipmentID,
		UserID:          userID,
		Type:            paymentType,
		Amount:          amount,
		Method:          method,
		TransactionID:   transactionID,
		Status:          Pending,
		GatewayResponse: gateway,
		CreatedAt:       createdAt,
	})
}

// RestorePayment rebuilds a persisted payment in any recognized status.
func RestorePayment(snap Snapshot) (*Payment, error) {
	return build(snap)
}

func build(snap Snapshot) (*Payment, error) {
	var txErr, createdErr error
	if strings.TrimSpace(snap.TransactionID) == "" {
		txErr = errs.NewValueIsRequiredError("transaction id")
	}
	if snap.CreatedAt.IsZero() {
		createdErr = errs.NewValueIsRequiredError("created at")
	}

	if err := errors.Join(
		snap.ID.Validate(),
		snap.ShipmentID.Validate(),
		snap.UserID.Validate(),
		snap.Type.Validate(),
		snap.Method.Validate(),
		snap.Status.Validate(),
		txErr,
		createdErr,
	); err != nil {
		return nil, err
	}

	return &Payment{
		id:              snap.ID,
		shipmentID:      snap.ShipmentID,
		userID:          snap.UserID,
		paymentType:     snap.Type,
		amount:          snap.Amount,
		method:          snap.Method,
		transactionID:   snap.TransactionID,
		status:          snap.Status,
		paymentDate:     cloneTime(snap.PaymentDate),
		gatewayResponse: maps.Clone(snap.GatewayResponse),
		refundReason:    snap.RefundReason,
		failureReason:   snap.FailureReason,
		createdAt:       snap.CreatedAt,
		isConstructed:   true,
	}, nil
}

func (p *Payment) Snapshot() Snapshot {
	return Snapshot{
		ID:              p.id,
		ShipmentID:      p.shipmentID,
		UserID:          p.userID,
		Type:            p.paymentType,
		Amount:          p.amount,
		Method:          p.method,
		TransactionID:   p.transactionID,
		Status:          p.status,
		PaymentDate:     cloneTime(p.paymentDate),
		GatewayResponse: maps.Clone(p.gatewayResponse),
		RefundReason:    p.refundReason,
		FailureReason:   p.failureReason,
		CreatedAt:       p.createdAt,
	}
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID {
	return p.id
}

func (p *Payment) ShipmentID() kernel.UUID {
	return p.shipmentID
}

// UserID is the payer.
func (p *Payment) UserID() kernel.UUID {
	return p.userID
}

func (p *Payment) Type() Type {
	return p.paymentType
}

func (p *Payment) Amount() kernel.Money {
	return p.amount
}

func (p *Payment) Method() Method {
	return p.method
}

func (p *Payment) TransactionID() string {
	return p.transactionID
}

func (p *Payment) Status() Status {
	return p.status
}

func (p *Payment) PaymentDate() *time.Time {
	return cloneTime(p.paymentDate)
}

func (p *Payment) GatewayResponse() GatewayResponse {
	return maps.Clone(p.gatewayResponse)
}

func (p *Payment) RefundReason() string {
	return p.refundReason
}

func (p *Payment) FailureReason() string {
	return p.failureReason
}

func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

// IsPaidBy reports whether userID is the payer.
func (p *Payment) IsPaidBy(userID kernel.UUID) bool {
	return p.userID.IsEqual(userID)
}

func (p *Payment) CanBeRefunded() bool {
	return p.status.CanBeRefunded()
}

// MarkAsCompleted settles a pending payment and stamps paymentDate. A non-nil
// gateway response replaces the stored one.
//
// Returns:
//   - InvalidTransitionError (kind InvalidState) unless the payment is Pending
func (p *Payment) MarkAsCompleted(gateway GatewayResponse, at time.Time) error {
	next, err := p.status.Complete()
	if err != nil {
		return err
	}
	p.status = next
	p.paymentDate = &at
	p.setGateway(gateway)
	return nil
}

// MarkAsFailed records a rejected pending payment.
func (p *Payment) MarkAsFailed(reason string, gateway GatewayResponse) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("failure reason")
	}
	next, err := p.status.Fail()
	if err != nil {
		return err
	}
	p.status = next
	p.failureReason = reason
	p.setGateway(gateway)
	return nil
}

// Refund reverses a completed payment.
//
// Returns:
//   - ValueIsRequiredError when reason is blank
//   - InvalidTransitionError (kind InvalidState) unless CanBeRefunded holds;
//     a pending or already refunded payment is left unchanged
func (p *Payment) Refund(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("refund reason")
	}
	next, err := p.status.Refund()
	if err != nil {
		return err
	}
	p.status = next
	p.refundReason = reason
	return nil
}

// Cancel withdraws a pending payment.
func (p *Payment) Cancel() error {
	next, err := p.status.Cancel()
	if err != nil {
		return err
	}
	p.status = next
	return nil
}

func (p *Payment) setGateway(gateway GatewayResponse) {
	if gateway != nil {
		p.gatewayResponse = maps.Clone(gateway)
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
