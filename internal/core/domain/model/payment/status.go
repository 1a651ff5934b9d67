package payment

import "arenoexpress/internal/pkg/errs"

// Status is the lifecycle state of a payment. It only moves forward:
//
//	Pending ──┬──> Completed ──> Refunded
//	          ├──> Failed
//	          └──> Cancelled
//
// No status leads back to Pending.
type Status int

const (
	StatusUnknown Status = iota
	Pending
	Completed
	Failed
	Refunded
	Cancelled
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Completed: "completed",
	Failed:    "failed",
	Refunded:  "refunded",
	Cancelled: "cancelled",
}

func ParseStatus(s string) (Status, error) {
	return parse(statusNames, s, "payment status")
}

func (s Status) Validate() error {
	return validate(statusNames, s, "payment status")
}

func (s Status) String() string {
	return name(statusNames, s)
}

func (s Status) IsCompleted() bool {
	return s == Completed
}

func (s Status) IsRefunded() bool {
	return s == Refunded
}

// CanBeRefunded holds only for a completed, not yet refunded payment.
func (s Status) CanBeRefunded() bool {
	return s.IsCompleted() && !s.IsRefunded()
}

// Complete, Fail and Cancel leave Pending; Refund leaves Completed.

func (s Status) Complete() (Status, error) {
	return s.from(Pending, Completed)
}

func (s Status) Fail() (Status, error) {
	return s.from(Pending, Failed)
}

func (s Status) Cancel() (Status, error) {
	return s.from(Pending, Cancelled)
}

func (s Status) Refund() (Status, error) {
	if !s.CanBeRefunded() {
		return StatusUnknown, errs.NewInvalidTransitionError(s, Refunded)
	}
	return Refunded, nil
}

func (s Status) from(required, to Status) (Status, error) {
	if s != required {
		return StatusUnknown, errs.NewInvalidTransitionError(s, to)
	}
	return to, nil
}
