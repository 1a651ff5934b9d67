package assignment

import (
	"fmt"

	"arenoexpress/internal/pkg/errs"
)

// Status is the lifecycle state of a driver assignment. It is independent of
// the shipment status; the application layer keeps the two in step.
//
// State transitions:
//
//	Pending ──> Accepted ──> InProgress ──> Completed
//	   │           │             │
//	   └───────────┴─────────────┴──> Cancelled | Failed
//
// Completed, Cancelled and Failed are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pending is the initial status: the driver has not answered yet.
	Pending

	// Accepted means the driver took the task.
	Accepted

	// InProgress means the driver is on the way or at the address.
	InProgress

	// Completed means the pickup or delivery was carried out. Terminal.
	Completed

	// Cancelled means dispatch withdrew the task. Terminal.
	Cancelled

	// Failed means the driver could not carry the task out. Terminal.
	Failed
)

var statusNames = map[Status]string{
	Pending:    "pending",
	Accepted:   "accepted",
	InProgress: "in_progress",
	Completed:  "completed",
	Cancelled:  "cancelled",
	Failed:     "failed",
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("assignment status",
		fmt.Errorf("%q is not a valid assignment status", s))
}

// Validate checks that s is one of the six recognized statuses.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("assignment status",
			fmt.Errorf("%d is not a valid assignment status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal holds for Completed, Cancelled and Failed.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Failed
}

// IsActive holds for Accepted and InProgress. At most one active assignment
// may exist per shipment and assignment type.
func (s Status) IsActive() bool {
	return s == Accepted || s == InProgress
}

// Accept transitions Pending to Accepted.
//
// Returns:
//   - (Accepted, nil) from Pending
//   - (StatusUnknown, InvalidTransitionError) from any other status
func (s Status) Accept() (Status, error) {
	return s.step(Pending, Accepted)
}

// Start transitions Accepted to InProgress.
func (s Status) Start() (Status, error) {
	return s.step(Accepted, InProgress)
}

// Complete transitions InProgress to Completed.
func (s Status) Complete() (Status, error) {
	return s.step(InProgress, Completed)
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	return s.abort(Cancelled)
}

// Fail transitions any non-terminal status to Failed.
func (s Status) Fail() (Status, error) {
	return s.abort(Failed)
}

func (s Status) step(from, to Status) (Status, error) {
	if s != from {
		return StatusUnknown, errs.NewInvalidTransitionError(s, to)
	}
	return to, nil
}

func (s Status) abort(to Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return StatusUnknown, err
	}
	if s.IsTerminal() {
		return StatusUnknown, errs.NewInvalidTransitionError(s, to)
	}
	return to, nil
}
