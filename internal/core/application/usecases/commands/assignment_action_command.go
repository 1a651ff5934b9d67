package commands

import (
	"errors"
	"fmt"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"
	"arenoexpress/internal/pkg/guard"
)

var ErrAssignmentActionCommandIsNotConstructed = errors.New(
	"AssignmentActionCommand must be created via NewAssignmentActionCommand constructor",
)

// AssignmentAction is a step of the driver assignment sub-machine.
type AssignmentAction int

const (
	AssignmentActionUnknown AssignmentAction = iota
	AcceptAssignment
	StartAssignment
	CompleteAssignment
	CancelAssignment
	FailAssignment
)

var assignmentActionNames = map[AssignmentAction]string{
	AcceptAssignment:   "accept",
	StartAssignment:    "start",
	CompleteAssignment: "complete",
	CancelAssignment:   "cancel",
	FailAssignment:     "fail",
}

func ParseAssignmentAction(s string) (AssignmentAction, error) {
	for a, name := range assignmentActionNames {
		if name == s {
			return a, nil
		}
	}
	return AssignmentActionUnknown, errs.NewValueIsInvalidErrorWithCause("assignment action",
		fmt.Errorf("%q is not a known action", s))
}

func (a AssignmentAction) Validate() error {
	if _, ok := assignmentActionNames[a]; !ok {
		return errs.NewValueIsInvalidError("assignment action")
	}
	return nil
}

func (a AssignmentAction) String() string {
	if name, ok := assignmentActionNames[a]; ok {
		return name
	}
	return "unknown"
}

// AssignmentActionCommand applies one step to an assignment. Location is used
// by start and complete; reason by cancel and fail.
type AssignmentActionCommand struct {
	actor        access.Actor
	assignmentID kernel.UUID
	action       AssignmentAction
	location     kernel.Location
	reason       string

	guard guard.ConstructorGuard
}

func NewAssignmentActionCommand(
	actor access.Actor,
	assignmentID kernel.UUID,
	action AssignmentAction,
	location kernel.Location,
	reason string,
) (AssignmentActionCommand, error) {
	if err := errors.Join(actor.Validate(), assignmentID.Validate(), action.Validate()); err != nil {
		return AssignmentActionCommand{}, err
	}
	return AssignmentActionCommand{
		actor:        actor,
		assignmentID: assignmentID,
		action:       action,
		location:     location,
		reason:       reason,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AssignmentActionCommand) Validate() error {
	return c.guard.Validate(ErrAssignmentActionCommandIsNotConstructed)
}

func (c AssignmentActionCommand) Actor() access.Actor {
	return c.actor
}

func (c AssignmentActionCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

func (c AssignmentActionCommand) Action() AssignmentAction {
	return c.action
}

func (c AssignmentActionCommand) Location() kernel.Location {
	return c.location
}

func (c AssignmentActionCommand) Reason() string {
	return c.reason
}
