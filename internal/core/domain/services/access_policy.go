package services

import (
	"fmt"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/pkg/errs"
)

// AccessPolicy decides whether an actor may perform an action on a shipment
// or one of its dependents. It is stateless; callers pass bindings freshly
// loaded inside the unit of work that performs the action, so a rebinding
// committed a moment ago is honoured.
//
// Rules are looked up in the role capability table of the access package. A
// role without the capability is denied outright; a role with it must also
// stand in the required relation to the shipment.
//
// Example usage:
//
//	policy := services.NewAccessPolicy()
//	if err := policy.Authorize(actor, access.ActionTransition, s.Bindings()); err != nil {
//	    return nil, err // errs.ErrAccessDenied
//	}
type AccessPolicy struct{}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// Authorize returns an AccessDeniedError unless actor may perform action on a
// shipment with bindings b.
func (AccessPolicy) Authorize(actor access.Actor, action access.Action, b access.Bindings) error {
	if err := actor.Validate(); err != nil {
		return errs.NewAccessDeniedErrorWithCause(action.String(), err)
	}
	rel, ok := actor.Role().Capability(action)
	if !ok {
		return errs.NewAccessDeniedErrorWithCause(action.String(),
			fmt.Errorf("role %s cannot %s", actor.Role(), action))
	}
	if !rel.Holds(actor.ID(), b) {
		return errs.NewAccessDeniedErrorWithCause(action.String(),
			fmt.Errorf("%s %s is not bound to the shipment", actor.Role(), actor.ID()))
	}
	return nil
}

// CanView is the visibility rule: admin, or any party bound to the shipment.
func (p AccessPolicy) CanView(actor access.Actor, b access.Bindings) bool {
	return p.Authorize(actor, access.ActionView, b) == nil
}

// AuthorizeAssignmentWork allows accept, start and complete only to the
// driver the assignment was given to.
func (AccessPolicy) AuthorizeAssignmentWork(actor access.Actor, a *assignment.Assignment) error {
	const action = "work on assignment"
	if err := actor.Validate(); err != nil {
		return errs.NewAccessDeniedErrorWithCause(action, err)
	}
	if actor.Role() != access.RoleDriver || !a.IsAssignedTo(actor.ID()) {
		return errs.NewAccessDeniedErrorWithCause(action,
			fmt.Errorf("assignment %s belongs to another driver", a.ID()))
	}
	return nil
}

// AuthorizeAssignmentFailure allows the assigned driver or an admin to mark
// an assignment as failed.
func (p AccessPolicy) AuthorizeAssignmentFailure(actor access.Actor, a *assignment.Assignment) error {
	if actor.Validate() == nil && actor.IsAdmin() {
		return nil
	}
	return p.AuthorizeAssignmentWork(actor, a)
}

// AuthorizePaymentCancel allows the payer or an admin to cancel a payment.
func (AccessPolicy) AuthorizePaymentCancel(actor access.Actor, pay *payment.Payment) error {
	const action = "cancel payment"
	if err := actor.Validate(); err != nil {
		return errs.NewAccessDeniedErrorWithCause(action, err)
	}
	if actor.IsAdmin() || pay.IsPaidBy(actor.ID()) {
		return nil
	}
	return errs.NewAccessDeniedError(action)
}

// AuthorizePaymentView allows the payer and anyone who can view the shipment.
func (p AccessPolicy) AuthorizePaymentView(actor access.Actor, pay *payment.Payment, b access.Bindings) error {
	if actor.Validate() == nil && pay.IsPaidBy(actor.ID()) {
		return nil
	}
	return p.Authorize(actor, access.ActionView, b)
}
