package access

import (
	"fmt"

	"arenoexpress/internal/pkg/errs"
)

// Role is the closed set of roles an identity provider may assert for an
// actor. Capabilities are looked up from the role, never compared as strings.
type Role int

const (
	// RoleUnknown is the zero value and carries no capability.
	RoleUnknown Role = iota
	RoleSender
	RoleReceiver
	RoleAgent
	RoleDriver
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleSender:   "sender",
	RoleReceiver: "receiver",
	RoleAgent:    "agent",
	RoleDriver:   "driver",
	RoleAdmin:    "admin",
}

// ParseRole maps the identity provider's role claim onto Role.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}
