package access

import (
	"errors"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the caller of a lifecycle operation as asserted by the identity
// provider. The engine trusts the role; bindings are checked per call.
type Actor struct {
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

// Bindings are the parties attached to one shipment at the moment of a call.
// Agent and Driver are unset until someone is assigned.
type Bindings struct {
	Sender   kernel.UUID
	Receiver kernel.UUID
	Agent    *kernel.UUID
	Driver   *kernel.UUID
}

// IsParty reports whether id is bound to the shipment in any slot.
func (b Bindings) IsParty(id kernel.UUID) bool {
	return b.Sender.IsEqual(id) || b.Receiver.IsEqual(id) || id.Matches(b.Agent) || id.Matches(b.Driver)
}
