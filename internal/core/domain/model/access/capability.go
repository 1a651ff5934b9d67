package access

import "arenoexpress/internal/core/domain/model/kernel"

// Action names a guarded operation on a shipment or one of its dependents.
type Action int

const (
	ActionView Action = iota + 1
	ActionBook
	ActionTransition
	ActionRecordEvent
	ActionDelete
	ActionManagePackages
	ActionAddPhoto
	ActionRecordPickup
	ActionRecordDelivery
	ActionManageAssignments
	ActionCreatePayment
	ActionSettlePayment
	ActionRefundPayment
	ActionAssignAgent
)

var actionNames = map[Action]string{
	ActionView:              "view shipment",
	ActionBook:              "book shipment",
	ActionTransition:        "change shipment status",
	ActionRecordEvent:       "record tracking event",
	ActionDelete:            "delete shipment",
	ActionManagePackages:    "manage packages",
	ActionAddPhoto:          "add package photo",
	ActionRecordPickup:      "record pickup",
	ActionRecordDelivery:    "record delivery",
	ActionManageAssignments: "manage driver assignments",
	ActionCreatePayment:     "create payment",
	ActionSettlePayment:     "settle payment",
	ActionRefundPayment:     "refund payment",
	ActionAssignAgent:       "assign agent",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown action"
}

// Relation is what an actor must be to a shipment for a role's capability to apply.
type Relation int

const (
	// RelationAny needs no binding at all.
	RelationAny Relation = iota + 1
	// RelationParty needs the actor bound in any slot.
	RelationParty
	RelationSender
	RelationReceiver
	RelationAgent
	RelationDriver
)

// Holds reports whether id stands in relation r to a shipment with bindings b.
func (r Relation) Holds(id kernel.UUID, b Bindings) bool {
	switch r {
	case RelationAny:
		return true
	case RelationParty:
		return b.IsParty(id)
	case RelationSender:
		return b.Sender.IsEqual(id)
	case RelationReceiver:
		return b.Receiver.IsEqual(id)
	case RelationAgent:
		return id.Matches(b.Agent)
	case RelationDriver:
		return id.Matches(b.Driver)
	default:
		return false
	}
}

// capabilities is the complete grant table. An action missing from a role's
// set is denied to that role.
var capabilities = map[Role]map[Action]Relation{
	RoleAdmin: {
		ActionView:              RelationAny,
		ActionBook:              RelationAny,
		ActionTransition:        RelationAny,
		ActionRecordEvent:       RelationAny,
		ActionDelete:            RelationAny,
		ActionManagePackages:    RelationAny,
		ActionAddPhoto:          RelationAny,
		ActionManageAssignments: RelationAny,
		ActionCreatePayment:     RelationAny,
		ActionSettlePayment:     RelationAny,
		ActionRefundPayment:     RelationAny,
		ActionAssignAgent:       RelationAny,
	},
	RoleSender: {
		ActionView:           RelationParty,
		ActionBook:           RelationAny,
		ActionDelete:         RelationSender,
		ActionManagePackages: RelationSender,
		ActionAddPhoto:       RelationSender,
		ActionCreatePayment:  RelationSender,
	},
	RoleReceiver: {
		ActionView:          RelationParty,
		ActionCreatePayment: RelationReceiver,
	},
	RoleAgent: {
		ActionView:              RelationParty,
		ActionBook:              RelationAny,
		ActionTransition:        RelationAgent,
		ActionRecordEvent:       RelationAgent,
		ActionManagePackages:    RelationAgent,
		ActionAddPhoto:          RelationAgent,
		ActionManageAssignments: RelationAgent,
		ActionCreatePayment:     RelationAgent,
		ActionSettlePayment:     RelationAgent,
	},
	RoleDriver: {
		ActionView:           RelationParty,
		ActionTransition:     RelationDriver,
		ActionRecordEvent:    RelationDriver,
		ActionAddPhoto:       RelationDriver,
		ActionRecordPickup:   RelationDriver,
		ActionRecordDelivery: RelationDriver,
		ActionSettlePayment:  RelationDriver,
	},
}

// Capability returns the relation role r needs for action a, and false when
// the role has no such capability.
func (r Role) Capability(a Action) (Relation, bool) {
	rel, ok := capabilities[r][a]
	return rel, ok
}
