package commands

import (
	"errors"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"
	"arenoexpress/internal/pkg/guard"
)

var ErrCreateAssignmentCommandIsNotConstructed = errors.New(
	"CreateAssignmentCommand must be created via NewCreateAssignmentCommand constructor",
)

// CreateAssignmentCommand gives a pickup or delivery task on a shipment to a
// driver.
//
// Example:
//
//	cmd, err := NewCreateAssignmentCommand(agent, shipmentID, driverID, assignment.Pickup, nil, "", 45)
type CreateAssignmentCommand struct {
	actor            access.Actor
	shipmentID       kernel.UUID
	driverID         kernel.UUID
	assignmentType   assignment.Type
	vehicleID        *kernel.UUID
	notes            string
	estimatedMinutes int

	guard guard.ConstructorGuard
}

func NewCreateAssignmentCommand(
	actor access.Actor,
	shipmentID, driverID kernel.UUID,
	assignmentType assignment.Type,
	vehicleID *kernel.UUID,
	notes string,
	estimatedMinutes int,
) (CreateAssignmentCommand, error) {
	var durationErr error
	if estimatedMinutes < 0 {
		durationErr = errs.NewValueIsOutOfRangeError("estimated duration", estimatedMinutes, 0, "max")
	}
	if err := errors.Join(
		actor.Validate(),
		shipmentID.Validate(),
		driverID.Validate(),
		assignmentType.Validate(),
		durationErr,
	); err != nil {
		return CreateAssignmentCommand{}, err
	}

	var vehicle *kernel.UUID
	if vehicleID != nil {
		v := *vehicleID
		vehicle = &v
	}
	return CreateAssignmentCommand{
		actor:            actor,
		shipmentID:       shipmentID,
		driverID:         driverID,
		assignmentType:   assignmentType,
		vehicleID:        vehicle,
		notes:            notes,
		estimatedMinutes: estimatedMinutes,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CreateAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAssignmentCommandIsNotConstructed)
}

func (c CreateAssignmentCommand) Actor() access.Actor {
	return c.actor
}

func (c CreateAssignmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CreateAssignmentCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c CreateAssignmentCommand) Type() assignment.Type {
	return c.assignmentType
}

func (c CreateAssignmentCommand) VehicleID() *kernel.UUID {
	if c.vehicleID == nil {
		return nil
	}
	v := *c.vehicleID
	return &v
}

func (c CreateAssignmentCommand) Notes() string {
	return c.notes
}

func (c CreateAssignmentCommand) EstimatedMinutes() int {
	return c.estimatedMinutes
}
