package assignment

import (
	"errors"
	"strings"
	"time"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"
)

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment was declared
	// instead of built by NewAssignment or RestoreAssignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")
)

// Snapshot is the flat state of an Assignment.
type Snapshot struct {
	ID                kernel.UUID
	ShipmentID        kernel.UUID
	DriverID          kernel.UUID
	VehicleID         *kernel.UUID
	Type              Type
	Status            Status
	AssignedAt        time.Time
	AcceptedAt        *time.Time
	StartedAt         *time.Time
	CompletedAt       *time.Time
	Notes             string
	Location          kernel.Location
	EstimatedDuration int
}

// Assignment is a pickup or delivery task given to one driver for one
// shipment.
//
// Assignment follows these invariants:
//   - type and driver never change after creation
//   - status moves only along the edges documented on Status
//   - a guard that fails leaves every field untouched
//   - each timestamp is set once, by the transition that owns it
//
// The rule that a (shipment, type) pair has at most one active assignment
// spans several aggregates and is enforced by the application layer.
type Assignment struct {
	id                kernel.UUID
	shipmentID        kernel.UUID
	driverID          kernel.UUID
	vehicleID         *kernel.UUID
	assignmentType    Type
	status            Status
	assignedAt        time.Time
	acceptedAt        *time.Time
	startedAt         *time.Time
	completedAt       *time.Time
	notes             string
	location          kernel.Location
	estimatedDuration int

	isConstructed bool
}

// NewAssignment creates a Pending assignment.
//
// Parameters:
//   - estimatedMinutes: expected task duration, 0 when unknown
//
// Returns:
//   - joined validation errors for invalid identifiers, type or duration
func NewAssignment(
	id, shipmentID, driverID kernel.UUID,
	vehicleID *kernel.UUID,
	assignmentType Type,
	notes string,
	estimatedMinutes int,
	assignedAt time.Time,
) (*Assignment, error) {
	return build(Snapshot{
		ID:                id,
		ShipmentID:        shipmentID,
		DriverID:          driverID,
		VehicleID:         vehicleID,
		Type:              assignmentType,
		Status:            Pending,
		AssignedAt:        assignedAt,
		Notes:             notes,
		EstimatedDuration: estimatedMinutes,
	})
}

// RestoreAssignment rebuilds a persisted assignment in any recognized status.
func RestoreAssignment(snap Snapshot) (*Assignment, error) {
	return build(snap)
}

func build(snap Snapshot) (*Assignment, error) {
	var vehicleErr, durationErr, assignedErr error
	if snap.VehicleID != nil {
		vehicleErr = snap.VehicleID.Validate()
	}
	if snap.EstimatedDuration < 0 {
		durationErr = errs.NewValueIsOutOfRangeError("estimated duration", snap.EstimatedDuration, 0, "max")
	}
	if snap.AssignedAt.IsZero() {
		assignedErr = errs.NewValueIsRequiredError("assigned at")
	}

	if err := errors.Join(
		snap.ID.Validate(),
		snap.ShipmentID.Validate(),
		snap.DriverID.Validate(),
		vehicleErr,
		snap.Type.Validate(),
		snap.Status.Validate(),
		durationErr,
		assignedErr,
	); err != nil {
		return nil, err
	}

	return &Assignment{
		id:                snap.ID,
		shipmentID:        snap.ShipmentID,
		driverID:          snap.DriverID,
		vehicleID:         cloneID(snap.VehicleID),
		assignmentType:    snap.Type,
		status:            snap.Status,
		assignedAt:        snap.AssignedAt,
		acceptedAt:        cloneTime(snap.AcceptedAt),
		startedAt:         cloneTime(snap.StartedAt),
		completedAt:       cloneTime(snap.CompletedAt),
		notes:             strings.TrimSpace(snap.Notes),
		location:          snap.Location,
		estimatedDuration: snap.EstimatedDuration,
		isConstructed:     true,
	}, nil
}

func (a *Assignment) Snapshot() Snapshot {
	return Snapshot{
		ID:                a.id,
		ShipmentID:        a.shipmentID,
		DriverID:          a.driverID,
		VehicleID:         cloneID(a.vehicleID),
		Type:              a.assignmentType,
		Status:            a.status,
		AssignedAt:        a.assignedAt,
		AcceptedAt:        cloneTime(a.acceptedAt),
		StartedAt:         cloneTime(a.startedAt),
		CompletedAt:       cloneTime(a.completedAt),
		Notes:             a.notes,
		Location:          a.location,
		EstimatedDuration: a.estimatedDuration,
	}
}

// Validate ensures the Assignment was built by one of its constructors.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

func (a *Assignment) ID() kernel.UUID {
	return a.id
}

func (a *Assignment) ShipmentID() kernel.UUID {
	return a.shipmentID
}

func (a *Assignment) DriverID() kernel.UUID {
	return a.driverID
}

func (a *Assignment) VehicleID() *kernel.UUID {
	return cloneID(a.vehicleID)
}

func (a *Assignment) Type() Type {
	return a.assignmentType
}

func (a *Assignment) Status() Status {
	return a.status
}

func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

func (a *Assignment) AcceptedAt() *time.Time {
	return cloneTime(a.acceptedAt)
}

func (a *Assignment) StartedAt() *time.Time {
	return cloneTime(a.startedAt)
}

func (a *Assignment) CompletedAt() *time.Time {
	return cloneTime(a.completedAt)
}

func (a *Assignment) Notes() string {
	return a.notes
}

// Location is the last position reported with a start or completion.
func (a *Assignment) Location() kernel.Location {
	return a.location
}

// EstimatedDuration is the expected task duration in minutes.
func (a *Assignment) EstimatedDuration() int {
	return a.estimatedDuration
}

// IsAssignedTo reports whether driverID is the assignment's driver.
func (a *Assignment) IsAssignedTo(driverID kernel.UUID) bool {
	return a.driverID.IsEqual(driverID)
}

// Accept records the driver's acceptance.
//
// Returns:
//   - nil and sets acceptedAt when the assignment is Pending
//   - InvalidTransitionError otherwise; acceptedAt keeps its first value
//
// Example:
//
//	if err := a.Accept(clock.Now()); err != nil {
//	    // already accepted, started or finished
//	}
func (a *Assignment) Accept(at time.Time) error {
	next, err := a.status.Accept()
	if err != nil {
		return err
	}
	a.status = next
	a.acceptedAt = &at
	return nil
}

// Start records that the driver set off. location may be empty.
func (a *Assignment) Start(at time.Time, location kernel.Location) error {
	next, err := a.status.Start()
	if err != nil {
		return err
	}
	a.status = next
	a.startedAt = &at
	a.reportLocation(location)
	return nil
}

// Complete records that the task was carried out. location may be empty.
func (a *Assignment) Complete(at time.Time, location kernel.Location) error {
	next, err := a.status.Complete()
	if err != nil {
		return err
	}
	a.status = next
	a.completedAt = &at
	a.reportLocation(location)
	return nil
}

// Cancel withdraws a non-terminal assignment. reason replaces the notes.
func (a *Assignment) Cancel(reason string) error {
	next, err := a.status.Cancel()
	if err != nil {
		return err
	}
	a.status = next
	a.recordReason(reason)
	return nil
}

// Fail marks a non-terminal assignment as failed. reason replaces the notes.
func (a *Assignment) Fail(reason string) error {
	next, err := a.status.Fail()
	if err != nil {
		return err
	}
	a.status = next
	a.recordReason(reason)
	return nil
}

func (a *Assignment) reportLocation(location kernel.Location) {
	if !location.IsEmpty() {
		a.location = location
	}
}

func (a *Assignment) recordReason(reason string) {
	if reason = strings.TrimSpace(reason); reason != "" {
		a.notes = reason
	}
}

func cloneID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
