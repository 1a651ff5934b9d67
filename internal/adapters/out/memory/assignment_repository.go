package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"
)

type assignmentRepository struct {
	uow *UnitOfWork
}

func (r assignmentRepository) Add(_ context.Context, a *assignment.Assignment) error {
	st, err := r.uow.write()
	if err != nil {
		return err
	}
	snap := a.Snapshot()
	if _, ok := st.assignments[snap.ID]; ok {
		return errs.NewConflictError("assignment id")
	}
	if _, ok := st.shipments[snap.ShipmentID]; !ok {
		return errs.NewObjectNotFoundError("shipment id", snap.ShipmentID)
	}
	if err = checkSingleActive(st, snap); err != nil {
		return err
	}
	st.assignments[snap.ID] = assignmentRow{snap: snap, seq: st.next()}
	return nil
}

func (r assignmentRepository) Update(_ context.Context, a *assignment.Assignment) error {
	st, err := r.uow.write()
	if err != nil {
		return err
	}
	row, ok := st.assignments[a.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("assignment id", a.ID())
	}
	row.snap = a.Snapshot()
	if err = checkSingleActive(st, row.snap); err != nil {
		return err
	}
	st.assignments[a.ID()] = row
	return nil
}

func (r assignmentRepository) Get(_ context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	row, ok := r.uow.read().assignments[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("assignment id", id)
	}
	return assignment.RestoreAssignment(row.snap)
}

func (r assignmentRepository) ListByShipment(_ context.Context, shipmentID kernel.UUID) ([]*assignment.Assignment, error) {
	var rows []assignmentRow
	for _, row := range r.uow.read().assignments {
		if row.snap.ShipmentID.IsEqual(shipmentID) {
			rows = append(rows, row)
		}
	}
	slices.SortFunc(rows, func(a, b assignmentRow) int {
		return cmp.Or(a.snap.AssignedAt.Compare(b.snap.AssignedAt), cmp.Compare(a.seq, b.seq))
	})

	assignments := make([]*assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		a, err := assignment.RestoreAssignment(row.snap)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func (r assignmentRepository) FindActive(_ context.Context, shipmentID kernel.UUID, t assignment.Type) (*assignment.Assignment, error) {
	for _, row := range r.uow.read().assignments {
		if row.snap.ShipmentID.IsEqual(shipmentID) && row.snap.Type == t && row.snap.Status.IsActive() {
			return assignment.RestoreAssignment(row.snap)
		}
	}
	return nil, nil
}

// checkSingleActive mirrors the partial unique index of the postgres schema.
func checkSingleActive(st *state, snap assignment.Snapshot) error {
	if !snap.Status.IsActive() {
		return nil
	}
	for _, row := range st.assignments {
		other := row.snap
		if other.ID.IsEqual(snap.ID) || !other.ShipmentID.IsEqual(snap.ShipmentID) {
			continue
		}
		if other.Type == snap.Type && other.Status.IsActive() {
			return errs.NewConflictErrorWithCause("assignment",
				fmt.Errorf("%s assignment %s is already %s", other.Type, other.ID, other.Status))
		}
	}
	return nil
}
