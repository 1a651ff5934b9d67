package assignment_test

import (
	"testing"
	"time"

	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assignedAt = time.Date(2026, 6, 2, 8, 0, 0, 0, time.UTC)

func newAssignment(t *testing.T, typ assignment.Type) *assignment.Assignment {
	t.Helper()
	a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, typ, "fragile", 30, assignedAt)
	require.NoError(t, err)
	return a
}

func TestNewAssignment(t *testing.T) {
	t.Run("should start pending", func(t *testing.T) {
		vehicle := kernel.NewUUID()
		driver := kernel.NewUUID()

		a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), driver, &vehicle, assignment.Pickup, "", 45, assignedAt)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, assignment.Pending, a.Status())
		assert.Equal(t, assignment.Pickup, a.Type())
		assert.True(t, a.IsAssignedTo(driver))
		assert.True(t, a.VehicleID().IsEqual(vehicle))
		assert.Equal(t, 45, a.EstimatedDuration())
		assert.Nil(t, a.AcceptedAt())
	})

	t.Run("should reject bad input", func(t *testing.T) {
		_, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{}, nil,
			assignment.TypeUnknown, "", -5, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestAssignment_HappyPath(t *testing.T) {
	a := newAssignment(t, assignment.Delivery)
	loc, _ := kernel.NewLocation("Mombasa CBD")

	require.NoError(t, a.Accept(assignedAt.Add(time.Minute)))
	require.NoError(t, a.Start(assignedAt.Add(2*time.Minute), kernel.EmptyLocation()))
	require.NoError(t, a.Complete(assignedAt.Add(time.Hour), loc))

	assert.Equal(t, assignment.Completed, a.Status())
	assert.Equal(t, assignedAt.Add(time.Minute), *a.AcceptedAt())
	assert.Equal(t, assignedAt.Add(2*time.Minute), *a.StartedAt())
	assert.Equal(t, assignedAt.Add(time.Hour), *a.CompletedAt())
	assert.Equal(t, "Mombasa CBD", a.Location().String())
}

func TestAssignment_AcceptTwice(t *testing.T) {
	a := newAssignment(t, assignment.Pickup)
	first := assignedAt.Add(time.Minute)
	require.NoError(t, a.Accept(first))

	err := a.Accept(assignedAt.Add(time.Hour))

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, assignment.Accepted, a.Status())
	assert.Equal(t, first, *a.AcceptedAt())
}

func TestAssignment_Guards(t *testing.T) {
	t.Run("complete from pending", func(t *testing.T) {
		a := newAssignment(t, assignment.Pickup)
		before := a.Snapshot()

		err := a.Complete(assignedAt, kernel.EmptyLocation())

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, before, a.Snapshot())
	})

	t.Run("start from pending", func(t *testing.T) {
		a := newAssignment(t, assignment.Pickup)
		require.ErrorIs(t, a.Start(assignedAt, kernel.EmptyLocation()), errs.ErrInvalidState)
		assert.Nil(t, a.StartedAt())
	})

	t.Run("cancel from any non-terminal status", func(t *testing.T) {
		pending := newAssignment(t, assignment.Pickup)
		require.NoError(t, pending.Cancel("sender rescheduled"))
		assert.Equal(t, assignment.Cancelled, pending.Status())
		assert.Equal(t, "sender rescheduled", pending.Notes())

		started := newAssignment(t, assignment.Pickup)
		require.NoError(t, started.Accept(assignedAt))
		require.NoError(t, started.Start(assignedAt, kernel.EmptyLocation()))
		require.NoError(t, started.Fail("vehicle breakdown"))
		assert.Equal(t, assignment.Failed, started.Status())
	})

	t.Run("terminal statuses reject everything", func(t *testing.T) {
		a := newAssignment(t, assignment.Pickup)
		require.NoError(t, a.Cancel(""))
		assert.Equal(t, "fragile", a.Notes())

		require.ErrorIs(t, a.Fail("late"), errs.ErrInvalidState)
		require.ErrorIs(t, a.Cancel("again"), errs.ErrInvalidState)
		require.ErrorIs(t, a.Accept(assignedAt), errs.ErrInvalidState)
		assert.Equal(t, assignment.Cancelled, a.Status())
		assert.Equal(t, "fragile", a.Notes())
	})
}

func TestStatus_IsActive(t *testing.T) {
	assert.False(t, assignment.Pending.IsActive())
	assert.True(t, assignment.Accepted.IsActive())
	assert.True(t, assignment.InProgress.IsActive())
	assert.False(t, assignment.Completed.IsActive())
}

func TestParseTypeAndStatus(t *testing.T) {
	typ, err := assignment.ParseType("delivery")
	require.NoError(t, err)
	assert.Equal(t, assignment.Delivery, typ)

	st, err := assignment.ParseStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, assignment.InProgress, st)

	_, err = assignment.ParseType("courier")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAssignment_SnapshotRoundTrip(t *testing.T) {
	a := newAssignment(t, assignment.Delivery)
	require.NoError(t, a.Accept(assignedAt))

	restored, err := assignment.RestoreAssignment(a.Snapshot())

	require.NoError(t, err)
	assert.Equal(t, a.Snapshot(), restored.Snapshot())
}
