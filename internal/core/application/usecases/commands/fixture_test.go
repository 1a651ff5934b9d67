package commands_test

import (
	"sync"
	"testing"
	"time"

	"arenoexpress/internal/adapters/out/memory"
	"arenoexpress/internal/core/application/usecases/commands"
	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/core/domain/services"
	"arenoexpress/internal/core/ports"

	"github.com/stretchr/testify/require"
)

type memoryUoWFactory struct {
	inner memory.UnitOfWorkFactory
}

func (f memoryUoWFactory) Create() commands.UoW {
	return f.inner.Create()
}

// tickingClock advances one second on every reading so ledger entries of
// consecutive operations never share a timestamp.
type tickingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	t            *testing.T
	store        *memory.Store
	uows         commands.UoWFactory
	clock        *tickingClock
	policy       services.AccessPolicy
	generator    *services.IdentifierGenerator
	transitioner services.StatusTransitioner

	admin    access.Actor
	sender   access.Actor
	receiver access.Actor
	agent    access.Actor
	driver   access.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	clock := &tickingClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	generator, err := services.NewIdentifierGenerator(clock, kernel.SystemRandom{}, services.DefaultIDMaxAttempts)
	require.NoError(t, err)
	transitioner, err := services.NewStatusTransitioner(clock)
	require.NoError(t, err)

	return &fixture{
		t:            t,
		store:        store,
		uows:         memoryUoWFactory{inner: memory.NewUnitOfWorkFactory(store)},
		clock:        clock,
		policy:       services.NewAccessPolicy(),
		generator:    generator,
		transitioner: transitioner,
		admin:        newActor(t, access.RoleAdmin),
		sender:       newActor(t, access.RoleSender),
		receiver:     newActor(t, access.RoleReceiver),
		agent:        newActor(t, access.RoleAgent),
		driver:       newActor(t, access.RoleDriver),
	}
}

func newActor(t *testing.T, role access.Role) access.Actor {
	t.Helper()
	a, err := access.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

// reader reads committed state outside any unit of work.
func (f *fixture) reader() ports.UnitOfWork {
	return memory.NewUnitOfWork(f.store)
}

func (f *fixture) bookWith(actor access.Actor, params commands.BookShipmentParams) (commands.BookingResult, error) {
	cmd, err := commands.NewBookShipmentCommand(actor, params)
	require.NoError(f.t, err)
	return commands.NewBookShipmentCommandHandler(f.uows, f.policy, f.generator, f.transitioner, f.clock).
		Handle(f.t.Context(), cmd)
}

func (f *fixture) bookingParams(packages int) commands.BookShipmentParams {
	fee, err := kernel.ParseMoney("50.00")
	require.NoError(f.t, err)

	details := make([]shipment.PackageDetails, 0, packages)
	for range packages {
		details = append(details, shipment.PackageDetails{Description: "Books", Weight: 2, Length: 30, Width: 20, Height: 10})
	}
	return commands.BookShipmentParams{
		ReceiverID:      f.receiver.ID(),
		PickupAddress:   "12 Moi Avenue, Nairobi",
		DeliveryAddress: "4 Nyerere Road, Mombasa",
		ShipmentFee:     fee,
		TotalAmount:     fee,
		Packages:        details,
	}
}

// book creates a shipment for f.sender with the given number of packages.
func (f *fixture) book(packages int) commands.BookingResult {
	f.t.Helper()
	result, err := f.bookWith(f.sender, f.bookingParams(packages))
	require.NoError(f.t, err)
	return result
}

func (f *fixture) transition(actor access.Actor, id kernel.UUID, target shipment.Status) (*shipment.Shipment, error) {
	cmd, err := commands.NewTransitionStatusCommand(actor, id, target, kernel.EmptyLocation(), "")
	require.NoError(f.t, err)
	return commands.NewTransitionStatusCommandHandler(f.uows, f.policy, f.transitioner, f.clock).Handle(f.t.Context(), cmd)
}

func (f *fixture) mustTransition(id kernel.UUID, targets ...shipment.Status) {
	f.t.Helper()
	for _, target := range targets {
		_, err := f.transition(f.admin, id, target)
		require.NoError(f.t, err)
	}
}

func (f *fixture) createAssignment(id kernel.UUID, t assignment.Type) (*assignment.Assignment, error) {
	cmd, err := commands.NewCreateAssignmentCommand(f.admin, id, f.driver.ID(), t, nil, "", 30)
	require.NoError(f.t, err)
	return commands.NewCreateAssignmentCommandHandler(f.uows, f.policy, f.transitioner, f.clock).Handle(f.t.Context(), cmd)
}

func (f *fixture) assignmentAction(
	actor access.Actor,
	id kernel.UUID,
	action commands.AssignmentAction,
	reason string,
) (*assignment.Assignment, error) {
	cmd, err := commands.NewAssignmentActionCommand(actor, id, action, kernel.EmptyLocation(), reason)
	require.NoError(f.t, err)
	return commands.NewAssignmentActionCommandHandler(f.uows, f.policy, f.transitioner, f.clock).Handle(f.t.Context(), cmd)
}

// startTask creates an assignment for f.driver and moves it to in progress.
func (f *fixture) startTask(id kernel.UUID, t assignment.Type) *assignment.Assignment {
	f.t.Helper()
	a, err := f.createAssignment(id, t)
	require.NoError(f.t, err)
	_, err = f.assignmentAction(f.driver, a.ID(), commands.AcceptAssignment, "")
	require.NoError(f.t, err)
	a, err = f.assignmentAction(f.driver, a.ID(), commands.StartAssignment, "")
	require.NoError(f.t, err)
	return a
}

func (f *fixture) shipment(id kernel.UUID) *shipment.Shipment {
	f.t.Helper()
	s, err := f.reader().ShipmentRepository().Get(f.t.Context(), id)
	require.NoError(f.t, err)
	return s
}

func (f *fixture) events(id kernel.UUID) []*tracking.Event {
	f.t.Helper()
	events, err := f.reader().TrackingEventRepository().ListByShipment(f.t.Context(), id)
	require.NoError(f.t, err)
	return events
}

func (f *fixture) records(id kernel.UUID) []*tracking.StatusRecord {
	f.t.Helper()
	records, err := f.reader().StatusHistoryRepository().ListByShipment(f.t.Context(), id)
	require.NoError(f.t, err)
	return records
}

func (f *fixture) outbox() []ports.OutboxEntry {
	f.t.Helper()
	entries, err := f.reader().NotificationOutbox().Pending(f.t.Context(), 1000, time.Now())
	require.NoError(f.t, err)
	return entries
}

func (f *fixture) packages(id kernel.UUID) []*shipment.Package {
	f.t.Helper()
	packages, err := f.reader().PackageRepository().ListByShipment(f.t.Context(), id)
	require.NoError(f.t, err)
	return packages
}
