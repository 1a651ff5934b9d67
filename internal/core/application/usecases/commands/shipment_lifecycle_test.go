package commands_test

import (
	"strings"
	"sync"
	"testing"

	"arenoexpress/internal/core/application/usecases/commands"
	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/notification"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookShipment(t *testing.T) {
	t.Run("two packages get sub-tracking ids A and B", func(t *testing.T) {
		f := newFixture(t)

		result := f.book(2)

		s := result.Shipment
		require.Len(t, result.Packages, 2)
		assert.True(t, strings.HasPrefix(s.TrackingNumber(), "TRK2026"))
		assert.True(t, strings.HasPrefix(s.MasterTrackingID(), "MT2026"))
		assert.Equal(t, s.TrackingNumber()+"-A", result.Packages[0].SubTrackingID())
		assert.Equal(t, s.TrackingNumber()+"-B", result.Packages[1].SubTrackingID())
		assert.True(t, strings.HasSuffix(result.Packages[0].QRCode(), "_"+s.TrackingNumber()+"-A"))
		assert.Equal(t, shipment.Booked, s.Status())
		assert.Equal(t, shipment.PaymentPending, s.PaymentStatus())
		assert.Equal(t, 2, s.PackageSequence())

		stored := f.packages(s.ID())
		require.Len(t, stored, 2)
		assert.Equal(t, result.Packages[0].SubTrackingID(), stored[0].SubTrackingID())
	})

	t.Run("appends the initial ledger entries and notifies both parties", func(t *testing.T) {
		f := newFixture(t)

		s := f.book(1).Shipment

		records := f.records(s.ID())
		require.Len(t, records, 1)
		assert.Equal(t, shipment.Booked, records[0].Status())
		events := f.events(s.ID())
		require.Len(t, events, 1)
		assert.Equal(t, tracking.EventBooked, events[0].Type())

		outbox := f.outbox()
		require.Len(t, outbox, 2)
		assert.Equal(t, notification.ShipmentBooked, outbox[0].Message.Type)
		assert.True(t, outbox[0].Message.UserID.IsEqual(f.sender.ID()))
		assert.True(t, outbox[1].Message.UserID.IsEqual(f.receiver.ID()))
	})

	t.Run("agent booking binds the agent", func(t *testing.T) {
		f := newFixture(t)
		params := f.bookingParams(1)
		senderID := f.sender.ID()
		params.SenderID = &senderID

		result, err := f.bookWith(f.agent, params)

		require.NoError(t, err)
		assert.True(t, f.agent.ID().Matches(result.Shipment.AgentID()))
		assert.True(t, result.Shipment.SenderID().IsEqual(senderID))
	})

	t.Run("agent must name the sender", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.bookWith(f.agent, f.bookingParams(1))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("sender cannot book for someone else", func(t *testing.T) {
		f := newFixture(t)
		params := f.bookingParams(1)
		other := kernel.NewUUID()
		params.SenderID = &other

		_, err := f.bookWith(f.sender, params)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("receiver cannot book", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.bookWith(f.receiver, f.bookingParams(1))

		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("invalid package leaves nothing behind", func(t *testing.T) {
		f := newFixture(t)
		params := f.bookingParams(2)
		params.Packages[1].Weight = -1

		_, err := f.bookWith(f.sender, params)

		require.Error(t, err)
		assert.Equal(t, errs.KindValidationFailed, errs.KindOf(err))
		assert.Empty(t, f.outbox())
	})
}

func TestNewBookShipmentCommand_RequiresPackages(t *testing.T) {
	sender, err := access.NewActor(kernel.NewUUID(), access.RoleSender)
	require.NoError(t, err)

	_, err = commands.NewBookShipmentCommand(sender, commands.BookShipmentParams{
		ReceiverID:      kernel.NewUUID(),
		PickupAddress:   "a",
		DeliveryAddress: "b",
	})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestTransitionStatus(t *testing.T) {
	t.Run("picked up notifies sender and receiver, arrived at hub notifies nobody", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment
		before := len(f.outbox())

		_, err := f.transition(f.admin, s.ID(), shipment.PickedUp)
		require.NoError(t, err)

		queued := f.outbox()[before:]
		require.Len(t, queued, 2)
		for _, e := range queued {
			assert.Equal(t, notification.PickupCompleted, e.Message.Type)
		}
		assert.True(t, queued[0].Message.UserID.IsEqual(f.sender.ID()))
		assert.True(t, queued[1].Message.UserID.IsEqual(f.receiver.ID()))

		f.mustTransition(s.ID(), shipment.InTransit)
		before = len(f.outbox())
		f.mustTransition(s.ID(), shipment.ArrivedAtHub)
		assert.Len(t, f.outbox(), before)
	})

	t.Run("every accepted transition adds one record and one event", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment
		path := []shipment.Status{
			shipment.PickedUp,
			shipment.ReceivedAtAgent,
			shipment.InTransit,
			shipment.ArrivedAtHub,
			shipment.DispatchedToDestination,
			shipment.ArrivedAtDestination,
			shipment.OutForDelivery,
			shipment.Delivered,
		}

		for _, target := range path {
			records, events := len(f.records(s.ID())), len(f.events(s.ID()))

			got, err := f.transition(f.admin, s.ID(), target)

			require.NoError(t, err)
			assert.Equal(t, target, got.Status())
			assert.Equal(t, target, f.shipment(s.ID()).Status())
			assert.Len(t, f.records(s.ID()), records+1)
			assert.Len(t, f.events(s.ID()), events+1)
			assert.Equal(t, target, f.records(s.ID())[0].Status())
		}
	})

	t.Run("illegal edge is rejected and nothing is written", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment

		_, err := f.transition(f.admin, s.ID(), shipment.Delivered)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
		assert.Equal(t, shipment.Booked, f.shipment(s.ID()).Status())
		assert.Len(t, f.records(s.ID()), 1)
		assert.Len(t, f.events(s.ID()), 1)
	})

	t.Run("terminal status accepts nothing", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment
		f.mustTransition(s.ID(), shipment.PickedUp, shipment.Returned)

		_, err := f.transition(f.admin, s.ID(), shipment.InTransit)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("only bound parties with the capability may transition", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment

		_, err := f.transition(f.driver, s.ID(), shipment.PickedUp)
		require.ErrorIs(t, err, errs.ErrAccessDenied)

		_, err = f.transition(f.sender, s.ID(), shipment.PickedUp)
		require.ErrorIs(t, err, errs.ErrAccessDenied)

		_, err = f.transition(f.agent, s.ID(), shipment.PickedUp)
		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("unknown shipment", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.transition(f.admin, kernel.NewUUID(), shipment.PickedUp)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("concurrent transitions on one shipment are serialized", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment

		const callers = 16
		var wg sync.WaitGroup
		errCh := make(chan error, callers)
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.transition(f.admin, s.ID(), shipment.PickedUp)
				errCh <- err
			}()
		}
		wg.Wait()
		close(errCh)

		succeeded := 0
		for err := range errCh {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		}
		assert.Equal(t, 1, succeeded)
		assert.Len(t, f.records(s.ID()), 2)
	})
}

func TestTrackingLedger_IsAppendOnly(t *testing.T) {
	f := newFixture(t)
	s := f.book(1).Shipment

	type entry struct {
		eventType   tracking.EventType
		description string
		timestamp   string
	}
	seen := map[kernel.UUID]entry{}
	check := func() {
		for _, e := range f.events(s.ID()) {
			got := entry{e.Type(), e.Description(), e.Timestamp().String()}
			if prev, ok := seen[e.ID()]; ok {
				assert.Equal(t, prev, got, "event %s changed", e.ID())
				continue
			}
			seen[e.ID()] = got
		}
	}

	check()
	f.startTask(s.ID(), assignment.Pickup)
	check()
	for _, target := range []shipment.Status{
		shipment.PickedUp,
		shipment.InTransit,
		shipment.ArrivedAtDestination,
		shipment.Delivered,
	} {
		f.mustTransition(s.ID(), target)
		check()
	}

	assert.Len(t, seen, len(f.events(s.ID())))
}

func TestRecordPickup(t *testing.T) {
	pickup := func(f *fixture, actor access.Actor, id kernel.UUID, photos ...string) (*shipment.Shipment, error) {
		loc, err := kernel.NewLocation("Westlands")
		require.NoError(t, err)
		cmd, err := commands.NewRecordPickupCommand(actor, id, commands.Evidence{
			Location: loc,
			Notes:    "collected at reception",
			Photos:   photos,
		})
		require.NoError(t, err)
		return commands.NewRecordPickupCommandHandler(f.uows, f.policy, f.transitioner, f.clock).Handle(t.Context(), cmd)
	}

	t.Run("bound driver picks up, photos attach and the task completes", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(2).Shipment
		task := f.startTask(s.ID(), assignment.Pickup)

		got, err := pickup(f, f.driver, s.ID(), "photo-a.jpg", "photo-b.jpg")

		require.NoError(t, err)
		assert.Equal(t, shipment.PickedUp, got.Status())
		assert.NotNil(t, got.PickupDate())

		packages := f.packages(s.ID())
		assert.Equal(t, []string{"photo-a.jpg"}, packages[0].Photos())
		assert.Equal(t, []string{"photo-b.jpg"}, packages[1].Photos())

		a, err := f.reader().AssignmentRepository().Get(t.Context(), task.ID())
		require.NoError(t, err)
		assert.Equal(t, assignment.Completed, a.Status())

		events := f.events(s.ID())
		assert.Equal(t, tracking.EventPickupCompleted, events[0].Type())
		assert.Equal(t, "Westlands", events[0].Location().String())
	})

	t.Run("unbound driver is denied", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment

		_, err := pickup(f, f.driver, s.ID())

		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("more photos than packages rolls everything back", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment
		f.startTask(s.ID(), assignment.Pickup)

		_, err := pickup(f, f.driver, s.ID(), "a.jpg", "b.jpg")

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, shipment.AwaitingPickup, f.shipment(s.ID()).Status())
		assert.Empty(t, f.packages(s.ID())[0].Photos())
	})

	t.Run("cannot pick up twice", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment
		f.startTask(s.ID(), assignment.Pickup)
		_, err := pickup(f, f.driver, s.ID())
		require.NoError(t, err)

		_, err = pickup(f, f.driver, s.ID())

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestRecordDelivery(t *testing.T) {
	deliver := func(f *fixture, id kernel.UUID, kind shipment.Status) (*shipment.Shipment, error) {
		cmd, err := commands.NewRecordDeliveryCommand(f.driver, id, kind, commands.Evidence{Signature: " J. Otieno "})
		require.NoError(t, err)
		return commands.NewRecordDeliveryCommandHandler(f.uows, f.policy, f.transitioner, f.clock).Handle(t.Context(), cmd)
	}

	t.Run("delivery task drives the shipment out for delivery and completes it", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment
		f.mustTransition(s.ID(), shipment.PickedUp, shipment.InTransit, shipment.ArrivedAtDestination)
		task := f.startTask(s.ID(), assignment.Delivery)
		assert.Equal(t, shipment.OutForDelivery, f.shipment(s.ID()).Status())

		got, err := deliver(f, s.ID(), shipment.Delivered)

		require.NoError(t, err)
		assert.Equal(t, shipment.Delivered, got.Status())
		assert.Equal(t, "J. Otieno", got.DeliverySignature())
		assert.NotNil(t, got.DeliveryDate())

		a, err := f.reader().AssignmentRepository().Get(t.Context(), task.ID())
		require.NoError(t, err)
		assert.Equal(t, assignment.Completed, a.Status())
	})

	t.Run("receiver collecting at the station", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment
		f.mustTransition(s.ID(), shipment.PickedUp, shipment.InTransit, shipment.ArrivedAtDestination)
		_, err := f.createAssignment(s.ID(), assignment.Delivery)
		require.NoError(t, err)

		got, err := deliver(f, s.ID(), shipment.PickedUpByReceiver)

		require.NoError(t, err)
		assert.Equal(t, shipment.PickedUpByReceiver, got.Status())
		assert.Equal(t, tracking.EventPickedUpByReceiver, f.events(s.ID())[0].Type())
	})

	t.Run("not deliverable while in transit", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment
		f.mustTransition(s.ID(), shipment.PickedUp, shipment.InTransit)
		_, err := f.createAssignment(s.ID(), assignment.Delivery)
		require.NoError(t, err)

		_, err = deliver(f, s.ID(), shipment.Delivered)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, shipment.InTransit, f.shipment(s.ID()).Status())
	})

	t.Run("kind must be a completed status", func(t *testing.T) {
		f := newFixture(t)

		_, err := commands.NewRecordDeliveryCommand(f.driver, kernel.NewUUID(), shipment.InTransit, commands.Evidence{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDeleteShipment(t *testing.T) {
	remove := func(f *fixture, actor access.Actor, id kernel.UUID) error {
		cmd, err := commands.NewDeleteShipmentCommand(actor, id)
		require.NoError(t, err)
		return commands.NewDeleteShipmentCommandHandler(f.uows, f.policy).Handle(t.Context(), cmd)
	}

	t.Run("booked shipment goes with its packages and ledger", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(2).Shipment

		require.NoError(t, remove(f, f.sender, s.ID()))

		_, err := f.reader().ShipmentRepository().Get(t.Context(), s.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Empty(t, f.packages(s.ID()))
		assert.Empty(t, f.events(s.ID()))
		assert.Empty(t, f.records(s.ID()))
	})

	t.Run("picked up shipment cannot be deleted", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment
		f.mustTransition(s.ID(), shipment.PickedUp)

		err := remove(f, f.admin, s.ID())

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("receiver cannot delete", func(t *testing.T) {
		f := newFixture(t)
		s := f.book(1).Shipment

		err := remove(f, f.receiver, s.ID())

		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})
}

func TestAssignAgent(t *testing.T) {
	f := newFixture(t)
	s := f.book(1).Shipment
	handler := commands.NewAssignAgentCommandHandler(f.uows, f.policy)

	cmd, err := commands.NewAssignAgentCommand(f.agent, s.ID(), f.agent.ID())
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrAccessDenied)

	cmd, err = commands.NewAssignAgentCommand(f.admin, s.ID(), f.agent.ID())
	require.NoError(t, err)
	got, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.True(t, f.agent.ID().Matches(got.AgentID()))

	// The newly bound agent may now move the shipment.
	_, err = f.transition(f.agent, s.ID(), shipment.PickedUp)
	require.NoError(t, err)
}
