package services_test

import (
	"testing"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/notification"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/core/domain/services"
	"arenoexpress/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookedShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(shipment.BookingDetails{
		ID:               kernel.NewUUID(),
		TrackingNumber:   "TRK2026ABCD1234",
		MasterTrackingID: "MT2026ABCDEF",
		SenderID:         kernel.NewUUID(),
		ReceiverID:       kernel.NewUUID(),
		PickupAddress:    "Thika Road",
		DeliveryAddress:  "Ngong Road",
		CreatedAt:        fixedClock.Now(),
	})
	require.NoError(t, err)
	return s
}

func newTransitioner(t *testing.T) services.StatusTransitioner {
	t.Helper()
	tr, err := services.NewStatusTransitioner(fixedClock)
	require.NoError(t, err)
	return tr
}

func TestStatusTransitioner_Transition(t *testing.T) {
	admin := actor(t, kernel.NewUUID(), access.RoleAdmin)
	loc, _ := kernel.NewLocation("Nairobi depot")

	t.Run("booked to picked up notifies both parties", func(t *testing.T) {
		s := bookedShipment(t)

		tr, err := newTransitioner(t).Transition(s, shipment.PickedUp, admin, loc, "")

		require.NoError(t, err)
		assert.Equal(t, shipment.PickedUp, s.Status())
		assert.Equal(t, shipment.Booked, tr.From)
		assert.Equal(t, shipment.PickedUp, tr.To)

		assert.Equal(t, shipment.PickedUp, tr.Record.Status())
		assert.True(t, tr.Record.UpdatedBy().IsEqual(admin.ID()))
		assert.Equal(t, fixedClock.Now(), tr.Record.Timestamp())

		assert.Equal(t, tracking.EventPickupCompleted, tr.Event.Type())
		assert.Equal(t, "Status updated to picked_up", tr.Event.Description())
		assert.Equal(t, "Nairobi depot", tr.Event.Location().String())
		assert.Equal(t, map[string]string{"from": "booked", "to": "picked_up"}, tr.Event.Metadata())

		require.Len(t, tr.Notifications, 2)
		for _, m := range tr.Notifications {
			assert.Equal(t, notification.PickupCompleted, m.Type)
		}
	})

	t.Run("hub arrival queues no notification", func(t *testing.T) {
		s := bookedShipment(t)
		tr := newTransitioner(t)
		_, err := tr.Transition(s, shipment.PickedUp, admin, loc, "")
		require.NoError(t, err)
		_, err = tr.Transition(s, shipment.InTransit, admin, loc, "")
		require.NoError(t, err)

		got, err := tr.Transition(s, shipment.ArrivedAtHub, admin, loc, "sorted at Nakuru")

		require.NoError(t, err)
		assert.Empty(t, got.Notifications)
		assert.Equal(t, "sorted at Nakuru", got.Event.Description())
		assert.Equal(t, "sorted at Nakuru", got.Record.Notes())
	})

	t.Run("illegal move produces nothing", func(t *testing.T) {
		s := bookedShipment(t)

		tr, err := newTransitioner(t).Transition(s, shipment.Delivered, admin, loc, "")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, tr.Record)
		assert.Nil(t, tr.Event)
		assert.Equal(t, shipment.Booked, s.Status())
	})
}

func TestStatusTransitioner_Describe(t *testing.T) {
	driver := actor(t, kernel.NewUUID(), access.RoleDriver)
	s := bookedShipment(t)
	require.NoError(t, s.MarkPickedUp(fixedClock.Now()))

	tr, err := newTransitioner(t).Describe(s, shipment.Booked, driver, kernel.EmptyLocation(), "collected")

	require.NoError(t, err)
	assert.Equal(t, tracking.EventPickupCompleted, tr.Event.Type())
	assert.True(t, tr.Event.CreatedBy().IsEqual(driver.ID()))
	assert.Len(t, tr.Notifications, 2)
}

func TestStatusTransitioner_Booking(t *testing.T) {
	sender := actor(t, kernel.NewUUID(), access.RoleSender)
	s := bookedShipment(t)

	tr, err := newTransitioner(t).Booking(s, sender)

	require.NoError(t, err)
	assert.Equal(t, shipment.Booked, tr.Record.Status())
	assert.Equal(t, tracking.EventBooked, tr.Event.Type())
	require.Len(t, tr.Notifications, 2)
	assert.Equal(t, notification.ShipmentBooked, tr.Notifications[0].Type)

	require.NoError(t, s.TransitionTo(shipment.PickedUp))
	_, err = newTransitioner(t).Booking(s, sender)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}
