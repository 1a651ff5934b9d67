package shipment_test

import (
	"testing"

	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range shipment.Statuses() {
		t.Run(s.String(), func(t *testing.T) {
			parsed, err := shipment.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		})
	}

	t.Run("unknown name", func(t *testing.T) {
		_, err := shipment.ParseStatus("lost_in_space")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Predicates(t *testing.T) {
	pickable := map[shipment.Status]bool{shipment.Booked: true, shipment.AwaitingPickup: true}
	deliverable := map[shipment.Status]bool{shipment.ArrivedAtDestination: true, shipment.OutForDelivery: true}

	for _, s := range shipment.Statuses() {
		t.Run(s.String(), func(t *testing.T) {
			assert.Equal(t, pickable[s], s.CanBePickedUp())
			assert.Equal(t, deliverable[s], s.CanBeDelivered())
		})
	}

	assert.True(t, shipment.Delivered.IsCompleted())
	assert.True(t, shipment.PickedUpByReceiver.IsCompleted())
	assert.False(t, shipment.Returned.IsCompleted())
	assert.True(t, shipment.Returned.IsTerminal())
	assert.False(t, shipment.OutForDelivery.IsTerminal())
}

func TestStatus_TerminalStatusesHaveNoEdges(t *testing.T) {
	for _, s := range []shipment.Status{shipment.Delivered, shipment.PickedUpByReceiver, shipment.Returned} {
		assert.Empty(t, s.NextStatuses(), s.String())
	}
}

func TestStatus_EveryStatusReachableFromBooked(t *testing.T) {
	seen := map[shipment.Status]bool{shipment.Booked: true}
	queue := []shipment.Status{shipment.Booked}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range cur.NextStatuses() {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	for _, s := range shipment.Statuses() {
		assert.True(t, seen[s], "%s is unreachable", s)
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    shipment.Status
		to      shipment.Status
		wantErr error
	}{
		{"booked to picked up", shipment.Booked, shipment.PickedUp, nil},
		{"booked to awaiting pickup", shipment.Booked, shipment.AwaitingPickup, nil},
		{"hub to hub", shipment.ArrivedAtHub, shipment.InTransit, nil},
		{"out for delivery to delivered", shipment.OutForDelivery, shipment.Delivered, nil},
		{"in transit to returned", shipment.InTransit, shipment.Returned, nil},
		{"booked to delivered", shipment.Booked, shipment.Delivered, errs.ErrInvalidTransition},
		{"booked to returned", shipment.Booked, shipment.Returned, errs.ErrInvalidTransition},
		{"awaiting pickup to returned", shipment.AwaitingPickup, shipment.Returned, errs.ErrInvalidTransition},
		{"delivered is terminal", shipment.Delivered, shipment.InTransit, errs.ErrInvalidTransition},
		{"self loop", shipment.InTransit, shipment.InTransit, errs.ErrInvalidTransition},
		{"unrecognized target", shipment.Booked, shipment.Status(99), errs.ErrValueIsInvalid},
		{"unknown target", shipment.Booked, shipment.Unknown, errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := tt.from.TransitionTo(tt.to)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, shipment.Unknown, next)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, next)
		})
	}
}

func TestStatus_InvalidTransitionIsInvalidState(t *testing.T) {
	_, err := shipment.Booked.TransitionTo(shipment.Delivered)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	assert.Equal(t, "invalid transition: booked -> delivered", err.Error())
}

func TestPaymentStatus_Validate(t *testing.T) {
	require.NoError(t, shipment.PaymentPaid.Validate())
	require.ErrorIs(t, shipment.PaymentUnknown.Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "refunded", shipment.PaymentRefunded.String())
}
