package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Next(t *testing.T) {
	t.Run("happy_path_is_monotonic", func(t *testing.T) {
		steps := []struct {
			from  order.Status
			event order.Event
			to    order.Status
		}{
			{order.Pending, order.EventClaim, order.Assigned},
			{order.Assigned, order.EventArrivePickup, order.ArrivedAtPickup},
			{order.ArrivedAtPickup, order.EventConfirmPickup, order.PickedUp},
			{order.PickedUp, order.EventStartTransit, order.EnRoute},
			{order.EnRoute, order.EventArriveDelivery, order.ArrivedAtDelivery},
			{order.ArrivedAtDelivery, order.EventConfirmDelivery, order.Delivered},
			{order.Delivered, order.EventComplete, order.Completed},
		}

		for _, step := range steps {
			next, err := step.from.Next(step.event)
			require.NoError(t, err, "%s on %s", step.event, step.from)
			assert.Equal(t, step.to, next)
		}
	})

	t.Run("release_returns_to_pool", func(t *testing.T) {
		next, err := order.Assigned.Next(order.EventRelease)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, next)
	})

	t.Run("pairs_absent_from_table_are_rejected", func(t *testing.T) {
		rejected := []struct {
			from  order.Status
			event order.Event
		}{
			{order.Pending, order.EventConfirmPickup},
			{order.Delivered, order.EventClaim},
			{order.Completed, order.EventConfirmDelivery},
			{order.Completed, order.EventCancel},
			{order.Assigned, order.EventConfirmPickup}, // must arrive first
			{order.Delivered, order.EventFailDelivery}, // no issues after delivery
			{order.Cancelled, order.EventResume},
		}

		for _, pair := range rejected {
			_, err := pair.from.Next(pair.event)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "%s on %s", pair.event, pair.from)
		}
	})

	t.Run("issue_branches_reachable_from_pre_delivered_states", func(t *testing.T) {
		for _, from := range []order.Status{
			order.Assigned, order.ArrivedAtPickup, order.PickedUp,
			order.EnRoute, order.ArrivedAtDelivery,
		} {
			next, err := from.Next(order.EventFailDelivery)
			require.NoError(t, err, "FailDelivery from %s", from)
			assert.Equal(t, order.DeliveryFailed, next)

			next, err = from.Next(order.EventReportPickupIssue)
			require.NoError(t, err, "ReportPickupIssue from %s", from)
			assert.Equal(t, order.IssueAtPickup, next)
		}
	})

	t.Run("administrative_overrides", func(t *testing.T) {
		next, err := order.IssueAtPickup.Next(order.EventResume)
		require.NoError(t, err)
		assert.Equal(t, order.Assigned, next)

		next, err = order.DeliveryFailed.Next(order.EventRequeue)
		require.NoError(t, err)
		assert.Equal(t, order.Pending, next)

		next, err = order.IssueAtPickup.Next(order.EventCancel)
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, next)
	})
}

func TestStatus_Classification(t *testing.T) {
	t.Run("only_pending_is_claimable", func(t *testing.T) {
		assert.True(t, order.Pending.IsClaimable())
		assert.False(t, order.Assigned.IsClaimable())
		assert.False(t, order.Delivered.IsClaimable())
	})

	t.Run("terminal_states_do_not_count_against_capacity", func(t *testing.T) {
		assert.True(t, order.Completed.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
		assert.True(t, order.DeliveryFailed.IsTerminal())
		assert.False(t, order.Delivered.IsTerminal())
		assert.False(t, order.IssueAtPickup.IsTerminal())
	})

	t.Run("issue_states", func(t *testing.T) {
		assert.True(t, order.IssueAtPickup.IsIssue())
		assert.True(t, order.DeliveryFailed.IsIssue())
		assert.False(t, order.Delivered.IsIssue())
	})
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Pending.Validate())
	require.NoError(t, order.Cancelled.Validate())
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(99).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ArrivedAtPickup", order.ArrivedAtPickup.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
	assert.Equal(t, "ConfirmPickup", order.EventConfirmPickup.String())
}
