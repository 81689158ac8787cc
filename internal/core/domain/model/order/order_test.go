package order_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRadius = kernel.Meters(100)

// Coordinates around the pickup point at (41.0082, 28.9784). One degree of
// latitude is ~111 km, so 0.0005° is roughly 55 m and 0.005° roughly 555 m.
func testPickup(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(41.0082, 28.9784)
	require.NoError(t, err)
	return p
}

func testDelivery(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(41.0400, 28.9900)
	require.NoError(t, err)
	return p
}

func nearPickup(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(41.0086, 28.9784)
	require.NoError(t, err)
	return p
}

func farFromPickup(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(41.0132, 28.9784)
	require.NoError(t, err)
	return p
}

func nearDelivery(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(41.0404, 28.9900)
	require.NoError(t, err)
	return p
}

func testLineItems(t *testing.T) []order.LineItem {
	t.Helper()
	price, err := kernel.NewMoneyFromString("5000")
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), 2, price)
	require.NoError(t, err)
	return []order.LineItem{item}
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), order.CategoryStandard,
		testPickup(t), testDelivery(t), testLineItems(t), false,
	)
	require.NoError(t, err)
	return o
}

func claimedTestOrder(t *testing.T, workerID kernel.UUID) *order.Order {
	t.Helper()
	o := newTestOrder(t)
	require.NoError(t, o.Claim(workerID, order.NewVerificationCode()))
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("derives_gross_value_from_line_items", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Worker())
		assert.Equal(t, "10000", o.GrossValue().String())
	})

	t.Run("requires_line_items", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), order.CategoryStandard,
			testPickup(t), testDelivery(t), nil, false,
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_category", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "",
			testPickup(t), testDelivery(t), testLineItems(t), false,
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Claim(t *testing.T) {
	t.Run("assigns_worker_and_stores_code", func(t *testing.T) {
		o := newTestOrder(t)
		workerID := kernel.NewUUID()
		code := order.NewVerificationCode()

		err := o.Claim(workerID, code)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Worker())
		assert.True(t, o.Worker().IsEqual(workerID))
		assert.Equal(t, code, o.VerificationCode())
	})

	t.Run("second_claim_is_order_unavailable", func(t *testing.T) {
		o := newTestOrder(t)
		winner := kernel.NewUUID()
		require.NoError(t, o.Claim(winner, order.NewVerificationCode()))

		err := o.Claim(kernel.NewUUID(), order.NewVerificationCode())

		require.ErrorIs(t, err, errs.ErrConflict)
		var conflict *errs.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, errs.ReasonOrderUnavailable, conflict.Reason)
		// Winner keeps the assignment
		assert.True(t, o.Worker().IsEqual(winner))
	})

	t.Run("claim_rejects_invalid_code", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Claim(kernel.NewUUID(), "abc")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Release(t *testing.T) {
	t.Run("returns_order_to_pool", func(t *testing.T) {
		workerID := kernel.NewUUID()
		o := claimedTestOrder(t, workerID)

		err := o.Release(workerID)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Worker())
		assert.Empty(t, o.VerificationCode())
	})

	t.Run("only_assignee_may_release", func(t *testing.T) {
		o := claimedTestOrder(t, kernel.NewUUID())

		err := o.Release(kernel.NewUUID())

		require.ErrorIs(t, err, order.ErrWorkerIsNotAssignee)
	})
}

func TestOrder_Geofence(t *testing.T) {
	t.Run("arrive_at_pickup_beyond_radius_rejected_with_distance", func(t *testing.T) {
		workerID := kernel.NewUUID()
		o := claimedTestOrder(t, workerID)

		err := o.ArriveAtPickup(workerID, farFromPickup(t), testRadius)

		require.ErrorIs(t, err, order.ErrLocationOutOfRange)
		var outOfRange *order.LocationOutOfRangeError
		require.ErrorAs(t, err, &outOfRange)
		assert.Greater(t, float64(outOfRange.Distance), float64(testRadius))
		assert.Equal(t, testRadius, outOfRange.Radius)
		// No mutation happened
		assert.Equal(t, order.Assigned, o.Status())
	})

	t.Run("arrive_at_pickup_within_radius_succeeds", func(t *testing.T) {
		workerID := kernel.NewUUID()
		o := claimedTestOrder(t, workerID)

		err := o.ArriveAtPickup(workerID, nearPickup(t), testRadius)

		require.NoError(t, err)
		assert.Equal(t, order.ArrivedAtPickup, o.Status())
	})

	t.Run("boundary_distance_is_accepted", func(t *testing.T) {
		workerID := kernel.NewUUID()
		o := claimedTestOrder(t, workerID)
		reported := nearPickup(t)

		distance, err := reported.DistanceTo(testPickup(t))
		require.NoError(t, err)

		// Radius exactly equal to the measured distance passes.
		err = o.ArriveAtPickup(workerID, reported, distance)
		require.NoError(t, err)
	})
}

func TestOrder_ConfirmPickup(t *testing.T) {
	arrivedOrder := func(t *testing.T, workerID kernel.UUID) *order.Order {
		o := claimedTestOrder(t, workerID)
		require.NoError(t, o.ArriveAtPickup(workerID, nearPickup(t), testRadius))
		return o
	}

	t.Run("releases_seller_payout_exactly_once", func(t *testing.T) {
		workerID := kernel.NewUUID()
		o := arrivedOrder(t, workerID)

		released, err := o.ConfirmPickup(workerID, nearPickup(t), testRadius)
		require.NoError(t, err)
		assert.True(t, released)
		assert.True(t, o.PayoutReleased())

		// Retried request: successful no-op, payout not re-triggered.
		released, err = o.ConfirmPickup(workerID, nearPickup(t), testRadius)
		require.NoError(t, err)
		assert.False(t, released)
		assert.Equal(t, order.PickedUp, o.Status())
	})

	t.Run("requires_arrival_first", func(t *testing.T) {
		workerID := kernel.NewUUID()
		o := claimedTestOrder(t, workerID)

		_, err := o.ConfirmPickup(workerID, nearPickup(t), testRadius)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Deliver(t *testing.T) {
	deliveredReady := func(t *testing.T, workerID kernel.UUID) *order.Order {
		o := claimedTestOrder(t, workerID)
		require.NoError(t, o.ArriveAtPickup(workerID, nearPickup(t), testRadius))
		_, err := o.ConfirmPickup(workerID, nearPickup(t), testRadius)
		require.NoError(t, err)
		require.NoError(t, o.StartTransit(workerID))
		require.NoError(t, o.ArriveAtDelivery(workerID, nearDelivery(t), testRadius))
		return o
	}

	t.Run("stores_grace_deadline", func(t *testing.T) {
		workerID := kernel.NewUUID()
		o := deliveredReady(t, workerID)
		deadline := time.Now().Add(5 * time.Minute).UTC()

		err := o.Deliver(workerID, nearDelivery(t), testRadius, deadline)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.GraceDeadline())
		assert.Equal(t, deadline, *o.GraceDeadline())
		assert.False(t, o.GraceElapsed(deadline.Add(-time.Second)))
		assert.True(t, o.GraceElapsed(deadline))
		assert.True(t, o.GraceElapsed(deadline.Add(time.Second)))
	})

	t.Run("geofenced_against_delivery_point", func(t *testing.T) {
		workerID := kernel.NewUUID()
		o := deliveredReady(t, workerID)

		err := o.Deliver(workerID, nearPickup(t), testRadius, time.Now().Add(5*time.Minute))

		require.ErrorIs(t, err, order.ErrLocationOutOfRange)
	})
}

func TestOrder_Issues(t *testing.T) {
	t.Run("pickup_issue_blocks_settlement", func(t *testing.T) {
		workerID := kernel.NewUUID()
		o := claimedTestOrder(t, workerID)

		err := o.ReportPickupIssue(workerID, "seller did not show up")

		require.NoError(t, err)
		assert.Equal(t, order.IssueAtPickup, o.Status())
		assert.True(t, o.HasOpenIssue())
		assert.Equal(t, "seller did not show up", o.IssueNote())
	})

	t.Run("resume_returns_to_assigned", func(t *testing.T) {
		workerID := kernel.NewUUID()
		o := claimedTestOrder(t, workerID)
		require.NoError(t, o.ReportPickupIssue(workerID, "locked door"))

		err := o.Resume(kernel.NewUUID())

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		assert.False(t, o.HasOpenIssue())
		assert.True(t, o.Worker().IsEqual(workerID))
	})

	t.Run("requeue_clears_assignment", func(t *testing.T) {
		workerID := kernel.NewUUID()
		o := claimedTestOrder(t, workerID)
		require.NoError(t, o.FailDelivery(workerID, "address unreachable"))

		err := o.Requeue(kernel.NewUUID())

		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Worker())
	})
}

func TestOrder_PaymentRejection(t *testing.T) {
	t.Run("rejection_blocks_completion", func(t *testing.T) {
		workerID := kernel.NewUUID()
		o := claimedTestOrder(t, workerID)
		require.NoError(t, o.ArriveAtPickup(workerID, nearPickup(t), testRadius))
		_, err := o.ConfirmPickup(workerID, nearPickup(t), testRadius)
		require.NoError(t, err)
		require.NoError(t, o.StartTransit(workerID))
		require.NoError(t, o.ArriveAtDelivery(workerID, nearDelivery(t), testRadius))
		require.NoError(t, o.Deliver(workerID, nearDelivery(t), testRadius, time.Now().Add(5*time.Minute)))

		o.RejectPayment()
		assert.True(t, o.HasOpenIssue())
		require.ErrorIs(t, o.Complete(kernel.NewUUID()), order.ErrOrderHasOpenIssue)

		o.ApprovePayment()
		assert.False(t, o.HasOpenIssue())
		require.NoError(t, o.Complete(kernel.NewUUID()))
		assert.Equal(t, order.Completed, o.Status())
	})
}

func TestOrder_AuditTrail(t *testing.T) {
	t.Run("every_transition_produces_a_record", func(t *testing.T) {
		workerID := kernel.NewUUID()
		o := newTestOrder(t)
		require.NoError(t, o.Claim(workerID, order.NewVerificationCode()))
		require.NoError(t, o.ArriveAtPickup(workerID, nearPickup(t), testRadius))

		records := o.PullTransitions()

		require.Len(t, records, 2)
		assert.Equal(t, order.EventClaim, records[0].Event)
		assert.Equal(t, order.Pending, records[0].From)
		assert.Equal(t, order.Assigned, records[0].To)
		assert.Nil(t, records[0].Location)
		assert.Equal(t, order.EventArrivePickup, records[1].Event)
		require.NotNil(t, records[1].Location)

		// Pull drains the uncommitted list.
		assert.Empty(t, o.PullTransitions())
	})
}

func TestNewVerificationCode(t *testing.T) {
	code := order.NewVerificationCode()

	require.NoError(t, code.Validate())
	assert.Len(t, code.String(), 6)
}
