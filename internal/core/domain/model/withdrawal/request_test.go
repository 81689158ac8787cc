package withdrawal_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/withdrawal"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, value string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(value)
	require.NoError(t, err)
	return m
}

func newRequest(t *testing.T) *withdrawal.Request {
	t.Helper()
	r, err := withdrawal.NewRequest(kernel.NewUUID(), kernel.NewUUID(), money(t, "2000.00"))
	require.NoError(t, err)
	return r
}

func TestNewRequest(t *testing.T) {
	t.Run("valid_request_starts_pending", func(t *testing.T) {
		r := newRequest(t)

		require.NoError(t, r.Validate())
		assert.Equal(t, withdrawal.StatusPending, r.Status())
		assert.Nil(t, r.ProcessedAt())
		assert.Nil(t, r.ProcessedBy())
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		_, err := withdrawal.NewRequest(kernel.NewUUID(), kernel.NewUUID(), kernel.ZeroMoney())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRequest_Complete(t *testing.T) {
	t.Run("pending_completes", func(t *testing.T) {
		r := newRequest(t)
		admin := kernel.NewUUID()

		require.NoError(t, r.Complete(admin))

		assert.Equal(t, withdrawal.StatusCompleted, r.Status())
		require.NotNil(t, r.ProcessedAt())
		require.NotNil(t, r.ProcessedBy())
		assert.True(t, admin.IsEqual(*r.ProcessedBy()))
	})

	t.Run("second_processing_is_conflict", func(t *testing.T) {
		r := newRequest(t)
		require.NoError(t, r.Complete(kernel.NewUUID()))

		err := r.Complete(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrConflict)
		var conflict *errs.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, errs.ReasonAlreadyRecorded, conflict.Reason)
	})
}

func TestRequest_Reject(t *testing.T) {
	t.Run("requires_reason", func(t *testing.T) {
		r := newRequest(t)

		err := r.Reject(kernel.NewUUID(), "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, withdrawal.StatusPending, r.Status())
	})

	t.Run("rejected_request_keeps_reason", func(t *testing.T) {
		r := newRequest(t)

		require.NoError(t, r.Reject(kernel.NewUUID(), "bank account mismatch"))

		assert.Equal(t, withdrawal.StatusRejected, r.Status())
		assert.Equal(t, "bank account mismatch", r.RejectReason())
	})

	t.Run("completed_request_cannot_be_rejected", func(t *testing.T) {
		r := newRequest(t)
		require.NoError(t, r.Complete(kernel.NewUUID()))

		err := r.Reject(kernel.NewUUID(), "too late")

		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestRestoreRequest(t *testing.T) {
	r, err := withdrawal.RestoreRequest(withdrawal.RestoreRequestParams{
		ID:           kernel.NewUUID(),
		WorkerID:     kernel.NewUUID(),
		Amount:       money(t, "500.00"),
		Status:       withdrawal.StatusRejected,
		RejectReason: "duplicate request",
	})

	require.NoError(t, err)
	assert.Equal(t, withdrawal.StatusRejected, r.Status())
	assert.Equal(t, "duplicate request", r.RejectReason())
}
