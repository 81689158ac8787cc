package worker_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/worker"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorker(t *testing.T) {
	t.Run("valid_worker", func(t *testing.T) {
		w, err := worker.NewWorker(kernel.NewUUID(), "Ayşe", worker.RoleFastDelivery, 3)

		require.NoError(t, err)
		require.NoError(t, w.Validate())
		assert.Equal(t, "Ayşe", w.Name())
		assert.Equal(t, worker.RoleFastDelivery, w.Role())
		assert.Equal(t, 3, w.Capacity())
		assert.True(t, w.IsAvailable())
	})

	t.Run("requires_name", func(t *testing.T) {
		_, err := worker.NewWorker(kernel.NewUUID(), "", worker.RoleFastDelivery, 3)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_positive_capacity", func(t *testing.T) {
		_, err := worker.NewWorker(kernel.NewUUID(), "Ayşe", worker.RoleFastDelivery, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires_valid_role", func(t *testing.T) {
		_, err := worker.NewWorker(kernel.NewUUID(), "Ayşe", worker.RoleUnknown, 3)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestWorker_CanAccept(t *testing.T) {
	t.Run("below_capacity_accepts", func(t *testing.T) {
		w, _ := worker.NewWorker(kernel.NewUUID(), "Ayşe", worker.RolePickupDelivery, 2)

		require.NoError(t, w.CanAccept(0))
		require.NoError(t, w.CanAccept(1))
	})

	t.Run("at_capacity_is_capacity_exceeded", func(t *testing.T) {
		w, _ := worker.NewWorker(kernel.NewUUID(), "Ayşe", worker.RolePickupDelivery, 2)

		err := w.CanAccept(2)

		require.ErrorIs(t, err, errs.ErrConflict)
		var conflict *errs.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, errs.ReasonCapacityExceeded, conflict.Reason)
	})

	t.Run("unavailable_worker_rejects", func(t *testing.T) {
		w, _ := worker.NewWorker(kernel.NewUUID(), "Ayşe", worker.RolePickupDelivery, 2)
		w.SetAvailable(false)

		err := w.CanAccept(0)

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("site_manager_cannot_claim", func(t *testing.T) {
		w, _ := worker.NewWorker(kernel.NewUUID(), "Mehmet", worker.RoleSiteManager, 2)

		err := w.CanAccept(0)

		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestRestoreWorker(t *testing.T) {
	w, err := worker.RestoreWorker(kernel.NewUUID(), "Ayşe", worker.RoleFastDelivery, false, 5)

	require.NoError(t, err)
	assert.False(t, w.IsAvailable())
	assert.Equal(t, 5, w.Capacity())
}
