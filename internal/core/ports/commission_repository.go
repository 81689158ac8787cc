package ports

import (
	"context"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
)

// CommissionRepository defines the persistence contract for commission
// ledger entries.
type CommissionRepository interface {
	// Add persists a new commission entry.
	Add(ctx context.Context, aggregate *commission.Entry) error

	// Update persists changes to an existing commission entry.
	Update(ctx context.Context, aggregate *commission.Entry) error

	// Get retrieves a commission entry by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*commission.Entry, error)

	// GetByOrderAndType retrieves the entry recorded for an order under a
	// given earnings type, or ErrObjectNotFound if none exists. Recording
	// checks this first so a retried recording cannot create a duplicate.
	GetByOrderAndType(ctx context.Context, orderID kernel.UUID, entryType commission.Type) (*commission.Entry, error)

	// GetAllByOrder retrieves every entry recorded for an order.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*commission.Entry, error)

	// GetAllApprovedByWorker retrieves the worker's approved entries oldest
	// first. Withdrawal approval consumes them in that order when marking
	// the drawn-down entries paid.
	GetAllApprovedByWorker(ctx context.Context, workerID kernel.UUID) ([]*commission.Entry, error)

	// SumEarnedByWorker sums the worker's approved and paid entries. Part of
	// the available-balance derivation; must run inside the same transaction
	// as the withdrawal sums.
	SumEarnedByWorker(ctx context.Context, workerID kernel.UUID) (kernel.Money, error)
}
