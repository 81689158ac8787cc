package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The update is conditional on the status the aggregate was loaded with,
	// so a concurrent writer makes the update fail with a conflict instead
	// of silently overwriting.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the duration of
	// the current transaction. Claim and settlement flows use it to
	// serialize writers on the same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllClaimable retrieves orders currently sitting in the pool,
	// oldest first.
	GetAllClaimable(ctx context.Context) ([]*order.Order, error)

	// GetAllDueForSettlement retrieves delivered orders whose grace deadline
	// is at or before the given time. Used by the settlement sweep.
	GetAllDueForSettlement(ctx context.Context, now time.Time) ([]*order.Order, error)

	// CountActiveByWorker counts the worker's non-terminal assigned orders.
	// Called under the worker's row lock to enforce the capacity limit.
	CountActiveByWorker(ctx context.Context, workerID kernel.UUID) (int, error)
}
