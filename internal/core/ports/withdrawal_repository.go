package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/withdrawal"
)

// WithdrawalRepository defines the persistence contract for withdrawal
// requests.
type WithdrawalRepository interface {
	// Add persists a new withdrawal request.
	Add(ctx context.Context, aggregate *withdrawal.Request) error

	// Update persists changes to an existing withdrawal request.
	Update(ctx context.Context, aggregate *withdrawal.Request) error

	// Get retrieves a withdrawal request by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*withdrawal.Request, error)

	// GetForUpdate retrieves a withdrawal request and locks its row for the
	// duration of the current transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*withdrawal.Request, error)

	// GetAllPending retrieves pending requests, oldest first.
	GetAllPending(ctx context.Context) ([]*withdrawal.Request, error)

	// SumCompletedByWorker sums the worker's completed withdrawals.
	SumCompletedByWorker(ctx context.Context, workerID kernel.UUID) (kernel.Money, error)

	// SumPendingByWorker sums the worker's pending withdrawals, optionally
	// excluding one request by ID. Processing a request excludes the request
	// itself so its own hold does not count against it.
	SumPendingByWorker(ctx context.Context, workerID kernel.UUID, exclude *kernel.UUID) (kernel.Money, error)
}
