// Package ports defines repository interfaces for the marketplace domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/worker"
)

// WorkerRepository defines the persistence contract for worker aggregates.
type WorkerRepository interface {
	// Add persists a new worker aggregate to storage.
	// The worker must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *worker.Worker) error

	// Update persists changes to an existing worker aggregate.
	Update(ctx context.Context, aggregate *worker.Worker) error

	// Get retrieves a worker aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	// GetForUpdate retrieves a worker and locks its row for the duration of
	// the current transaction. The lock serializes capacity checks during
	// claims and balance checks during withdrawal requests: both must count
	// against state no concurrent writer can change mid-transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*worker.Worker, error)
}
