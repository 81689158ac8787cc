// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the aggregates and read projections straight from
// the database; they never hold row locks, so a reported balance is advisory
// and every write path re-derives it inside its own transaction.
package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetAvailableBalanceQueryIsNotConstructed = errors.New(
	"GetAvailableBalanceQuery must be created via NewGetAvailableBalanceQuery constructor",
)

// GetAvailableBalanceQuery retrieves a worker's spendable balance: earnings
// released by settlement minus completed withdrawals minus pending holds.
type GetAvailableBalanceQuery struct {
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAvailableBalanceQuery creates a balance query for one worker.
func NewGetAvailableBalanceQuery(workerID kernel.UUID) (GetAvailableBalanceQuery, error) {
	if err := workerID.Validate(); err != nil {
		return GetAvailableBalanceQuery{}, err
	}

	return GetAvailableBalanceQuery{
		workerID: workerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableBalanceQueryIsNotConstructed)
}

// WorkerID returns the worker whose balance is requested.
func (q GetAvailableBalanceQuery) WorkerID() kernel.UUID {
	return q.workerID
}

// GetAvailableBalanceQueryResponse breaks the balance into its components so
// clients can show where the money is.
type GetAvailableBalanceQueryResponse struct {
	WorkerID  kernel.UUID
	Earned    kernel.Money
	Withdrawn kernel.Money
	Held      kernel.Money
	Available kernel.Money
}
