package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetPendingWithdrawalsQueryIsNotConstructed = errors.New(
	"GetPendingWithdrawalsQuery must be created via NewGetPendingWithdrawalsQuery constructor",
)

// GetPendingWithdrawalsQuery retrieves the withdrawal requests awaiting an
// administrator, oldest first.
type GetPendingWithdrawalsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingWithdrawalsQuery creates a query for the pending queue.
func NewGetPendingWithdrawalsQuery() GetPendingWithdrawalsQuery {
	return GetPendingWithdrawalsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingWithdrawalsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingWithdrawalsQueryIsNotConstructed)
}

// GetPendingWithdrawalsQueryResponse represents one queued request.
type GetPendingWithdrawalsQueryResponse struct {
	ID          kernel.UUID
	WorkerID    kernel.UUID
	Amount      kernel.Money
	RequestedAt time.Time
}
