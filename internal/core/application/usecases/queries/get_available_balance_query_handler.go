package queries

import (
	"context"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/withdrawal"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetAvailableBalanceQueryHandler derives a worker's balance from the ledger
// and withdrawal tables in one round trip.
type GetAvailableBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableBalanceQueryHandler creates a handler for balance queries.
func NewGetAvailableBalanceQueryHandler(db *gorm.DB) GetAvailableBalanceQueryHandler {
	return GetAvailableBalanceQueryHandler{db: db}
}

// Handle executes the balance derivation. Missing rows coalesce to zero, so
// a worker with no history reports a zero balance rather than an error.
func (h GetAvailableBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableBalanceQuery,
) (GetAvailableBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAvailableBalanceQueryResponse{}, err
	}

	var earned, withdrawn, held decimal.Decimal

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE((SELECT SUM(amount) FROM commission_entries
				WHERE worker_id = @worker AND status IN (@approved, @paid)), 0),
			COALESCE((SELECT SUM(amount) FROM withdrawal_requests
				WHERE worker_id = @worker AND status = @completed), 0),
			COALESCE((SELECT SUM(amount) FROM withdrawal_requests
				WHERE worker_id = @worker AND status = @pending), 0)
	`,
		map[string]any{
			"worker":    query.WorkerID().String(),
			"approved":  commission.StatusApproved,
			"paid":      commission.StatusPaid,
			"completed": withdrawal.StatusCompleted,
			"pending":   withdrawal.StatusPending,
		}).Row()

	if err := row.Scan(&earned, &withdrawn, &held); err != nil {
		return GetAvailableBalanceQueryResponse{}, err
	}

	earnedMoney := kernel.RestoreMoney(earned)
	withdrawnMoney := kernel.RestoreMoney(withdrawn)
	heldMoney := kernel.RestoreMoney(held)

	return GetAvailableBalanceQueryResponse{
		WorkerID:  query.WorkerID(),
		Earned:    earnedMoney,
		Withdrawn: withdrawnMoney,
		Held:      heldMoney,
		Available: earnedMoney.Sub(withdrawnMoney).Sub(heldMoney),
	}, nil
}
