package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/withdrawal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetPendingWithdrawalsQueryHandler lists the administrator's work queue.
type GetPendingWithdrawalsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingWithdrawalsQueryHandler creates a handler for queue listings.
func NewGetPendingWithdrawalsQueryHandler(db *gorm.DB) GetPendingWithdrawalsQueryHandler {
	return GetPendingWithdrawalsQueryHandler{db: db}
}

// Handle executes the queue listing.
func (h GetPendingWithdrawalsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingWithdrawalsQuery,
) ([]GetPendingWithdrawalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	requests := make([]GetPendingWithdrawalsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			worker_id,
			amount,
			requested_at
		FROM withdrawal_requests
		WHERE status = ?
		ORDER BY requested_at
	`, withdrawal.StatusPending).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, workerID uuid.UUID
		var amount decimal.Decimal
		var requestedAt time.Time

		if err = rows.Scan(&id, &workerID, &amount, &requestedAt); err != nil {
			return nil, err
		}

		requestID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ownerID, ownerErr := kernel.UUIDFromBytes(workerID[:])
		if ownerErr != nil {
			return nil, ownerErr
		}

		requests = append(requests, GetPendingWithdrawalsQueryResponse{
			ID:          requestID,
			WorkerID:    ownerID,
			Amount:      kernel.RestoreMoney(amount),
			RequestedAt: requestedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
