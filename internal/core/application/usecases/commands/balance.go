package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// availableBalance derives a worker's spendable balance inside the current
// transaction: approved-or-paid earnings minus completed withdrawals minus
// pending withdrawal holds. The caller must hold the worker's row lock so no
// concurrent request can change the inputs mid-derivation.
//
// The exclude parameter removes one request's own hold from the pending sum
// when that request is the one being processed.
func availableBalance(
	ctx context.Context, uow BalanceUoW, workerID kernel.UUID, exclude *kernel.UUID,
) (kernel.Money, error) {
	earned, err := uow.CommissionRepository().SumEarnedByWorker(ctx, workerID)
	if err != nil {
		return kernel.Money{}, err
	}

	withdrawalRepo := uow.WithdrawalRepository()

	completed, err := withdrawalRepo.SumCompletedByWorker(ctx, workerID)
	if err != nil {
		return kernel.Money{}, err
	}

	pending, err := withdrawalRepo.SumPendingByWorker(ctx, workerID, exclude)
	if err != nil {
		return kernel.Money{}, err
	}

	return earned.Sub(completed).Sub(pending), nil
}
