package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ProcessWithdrawalCommandHandler settles a pending withdrawal request.
//
// Approval re-derives the worker's balance under their row lock, with the
// request's own hold excluded, because earnings or other withdrawals may
// have changed since the request was filed. The worker lock is taken before
// the request lock, matching the claim and request flows.
//
// A completed withdrawal debits the ledger: the approved entries backing it
// are marked paid oldest first until their amounts cover the request, so the
// ledger records which earnings each payout consumed.
type ProcessWithdrawalCommandHandler struct {
	uowFactory BalanceUoWFactory
	publisher  ports.EventPublisher
}

// NewProcessWithdrawalCommandHandler creates a handler for withdrawal processing.
func NewProcessWithdrawalCommandHandler(uowFactory BalanceUoWFactory, publisher ports.EventPublisher) ProcessWithdrawalCommandHandler {
	return ProcessWithdrawalCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the decision. Deciding an already settled request is an
// AlreadyRecorded conflict.
func (h ProcessWithdrawalCommandHandler) Handle(ctx context.Context, command ProcessWithdrawalCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	withdrawalRepo := uow.WithdrawalRepository()

	request, err := withdrawalRepo.Get(ctx, command.RequestID())
	if err != nil {
		return err
	}

	if _, err = uow.WorkerRepository().GetForUpdate(ctx, request.WorkerID()); err != nil {
		return err
	}

	request, err = withdrawalRepo.GetForUpdate(ctx, command.RequestID())
	if err != nil {
		return err
	}

	if command.Approve() {
		requestID := request.ID()
		available, balanceErr := availableBalance(ctx, uow, request.WorkerID(), &requestID)
		if balanceErr != nil {
			return balanceErr
		}
		if request.Amount().GreaterThan(available) {
			return errs.NewInsufficientBalanceError(
				request.WorkerID().String(), request.Amount().String(), available.String(),
			)
		}
		if err = request.Complete(command.AdminID()); err != nil {
			return err
		}
		err = debitApprovedEntries(ctx, uow.CommissionRepository(), request.WorkerID(), request.Amount())
	} else {
		err = request.Reject(command.AdminID(), command.Reason())
	}
	if err != nil {
		return err
	}

	if err = withdrawalRepo.Update(ctx, request); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, ports.EventWithdrawalProcessed,
		request.ID().String(), command.AdminID().String(),
		map[string]any{"status": request.Status().String()})
	return nil
}

// debitApprovedEntries marks the worker's approved entries paid, oldest
// first, until their amounts cover the withdrawal. Entries are never split;
// the entry that crosses the requested amount counts as fully drawn.
func debitApprovedEntries(
	ctx context.Context,
	commissionRepo ports.CommissionRepository,
	workerID kernel.UUID,
	amount kernel.Money,
) error {
	entries, err := commissionRepo.GetAllApprovedByWorker(ctx, workerID)
	if err != nil {
		return err
	}

	covered := kernel.ZeroMoney()
	for _, entry := range entries {
		if !covered.LessThan(amount) {
			break
		}
		if err = entry.MarkPaid(); err != nil {
			return err
		}
		if err = commissionRepo.Update(ctx, entry); err != nil {
			return err
		}
		covered = covered.Add(entry.Amount())
	}
	return nil
}
