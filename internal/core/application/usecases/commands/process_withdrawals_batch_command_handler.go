package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// BatchResult summarizes one batch run. Requests whose balance no longer
// covers them are skipped, not rejected: the worker may earn the difference
// before the next run.
type BatchResult struct {
	Completed []kernel.UUID
	Skipped   []kernel.UUID
	Failed    []kernel.UUID
}

// ProcessWithdrawalsBatchCommandHandler approves every pending withdrawal
// request whose balance still covers it.
//
// Each request settles in its own transaction. A failure on one request
// leaves the others untouched, and requests that raced to settlement between
// the listing and the processing surface as conflicts, which the batch
// counts as skipped.
type ProcessWithdrawalsBatchCommandHandler struct {
	uowFactory     BalanceUoWFactory
	processHandler ProcessWithdrawalCommandHandler
}

// NewProcessWithdrawalsBatchCommandHandler creates a handler for batch processing.
func NewProcessWithdrawalsBatchCommandHandler(
	uowFactory BalanceUoWFactory,
	publisher ports.EventPublisher,
) ProcessWithdrawalsBatchCommandHandler {
	return ProcessWithdrawalsBatchCommandHandler{
		uowFactory:     uowFactory,
		processHandler: NewProcessWithdrawalCommandHandler(uowFactory, publisher),
	}
}

// Handle lists the pending requests and settles them one by one.
func (h ProcessWithdrawalsBatchCommandHandler) Handle(
	ctx context.Context, command ProcessWithdrawalsBatchCommand,
) (BatchResult, error) {
	if err := command.Validate(); err != nil {
		return BatchResult{}, err
	}

	pendingIDs, err := h.listPending(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	for _, requestID := range pendingIDs {
		processCommand, cmdErr := NewProcessWithdrawalCommand(requestID, command.AdminID(), true, "")
		if cmdErr != nil {
			return result, cmdErr
		}

		switch processErr := h.processHandler.Handle(ctx, processCommand); {
		case processErr == nil:
			result.Completed = append(result.Completed, requestID)
		case errors.Is(processErr, errs.ErrInsufficientBalance),
			errors.Is(processErr, errs.ErrConflict):
			result.Skipped = append(result.Skipped, requestID)
		default:
			result.Failed = append(result.Failed, requestID)
		}
	}

	return result, nil
}

func (h ProcessWithdrawalsBatchCommandHandler) listPending(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.WithdrawalRepository().GetAllPending(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(pending))
	for _, request := range pending {
		ids = append(ids, request.ID())
	}
	return ids, nil
}
