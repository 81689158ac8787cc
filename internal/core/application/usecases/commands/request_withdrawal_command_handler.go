package commands

import (
	"context"

	"marketplace/internal/core/domain/model/withdrawal"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// RequestWithdrawalCommandHandler files a withdrawal request against a
// worker's available balance.
//
// The worker's row lock serializes concurrent requests from the same worker:
// each request sees the holds of every request filed before it, so two
// requests can never spend the same earnings.
type RequestWithdrawalCommandHandler struct {
	uowFactory BalanceUoWFactory
	publisher  ports.EventPublisher
}

// NewRequestWithdrawalCommandHandler creates a handler for withdrawal requests.
func NewRequestWithdrawalCommandHandler(uowFactory BalanceUoWFactory, publisher ports.EventPublisher) RequestWithdrawalCommandHandler {
	return RequestWithdrawalCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the withdrawal request.
func (h RequestWithdrawalCommandHandler) Handle(ctx context.Context, command RequestWithdrawalCommand) error {
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

	requestingWorker, err := uow.WorkerRepository().GetForUpdate(ctx, command.WorkerID())
	if err != nil {
		return err
	}

	available, err := availableBalance(ctx, uow, requestingWorker.ID(), nil)
	if err != nil {
		return err
	}

	if command.Amount().GreaterThan(available) {
		return errs.NewInsufficientBalanceError(
			requestingWorker.ID().String(), command.Amount().String(), available.String(),
		)
	}

	request, err := withdrawal.NewRequest(command.RequestID(), requestingWorker.ID(), command.Amount())
	if err != nil {
		return err
	}

	if err = uow.WithdrawalRepository().Add(ctx, request); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, ports.EventWithdrawalRequested,
		request.ID().String(), requestingWorker.ID().String(),
		map[string]any{"amount": command.Amount().String()})
	return nil
}
