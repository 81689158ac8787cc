package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ClaimOrderCommandHandler handles the atomic claim of a pool order.
//
// The claim transaction locks the worker's row first, re-counts the worker's
// active orders under that lock, then locks the order row and applies the
// assignment. Locking the worker before the order keeps the lock order
// consistent with the withdrawal flows and prevents deadlocks between them.
type ClaimOrderCommandHandler struct {
	uowFactory AssignmentUoWFactory
	publisher  ports.EventPublisher
}

// NewClaimOrderCommandHandler creates a handler for claim operations.
func NewClaimOrderCommandHandler(uowFactory AssignmentUoWFactory, publisher ports.EventPublisher) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the claim command.
//
// Losers of a claim race get a ConflictError with reason OrderUnavailable;
// a worker at their concurrent-order limit gets CapacityExceeded. Both are
// expected outcomes, not failures of the handler.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, command ClaimOrderCommand) error {
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

	workerRepo := uow.WorkerRepository()
	orderRepo := uow.OrderRepository()

	claimingWorker, err := workerRepo.GetForUpdate(ctx, command.WorkerID())
	if err != nil {
		return err
	}

	activeOrders, err := orderRepo.CountActiveByWorker(ctx, claimingWorker.ID())
	if err != nil {
		return err
	}
	if err = claimingWorker.CanAccept(activeOrders); err != nil {
		return err
	}

	claimedOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = claimedOrder.Claim(claimingWorker.ID(), order.NewVerificationCode()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, claimedOrder); err != nil {
		return err
	}

	if err = uow.AuditRepository().Append(ctx, claimedOrder.PullTransitions()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, ports.EventOrderClaimed,
		claimedOrder.ID().String(), claimingWorker.ID().String(), nil)
	return nil
}
