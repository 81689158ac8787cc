package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

var (
	// ErrGracePeriodActive is returned when settling before the dispute
	// grace deadline has passed.
	ErrGracePeriodActive = errors.New("dispute grace period has not elapsed")

	// ErrOrderIsNotDelivered is returned when settling an order that never
	// reached the delivered state.
	ErrOrderIsNotDelivered = errors.New("order is not delivered")
)

// ApproveSettlementCommandHandler releases an order's held commissions and
// closes the order once the dispute grace deadline has elapsed. The buyer's
// receipt confirmation and the external payment approval release the same
// settlement through their own handlers, without waiting out the deadline.
//
// Approval is idempotent: settling an already completed order succeeds
// without touching anything, so the sweep job and a manual approval racing
// on the same order cannot double-release.
type ApproveSettlementCommandHandler struct {
	uowFactory SettlementUoWFactory
	publisher  ports.EventPublisher
}

// NewApproveSettlementCommandHandler creates a handler for settlement approvals.
func NewApproveSettlementCommandHandler(
	uowFactory SettlementUoWFactory,
	publisher ports.EventPublisher,
) ApproveSettlementCommandHandler {
	return ApproveSettlementCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the settlement approval. Settlement requires a delivered
// order, an elapsed grace deadline and no open issue or payment rejection.
func (h ApproveSettlementCommandHandler) Handle(ctx context.Context, command ApproveSettlementCommand) error {
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

	orderRepo := uow.OrderRepository()

	settledOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if settledOrder.Status() == order.Completed {
		return nil
	}
	if settledOrder.Status() != order.Delivered {
		return ErrOrderIsNotDelivered
	}
	if settledOrder.HasOpenIssue() {
		return order.ErrOrderHasOpenIssue
	}
	if !settledOrder.GraceElapsed(time.Now().UTC()) {
		return ErrGracePeriodActive
	}

	approved, err := releaseSettlement(ctx,
		orderRepo, uow.CommissionRepository(), uow.AuditRepository(),
		settledOrder, command.ActorID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, ports.EventSettlementApproved,
		settledOrder.ID().String(), command.ActorID().String(),
		map[string]any{"entries": approved})
	return nil
}

// releaseSettlement approves every non-cancelled entry of a delivered order,
// completes the order and appends the audit records. It is the shared core of
// the three settlement triggers: the elapsed grace deadline, the buyer's
// receipt confirmation and the external payment approval. Callers hold the
// order row lock and have checked the gate conditions of their own trigger.
func releaseSettlement(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	commissionRepo ports.CommissionRepository,
	auditRepo ports.AuditRepository,
	settledOrder *order.Order,
	actorID kernel.UUID,
) (int, error) {
	entries, err := commissionRepo.GetAllByOrder(ctx, settledOrder.ID())
	if err != nil {
		return 0, err
	}

	approved := 0
	for _, entry := range entries {
		if entry.Status() == commission.StatusCancelled {
			continue
		}
		if err = entry.Approve(); err != nil {
			return 0, err
		}
		if err = commissionRepo.Update(ctx, entry); err != nil {
			return 0, err
		}
		approved++
	}

	if err = settledOrder.Complete(actorID); err != nil {
		return 0, err
	}

	if err = orderRepo.Update(ctx, settledOrder); err != nil {
		return 0, err
	}

	if err = auditRepo.Append(ctx, settledOrder.PullTransitions()); err != nil {
		return 0, err
	}
	return approved, nil
}
