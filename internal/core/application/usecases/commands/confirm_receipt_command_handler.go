package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ConfirmReceiptCommandHandler closes a delivered order on the buyer's
// confirmation. The buyer accepting the goods ends the dispute window, so
// the held commissions are released immediately instead of waiting out the
// grace deadline.
//
// Confirming an already completed order is a successful no-op, so a retried
// confirmation and the sweep job cannot double-release.
type ConfirmReceiptCommandHandler struct {
	uowFactory SettlementUoWFactory
	publisher  ports.EventPublisher
}

// NewConfirmReceiptCommandHandler creates a handler for receipt confirmations.
func NewConfirmReceiptCommandHandler(
	uowFactory SettlementUoWFactory,
	publisher ports.EventPublisher,
) ConfirmReceiptCommandHandler {
	return ConfirmReceiptCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the confirmation. The order must be Delivered with no
// open issue or payment rejection; the grace deadline does not apply.
func (h ConfirmReceiptCommandHandler) Handle(ctx context.Context, command ConfirmReceiptCommand) error {
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

	confirmedOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if confirmedOrder.Status() == order.Completed {
		return nil
	}
	if confirmedOrder.Status() != order.Delivered {
		return ErrOrderIsNotDelivered
	}
	if confirmedOrder.HasOpenIssue() {
		return order.ErrOrderHasOpenIssue
	}

	approved, err := releaseSettlement(ctx,
		orderRepo, uow.CommissionRepository(), uow.AuditRepository(),
		confirmedOrder, command.BuyerID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, ports.EventOrderCompleted,
		confirmedOrder.ID().String(), command.BuyerID().String(),
		map[string]any{"entries": approved, "trigger": "buyer_confirmation"})
	return nil
}
