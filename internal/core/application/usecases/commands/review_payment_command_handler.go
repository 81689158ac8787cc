package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ReviewPaymentCommandHandler records the external payment review's verdict
// on an order.
//
// An approval of a delivered order is its own settlement trigger: the held
// commissions are released immediately, without waiting out the dispute
// grace deadline, because the payment clearing ends the dispute.
//
// A rejection only raises the order's payment-rejected flag. Commissions
// already recorded stay pending, the flag blocks settlement, and a later
// approval clears it and releases them. Nothing is cancelled here;
// cancellation stays an explicit administrative act.
type ReviewPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	publisher  ports.EventPublisher
}

// NewReviewPaymentCommandHandler creates a handler for payment reviews.
func NewReviewPaymentCommandHandler(uowFactory PaymentUoWFactory, publisher ports.EventPublisher) ReviewPaymentCommandHandler {
	return ReviewPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the verdict.
func (h ReviewPaymentCommandHandler) Handle(ctx context.Context, command ReviewPaymentCommand) error {
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

	reviewedOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	approvedEntries := 0
	if command.Approved() {
		reviewedOrder.ApprovePayment()

		if reviewedOrder.Status() == order.Delivered && !reviewedOrder.HasOpenIssue() {
			approvedEntries, err = releaseSettlement(ctx,
				orderRepo, uow.CommissionRepository(), uow.AuditRepository(),
				reviewedOrder, command.ReviewerID())
		} else {
			err = orderRepo.Update(ctx, reviewedOrder)
		}
	} else {
		reviewedOrder.RejectPayment()
		err = orderRepo.Update(ctx, reviewedOrder)
	}
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, ports.EventPaymentReviewed,
		reviewedOrder.ID().String(), command.ReviewerID().String(),
		map[string]any{"approved": command.Approved()})

	if approvedEntries > 0 {
		publishEvent(ctx, h.publisher, ports.EventSettlementApproved,
			reviewedOrder.ID().String(), command.ReviewerID().String(),
			map[string]any{"entries": approvedEntries, "trigger": "payment_review"})
	}
	return nil
}
