package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// ReportIssueCommandHandler moves an order into its blocked issue state.
// A blocked order cannot settle and its seller payout stays held until an
// administrator resolves the issue.
type ReportIssueCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewReportIssueCommandHandler creates a handler for issue reports.
func NewReportIssueCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) ReportIssueCommandHandler {
	return ReportIssueCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the issue report.
func (h ReportIssueCommandHandler) Handle(ctx context.Context, command ReportIssueCommand) error {
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

	blockedOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	switch command.Kind() {
	case IssueKindPickup:
		err = blockedOrder.ReportPickupIssue(command.WorkerID(), command.Note())
	case IssueKindDelivery:
		err = blockedOrder.FailDelivery(command.WorkerID(), command.Note())
	default:
		err = command.Kind().Validate()
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, blockedOrder); err != nil {
		return err
	}

	if err = uow.AuditRepository().Append(ctx, blockedOrder.PullTransitions()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, ports.EventOrderIssueReported,
		blockedOrder.ID().String(), command.WorkerID().String(),
		map[string]any{"kind": command.Kind().String(), "note": command.Note()})
	return nil
}
