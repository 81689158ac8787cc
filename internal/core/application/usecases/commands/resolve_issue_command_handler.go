package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// ResolveIssueCommandHandler applies an administrator's verdict to a blocked
// order: resume with the same worker, requeue into the pool, or cancel.
type ResolveIssueCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewResolveIssueCommandHandler creates a handler for issue resolutions.
func NewResolveIssueCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) ResolveIssueCommandHandler {
	return ResolveIssueCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the resolution.
func (h ResolveIssueCommandHandler) Handle(ctx context.Context, command ResolveIssueCommand) error {
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

	switch command.Resolution() {
	case ResolutionResume:
		err = blockedOrder.Resume(command.AdminID())
	case ResolutionRequeue:
		err = blockedOrder.Requeue(command.AdminID())
	case ResolutionCancel:
		err = blockedOrder.Cancel(command.AdminID())
	default:
		err = command.Resolution().Validate()
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

	return uow.Commit(ctx)
}
