package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// ReleaseClaimCommandHandler returns a claimed order to the pool, clearing
// the assignment and the hand-off code so any worker can claim it again.
type ReleaseClaimCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewReleaseClaimCommandHandler creates a handler for release operations.
func NewReleaseClaimCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) ReleaseClaimCommandHandler {
	return ReleaseClaimCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the release command. Only the assigned worker may
// release, and only before pickup.
func (h ReleaseClaimCommandHandler) Handle(ctx context.Context, command ReleaseClaimCommand) error {
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

	releasedOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = releasedOrder.Release(command.WorkerID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, releasedOrder); err != nil {
		return err
	}

	if err = uow.AuditRepository().Append(ctx, releasedOrder.PullTransitions()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, ports.EventOrderReleased,
		releasedOrder.ID().String(), command.WorkerID().String(), nil)
	return nil
}
