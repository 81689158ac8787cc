package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ReportCheckpointCommandHandler advances an assigned order through its
// pre-delivery lifecycle. Geofenced checkpoints verify the courier's reported
// position against the configured radius before the status moves.
type ReportCheckpointCommandHandler struct {
	uowFactory     OrderUoWFactory
	geofenceRadius kernel.Meters
	publisher      ports.EventPublisher
}

// NewReportCheckpointCommandHandler creates a handler for checkpoint reports.
func NewReportCheckpointCommandHandler(
	uowFactory OrderUoWFactory,
	geofenceRadius kernel.Meters,
	publisher ports.EventPublisher,
) ReportCheckpointCommandHandler {
	return ReportCheckpointCommandHandler{
		uowFactory:     uowFactory,
		geofenceRadius: geofenceRadius,
		publisher:      publisher,
	}
}

// Handle processes one checkpoint report. Reporting PickedUp twice is a
// successful no-op; the payout-release event fires exactly once.
func (h ReportCheckpointCommandHandler) Handle(ctx context.Context, command ReportCheckpointCommand) error {
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

	trackedOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	payoutReleased, err := h.applyCheckpoint(trackedOrder, command)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, trackedOrder); err != nil {
		return err
	}

	if err = uow.AuditRepository().Append(ctx, trackedOrder.PullTransitions()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if payoutReleased {
		publishEvent(ctx, h.publisher, ports.EventOrderPayoutReleased,
			trackedOrder.ID().String(), command.WorkerID().String(), nil)
	}
	return nil
}

func (h ReportCheckpointCommandHandler) applyCheckpoint(
	trackedOrder *order.Order, command ReportCheckpointCommand,
) (payoutReleased bool, err error) {
	switch command.Checkpoint() {
	case CheckpointArrivedPickup:
		return false, trackedOrder.ArriveAtPickup(command.WorkerID(), *command.Location(), h.geofenceRadius)
	case CheckpointPickedUp:
		return trackedOrder.ConfirmPickup(command.WorkerID(), *command.Location(), h.geofenceRadius)
	case CheckpointInTransit:
		return false, trackedOrder.StartTransit(command.WorkerID())
	case CheckpointArrivedDelivery:
		return false, trackedOrder.ArriveAtDelivery(command.WorkerID(), *command.Location(), h.geofenceRadius)
	default:
		return false, command.Checkpoint().Validate()
	}
}
