package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ErrVerificationCodeMismatch is returned when the presented hand-off code
// does not match the one issued at claim time.
var ErrVerificationCodeMismatch = errors.New("verification code does not match")

// ConfirmDeliveryCommandHandler records the buyer hand-off. The order moves
// to Delivered, the dispute grace deadline is stored on the row and the
// delivery agent's commission entry is written to the ledger, all in one
// transaction. Nothing schedules a timer; the settlement sweep evaluates the
// deadline lazily.
type ConfirmDeliveryCommandHandler struct {
	uowFactory     DeliveryUoWFactory
	policyTable    commission.PolicyTable
	geofenceRadius kernel.Meters
	gracePeriod    time.Duration
	publisher      ports.EventPublisher
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmations.
func NewConfirmDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	policyTable commission.PolicyTable,
	geofenceRadius kernel.Meters,
	gracePeriod time.Duration,
	publisher ports.EventPublisher,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory:     uowFactory,
		policyTable:    policyTable,
		geofenceRadius: geofenceRadius,
		gracePeriod:    gracePeriod,
		publisher:      publisher,
	}
}

// Handle processes the delivery confirmation.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, command ConfirmDeliveryCommand) error {
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

	deliveredOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if deliveredOrder.VerificationCode() != command.Code() {
		return ErrVerificationCodeMismatch
	}

	graceDeadline := time.Now().UTC().Add(h.gracePeriod)
	if err = deliveredOrder.Deliver(command.WorkerID(), command.Location(), h.geofenceRadius, graceDeadline); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, deliveredOrder); err != nil {
		return err
	}

	entry, err := h.recordDeliveryCommission(ctx, uow.CommissionRepository(), deliveredOrder, command.WorkerID())
	if err != nil {
		return err
	}

	if err = uow.AuditRepository().Append(ctx, deliveredOrder.PullTransitions()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, ports.EventOrderDelivered,
		deliveredOrder.ID().String(), command.WorkerID().String(),
		map[string]any{"grace_deadline": graceDeadline})

	if entry != nil {
		publishEvent(ctx, h.publisher, ports.EventEarningsRecorded,
			entry.ID().String(), command.WorkerID().String(),
			map[string]any{
				"order_id": deliveredOrder.ID().String(),
				"type":     entry.Type().String(),
				"amount":   entry.Amount().String(),
			})
	}
	return nil
}

// recordDeliveryCommission writes the delivery agent's pending ledger entry
// for the order, skipping silently when one already exists. Referral and
// manual-site earnings carry beneficiaries the order does not know, so they
// enter the ledger through the earnings operation instead.
func (h ConfirmDeliveryCommandHandler) recordDeliveryCommission(
	ctx context.Context,
	commissionRepo ports.CommissionRepository,
	deliveredOrder *order.Order,
	workerID kernel.UUID,
) (*commission.Entry, error) {
	_, err := commissionRepo.GetByOrderAndType(ctx, deliveredOrder.ID(), commission.TypeDelivery)
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	breakdown, err := h.policyTable.PolicyFor(deliveredOrder.Category()).Calculate(deliveredOrder.GrossValue())
	if err != nil {
		return nil, err
	}

	entry, err := commission.NewEntry(
		kernel.NewUUID(), workerID, deliveredOrder.ID(), commission.TypeDelivery, breakdown.AgentCommission,
	)
	if err != nil {
		return nil, err
	}

	if err = commissionRepo.Add(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
