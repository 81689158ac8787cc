package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/worker"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderNotEligibleForEarnings is returned when recording against an
	// order that has not released its payout yet.
	ErrOrderNotEligibleForEarnings = errors.New("order has not reached an earnings-eligible state")

	// ErrBeneficiaryIsNotAssignee is returned when a delivery commission
	// names someone other than the order's assigned worker.
	ErrBeneficiaryIsNotAssignee = errors.New("delivery earnings belong to the assigned worker")

	// ErrBeneficiaryIsNotSiteManager is returned when manual site earnings
	// name a worker without the site manager role.
	ErrBeneficiaryIsNotSiteManager = errors.New("manual site earnings require a site manager")
)

// RecordEarningsCommandHandler appends one entry to the commission ledger.
//
// At most one entry exists per order and earnings type. The order's row lock
// serializes the duplicate check against the insert, so two concurrent
// recordings of the same earnings resolve to one entry plus one
// AlreadyRecorded conflict.
type RecordEarningsCommandHandler struct {
	uowFactory  LedgerUoWFactory
	policyTable commission.PolicyTable
	publisher   ports.EventPublisher
}

// NewRecordEarningsCommandHandler creates a handler for earnings recording.
func NewRecordEarningsCommandHandler(
	uowFactory LedgerUoWFactory,
	policyTable commission.PolicyTable,
	publisher ports.EventPublisher,
) RecordEarningsCommandHandler {
	return RecordEarningsCommandHandler{
		uowFactory:  uowFactory,
		policyTable: policyTable,
		publisher:   publisher,
	}
}

// Handle processes the earnings recording.
func (h RecordEarningsCommandHandler) Handle(ctx context.Context, command RecordEarningsCommand) error {
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

	earnedOrder, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	beneficiary, err := uow.WorkerRepository().Get(ctx, command.BeneficiaryID())
	if err != nil {
		return err
	}

	if err = h.checkEligibility(earnedOrder, beneficiary, command.EntryType()); err != nil {
		return err
	}

	commissionRepo := uow.CommissionRepository()

	_, err = commissionRepo.GetByOrderAndType(ctx, earnedOrder.ID(), command.EntryType())
	if err == nil {
		return errs.NewConflictError(errs.ReasonAlreadyRecorded, earnedOrder.ID().String())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	amount, err := h.resolveAmount(earnedOrder, command)
	if err != nil {
		return err
	}

	entry, err := commission.NewEntry(
		kernel.NewUUID(), beneficiary.ID(), earnedOrder.ID(), command.EntryType(), amount,
	)
	if err != nil {
		return err
	}

	// The settlement gate has already run for a completed order and will not
	// run again, so a late entry joins the released ones instead of waiting
	// forever in pending.
	if earnedOrder.Status() == order.Completed {
		if err = entry.Approve(); err != nil {
			return err
		}
	}

	if err = commissionRepo.Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, ports.EventEarningsRecorded,
		entry.ID().String(), beneficiary.ID().String(),
		map[string]any{
			"order_id": earnedOrder.ID().String(),
			"type":     command.EntryType().String(),
			"amount":   amount.String(),
		})
	return nil
}

func (h RecordEarningsCommandHandler) checkEligibility(
	earnedOrder *order.Order, beneficiary *worker.Worker, entryType commission.Type,
) error {
	if !earnedOrder.PayoutReleased() {
		return ErrOrderNotEligibleForEarnings
	}
	if earnedOrder.Status() == order.Cancelled {
		return ErrOrderNotEligibleForEarnings
	}

	switch entryType {
	case commission.TypeDelivery:
		assignee := earnedOrder.Worker()
		if assignee == nil || !assignee.IsEqual(beneficiary.ID()) {
			return ErrBeneficiaryIsNotAssignee
		}
	case commission.TypeManualSite:
		if beneficiary.Role() != worker.RoleSiteManager {
			return ErrBeneficiaryIsNotSiteManager
		}
	}
	return nil
}

func (h RecordEarningsCommandHandler) resolveAmount(
	earnedOrder *order.Order, command RecordEarningsCommand,
) (kernel.Money, error) {
	if command.EntryType() == commission.TypeManualSite {
		return *command.ManualAmount(), nil
	}

	breakdown, err := h.policyTable.PolicyFor(earnedOrder.Category()).Calculate(earnedOrder.GrossValue())
	if err != nil {
		return kernel.Money{}, err
	}

	if command.EntryType() == commission.TypeReferral {
		return breakdown.ReferralCommission, nil
	}
	return breakdown.AgentCommission, nil
}
