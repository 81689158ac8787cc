package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmDeliveryCommandHandler_Handle_RecordsCommission(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	arrived := restoredOrder(t, order.ArrivedAtDelivery, &workerID, func(p *order.RestoreOrderParams) {
		p.PayoutReleased = true
	})
	cmd, err := commands.NewConfirmDeliveryCommand(
		arrived.ID(), workerID, testPoint(t, 41.0400, 28.9900), "123456",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	commissionRepo := new(MockCommissionRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("CommissionRepository").Return(commissionRepo).Once()
	uow.On("AuditRepository").Return(auditRepo).Once()
	orderRepo.On("GetForUpdate", ctx, arrived.ID()).Return(arrived, nil).Once()
	orderRepo.On("Update", ctx, arrived).Return(nil).Once()
	commissionRepo.On("GetByOrderAndType", ctx, arrived.ID(), commission.TypeDelivery).
		Return(nil, errs.NewObjectNotFoundError("entry", arrived.ID())).Once()
	commissionRepo.On("Add", ctx, mock.MatchedBy(func(e *commission.Entry) bool {
		return e.Amount().IsEqual(testMoney(t, "1500.00")) &&
			e.Status() == commission.StatusPending &&
			e.Type() == commission.TypeDelivery &&
			e.WorkerID().IsEqual(workerID) &&
			e.OrderID().IsEqual(arrived.ID())
	})).Return(nil).Once()
	auditRepo.On("Append", ctx, mock.AnythingOfType("[]order.TransitionRecord")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmDeliveryCommandHandler(
		factory, commission.DefaultPolicyTable(), kernel.Meters(150), 2*time.Hour, nil,
	)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Delivered, arrived.Status())
	require.NotNil(t, arrived.GraceDeadline())
	commissionRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmDeliveryCommandHandler_Handle_ExistingEntryIsNotDuplicated(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	arrived := restoredOrder(t, order.ArrivedAtDelivery, &workerID, func(p *order.RestoreOrderParams) {
		p.PayoutReleased = true
	})
	cmd, err := commands.NewConfirmDeliveryCommand(
		arrived.ID(), workerID, testPoint(t, 41.0400, 28.9900), "123456",
	)
	require.NoError(t, err)

	existing, err := commission.NewEntry(
		kernel.NewUUID(), workerID, arrived.ID(), commission.TypeDelivery, testMoney(t, "1500.00"),
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	commissionRepo := new(MockCommissionRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("CommissionRepository").Return(commissionRepo).Once()
	uow.On("AuditRepository").Return(auditRepo).Once()
	orderRepo.On("GetForUpdate", ctx, arrived.ID()).Return(arrived, nil).Once()
	orderRepo.On("Update", ctx, arrived).Return(nil).Once()
	commissionRepo.On("GetByOrderAndType", ctx, arrived.ID(), commission.TypeDelivery).
		Return(existing, nil).Once()
	auditRepo.On("Append", ctx, mock.AnythingOfType("[]order.TransitionRecord")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmDeliveryCommandHandler(
		factory, commission.DefaultPolicyTable(), kernel.Meters(150), 2*time.Hour, nil,
	)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Delivered, arrived.Status())
	commissionRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestConfirmDeliveryCommandHandler_Handle_CodeMismatch(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	arrived := restoredOrder(t, order.ArrivedAtDelivery, &workerID, nil)
	cmd, err := commands.NewConfirmDeliveryCommand(
		arrived.ID(), workerID, testPoint(t, 41.0400, 28.9900), "654321",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, arrived.ID()).Return(arrived, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmDeliveryCommandHandler(
		factory, commission.DefaultPolicyTable(), kernel.Meters(150), 2*time.Hour, nil,
	)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrVerificationCodeMismatch)
	assert.Equal(t, order.ArrivedAtDelivery, arrived.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
