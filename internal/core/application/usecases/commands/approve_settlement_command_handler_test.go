package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingEntry(t *testing.T, orderID kernel.UUID) *commission.Entry {
	t.Helper()
	e, err := commission.NewEntry(
		kernel.NewUUID(), kernel.NewUUID(), orderID, commission.TypeDelivery, testMoney(t, "1500.00"),
	)
	require.NoError(t, err)
	return e
}

func TestApproveSettlementCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	settled := deliveredOrder(t, workerID, time.Now().UTC().Add(-time.Minute))
	entry := pendingEntry(t, settled.ID())
	cmd, err := commands.NewApproveSettlementCommand(settled.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	commissionRepo := new(MockCommissionRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("CommissionRepository").Return(commissionRepo).Once()
	uow.On("AuditRepository").Return(auditRepo).Once()
	orderRepo.On("GetForUpdate", ctx, settled.ID()).Return(settled, nil).Once()
	commissionRepo.On("GetAllByOrder", ctx, settled.ID()).Return([]*commission.Entry{entry}, nil).Once()
	commissionRepo.On("Update", ctx, entry).Return(nil).Once()
	orderRepo.On("Update", ctx, settled).Return(nil).Once()
	auditRepo.On("Append", ctx, mock.AnythingOfType("[]order.TransitionRecord")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApproveSettlementCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, commission.StatusApproved, entry.Status())
	assert.Equal(t, order.Completed, settled.Status())
	uow.AssertExpectations(t)
}

func TestApproveSettlementCommandHandler_Handle_GraceStillRunning(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	settled := deliveredOrder(t, workerID, time.Now().UTC().Add(time.Hour))
	cmd, err := commands.NewApproveSettlementCommand(settled.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, settled.ID()).Return(settled, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApproveSettlementCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrGracePeriodActive)
	assert.Equal(t, order.Delivered, settled.Status())
}

func TestApproveSettlementCommandHandler_Handle_AlreadyCompletedIsNoOp(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	completed := restoredOrder(t, order.Completed, &workerID, nil)
	cmd, err := commands.NewApproveSettlementCommand(completed.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, completed.ID()).Return(completed, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApproveSettlementCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApproveSettlementCommandHandler_Handle_PaymentRejectedBlocks(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	deadline := time.Now().UTC().Add(-time.Minute)
	blocked := restoredOrder(t, order.Delivered, &workerID, func(p *order.RestoreOrderParams) {
		p.GraceDeadline = &deadline
		p.PayoutReleased = true
		p.PaymentOnDelivery = true
		p.PaymentRejected = true
	})
	cmd, err := commands.NewApproveSettlementCommand(blocked.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, blocked.ID()).Return(blocked, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApproveSettlementCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderHasOpenIssue)
}
