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

func codReviewedOrder(t *testing.T, workerID kernel.UUID, rejected bool, graceDeadline time.Time) *order.Order {
	t.Helper()
	return restoredOrder(t, order.Delivered, &workerID, func(p *order.RestoreOrderParams) {
		p.GraceDeadline = &graceDeadline
		p.PayoutReleased = true
		p.PaymentOnDelivery = true
		p.PaymentRejected = rejected
	})
}

func TestReviewPaymentCommandHandler_Handle_ApprovalSettlesBeforeDeadline(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	// The dispute window is still an hour out; the cleared payment must not
	// leave the held entries waiting for it.
	reviewed := codReviewedOrder(t, workerID, false, time.Now().UTC().Add(time.Hour))
	entry, err := commission.NewEntry(
		kernel.NewUUID(), kernel.NewUUID(), reviewed.ID(), commission.TypeReferral, testMoney(t, "630.00"),
	)
	require.NoError(t, err)
	cmd, err := commands.NewReviewPaymentCommand(reviewed.ID(), kernel.NewUUID(), true)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	commissionRepo := new(MockCommissionRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("CommissionRepository").Return(commissionRepo).Once()
	uow.On("AuditRepository").Return(auditRepo).Once()
	orderRepo.On("GetForUpdate", ctx, reviewed.ID()).Return(reviewed, nil).Once()
	commissionRepo.On("GetAllByOrder", ctx, reviewed.ID()).Return([]*commission.Entry{entry}, nil).Once()
	commissionRepo.On("Update", ctx, entry).Return(nil).Once()
	orderRepo.On("Update", ctx, reviewed).Return(nil).Once()
	auditRepo.On("Append", ctx, mock.AnythingOfType("[]order.TransitionRecord")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReviewPaymentCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, commission.StatusApproved, entry.Status())
	assert.Equal(t, order.Completed, reviewed.Status())
	uow.AssertExpectations(t)
}

func TestReviewPaymentCommandHandler_Handle_ApprovalClearsEarlierRejection(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	reviewed := codReviewedOrder(t, workerID, true, time.Now().UTC().Add(time.Hour))
	entry, err := commission.NewEntry(
		kernel.NewUUID(), workerID, reviewed.ID(), commission.TypeDelivery, testMoney(t, "1500.00"),
	)
	require.NoError(t, err)
	cmd, err := commands.NewReviewPaymentCommand(reviewed.ID(), kernel.NewUUID(), true)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	commissionRepo := new(MockCommissionRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("CommissionRepository").Return(commissionRepo).Once()
	uow.On("AuditRepository").Return(auditRepo).Once()
	orderRepo.On("GetForUpdate", ctx, reviewed.ID()).Return(reviewed, nil).Once()
	commissionRepo.On("GetAllByOrder", ctx, reviewed.ID()).Return([]*commission.Entry{entry}, nil).Once()
	commissionRepo.On("Update", ctx, entry).Return(nil).Once()
	orderRepo.On("Update", ctx, reviewed).Return(nil).Once()
	auditRepo.On("Append", ctx, mock.AnythingOfType("[]order.TransitionRecord")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReviewPaymentCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.False(t, reviewed.PaymentRejected())
	assert.Equal(t, commission.StatusApproved, entry.Status())
	assert.Equal(t, order.Completed, reviewed.Status())
}

func TestReviewPaymentCommandHandler_Handle_RejectionHoldsEntries(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	reviewed := codReviewedOrder(t, workerID, false, time.Now().UTC().Add(-time.Minute))
	cmd, err := commands.NewReviewPaymentCommand(reviewed.ID(), kernel.NewUUID(), false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, reviewed.ID()).Return(reviewed, nil).Once()
	orderRepo.On("Update", ctx, reviewed).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReviewPaymentCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, reviewed.PaymentRejected())
	assert.Equal(t, order.Delivered, reviewed.Status())
	uow.AssertNotCalled(t, "CommissionRepository")
}

func TestReviewPaymentCommandHandler_Handle_ApprovalBeforeDeliveryOnlyClearsFlag(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	enRoute := restoredOrder(t, order.EnRoute, &workerID, func(p *order.RestoreOrderParams) {
		p.PaymentOnDelivery = true
		p.PaymentRejected = true
	})
	cmd, err := commands.NewReviewPaymentCommand(enRoute.ID(), kernel.NewUUID(), true)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, enRoute.ID()).Return(enRoute, nil).Once()
	orderRepo.On("Update", ctx, enRoute).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReviewPaymentCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.False(t, enRoute.PaymentRejected())
	assert.Equal(t, order.EnRoute, enRoute.Status())
	uow.AssertNotCalled(t, "CommissionRepository")
}
