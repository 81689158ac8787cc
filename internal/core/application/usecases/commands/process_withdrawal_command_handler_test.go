package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/withdrawal"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingRequest(t *testing.T, workerID kernel.UUID, amount string) *withdrawal.Request {
	t.Helper()
	r, err := withdrawal.NewRequest(kernel.NewUUID(), workerID, testMoney(t, amount))
	require.NoError(t, err)
	return r
}

func approvedEntry(t *testing.T, workerID kernel.UUID, amount string) *commission.Entry {
	t.Helper()
	e, err := commission.NewEntry(
		kernel.NewUUID(), workerID, kernel.NewUUID(), commission.TypeDelivery, testMoney(t, amount),
	)
	require.NoError(t, err)
	require.NoError(t, e.Approve())
	return e
}

func TestProcessWithdrawalCommandHandler_Handle_Approve(t *testing.T) {
	ctx := t.Context()
	processingWorker := courierWorker(t, 3)
	request := pendingRequest(t, processingWorker.ID(), "2000.00")
	requestID := request.ID()
	cmd, err := commands.NewProcessWithdrawalCommand(requestID, kernel.NewUUID(), true, "")
	require.NoError(t, err)

	workerRepo := new(MockWorkerRepository)
	commissionRepo := new(MockCommissionRepository)
	withdrawalRepo := new(MockWithdrawalRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WithdrawalRepository").Return(withdrawalRepo).Once()
	withdrawalRepo.On("Get", ctx, requestID).Return(request, nil).Once()
	uow.On("WorkerRepository").Return(workerRepo).Once()
	workerRepo.On("GetForUpdate", ctx, processingWorker.ID()).Return(processingWorker, nil).Once()
	withdrawalRepo.On("GetForUpdate", ctx, requestID).Return(request, nil).Once()
	expectBalance(ctx, uow, commissionRepo, withdrawalRepo, processingWorker.ID(),
		&requestID, testMoney(t, "5000.00"), testMoney(t, "1000.00"), testMoney(t, "0"))
	first := approvedEntry(t, processingWorker.ID(), "1500.00")
	second := approvedEntry(t, processingWorker.ID(), "600.00")
	uow.On("CommissionRepository").Return(commissionRepo).Once()
	commissionRepo.On("GetAllApprovedByWorker", ctx, processingWorker.ID()).
		Return([]*commission.Entry{first, second}, nil).Once()
	commissionRepo.On("Update", ctx, first).Return(nil).Once()
	commissionRepo.On("Update", ctx, second).Return(nil).Once()
	withdrawalRepo.On("Update", ctx, request).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBalanceUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewProcessWithdrawalCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, withdrawal.StatusCompleted, request.Status())
	assert.Equal(t, commission.StatusPaid, first.Status())
	assert.Equal(t, commission.StatusPaid, second.Status())
	commissionRepo.AssertExpectations(t)
}

func TestProcessWithdrawalCommandHandler_Handle_ApproveDebitsOldestFirst(t *testing.T) {
	ctx := t.Context()
	processingWorker := courierWorker(t, 3)
	request := pendingRequest(t, processingWorker.ID(), "900.00")
	requestID := request.ID()
	cmd, err := commands.NewProcessWithdrawalCommand(requestID, kernel.NewUUID(), true, "")
	require.NoError(t, err)

	// The first entry alone covers the request; the second must stay untouched.
	first := approvedEntry(t, processingWorker.ID(), "1000.00")
	second := approvedEntry(t, processingWorker.ID(), "600.00")

	workerRepo := new(MockWorkerRepository)
	commissionRepo := new(MockCommissionRepository)
	withdrawalRepo := new(MockWithdrawalRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WithdrawalRepository").Return(withdrawalRepo).Once()
	withdrawalRepo.On("Get", ctx, requestID).Return(request, nil).Once()
	uow.On("WorkerRepository").Return(workerRepo).Once()
	workerRepo.On("GetForUpdate", ctx, processingWorker.ID()).Return(processingWorker, nil).Once()
	withdrawalRepo.On("GetForUpdate", ctx, requestID).Return(request, nil).Once()
	expectBalance(ctx, uow, commissionRepo, withdrawalRepo, processingWorker.ID(),
		&requestID, testMoney(t, "1600.00"), testMoney(t, "0"), testMoney(t, "0"))
	uow.On("CommissionRepository").Return(commissionRepo).Once()
	commissionRepo.On("GetAllApprovedByWorker", ctx, processingWorker.ID()).
		Return([]*commission.Entry{first, second}, nil).Once()
	commissionRepo.On("Update", ctx, first).Return(nil).Once()
	withdrawalRepo.On("Update", ctx, request).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBalanceUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewProcessWithdrawalCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, commission.StatusPaid, first.Status())
	assert.Equal(t, commission.StatusApproved, second.Status())
	commissionRepo.AssertNotCalled(t, "Update", mock.Anything, second)
}

func TestProcessWithdrawalCommandHandler_Handle_Reject(t *testing.T) {
	ctx := t.Context()
	processingWorker := courierWorker(t, 3)
	request := pendingRequest(t, processingWorker.ID(), "2000.00")
	requestID := request.ID()
	cmd, err := commands.NewProcessWithdrawalCommand(requestID, kernel.NewUUID(), false, "bank account mismatch")
	require.NoError(t, err)

	workerRepo := new(MockWorkerRepository)
	withdrawalRepo := new(MockWithdrawalRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WithdrawalRepository").Return(withdrawalRepo).Once()
	withdrawalRepo.On("Get", ctx, requestID).Return(request, nil).Once()
	uow.On("WorkerRepository").Return(workerRepo).Once()
	workerRepo.On("GetForUpdate", ctx, processingWorker.ID()).Return(processingWorker, nil).Once()
	withdrawalRepo.On("GetForUpdate", ctx, requestID).Return(request, nil).Once()
	withdrawalRepo.On("Update", ctx, request).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBalanceUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewProcessWithdrawalCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, withdrawal.StatusRejected, request.Status())
	assert.Equal(t, "bank account mismatch", request.RejectReason())
}

func TestProcessWithdrawalCommandHandler_Handle_InsufficientAtProcessing(t *testing.T) {
	ctx := t.Context()
	processingWorker := courierWorker(t, 3)
	request := pendingRequest(t, processingWorker.ID(), "4500.00")
	requestID := request.ID()
	cmd, err := commands.NewProcessWithdrawalCommand(requestID, kernel.NewUUID(), true, "")
	require.NoError(t, err)

	workerRepo := new(MockWorkerRepository)
	commissionRepo := new(MockCommissionRepository)
	withdrawalRepo := new(MockWithdrawalRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WithdrawalRepository").Return(withdrawalRepo).Once()
	withdrawalRepo.On("Get", ctx, requestID).Return(request, nil).Once()
	uow.On("WorkerRepository").Return(workerRepo).Once()
	workerRepo.On("GetForUpdate", ctx, processingWorker.ID()).Return(processingWorker, nil).Once()
	withdrawalRepo.On("GetForUpdate", ctx, requestID).Return(request, nil).Once()
	expectBalance(ctx, uow, commissionRepo, withdrawalRepo, processingWorker.ID(),
		&requestID, testMoney(t, "5000.00"), testMoney(t, "1000.00"), testMoney(t, "0"))
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBalanceUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewProcessWithdrawalCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInsufficientBalance)
	assert.Equal(t, withdrawal.StatusPending, request.Status())
	withdrawalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewProcessWithdrawalCommand_RejectRequiresReason(t *testing.T) {
	_, err := commands.NewProcessWithdrawalCommand(kernel.NewUUID(), kernel.NewUUID(), false, "")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
