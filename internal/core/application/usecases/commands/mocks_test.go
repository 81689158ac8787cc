package commands_test

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/withdrawal"
	"marketplace/internal/core/domain/model/worker"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAllClaimable(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) GetAllDueForSettlement(_ context.Context, _ time.Time) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) CountActiveByWorker(ctx context.Context, workerID kernel.UUID) (int, error) {
	args := m.Called(ctx, workerID)
	return args.Int(0), args.Error(1)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) Add(_ context.Context, _ *worker.Worker) error {
	return errors.New("not implemented in mock")
}
func (m *MockWorkerRepository) Update(ctx context.Context, w *worker.Worker) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
func (m *MockWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}
func (m *MockWorkerRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

type MockCommissionRepository struct{ mock.Mock }

func (m *MockCommissionRepository) Add(ctx context.Context, e *commission.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockCommissionRepository) Update(ctx context.Context, e *commission.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockCommissionRepository) Get(_ context.Context, _ kernel.UUID) (*commission.Entry, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockCommissionRepository) GetByOrderAndType(
	ctx context.Context, orderID kernel.UUID, entryType commission.Type,
) (*commission.Entry, error) {
	args := m.Called(ctx, orderID, entryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.Entry), args.Error(1)
}
func (m *MockCommissionRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*commission.Entry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*commission.Entry), args.Error(1)
}
func (m *MockCommissionRepository) GetAllApprovedByWorker(
	ctx context.Context, workerID kernel.UUID,
) ([]*commission.Entry, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*commission.Entry), args.Error(1)
}
func (m *MockCommissionRepository) SumEarnedByWorker(ctx context.Context, workerID kernel.UUID) (kernel.Money, error) {
	args := m.Called(ctx, workerID)
	return args.Get(0).(kernel.Money), args.Error(1)
}

type MockWithdrawalRepository struct{ mock.Mock }

func (m *MockWithdrawalRepository) Add(ctx context.Context, r *withdrawal.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockWithdrawalRepository) Update(ctx context.Context, r *withdrawal.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockWithdrawalRepository) Get(ctx context.Context, id kernel.UUID) (*withdrawal.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*withdrawal.Request), args.Error(1)
}
func (m *MockWithdrawalRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*withdrawal.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*withdrawal.Request), args.Error(1)
}
func (m *MockWithdrawalRepository) GetAllPending(ctx context.Context) ([]*withdrawal.Request, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*withdrawal.Request), args.Error(1)
}
func (m *MockWithdrawalRepository) SumCompletedByWorker(ctx context.Context, workerID kernel.UUID) (kernel.Money, error) {
	args := m.Called(ctx, workerID)
	return args.Get(0).(kernel.Money), args.Error(1)
}
func (m *MockWithdrawalRepository) SumPendingByWorker(
	ctx context.Context, workerID kernel.UUID, exclude *kernel.UUID,
) (kernel.Money, error) {
	args := m.Called(ctx, workerID, exclude)
	return args.Get(0).(kernel.Money), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, records []order.TransitionRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}
func (m *MockAuditRepository) GetAllByOrder(_ context.Context, _ kernel.UUID) ([]order.TransitionRecord, error) {
	return nil, errors.New("not implemented in mock")
}

// MockUoW satisfies every unit-of-work composition used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockUoW) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}
func (m *MockUoW) CommissionRepository() ports.CommissionRepository {
	args := m.Called()
	return args.Get(0).(ports.CommissionRepository)
}
func (m *MockUoW) WithdrawalRepository() ports.WithdrawalRepository {
	args := m.Called()
	return args.Get(0).(ports.WithdrawalRepository)
}
func (m *MockUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockAssignmentUoWFactory struct{ mock.Mock }

func (m *MockAssignmentUoWFactory) Create() commands.AssignmentUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignmentUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.LedgerUoW)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}

type MockPaymentUoWFactory struct{ mock.Mock }

func (m *MockPaymentUoWFactory) Create() commands.PaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.PaymentUoW)
}

type MockBalanceUoWFactory struct{ mock.Mock }

func (m *MockBalanceUoWFactory) Create() commands.BalanceUoW {
	args := m.Called()
	return args.Get(0).(commands.BalanceUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventPublisher) Close() error { return nil }
