package cmd

import (
	"log/slog"
	"time"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters into the application handlers. Every
// handler gets its own narrow unit-of-work factory backed by the shared
// GORM factory.
type CompositionRoot struct {
	gormDB         *gorm.DB
	uowFactory     postgres.GormUnitOfWorkFactory
	publisher      ports.EventPublisher
	policyTable    commission.PolicyTable
	geofenceRadius kernel.Meters
	gracePeriod    time.Duration
	systemActor    kernel.UUID
	logger         *slog.Logger
}

// NewCompositionRoot creates the root from the opened database connection
// and event publisher.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	systemActor kernel.UUID,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:      publisher,
		policyTable:    commission.DefaultPolicyTable(),
		geofenceRadius: kernel.Meters(config.GeofenceRadiusM),
		gracePeriod:    time.Duration(config.GracePeriodMin) * time.Minute,
		systemActor:    systemActor,
		logger:         logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) ledgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) settlementUoWFactory() commands.SettlementUoWFactory {
	return FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) balanceUoWFactory() commands.BalanceUoWFactory {
	return FuncBalanceUoWFactory(func() commands.BalanceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.assignmentUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateReleaseClaimCommandHandler() commands.ReleaseClaimCommandHandler {
	return commands.NewReleaseClaimCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateReportCheckpointCommandHandler() commands.ReportCheckpointCommandHandler {
	return commands.NewReportCheckpointCommandHandler(c.orderUoWFactory(), c.geofenceRadius, c.publisher)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(
		c.deliveryUoWFactory(), c.policyTable, c.geofenceRadius, c.gracePeriod, c.publisher)
}

func (c *CompositionRoot) CreateConfirmReceiptCommandHandler() commands.ConfirmReceiptCommandHandler {
	return commands.NewConfirmReceiptCommandHandler(c.settlementUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateReportIssueCommandHandler() commands.ReportIssueCommandHandler {
	return commands.NewReportIssueCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateResolveIssueCommandHandler() commands.ResolveIssueCommandHandler {
	return commands.NewResolveIssueCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateRecordEarningsCommandHandler() commands.RecordEarningsCommandHandler {
	return commands.NewRecordEarningsCommandHandler(c.ledgerUoWFactory(), c.policyTable, c.publisher)
}

func (c *CompositionRoot) CreateApproveSettlementCommandHandler() commands.ApproveSettlementCommandHandler {
	return commands.NewApproveSettlementCommandHandler(c.settlementUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateReviewPaymentCommandHandler() commands.ReviewPaymentCommandHandler {
	return commands.NewReviewPaymentCommandHandler(c.paymentUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateRequestWithdrawalCommandHandler() commands.RequestWithdrawalCommandHandler {
	return commands.NewRequestWithdrawalCommandHandler(c.balanceUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateProcessWithdrawalCommandHandler() commands.ProcessWithdrawalCommandHandler {
	return commands.NewProcessWithdrawalCommandHandler(c.balanceUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateProcessWithdrawalsBatchCommandHandler() commands.ProcessWithdrawalsBatchCommandHandler {
	return commands.NewProcessWithdrawalsBatchCommandHandler(c.balanceUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetClaimableOrdersQueryHandler() queries.GetClaimableOrdersQueryHandler {
	return queries.NewGetClaimableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableBalanceQueryHandler() queries.GetAvailableBalanceQueryHandler {
	return queries.NewGetAvailableBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingWithdrawalsQueryHandler() queries.GetPendingWithdrawalsQueryHandler {
	return queries.NewGetPendingWithdrawalsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSettlementSweepJob(schedule string) *jobs.SettlementSweepJob {
	return jobs.NewSettlementSweepJob(
		c.orderUoWFactory(),
		c.CreateApproveSettlementCommandHandler(),
		c.systemActor,
		schedule,
		c.logger,
	)
}

func (c *CompositionRoot) CreateWithdrawalBatchJob(schedule string) *jobs.WithdrawalBatchJob {
	return jobs.NewWithdrawalBatchJob(
		c.CreateProcessWithdrawalsBatchCommandHandler(),
		c.systemActor,
		schedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncBalanceUoWFactory func() commands.BalanceUoW

func (f FuncBalanceUoWFactory) Create() commands.BalanceUoW {
	return f()
}
