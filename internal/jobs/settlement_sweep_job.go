// Package jobs contains the scheduled background workers: the settlement
// sweep that closes delivered orders once their dispute window passes, and
// the withdrawal batch that settles pending payout requests.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// SettlementSweepJob periodically finds delivered orders whose grace
// deadline has passed and approves their settlement under the system actor.
// The sweep is the safety net behind manual approval: an order nobody
// touches still settles once its window closes.
type SettlementSweepJob struct {
	uowFactory  commands.OrderUoWFactory
	handler     commands.ApproveSettlementCommandHandler
	systemActor kernel.UUID
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewSettlementSweepJob creates a sweep job running on the given cron
// schedule (seconds resolution).
func NewSettlementSweepJob(
	uowFactory commands.OrderUoWFactory,
	handler commands.ApproveSettlementCommandHandler,
	systemActor kernel.UUID,
	schedule string,
	logger *slog.Logger,
) *SettlementSweepJob {
	return &SettlementSweepJob{
		uowFactory:  uowFactory,
		handler:     handler,
		systemActor: systemActor,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "settlement_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *SettlementSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Settlement sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Settlement sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep job.
func (j *SettlementSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Settlement sweep job stopped")
}

// sweep lists the due orders in a short read transaction, then approves each
// one through the regular settlement handler. Orders an administrator
// settles concurrently surface as no-ops or conflicts, both fine to skip.
func (j *SettlementSweepJob) sweep(ctx context.Context) error {
	dueIDs, err := j.listDue(ctx)
	if err != nil {
		return err
	}

	for _, orderID := range dueIDs {
		command, cmdErr := commands.NewApproveSettlementCommand(orderID, j.systemActor)
		if cmdErr != nil {
			return cmdErr
		}

		approveErr := postgres.WithRetry(ctx, func(ctx context.Context) error {
			return j.handler.Handle(ctx, command)
		})
		if approveErr != nil {
			j.logger.WarnContext(ctx, "Order settlement skipped",
				"order_id", orderID.String(), "error", approveErr)
		}
	}

	return nil
}

func (j *SettlementSweepJob) listDue(ctx context.Context) ([]kernel.UUID, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	due, err := uow.OrderRepository().GetAllDueForSettlement(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(due))
	for _, dueOrder := range due {
		ids = append(ids, dueOrder.ID())
	}
	return ids, nil
}
