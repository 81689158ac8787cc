package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// WithdrawalBatchJob periodically settles every pending withdrawal request
// whose balance still covers it, acting as the system administrator.
type WithdrawalBatchJob struct {
	handler     commands.ProcessWithdrawalsBatchCommandHandler
	systemActor kernel.UUID
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewWithdrawalBatchJob creates a batch job running on the given cron
// schedule (seconds resolution).
func NewWithdrawalBatchJob(
	handler commands.ProcessWithdrawalsBatchCommandHandler,
	systemActor kernel.UUID,
	schedule string,
	logger *slog.Logger,
) *WithdrawalBatchJob {
	return &WithdrawalBatchJob{
		handler:     handler,
		systemActor: systemActor,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "withdrawal_batch_job"),
	}
}

// Start schedules the batch run.
func (j *WithdrawalBatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		j.run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Withdrawal batch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the batch job.
func (j *WithdrawalBatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Withdrawal batch job stopped")
}

func (j *WithdrawalBatchJob) run(ctx context.Context) {
	command, err := commands.NewProcessWithdrawalsBatchCommand(j.systemActor)
	if err != nil {
		j.logger.ErrorContext(ctx, "Withdrawal batch command rejected", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, command)
	if err != nil {
		j.logger.ErrorContext(ctx, "Withdrawal batch failed", "error", err)
		return
	}

	if len(result.Completed)+len(result.Skipped)+len(result.Failed) > 0 {
		j.logger.InfoContext(ctx, "Withdrawal batch finished",
			"completed", len(result.Completed),
			"skipped", len(result.Skipped),
			"failed", len(result.Failed))
	}
}
