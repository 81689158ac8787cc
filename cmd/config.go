package cmd

// Config carries the environment-driven settings for the service.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RabbitMQURL string

	// GeofenceRadiusM is the acceptance radius in meters for geofenced
	// checkpoints.
	GeofenceRadiusM float64
	// GracePeriodMin is the dispute window in minutes started on delivery.
	GracePeriodMin int

	// SweepSchedule is the cron expression (seconds resolution) for the
	// settlement sweep.
	SweepSchedule string
	// WithdrawalBatchSchedule is the cron expression for the withdrawal
	// batch run. Empty disables the job.
	WithdrawalBatchSchedule string

	// SystemActorID is the UUID recorded as actor on sweep-driven
	// settlements and batch-driven withdrawals.
	SystemActorID string
}
