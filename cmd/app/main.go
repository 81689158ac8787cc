package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"marketplace/cmd"
	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres/auditrepo"
	"marketplace/internal/adapters/out/postgres/commissionrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/withdrawalrepo"
	"marketplace/internal/adapters/out/postgres/workerrepo"
	"marketplace/internal/adapters/out/rabbitmq"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := loadConfig(logger)

	db := openDatabase(config, logger)
	migrate(db, logger)

	publisher, err := rabbitmq.NewEventPublisher(config.RabbitMQURL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer func() { _ = publisher.Close() }()

	systemActor, err := kernel.UUIDFromString(config.SystemActorID)
	if err != nil {
		logger.Error("SYSTEM_ACTOR_ID is not a valid UUID", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(config, db, publisher, systemActor, logger)

	sweepJob := root.CreateSettlementSweepJob(config.SweepSchedule)
	if err = sweepJob.Start(); err != nil {
		logger.Error("Failed to start settlement sweep job", "error", err)
		os.Exit(1)
	}
	defer sweepJob.Stop()

	if config.WithdrawalBatchSchedule != "" {
		batchJob := root.CreateWithdrawalBatchJob(config.WithdrawalBatchSchedule)
		if err = batchJob.Start(); err != nil {
			logger.Error("Failed to start withdrawal batch job", "error", err)
			os.Exit(1)
		}
		defer batchJob.Stop()
	}

	startWebServer(&root, config.HTTPPort)
}

func loadConfig(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, relying on process environment")
	}

	return cmd.Config{
		HTTPPort:   envOrDefault("HTTP_PORT", "8080"),
		DBHost:     mustEnv("DB_HOST", logger),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     mustEnv("DB_USER", logger),
		DBPassword: mustEnv("DB_PASSWORD", logger),
		DBName:     mustEnv("DB_NAME", logger),
		DBSslMode:  envOrDefault("DB_SSLMODE", "disable"),

		RabbitMQURL: mustEnv("RABBITMQ_URL", logger),

		GeofenceRadiusM: envFloat("GEOFENCE_RADIUS_M", 150, logger),
		GracePeriodMin:  envInt("GRACE_PERIOD_MIN", 120, logger),

		SweepSchedule:           envOrDefault("SWEEP_SCHEDULE", "0 * * * * *"),
		WithdrawalBatchSchedule: os.Getenv("WITHDRAWAL_BATCH_SCHEDULE"),

		SystemActorID: mustEnv("SYSTEM_ACTOR_ID", logger),
	}
}

func mustEnv(key string, logger *slog.Logger) string {
	value := os.Getenv(key)
	if value == "" {
		logger.Error("Required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envFloat(key string, fallback float64, logger *slog.Logger) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Error("Environment variable is not a number", "key", key, "value", raw)
		os.Exit(1)
	}
	return value
}

func envInt(key string, fallback int, logger *slog.Logger) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		logger.Error("Environment variable is not an integer", "key", key, "value", raw)
		os.Exit(1)
	}
	return value
}

func openDatabase(config cmd.Config, logger *slog.Logger) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	return db
}

func migrate(db *gorm.DB, logger *slog.Logger) {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&workerrepo.WorkerDTO{},
		&commissionrepo.EntryDTO{},
		&withdrawalrepo.RequestDTO{},
		&auditrepo.TransitionDTO{},
	)
	if err != nil {
		logger.Error("Database migration failed", "error", err)
		os.Exit(1)
	}
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(gommonlog.INFO)
	e.Use(middleware.Recover())

	metrics := httpadapter.NewMetrics(prometheus.DefaultRegisterer)
	e.Use(metrics.Middleware())
	httpadapter.RegisterMetricsRoute(e, prometheus.DefaultGatherer)

	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "Healthy")
	})

	server := httpadapter.NewServer(httpadapter.ServerParams{
		ClaimOrder:        root.CreateClaimOrderCommandHandler(),
		ReleaseClaim:      root.CreateReleaseClaimCommandHandler(),
		ReportCheckpoint:  root.CreateReportCheckpointCommandHandler(),
		ConfirmDelivery:   root.CreateConfirmDeliveryCommandHandler(),
		ConfirmReceipt:    root.CreateConfirmReceiptCommandHandler(),
		ReportIssue:       root.CreateReportIssueCommandHandler(),
		ResolveIssue:      root.CreateResolveIssueCommandHandler(),
		RecordEarnings:    root.CreateRecordEarningsCommandHandler(),
		ApproveSettlement: root.CreateApproveSettlementCommandHandler(),
		ReviewPayment:     root.CreateReviewPaymentCommandHandler(),
		RequestWithdrawal: root.CreateRequestWithdrawalCommandHandler(),
		ProcessWithdrawal: root.CreateProcessWithdrawalCommandHandler(),

		ClaimableOrders:    root.CreateGetClaimableOrdersQueryHandler(),
		OrderHistory:       root.CreateGetOrderHistoryQueryHandler(),
		AvailableBalance:   root.CreateGetAvailableBalanceQueryHandler(),
		PendingWithdrawals: root.CreateGetPendingWithdrawalsQueryHandler(),
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
