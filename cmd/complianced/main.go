package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"collection_compliance_engine/internal/app"
	"collection_compliance_engine/internal/infra/config"
	idb "collection_compliance_engine/internal/infra/database"
	"collection_compliance_engine/internal/infra/logger"
	infraMessaging "collection_compliance_engine/internal/infra/messaging"
	"collection_compliance_engine/internal/infra/scheduler"
)

func main() {
	fmt.Println("Collection Compliance Engine starting...")

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	logger.Log.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	// Load the canonical roster
	tracked, err := config.LoadRoster(cfg.RosterPath)
	if err != nil {
		logger.Log.Fatalf("Could not load location roster from %s: %v", cfg.RosterPath, err)
	}
	logger.Log.Infof("Roster loaded with %d tracked locations.", tracked.Len())

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	logger.Log.Info("Database connection established successfully.")

	// Initialize Repositories
	submissionStore := idb.NewPostgresSubmissionRepository(db)
	contactDirectory := idb.NewPostgresContactDirectory(db)
	runLedger := idb.NewPostgresRunLedger(db)
	if err := runLedger.EnsureSchema(context.Background()); err != nil {
		logger.Log.Fatalf("Could not prepare compliance run table: %v", err)
	}
	logger.Log.Info("Repositories initialized.")

	// Initialize outbound transports
	smsSender := infraMessaging.BuildSMSSender(cfg, logger.Log)
	emailSender := infraMessaging.BuildEmailSender(cfg, logger.Log)

	// Initialize Services
	reportService := app.NewReportService(tracked, submissionStore, contactDirectory, logger.Log)
	reminderService := app.NewReminderServiceImpl(
		reportService,
		contactDirectory,
		smsSender,
		emailSender,
		runLedger,
		cfg.AppBaseURL,
		logger.Log,
	)
	logger.Log.Info("Report and reminder services initialized.")

	// Initialize ComplianceScheduler
	complianceScheduler := scheduler.NewComplianceScheduler(
		reminderService,
		logger.Log,
		cfg.CronSpecPrimaryReminder,
		cfg.CronSpecFinalReminder,
	)
	complianceScheduler.Start()

	logger.Log.Info("Application setup complete. Scheduler is running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	logger.Log.Info("Shutting down application...")
	complianceScheduler.Stop()
	// db.Close() is handled by defer
	logger.Log.Info("Application shut down gracefully.")
}
