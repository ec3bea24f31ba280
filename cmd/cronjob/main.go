package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"locagest-backend/internal/config"
	"locagest-backend/internal/jobs"
	"locagest-backend/internal/lifecycle"
	"locagest-backend/internal/logger"
	"locagest-backend/internal/repository"
	fsrepo "locagest-backend/internal/repository/firestore"
	"locagest-backend/internal/repository/postgres"
	"locagest-backend/internal/scheduler"
	"locagest-backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'due-date-sweep', 'all-nightly')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting LocaGest cronjob runner...", "log_level", cfg.Log.Level)

	rentals, clients, notes, closeFn, err := buildJobRepositories(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err)
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}
	defer closeFn()

	emailService, err := service.NewEmailServiceFromConfig(cfg)
	if err != nil {
		logger.Error("Failed to initialize email provider", "error", err)
		log.Fatalf("Failed to initialize email provider: %v", err)
	}

	jobRunner := jobs.NewJobRunner(rentals, clients, notes, emailService, lifecycle.SystemClock(), cfg)

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

func buildJobRepositories(cfg *config.Config) (
	repository.RentalRepository,
	repository.ClientRepository,
	repository.NotificationRepository,
	func() error,
	error,
) {
	if cfg.Firestore.Enabled {
		logger.Info("Using Firestore backend", "project_id", cfg.Firestore.ProjectID)
		client, err := fsrepo.NewClient(context.Background(), cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		store := fsrepo.NewStore(client)
		return store.RentalRepository, store.ClientRepository, store.NotificationRepository, client.Close, nil
	}

	logger.Info("Using PostgreSQL backend", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, nil, nil, err
	}
	store := postgres.NewStore(db)
	return store.RentalRepository, store.ClientRepository, store.NotificationRepository, db.Close, nil
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "due-date-sweep":
		jobRunner.DueDateSweep()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - due-date-sweep\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
