package jobs

import (
	"locagest-backend/internal/config"
	"locagest-backend/internal/lifecycle"
	"locagest-backend/internal/logger"
	"locagest-backend/internal/repository"
	"locagest-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentals repository.RentalRepository
	clients repository.ClientRepository
	notes   repository.NotificationRepository
	email   service.EmailService
	clock   lifecycle.Clock
	config  *config.Config
}

func NewJobRunner(
	rentals repository.RentalRepository,
	clients repository.ClientRepository,
	notes repository.NotificationRepository,
	email service.EmailService,
	clock lifecycle.Clock,
	cfg *config.Config,
) *JobRunner {
	if clock == nil {
		clock = lifecycle.SystemClock()
	}
	return &JobRunner{
		rentals: rentals,
		clients: clients,
		notes:   notes,
		email:   email,
		clock:   clock,
		config:  cfg,
	}
}

// Config exposes the runner configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.DueDateSweep()
}
