package jobs

import (
	"fmt"
	"time"

	"roofbox-backend/internal/config"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/repository"
	"roofbox-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentals  repository.RentalRequestRepository
	contacts repository.ContactMessageRepository
	sessions repository.SessionRepository
	mailer   service.Mailer
	config   *config.Config
	now      func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	rentals repository.RentalRequestRepository,
	contacts repository.ContactMessageRepository,
	sessions repository.SessionRepository,
	mailer service.Mailer,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		rentals:  rentals,
		contacts: contacts,
		sessions: sessions,
		mailer:   mailer,
		config:   cfg,
		now:      time.Now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
	}()

	start := jr.now()
	logger.Info("Starting job", "job", jobName)
	if err = jobFunc(); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		return err
	}
	logger.Info("Job completed", "job", jobName, "duration_ms", jr.now().Sub(start).Milliseconds())
	return nil
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.SendPendingDigest()
	jr.PurgeExpiredSessions()
}
