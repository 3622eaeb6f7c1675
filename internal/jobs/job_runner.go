package jobs

import (
	"time"

	"library-selfcheck/internal/config"
	"library-selfcheck/internal/logger"
	"library-selfcheck/internal/repository"
)

// JobRunner coordinates the scheduled maintenance jobs
type JobRunner struct {
	loans   repository.LoanRepository
	members repository.MemberRepository
	config  *config.Config
	now     func() time.Time
}

// NewJobRunner creates a job runner with all dependencies
func NewJobRunner(loans repository.LoanRepository, members repository.MemberRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		loans:   loans,
		members: members,
		config:  cfg,
		now:     time.Now,
	}
}

// Config returns the runner's configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// SetClock overrides the runner's time source. For tests.
func (jr *JobRunner) SetClock(now func() time.Time) {
	jr.now = now
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
	jr.MarkOverdueLoans()
}
