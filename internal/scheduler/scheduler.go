package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"homehub-backend/internal/jobs"
	"homehub-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// UTC with seconds precision, matching the config cron specs
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	_, err := s.cron.AddFunc(cfg.PruneInvitations, s.jobs.PruneInvitations)
	if err != nil {
		logger.Error("Failed to register PruneInvitations job", "error", err)
	}
}

// Start begins running the scheduled jobs
func (s *Scheduler) Start() {
	logger.Info("Scheduler starting")
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	logger.Info("Scheduler stopping")
	ctx := s.cron.Stop()
	<-ctx.Done()
}
