package jobs

import (
	"context"
	"time"

	"homehub-backend/internal/config"
	"homehub-backend/internal/logger"
	"homehub-backend/internal/repository/postgres"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store  *postgres.Store
	config *config.Config
}

func NewJobRunner(store *postgres.Store, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:  store,
		config: cfg,
	}
}

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

// PruneInvitations removes invitation rows that are long dead: used codes
// and unused codes whose expiry passed more than the retention window ago.
// Best effort; correctness never depends on pruning, since expiry is
// enforced by timestamp comparison at redemption time.
func (jr *JobRunner) PruneInvitations() {
	jr.runWithRecovery("prune-invitations", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		retention := time.Duration(jr.config.Invitations.RetentionDays) * 24 * time.Hour
		cutoff := time.Now().Add(-retention)

		pruned, err := jr.store.InvitationRepository.DeleteExpired(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to prune invitations", "error", err)
			return
		}
		logger.Info("Pruned invitations", "count", pruned, "cutoff", cutoff.Format("2006-01-02"))
	})
}
