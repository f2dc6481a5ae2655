// internal/scheduler/jobs.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	sessionSweepJobName  = "booking_session_sweep"
	leadRetentionJobName = "lead_retention"
	leadRetentionTimeout = time.Minute
)

// SessionSweeper drops idle booking dialogs.
type SessionSweeper interface {
	Sweep() int
}

// LeadPruner deletes recorded booking requests older than a cutoff.
type LeadPruner interface {
	DeleteLeadsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RegisterSessionSweepJob periodically discards booking dialogs nobody
// touched within the session TTL.
func RegisterSessionSweepJob(sweeper SessionSweeper, cronExpr string) error {
	if sweeper == nil {
		return fmt.Errorf("session sweep job requires a session store")
	}

	jobLogger := log.With().
		Str("component", "session_sweep_job").
		Str("job_name", sessionSweepJobName).
		Str("cron", cronExpr).
		Logger()

	_, err := AddJob(sessionSweepJobName, cronExpr, func() {
		sweepSessions(sweeper, &jobLogger)
	}, gocron.WithSingletonMode(gocron.LimitModeReschedule))
	if err != nil {
		return fmt.Errorf("add session sweep job: %w", err)
	}

	jobLogger.Info().Msg("Session sweep job registered")
	return nil
}

// RegisterLeadRetentionJob periodically deletes leads older than retention.
func RegisterLeadRetentionJob(pruner LeadPruner, retention time.Duration, cronExpr string) error {
	if pruner == nil {
		return fmt.Errorf("lead retention job requires a lead store")
	}
	if retention <= 0 {
		return fmt.Errorf("lead retention must be positive")
	}

	jobLogger := log.With().
		Str("component", "lead_retention_job").
		Str("job_name", leadRetentionJobName).
		Str("cron", cronExpr).
		Dur("retention", retention).
		Logger()

	_, err := AddJob(leadRetentionJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), leadRetentionTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		pruneLeads(ctx, pruner, retention, time.Now().UTC(), &jobLogger)
	}, gocron.WithSingletonMode(gocron.LimitModeWait))
	if err != nil {
		return fmt.Errorf("add lead retention job: %w", err)
	}

	jobLogger.Info().Msg("Lead retention job registered")
	return nil
}

func sweepSessions(sweeper SessionSweeper, logger *zerolog.Logger) int {
	removed := sweeper.Sweep()
	if removed > 0 {
		logger.Info().Int("removed", removed).Msg("Idle booking sessions swept")
	}
	return removed
}

func pruneLeads(ctx context.Context, pruner LeadPruner, retention time.Duration, now time.Time, logger *zerolog.Logger) int64 {
	cutoff := now.Add(-retention)
	deleted, err := pruner.DeleteLeadsBefore(ctx, cutoff)
	if err != nil {
		logger.Error().Err(err).Time("cutoff", cutoff).Msg("Failed to prune leads")
		return 0
	}
	if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Old leads pruned")
	}
	return deleted
}
