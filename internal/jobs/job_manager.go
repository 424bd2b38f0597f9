package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	stallSweepJob *StallSweepJob
}

// NewJobManager creates a job manager wired to the given handlers.
func NewJobManager(
	escalateHandler *commands.EscalateStalledOrdersCommandHandler,
	sweepCronSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		stallSweepJob: NewStallSweepJob(escalateHandler, sweepCronSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.stallSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start stall sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stallSweepJob.Stop()
}
