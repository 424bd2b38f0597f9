package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StallSweepJob periodically sweeps active orders for stage-budget breaches
// and escalates the stalled ones.
type StallSweepJob struct {
	handler  *commands.EscalateStalledOrdersCommandHandler
	cron     *cron.Cron
	cronSpec string
	logger   *slog.Logger
}

// NewStallSweepJob creates the sweep job. The cron spec uses the standard
// five-field format, e.g. "*/5 * * * *" for every five minutes.
func NewStallSweepJob(
	handler *commands.EscalateStalledOrdersCommandHandler,
	cronSpec string,
	logger *slog.Logger,
) *StallSweepJob {
	return &StallSweepJob{
		handler:  handler,
		cron:     cron.New(),
		cronSpec: cronSpec,
		logger:   logger.With("component", "stall_sweep_job"),
	}
}

// Start schedules the sweep and begins running it.
func (j *StallSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.cronSpec, func() {
		ctx := context.Background()
		cmd := commands.NewEscalateStalledOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "stall sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "stall sweep job started", "cron", j.cronSpec)
	return nil
}

// Stop stops the sweep job.
func (j *StallSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "stall sweep job stopped")
}
