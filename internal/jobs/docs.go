// Package jobs provides scheduled background tasks.
//
// The only job today is the stall sweep: it runs on a configurable cron
// schedule (SLA_SWEEP_CRON, every minute by default), checks every active
// order against the stage
// budget for its current status, and escalates breaches to the roles the
// stage names. Repeat escalations for the same uninterrupted stall are
// suppressed for SLA_REESCALATE_EVERY.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(escalateHandler, cfg.SlaSweepCron, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
