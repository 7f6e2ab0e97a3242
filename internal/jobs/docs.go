// Package jobs provides scheduled background tasks for the manufacturing
// service, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. ProductionProgressJob - refreshes the status of every production order
//     the scheduler is working on (UpdateProductionProgress per order)
//  2. ControlOrderSynthesisJob - creates control orders for scheduled
//     production orders that have none yet (SynthesizeControlOrders per order)
//
// # Usage
//
//	manager := jobs.NewJobManager(progressJob, synthesisJob)
//	if err := manager.StartAll(); err != nil {
//		logger.Fatal("start jobs", zap.Error(err))
//	}
//	defer manager.StopAll()
//
// # Scheduling
//
// Schedules use the six field cron syntax with seconds, or descriptors such as
// "@every 30s". Ticks of the same job never overlap; a tick that fires while
// the previous one is running is skipped. Each tick runs under its own timeout.
//
// # Error Handling
//
// A failure for one order is logged and the run continues with the next one.
// Each run is counted in the manufacturing_jobs_runs_total metric with result
// "ok" or "error".
package jobs
