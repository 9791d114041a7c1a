// Package jobs provides scheduled read-only reports for the fulfillment service.
//
// Jobs run on github.com/robfig/cron/v3 with a seconds field and never mutate
// state: every change to orders, tasks and stock goes through a command handler.
//
// # Available Jobs
//
// 1. LowStockReportJob - logs storage units whose available quantity is at or below a threshold
// 2. BacklogReportJob - logs how many orders are waiting for picking and how long the oldest has waited
//
// # Usage
//
//	jobManager := jobs.NewJobManager(lowStockJob, backlogJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the next run proceeds as scheduled. A job whose
// schedule does not parse fails to start, and already started jobs are stopped.
package jobs
