// Package jobs provides scheduled background tasks.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// NotificationRelayJob drains the notification outbox into the configured
// sink (log, Kafka or RabbitMQ). Entries that keep failing are marked dead
// after the configured number of attempts; shipment state is never touched.
//
// # Usage
//
//	relay := jobs.NewNotificationRelayJob(handler, cmd, cfg.OutboxSchedule, 30*time.Second, logger)
//	jobManager := jobs.NewJobManager(relay)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
