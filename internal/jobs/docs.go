// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are built on github.com/robfig/cron/v3 and log through zap.
//
// # Available Jobs
//
// OutboxRelayJob drains the transactional outbox: on every tick it publishes
// pending domain events to Kafka in batches and marks them as sent. A message
// that fails to publish stays pending and is retried on the next tick, so
// consumers must tolerate duplicates.
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(&publishOutboxHandler, "@every 5s", 100, logger)
//	jobManager := jobs.NewJobManager(logger, relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
