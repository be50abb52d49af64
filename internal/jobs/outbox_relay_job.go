package jobs

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultOutboxRelaySchedule  = "@every 5s"
	DefaultOutboxRelayBatchSize = 100
	// maxBatchesPerRun bounds how long one tick may keep draining a backlog.
	maxBatchesPerRun = 10
)

type outboxPublisher interface {
	Handle(ctx context.Context, cmd commands.PublishOutboxCommand) (int, error)
}

// OutboxRelayJob periodically moves pending outbox messages to the broker.
// A tick that is still running when the next one fires is skipped.
type OutboxRelayJob struct {
	handler   outboxPublisher
	cron      *cron.Cron
	schedule  string
	batchSize int
	timeout   time.Duration
	logger    *zap.Logger
}

func NewOutboxRelayJob(handler outboxPublisher, schedule string, batchSize int, logger *zap.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	if batchSize <= 0 {
		batchSize = DefaultOutboxRelayBatchSize
	}
	logger = logger.Named("outbox_relay_job")

	return &OutboxRelayJob{
		handler:   handler,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger}))),
		schedule:  schedule,
		batchSize: batchSize,
		timeout:   30 * time.Second,
		logger:    logger,
	}
}

func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewPublishOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		j.run(ctx, cmd)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("outbox relay job started", zap.String("schedule", j.schedule), zap.Int("batch_size", j.batchSize))
	return nil
}

// Stop waits for a running tick to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("outbox relay job stopped")
}

// run publishes full batches until the outbox is drained.
func (j *OutboxRelayJob) run(ctx context.Context, cmd commands.PublishOutboxCommand) int {
	total := 0
	for range maxBatchesPerRun {
		published, err := j.handler.Handle(ctx, cmd)
		total += published
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				j.logger.Error("outbox relay failed", zap.Int("published", total), zap.Error(err))
			}
			return total
		}
		if published < cmd.BatchSize() {
			break
		}
	}

	if total > 0 {
		j.logger.Debug("outbox messages published", zap.Int("count", total))
	}
	return total
}

// cronLogger routes cron's own messages to zap.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
