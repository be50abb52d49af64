package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
)

// PublishOutboxCommandHandler relays pending outbox messages to the broker.
// Fetching, publishing and marking happen inside one transaction: rows stay
// locked while they are published, and a failed publish leaves them pending
// for the next run. Delivery is therefore at-least-once.
type PublishOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

func NewPublishOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) PublishOutboxCommandHandler {
	return PublishOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle returns the number of messages published.
func (h *PublishOutboxCommandHandler) Handle(ctx context.Context, cmd PublishOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, persistenceError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, persistenceError("fetch outbox", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return 0, err
	}

	ids := make([]kernel.UUID, 0, len(messages))
	for _, message := range messages {
		ids = append(ids, message.ID)
	}
	if err = outbox.MarkSent(ctx, ids, h.now()); err != nil {
		return 0, persistenceError("mark outbox sent", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, persistenceError("commit outbox", err)
	}

	return len(messages), nil
}
