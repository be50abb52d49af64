package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event waiting to be published. Payload is the JSON
// encoding of the event payload; AggregateID is the order the event belongs to
// and becomes the Kafka message key, so events of one order stay ordered.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	EventName   string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository is the transactional outbox. The unit of work writes to it
// on Commit; the relay reads from it and marks rows sent in its own
// transaction.
//
// Example (relay side):
//
//	pending, err := uow.OutboxRepository().FetchPending(ctx, 100)
//	if err = publisher.Publish(ctx, pending...); err != nil {
//	    return err // rows stay pending and are retried
//	}
//	err = uow.OutboxRepository().MarkSent(ctx, ids(pending), time.Now())
type OutboxRepository interface {
	// Add stores events for later publication.
	Add(ctx context.Context, events ...kernel.DomainEvent) error

	// FetchPending returns up to limit unsent messages, oldest first, locking
	// them so that concurrent relays skip them.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkSent stamps the given messages as published.
	MarkSent(ctx context.Context, ids []kernel.UUID, sentAt time.Time) error
}

// EventPublisher delivers outbox messages to the message broker. Publish is
// all or nothing from the caller's point of view: on error none of the
// messages are marked sent, so delivery is at least once.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
