package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a mutation. Events are
// written to the outbox in the same transaction as the aggregate.
type DomainEvent struct {
	ID          UUID
	Name        string
	AggregateID UUID
	OccurredAt  time.Time
	Payload     map[string]any
}

func NewDomainEvent(name string, aggregateID UUID, occurredAt time.Time, payload map[string]any) DomainEvent {
	return DomainEvent{
		ID:          NewUUID(),
		Name:        name,
		AggregateID: aggregateID,
		OccurredAt:  occurredAt.UTC(),
		Payload:     payload,
	}
}
