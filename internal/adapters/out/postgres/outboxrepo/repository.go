// Package outboxrepo stores domain events in the outbox_messages table until
// the relay job publishes them.
package outboxrepo

import (
	"context"
	"encoding/json"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OutboxMessageDTO is a row of outbox_messages. SentAt stays NULL until the
// message has been published.
type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	EventName   string     `gorm:"size:64;not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	SentAt      *time.Time `gorm:"index"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event.Payload)
		if err != nil {
			return err
		}
		dtos = append(dtos, OutboxMessageDTO{
			ID:          event.ID.Bytes(),
			AggregateID: event.AggregateID.Bytes(),
			EventName:   event.Name,
			Payload:     payload,
			OccurredAt:  event.OccurredAt,
		})
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending selects unsent rows with FOR UPDATE SKIP LOCKED so that two
// relays never publish the same message concurrently.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("sent_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		aggregateID, idErr := kernel.UUIDFromBytes(dto.AggregateID[:])
		if idErr != nil {
			return nil, idErr
		}
		messages = append(messages, ports.OutboxMessage{
			ID:          id,
			AggregateID: aggregateID,
			EventName:   dto.EventName,
			Payload:     dto.Payload,
			OccurredAt:  dto.OccurredAt,
		})
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids []kernel.UUID, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id IN ?", raw).
		Update("sent_at", sentAt.UTC()).Error
}
