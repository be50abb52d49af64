// Package eventpublisher delivers outbox messages to Kafka.
package eventpublisher

import (
	"context"
	"strings"

	"ordering/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// EventHeader carries the domain event name of a message.
const EventHeader = "event"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEventPublisher writes one Kafka message per outbox message. The order
// id is the message key, so all events of an order land on one partition in
// the order they happened.
type KafkaEventPublisher struct {
	writer messageWriter
}

// NewKafkaEventPublisher builds a hash-balanced writer for topic.
func NewKafkaEventPublisher(brokers []string, topic string) *KafkaEventPublisher {
	return NewKafkaEventPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	})
}

func NewKafkaEventPublisherWithWriter(writer messageWriter) *KafkaEventPublisher {
	return &KafkaEventPublisher{writer: writer}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, message := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(message.AggregateID.String()),
			Value: message.Payload,
			Time:  message.OccurredAt.UTC(),
			Headers: []kafka.Header{
				{Key: EventHeader, Value: []byte(message.EventName)},
				{Key: "message_id", Value: []byte(message.ID.String())},
			},
		})
	}

	return p.writer.WriteMessages(ctx, batch...)
}

func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}

// ParseBrokers splits a comma separated broker list and drops blanks.
func ParseBrokers(csv string) []string {
	brokers := make([]string, 0)
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
