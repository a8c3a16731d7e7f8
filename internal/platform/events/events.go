// Package events publishes treasury domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	TypeCheckCleared     = "check.cleared"
	TypeCheckRejected    = "check.rejected"
	TypeTreasuryMovement = "treasury.movement"
)

// Event is the JSON envelope written to the topic. Key is the organization id so
// all events for one organization land on the same partition.
type Event struct {
	EventType      string          `json:"event_type"`
	OrganizationID string          `json:"organization_id"`
	SubjectID      string          `json:"subject_id"`
	Amount         decimal.Decimal `json:"amount,omitempty"`
	Currency       string          `json:"currency,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}

// Publisher emits events after the owning transaction has committed.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// messageWriter is the subset of *kafka.Writer used here.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events with a kafka-go Writer.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a publisher for topic on the given brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			MaxAttempts:  3,
			BatchTimeout: 10 * time.Millisecond,
			WriteTimeout: 10 * time.Second,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.EventType, err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrganizationID),
		Value: payload,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.EventType, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }

// NewPublisher returns a Kafka publisher, or a NoopPublisher when brokers is empty.
func NewPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return NoopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
