package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/segmentio/kafka-go"
)

const (
	kafkaMaxAttempts  = 3
	kafkaWriteTimeout = 2 * time.Second
	// kafkaPublishTimeout bounds one Handle call across every retry.
	kafkaPublishTimeout = 5 * time.Second
)

// messageWriter is the subset of *kafka.Writer the listener needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaListener streams events to a Kafka topic keyed by aggregate id, so
// events about one account or transaction stay ordered within a partition.
type KafkaListener struct {
	writer messageWriter
}

// NewKafkaWriter creates a writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		MaxAttempts:  kafkaMaxAttempts,
		WriteTimeout: kafkaWriteTimeout,
	}
}

// NewKafkaListener creates a listener writing through w.
func NewKafkaListener(w messageWriter) *KafkaListener {
	return &KafkaListener{writer: w}
}

func (l *KafkaListener) Name() string { return "kafka" }

func (l *KafkaListener) Handle(ctx context.Context, event domain.Event) error {
	env, err := NewEnvelope(event)
	if err != nil {
		return err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(env.AggregateID),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.Type)},
		},
	}
	ctx, cancel := context.WithTimeout(ctx, kafkaPublishTimeout)
	defer cancel()
	if err := l.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s to kafka: %w", env.Type, err)
	}
	return nil
}
