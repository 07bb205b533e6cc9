package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"teach-trade/pkg/metrics"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	BookingCreated     = "booking.created"
	BookingRescheduled = "booking.rescheduled"
	BookingConfirmed   = "booking.confirmed"
	BookingCompleted   = "booking.completed"
	BookingCancelled   = "booking.cancelled"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	CourseID   string    `json:"course_id"`
	LearnerID  string    `json:"learner_id"`
	Status     string    `json:"status"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// messageWriter is the part of *kafka.Writer the producer needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducer struct {
	topic  string
	writer messageWriter
	log    *zap.Logger
}

// NewKafkaProducer returns an async producer: Publish only enqueues, and
// delivery failures are reported through delivered.
func NewKafkaProducer(brokers []string, topic string, log *zap.Logger) *KafkaProducer {
	p := &KafkaProducer{
		topic: topic,
		log:   log.With(zap.String("producer", "booking-events")),
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion:   p.delivered,
	}

	return p
}

func (p *KafkaProducer) delivered(msgs []kafka.Message, err error) {
	if err == nil {
		return
	}
	metrics.EventPublishFailures.Add(float64(len(msgs)))
	p.log.Warn("Booking events not delivered",
		zap.Error(err),
		zap.String("topic", p.topic),
		zap.Int("count", len(msgs)),
	)
}

// Publish enqueues the event keyed by booking ID so events of one booking stay ordered
func (p *KafkaProducer) Publish(ctx context.Context, event BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.BookingID),
		Value: data,
		Time:  event.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s to %s: %w", event.Type, p.topic, err)
	}
	return nil
}

func (p *KafkaProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// Nop drops every event
type Nop struct{}

func (Nop) Publish(context.Context, BookingEvent) error { return nil }
func (Nop) Close() error { return nil }
