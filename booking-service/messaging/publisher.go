// Package messaging puts reservation requests and notifications on kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arunvm123/trainbooking/booking-service/model"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher writes JSON messages keyed by request id. Each topic has its own writer.
type Publisher struct {
	requests      MessageWriter
	notifications MessageWriter
}

func NewPublisher(requests, notifications MessageWriter) *Publisher {
	return &Publisher{requests: requests, notifications: notifications}
}

// NewWriter creates a kafka writer for one topic
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// PublishRequest queues a reservation request for the worker
func (p *Publisher) PublishRequest(ctx context.Context, msg model.ReservationRequestMessage) error {
	return write(ctx, p.requests, msg.RequestID, msg)
}

// PublishNotification hands a finished reservation to the notification service
func (p *Publisher) PublishNotification(ctx context.Context, n model.ReservationNotification) error {
	return write(ctx, p.notifications, n.ReservationData.RequestID, n)
}

func write(ctx context.Context, w MessageWriter, key string, v interface{}) error {
	if w == nil {
		return fmt.Errorf("no writer configured")
	}

	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}
