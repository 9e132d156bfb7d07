// Package processor turns reservation notifications into passenger emails.
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/arunvm123/trainbooking/notification-service/model"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader the processor needs
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Sender delivers a rendered email
type Sender interface {
	Send(ctx context.Context, email *model.EmailTemplate) error
}

// LogSender simulates email delivery by logging the email
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, email *model.EmailTemplate) error {
	s.Logger.Info("mock email sent",
		"from", email.From,
		"to", email.To,
		"subject", email.Subject,
		"body", email.Body)
	return nil
}

type Processor struct {
	sender    Sender
	from      string
	logger    *slog.Logger
	processed int64
}

func New(sender Sender, from string, logger *slog.Logger) *Processor {
	return &Processor{sender: sender, from: from, logger: logger}
}

// Run consumes notifications until ctx is cancelled
func (p *Processor) Run(ctx context.Context, consumer MessageReader) error {
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Warn("error reading message", "error", err)
			continue
		}

		if err := p.Handle(ctx, msg); err != nil {
			p.logger.Error("error processing notification", "error", err)
		}
		atomic.AddInt64(&p.processed, 1)
	}
}

// Processed returns how many messages have been handled
func (p *Processor) Processed() int64 {
	return atomic.LoadInt64(&p.processed)
}

// Handle renders and sends the email for one message. Unknown notification types
// and notifications without a recipient are skipped.
func (p *Processor) Handle(ctx context.Context, msg kafka.Message) error {
	var n model.ReservationNotification
	if err := json.Unmarshal(msg.Value, &n); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	logger := p.logger.With("type", n.Type, "request_id", n.ReservationData.RequestID)

	if n.RecipientEmail == "" {
		logger.Debug("notification has no recipient, skipping")
		return nil
	}

	email, ok := n.Render(p.from)
	if !ok {
		logger.Warn("unknown notification type")
		return nil
	}

	if err := p.sender.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("notification sent", "to", n.RecipientEmail)
	return nil
}
