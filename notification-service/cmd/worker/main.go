package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/arunvm123/trainbooking/internal/logging"
	"github.com/arunvm123/trainbooking/notification-service/config"
	"github.com/arunvm123/trainbooking/notification-service/processor"
	"github.com/segmentio/kafka-go"
)

func main() {
	// Load configuration (fallback to env variables if config file not found)
	cfg, err := config.Initialise("config.yaml", false)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	logger.Info("starting notification service worker", "topic", cfg.Kafka.NotificationTopic)

	// Setup Kafka consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.NotificationTopic,
		GroupID: cfg.Kafka.ConsumerGroup,
	})
	defer consumer.Close()

	// Graceful shutdown context
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := processor.New(processor.LogSender{Logger: logger}, cfg.Email.From(), logger)
	if err := p.Run(ctx, consumer); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("Worker error:", err)
	}

	logger.Info("worker stopped gracefully", "messages_processed", p.Processed())
}
