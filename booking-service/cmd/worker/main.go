package main

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/arunvm123/trainbooking/booking-service/cache/redis"
	"github.com/arunvm123/trainbooking/booking-service/config"
	"github.com/arunvm123/trainbooking/booking-service/messaging"
	"github.com/arunvm123/trainbooking/booking-service/metrics"
	"github.com/arunvm123/trainbooking/booking-service/repository/postgres"
	"github.com/arunvm123/trainbooking/booking-service/reservation"
	"github.com/arunvm123/trainbooking/booking-service/service/http"
	"github.com/arunvm123/trainbooking/booking-service/tracker"
	"github.com/arunvm123/trainbooking/booking-service/worker"
	"github.com/arunvm123/trainbooking/internal/logging"
	"github.com/arunvm123/trainbooking/internal/serviceauth"
	"github.com/segmentio/kafka-go"
)

func main() {
	// Load configuration (fallback to env variables if config file not found)
	cfg, err := config.Initialise("config.yaml", false)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	logger.Info("starting booking service worker")

	// Graceful shutdown context
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repository
	repo, err := postgres.NewReservationRepository(cfg.Database.GetDatabaseURL(), postgres.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.GetConnMaxLifetime(),
	}, logger)
	if err != nil {
		log.Fatal("Failed to initialize repository:", err)
	}

	// Initialize cache
	statusCache, err := redis.NewRedisCacheRepository(ctx, cfg.Redis.GetRedisURL(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal("Failed to initialize cache:", err)
	}
	defer statusCache.Close()

	// Metrics are served on their own port since the worker has no API
	m := metrics.New()
	go func() {
		mux := nethttp.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		if err := nethttp.ListenAndServe(":"+cfg.Worker.MetricsPort, mux); err != nil {
			logger.Warn("metrics server stopped", "error", err)
		}
	}()

	// Backend clients
	tokens := serviceauth.NewTokenService(cfg.JWTSecret, "booking-service-worker")
	orchestrator := reservation.NewOrchestrator(
		http.NewHTTPTrainDataService(&cfg.TrainData, tokens),
		http.NewHTTPBookingReferenceService(&cfg.BookingReference),
		reservation.WithMaxAttempts(cfg.Reservation.MaxAttempts),
		reservation.WithLogger(logger),
		reservation.WithRecorder(m),
	)

	// Initialize Kafka writer for notifications
	notificationWriter := messaging.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic)
	defer notificationWriter.Close()
	publisher := messaging.NewPublisher(nil, notificationWriter)

	// Setup Kafka consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.RequestTopic,
		GroupID: cfg.Kafka.ConsumerGroup,
	})
	defer consumer.Close()

	processor := worker.NewReservationProcessor(
		orchestrator,
		tracker.New(repo, statusCache, publisher, logger),
		consumer,
		cfg.Worker.MaxWorkers,
		logger,
	)

	if err := processor.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker error", "error", err)
		os.Exit(1)
	}

	logger.Info("worker stopped gracefully")
}
