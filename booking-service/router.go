package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/arunvm123/trainbooking/booking-service/cache/redis"
	"github.com/arunvm123/trainbooking/booking-service/config"
	"github.com/arunvm123/trainbooking/booking-service/messaging"
	"github.com/arunvm123/trainbooking/booking-service/metrics"
	"github.com/arunvm123/trainbooking/booking-service/repository/postgres"
	"github.com/arunvm123/trainbooking/booking-service/reservation"
	httpservice "github.com/arunvm123/trainbooking/booking-service/service/http"
	"github.com/arunvm123/trainbooking/booking-service/tracker"
	"github.com/arunvm123/trainbooking/internal/httpmw"
	"github.com/arunvm123/trainbooking/internal/serviceauth"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the ticket office. The returned closers must be closed on shutdown.
func SetupRouter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gin.Engine, []io.Closer, error) {
	// Initialize repository
	repo, err := postgres.NewReservationRepository(cfg.Database.GetDatabaseURL(), postgres.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.GetConnMaxLifetime(),
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	// Initialize cache
	statusCache, err := redis.NewRedisCacheRepository(ctx, cfg.Redis.GetRedisURL(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	// Backend clients with connection pooling
	tokens := serviceauth.NewTokenService(cfg.JWTSecret, "booking-service")
	trains := httpservice.NewHTTPTrainDataService(&cfg.TrainData, tokens)
	refs := httpservice.NewHTTPBookingReferenceService(&cfg.BookingReference)

	m := metrics.New()
	orchestrator := reservation.NewOrchestrator(trains, refs,
		reservation.WithMaxAttempts(cfg.Reservation.MaxAttempts),
		reservation.WithLogger(logger),
		reservation.WithRecorder(m),
	)

	requestWriter := messaging.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.RequestTopic)
	notificationWriter := messaging.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic)
	publisher := messaging.NewPublisher(requestWriter, notificationWriter)

	handler := NewReservationHandler(
		orchestrator,
		repo,
		statusCache,
		publisher,
		tracker.New(repo, statusCache, publisher, logger),
		logger,
	)

	closers := []io.Closer{requestWriter, notificationWriter, statusCache}
	return newRouter(handler, m, logger), closers, nil
}

func newRouter(handler *ReservationHandler, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmw.CORSMiddleware())
	r.Use(httpmw.RequestLogger(logger))

	// Health check and metrics (no auth required)
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	api.POST("/reserve", handler.Reserve)
	api.POST("/reservation-requests", handler.SubmitReservationRequest)
	api.GET("/reservation-requests/:requestId", handler.GetReservationRequest)
	api.GET("/reservations/:bookingReference", handler.GetReservation)

	return r
}
