package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/arunvm123/trainbooking/booking-service/cache"
	"github.com/arunvm123/trainbooking/booking-service/model"
	"github.com/arunvm123/trainbooking/booking-service/repository"
	"github.com/arunvm123/trainbooking/booking-service/reservation"
	"github.com/arunvm123/trainbooking/booking-service/service"
	"github.com/arunvm123/trainbooking/booking-service/tracker"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Reserver runs a reservation end to end
type Reserver interface {
	Reserve(ctx context.Context, trainID string, seatCount int) (model.Reservation, error)
}

// RequestQueue hands reservation requests to the worker
type RequestQueue interface {
	PublishRequest(ctx context.Context, msg model.ReservationRequestMessage) error
}

type ReservationHandler struct {
	reserver Reserver
	repo     repository.ReservationRepository
	cache    cache.CacheRepository
	queue    RequestQueue
	tracker  *tracker.Tracker
	logger   *slog.Logger
}

func NewReservationHandler(
	reserver Reserver,
	repo repository.ReservationRepository,
	cache cache.CacheRepository,
	queue RequestQueue,
	tracker *tracker.Tracker,
	logger *slog.Logger,
) *ReservationHandler {
	return &ReservationHandler{
		reserver: reserver,
		repo:     repo,
		cache:    cache,
		queue:    queue,
		tracker:  tracker,
		logger:   logger,
	}
}

// Reserve books seats synchronously and returns the reservation
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req model.ReserveAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		})
		return
	}

	msg := model.ReservationRequestMessage{
		RequestID: uuid.NewString(),
		TrainID:   req.TrainID,
		SeatCount: req.SeatCount,
		Timestamp: time.Now(),
	}

	if err := reservation.Validate(req.TrainID, req.SeatCount); err != nil {
		writeReserveError(c, err)
		return
	}

	// A client disconnect must not abandon a reservation the ledger may already hold
	ctx := context.WithoutCancel(c.Request.Context())
	h.tracker.Start(ctx, msg)

	res, err := h.reserver.Reserve(ctx, req.TrainID, req.SeatCount)
	h.tracker.Finish(ctx, msg, res, err)

	if err != nil {
		writeReserveError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// SubmitReservationRequest queues a reservation for async processing
func (h *ReservationHandler) SubmitReservationRequest(c *gin.Context) {
	var req model.ReservationRequestAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		})
		return
	}

	msg := model.ReservationRequestMessage{
		RequestID:    uuid.NewString(),
		TrainID:      req.TrainID,
		SeatCount:    req.SeatCount,
		ContactEmail: req.ContactEmail,
		Timestamp:    time.Now(),
	}

	ctx := c.Request.Context()
	h.tracker.Start(ctx, msg)

	if err := h.queue.PublishRequest(ctx, msg); err != nil {
		h.logger.Error("failed to queue reservation request", "request_id", msg.RequestID, "error", err)
		h.tracker.Finish(ctx, msg, model.Reservation{}, fmt.Errorf("failed to queue request: %w", err))
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{
			Error:   "queue_unavailable",
			Message: "Failed to queue reservation request",
		})
		return
	}

	c.JSON(http.StatusAccepted, model.ReservationRequestResponse{
		RequestID: msg.RequestID,
		Status:    model.StatusProcessing,
		Message:   "Reservation request is being processed",
		StatusURL: fmt.Sprintf("/api/reservation-requests/%s", msg.RequestID),
	})
}

// GetReservationRequest returns the progress of a queued request
func (h *ReservationHandler) GetReservationRequest(c *gin.Context) {
	requestID := c.Param("requestId")
	ctx := c.Request.Context()

	status, err := h.cache.GetReservationStatus(ctx, requestID)
	if err != nil {
		h.logger.Warn("failed to read cached status", "request_id", requestID, "error", err)
	}
	if status != nil {
		c.JSON(http.StatusOK, status)
		return
	}

	// Cache miss, get from database
	record, err := h.repo.GetByRequestID(ctx, requestID)
	if err != nil {
		h.writeLookupError(c, err, "Reservation request not found")
		return
	}

	c.JSON(http.StatusOK, model.ReservationStatusUpdate{
		RequestID:   record.RequestID,
		Status:      record.Status,
		Reservation: record.ToReservation(),
		UpdatedAt:   updatedAt(record),
	})
}

// GetReservation returns the recorded reservation for a booking reference
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	record, err := h.repo.GetByBookingReference(c.Request.Context(), c.Param("bookingReference"))
	if err != nil {
		h.writeLookupError(c, err, "Reservation not found")
		return
	}

	c.JSON(http.StatusOK, record.ToRecordResponse())
}

// HealthCheck handles health check endpoint
func (h *ReservationHandler) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	checks := map[string]string{"database": "ok", "cache": "ok"}
	status, code := "healthy", http.StatusOK

	if err := h.repo.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	if err := h.cache.Ping(ctx); err != nil {
		checks["cache"] = err.Error()
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, model.HealthResponse{
		Status:    status,
		Service:   "booking-service",
		Checks:    checks,
		Timestamp: time.Now(),
	})
}

func (h *ReservationHandler) writeLookupError(c *gin.Context, err error, notFound string) {
	if errors.Is(err, repository.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Error:   "not_found",
			Message: notFound,
		})
		return
	}
	h.logger.Error("failed to read reservation history", "error", err)
	c.JSON(http.StatusInternalServerError, model.ErrorResponse{
		Error:   "internal_error",
		Message: "Failed to retrieve reservation",
	})
}

func writeReserveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrTrainNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Error:   "train_not_found",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusBadGateway, model.ErrorResponse{
			Error:   "backend_unavailable",
			Message: "The train data service could not complete the reservation",
		})
	}
}

func updatedAt(record *model.ReservationRecord) time.Time {
	if record.CompletedAt != nil {
		return *record.CompletedAt
	}
	return record.CreatedAt
}
