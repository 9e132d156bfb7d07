package main

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/arunvm123/trainbooking/train-data-service/model"
	"github.com/arunvm123/trainbooking/train-data-service/repository"
	"github.com/gin-gonic/gin"
)

type TrainHandler struct {
	repo    repository.TrainRepository
	storage string
	logger  *slog.Logger
}

func NewTrainHandler(repo repository.TrainRepository, storage string, logger *slog.Logger) *TrainHandler {
	return &TrainHandler{
		repo:    repo,
		storage: storage,
		logger:  logger,
	}
}

// GetTrain returns the current seat ledger of a train
func (h *TrainHandler) GetTrain(c *gin.Context) {
	trainID := c.Param("train_id")

	train, err := h.repo.GetTrain(c.Request.Context(), trainID)
	if err != nil {
		h.writeError(c, trainID, err)
		return
	}

	c.JSON(http.StatusOK, train.ToTrainResponse())
}

// Reserve writes a booking reference onto a set of seats, all or nothing
func (h *TrainHandler) Reserve(c *gin.Context) {
	var req model.ReserveAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		})
		return
	}

	train, err := h.repo.Reserve(c.Request.Context(), req.ToReserveRequest())
	if err != nil {
		h.writeError(c, req.TrainID, err)
		return
	}

	h.logger.Info("seats reserved",
		"train_id", req.TrainID,
		"booking_reference", req.BookingReference,
		"seats", req.Seats,
		"caller", c.GetString("calling_service"))

	c.JSON(http.StatusOK, train.ToTrainResponse())
}

// Reset clears every booking reference on a train
func (h *TrainHandler) Reset(c *gin.Context) {
	trainID := c.Param("train_id")

	train, err := h.repo.Reset(c.Request.Context(), trainID)
	if err != nil {
		h.writeError(c, trainID, err)
		return
	}

	h.logger.Info("train reset", "train_id", trainID, "caller", c.GetString("calling_service"))
	c.JSON(http.StatusOK, train.ToTrainResponse())
}

// HealthCheck handles health check requests
func (h *TrainHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("storage ping failed", "error", err)
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, model.HealthResponse{
		Status:    status,
		Service:   "train-data-service",
		Storage:   h.storage,
		Timestamp: time.Now(),
	})
}

func (h *TrainHandler) writeError(c *gin.Context, trainID string, err error) {
	var seatsErr *repository.SeatsError

	switch {
	case errors.Is(err, repository.ErrTrainNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Error:   "train_not_found",
			Message: "Train " + trainID + " not found",
		})
	case errors.As(err, &seatsErr) && errors.Is(err, repository.ErrSeatsDoNotExist):
		c.JSON(http.StatusConflict, model.ErrorResponse{
			Error:   "seats_do_not_exist",
			Message: "Some requested seats do not exist on this train",
			Details: gin.H{"seats": seatsErr.Seats},
		})
	case errors.As(err, &seatsErr) && errors.Is(err, repository.ErrSeatsAlreadyReserved):
		c.JSON(http.StatusConflict, model.ErrorResponse{
			Error:   "seats_already_reserved",
			Message: "Some requested seats are already reserved",
			Details: gin.H{"seats": seatsErr.Seats},
		})
	default:
		h.logger.Error("train ledger operation failed", "train_id", trainID, "error", err)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to access train ledger",
		})
	}
}
