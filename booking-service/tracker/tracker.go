// Package tracker keeps the side records of a reservation request: the history row,
// the cached status and the passenger notification. None of them can fail a request.
package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/arunvm123/trainbooking/booking-service/cache"
	"github.com/arunvm123/trainbooking/booking-service/model"
	"github.com/arunvm123/trainbooking/booking-service/repository"
)

// Notifier publishes passenger notifications
type Notifier interface {
	PublishNotification(ctx context.Context, n model.ReservationNotification) error
}

type Tracker struct {
	repo     repository.ReservationRepository
	cache    cache.CacheRepository
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func New(repo repository.ReservationRepository, cache cache.CacheRepository, notifier Notifier, logger *slog.Logger) *Tracker {
	return &Tracker{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Start records a request as processing
func (t *Tracker) Start(ctx context.Context, msg model.ReservationRequestMessage) {
	logger := t.logger.With("request_id", msg.RequestID, "train_id", msg.TrainID)

	_, err := t.repo.CreateRecord(ctx, model.CreateRecordRequest{
		RequestID:    msg.RequestID,
		TrainID:      msg.TrainID,
		SeatCount:    msg.SeatCount,
		ContactEmail: msg.ContactEmail,
	})
	if err != nil {
		logger.Warn("failed to create reservation record", "error", err)
	}

	t.setStatus(ctx, logger, &model.ReservationStatusUpdate{
		RequestID: msg.RequestID,
		Status:    model.StatusProcessing,
		Message:   "Reservation is being processed",
		UpdatedAt: t.now(),
	})
}

// Finish records the outcome of a request and notifies the passenger when the request
// produced a reservation, fulfilled or not. Failed requests are not notified.
func (t *Tracker) Finish(ctx context.Context, msg model.ReservationRequestMessage, res model.Reservation, reserveErr error) {
	logger := t.logger.With("request_id", msg.RequestID, "train_id", msg.TrainID)
	now := t.now()

	complete := model.CompleteRecordRequest{RequestID: msg.RequestID, CompletedAt: now}
	status := &model.ReservationStatusUpdate{RequestID: msg.RequestID, UpdatedAt: now}

	switch {
	case reserveErr != nil:
		errMsg := reserveErr.Error()
		complete.Status = model.StatusFailed
		complete.ErrorMessage = &errMsg
		status.Status = model.StatusFailed
		status.Message = errMsg
	case res.IsEmpty():
		complete.Status = model.StatusUnfulfilled
		complete.Reservation = &res
		status.Status = model.StatusUnfulfilled
		status.Message = "No seats could be reserved on this train"
		status.Reservation = &res
	default:
		complete.Status = model.StatusConfirmed
		complete.Reservation = &res
		status.Status = model.StatusConfirmed
		status.Message = "Reservation confirmed"
		status.Reservation = &res
	}

	if err := t.repo.CompleteRecord(ctx, complete); err != nil {
		logger.Warn("failed to complete reservation record", "error", err)
	}
	t.setStatus(ctx, logger, status)

	if reserveErr != nil {
		return
	}
	if err := t.notifier.PublishNotification(ctx, model.NewNotification(msg, res, now)); err != nil {
		logger.Warn("failed to publish notification", "error", err)
	}
}

func (t *Tracker) setStatus(ctx context.Context, logger *slog.Logger, status *model.ReservationStatusUpdate) {
	if err := t.cache.SetReservationStatus(ctx, status, cache.StatusTTL); err != nil {
		logger.Warn("failed to cache reservation status", "error", err)
	}
}
