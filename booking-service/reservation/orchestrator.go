// Package reservation runs the reserve-N-seats-on-train-T operation: fetch a snapshot,
// allocate, commit, and start over on a conflict.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/arunvm123/trainbooking/booking-service/allocator"
	"github.com/arunvm123/trainbooking/booking-service/model"
	"github.com/arunvm123/trainbooking/booking-service/service"
	"github.com/arunvm123/trainbooking/internal/logging"
)

// DefaultMaxAttempts bounds how many conflicting commits a request survives.
const DefaultMaxAttempts = 3

// ErrInvalidRequest is returned before any backend call for an empty train id or a
// seat count below one.
var ErrInvalidRequest = errors.New("invalid reservation request")

// Outcomes reported to the Recorder
const (
	OutcomeReserved         = "reserved"
	OutcomeNoCapacity       = "no_capacity"
	OutcomeRetriesExhausted = "retries_exhausted"
	OutcomeInvalidRequest   = "invalid_request"
	OutcomeTrainNotFound    = "train_not_found"
	OutcomeError            = "error"

	CommitSuccess  = "success"
	CommitConflict = "conflict"
	CommitError    = "error"
)

// Recorder receives reservation telemetry.
type Recorder interface {
	CommitAttempt(result string)
	Reservation(outcome string, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) CommitAttempt(string) {}
func (nopRecorder) Reservation(string, time.Duration) {}

type Orchestrator struct {
	trains      service.TrainDataService
	committer   *Committer
	maxAttempts int
	logger      *slog.Logger
	recorder    Recorder
	now         func() time.Time
}

type Option func(*Orchestrator)

// WithMaxAttempts overrides DefaultMaxAttempts. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(o *Orchestrator) {
		if recorder != nil {
			o.recorder = recorder
		}
	}
}

func NewOrchestrator(trains service.TrainDataService, refs service.BookingReferenceService, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		trains:      trains,
		committer:   NewCommitter(trains, refs),
		maxAttempts: DefaultMaxAttempts,
		logger:      logging.NewNop(),
		recorder:    nopRecorder{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate rejects an empty train id or a seat count below one with ErrInvalidRequest.
func Validate(trainID string, seatCount int) error {
	if strings.TrimSpace(trainID) == "" {
		return fmt.Errorf("%w: train id is required", ErrInvalidRequest)
	}
	if seatCount < 1 {
		return fmt.Errorf("%w: seat count must be at least 1, got %d", ErrInvalidRequest, seatCount)
	}
	return nil
}

// Reserve books seatCount seats on one coach of trainID.
//
// When the train has no room, or every attempt conflicts with a concurrent booking, the
// result is an empty reservation and a nil error. Invalid input, unknown trains and
// backend failures are returned as errors.
func (o *Orchestrator) Reserve(ctx context.Context, trainID string, seatCount int) (model.Reservation, error) {
	start := o.now()
	logger := o.logger.With("train_id", trainID, "seat_count", seatCount)

	res, outcome, err := o.reserve(ctx, logger, trainID, seatCount)
	o.recorder.Reservation(outcome, o.now().Sub(start))

	switch outcome {
	case OutcomeReserved:
		logger.Info("reservation confirmed", "booking_reference", res.Reference(), "seats", res.Seats)
	case OutcomeNoCapacity, OutcomeRetriesExhausted:
		logger.Info("reservation unfulfilled", "reason", outcome)
	case OutcomeInvalidRequest:
		logger.Debug("reservation rejected", "error", err)
	default:
		logger.Error("reservation failed", "error", err)
	}
	return res, err
}

func (o *Orchestrator) reserve(ctx context.Context, logger *slog.Logger, trainID string, seatCount int) (model.Reservation, string, error) {
	if err := Validate(trainID, seatCount); err != nil {
		return model.Reservation{}, OutcomeInvalidRequest, err
	}

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		logger.Debug("fetching train snapshot", "attempt", attempt)

		train, err := o.trains.GetTrain(ctx, trainID)
		if err != nil {
			return model.Reservation{}, classify(err), fmt.Errorf("failed to fetch train %s: %w", trainID, err)
		}

		alloc, ok := allocator.Allocate(*train, seatCount)
		if !ok {
			return model.EmptyReservation(trainID), OutcomeNoCapacity, nil
		}

		logger.Debug("committing allocation", "attempt", attempt, "coach", alloc.Coach, "seats", alloc.Seats)
		res, err := o.committer.Commit(ctx, trainID, alloc.Seats)
		switch {
		case err == nil:
			o.recorder.CommitAttempt(CommitSuccess)
			return res, OutcomeReserved, nil
		case errors.Is(err, service.ErrSeatsConflict):
			o.recorder.CommitAttempt(CommitConflict)
			logger.Info("seats taken concurrently, retrying", "attempt", attempt, "seats", alloc.Seats)
		default:
			o.recorder.CommitAttempt(CommitError)
			return model.Reservation{}, classify(err), err
		}
	}

	return model.EmptyReservation(trainID), OutcomeRetriesExhausted, nil
}

func classify(err error) string {
	if errors.Is(err, service.ErrTrainNotFound) {
		return OutcomeTrainNotFound
	}
	return OutcomeError
}
