package service

import (
	"context"
	"errors"

	"github.com/arunvm123/trainbooking/booking-service/model"
)

var (
	// ErrTrainNotFound means the train data service does not know the train.
	ErrTrainNotFound = errors.New("train not found")

	// ErrSeatsConflict means the train data service rejected a reservation because a
	// seat was already reserved or does not exist. The whole reservation was rejected.
	ErrSeatsConflict = errors.New("seats conflict")

	// ErrBackendUnavailable wraps every transport failure: network errors, timeouts,
	// unexpected status codes and malformed bodies.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// TrainDataService defines the interface for communicating with the train data service
type TrainDataService interface {
	// GetTrain fetches a fresh snapshot of the train. It is never cached.
	GetTrain(ctx context.Context, trainID string) (*model.Train, error)

	// ReserveSeats marks every seat with the booking reference, or none of them.
	ReserveSeats(ctx context.Context, trainID, bookingReference string, seatIDs []string) error

	// ResetTrain clears every booking reference on the train
	ResetTrain(ctx context.Context, trainID string) (*model.Train, error)
}

// BookingReferenceService hands out unique booking references
type BookingReferenceService interface {
	CreateBookingReference(ctx context.Context) (string, error)
}
