package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/arunvm123/trainbooking/train-data-service/model"
)

var (
	ErrTrainNotFound        = errors.New("train not found")
	ErrSeatsDoNotExist      = errors.New("seats do not exist")
	ErrSeatsAlreadyReserved = errors.New("seats already reserved")
)

// SeatsError names the seats a reservation was rejected for.
type SeatsError struct {
	Err   error
	Seats []string
}

func (e *SeatsError) Error() string {
	return fmt.Sprintf("%v: %v", e.Err, e.Seats)
}

func (e *SeatsError) Unwrap() error {
	return e.Err
}

// TrainRepository is the authoritative seat ledger. Reserve is atomic: either every
// requested seat gets the booking reference or none does.
type TrainRepository interface {
	GetTrain(ctx context.Context, trainID string) (*model.TrainData, error)
	Reserve(ctx context.Context, req model.ReserveRequest) (*model.TrainData, error)
	Reset(ctx context.Context, trainID string) (*model.TrainData, error)

	// Seed loads trains that are not yet known to the ledger.
	Seed(ctx context.Context, trains map[string]model.TrainData) error

	// Health check
	Ping(ctx context.Context) error
}
