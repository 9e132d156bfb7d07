package memory

import (
	"context"
	"sync"

	"github.com/arunvm123/trainbooking/train-data-service/model"
	"github.com/arunvm123/trainbooking/train-data-service/repository"
)

// TrainRepository keeps the ledger in process. A single mutex makes Reserve atomic
// per call.
type TrainRepository struct {
	mu     sync.RWMutex
	trains map[string]*model.TrainData
}

func NewTrainRepository() *TrainRepository {
	return &TrainRepository{trains: make(map[string]*model.TrainData)}
}

func (r *TrainRepository) GetTrain(ctx context.Context, trainID string) (*model.TrainData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	train, ok := r.trains[trainID]
	if !ok {
		return nil, repository.ErrTrainNotFound
	}
	return train.Clone(), nil
}

func (r *TrainRepository) Reserve(ctx context.Context, req model.ReserveRequest) (*model.TrainData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	train, ok := r.trains[req.TrainID]
	if !ok {
		return nil, repository.ErrTrainNotFound
	}

	// Unknown seats are reported before taken ones.
	var missing []string
	for _, seatID := range req.Seats {
		if _, ok := train.Seats[seatID]; !ok {
			missing = append(missing, seatID)
		}
	}
	if len(missing) > 0 {
		return nil, &repository.SeatsError{Err: repository.ErrSeatsDoNotExist, Seats: missing}
	}

	var taken []string
	for _, seatID := range req.Seats {
		if train.Seats[seatID].BookingReference != "" {
			taken = append(taken, seatID)
		}
	}
	if len(taken) > 0 {
		return nil, &repository.SeatsError{Err: repository.ErrSeatsAlreadyReserved, Seats: taken}
	}

	for _, seatID := range req.Seats {
		seat := train.Seats[seatID]
		seat.BookingReference = req.BookingReference
		train.Seats[seatID] = seat
	}

	return train.Clone(), nil
}

func (r *TrainRepository) Reset(ctx context.Context, trainID string) (*model.TrainData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	train, ok := r.trains[trainID]
	if !ok {
		return nil, repository.ErrTrainNotFound
	}
	for id, seat := range train.Seats {
		seat.BookingReference = ""
		train.Seats[id] = seat
	}
	return train.Clone(), nil
}

func (r *TrainRepository) Seed(ctx context.Context, trains map[string]model.TrainData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, train := range trains {
		if _, exists := r.trains[id]; exists {
			continue
		}
		r.trains[id] = train.Clone()
	}
	return nil
}

func (r *TrainRepository) Ping(ctx context.Context) error {
	return nil
}
