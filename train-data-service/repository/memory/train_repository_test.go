package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/arunvm123/trainbooking/train-data-service/model"
	"github.com/arunvm123/trainbooking/train-data-service/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRepo(t *testing.T) *TrainRepository {
	t.Helper()
	repo := NewTrainRepository()
	err := repo.Seed(context.Background(), map[string]model.TrainData{
		"express_2000": {Seats: map[string]model.SeatData{
			"1A": {SeatNumber: "1", Coach: "A"},
			"2A": {SeatNumber: "2", Coach: "A"},
			"1B": {SeatNumber: "1", Coach: "B", BookingReference: "existing"},
		}},
	})
	require.NoError(t, err)
	return repo
}

func TestGetTrain_NotFound(t *testing.T) {
	repo := NewTrainRepository()
	_, err := repo.GetTrain(context.Background(), "doesnt_exist")
	assert.ErrorIs(t, err, repository.ErrTrainNotFound)
}

func TestGetTrain_ReturnsCopy(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	first, err := repo.GetTrain(ctx, "express_2000")
	require.NoError(t, err)
	first.Seats["1A"] = model.SeatData{SeatNumber: "1", Coach: "A", BookingReference: "mutated"}

	second, err := repo.GetTrain(ctx, "express_2000")
	require.NoError(t, err)
	assert.Equal(t, "", second.Seats["1A"].BookingReference)
}

func TestReserve(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	train, err := repo.Reserve(ctx, model.ReserveRequest{
		TrainID:          "express_2000",
		BookingReference: "75bcd15",
		Seats:            []string{"1A", "2A"},
	})
	require.NoError(t, err)
	assert.Equal(t, "75bcd15", train.Seats["1A"].BookingReference)
	assert.Equal(t, "75bcd15", train.Seats["2A"].BookingReference)
	assert.Equal(t, "existing", train.Seats["1B"].BookingReference)
}

func TestReserve_AlreadyReservedIsAtomic(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	_, err := repo.Reserve(ctx, model.ReserveRequest{
		TrainID:          "express_2000",
		BookingReference: "new",
		Seats:            []string{"1A", "1B"},
	})
	require.ErrorIs(t, err, repository.ErrSeatsAlreadyReserved)

	var seatsErr *repository.SeatsError
	require.ErrorAs(t, err, &seatsErr)
	assert.Equal(t, []string{"1B"}, seatsErr.Seats)

	train, err := repo.GetTrain(ctx, "express_2000")
	require.NoError(t, err)
	assert.Equal(t, "", train.Seats["1A"].BookingReference, "no partial reservation")
}

func TestReserve_UnknownSeatsReportedFirst(t *testing.T) {
	repo := seededRepo(t)

	_, err := repo.Reserve(context.Background(), model.ReserveRequest{
		TrainID:          "express_2000",
		BookingReference: "new",
		Seats:            []string{"1B", "9Z"},
	})
	require.ErrorIs(t, err, repository.ErrSeatsDoNotExist)

	var seatsErr *repository.SeatsError
	require.ErrorAs(t, err, &seatsErr)
	assert.Equal(t, []string{"9Z"}, seatsErr.Seats)
}

func TestReserve_UnknownTrain(t *testing.T) {
	repo := seededRepo(t)
	_, err := repo.Reserve(context.Background(), model.ReserveRequest{TrainID: "nope", Seats: []string{"1A"}})
	assert.ErrorIs(t, err, repository.ErrTrainNotFound)
}

func TestReserve_ConcurrentSameSeat(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Reserve(ctx, model.ReserveRequest{
				TrainID:          "express_2000",
				BookingReference: string(rune('a' + i)),
				Seats:            []string{"2A"},
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, repository.ErrSeatsAlreadyReserved)
	}
	assert.Equal(t, 1, succeeded)
}

func TestReset(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	train, err := repo.Reset(ctx, "express_2000")
	require.NoError(t, err)
	for id, seat := range train.Seats {
		assert.Empty(t, seat.BookingReference, "seat %s", id)
	}

	_, err = repo.Reset(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrTrainNotFound)
}

func TestSeed_KeepsExistingTrains(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	err := repo.Seed(ctx, map[string]model.TrainData{
		"express_2000": {Seats: map[string]model.SeatData{"1A": {SeatNumber: "1", Coach: "A"}}},
	})
	require.NoError(t, err)

	train, err := repo.GetTrain(ctx, "express_2000")
	require.NoError(t, err)
	assert.Len(t, train.Seats, 3)
}
