package reservation

import (
	"context"
	"fmt"

	"github.com/arunvm123/trainbooking/booking-service/model"
	"github.com/arunvm123/trainbooking/booking-service/service"
)

// Committer turns an allocation into a reservation on the train data service.
type Committer struct {
	trains service.TrainDataService
	refs   service.BookingReferenceService
}

func NewCommitter(trains service.TrainDataService, refs service.BookingReferenceService) *Committer {
	return &Committer{trains: trains, refs: refs}
}

// Commit takes one fresh booking reference and reserves seatIDs with it. A rejected
// reservation comes back as service.ErrSeatsConflict and leaves the train untouched.
// The reference of a rejected attempt is never reused.
func (c *Committer) Commit(ctx context.Context, trainID string, seatIDs []string) (model.Reservation, error) {
	ref, err := c.refs.CreateBookingReference(ctx)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("failed to create booking reference: %w", err)
	}

	if err := c.trains.ReserveSeats(ctx, trainID, ref, seatIDs); err != nil {
		return model.Reservation{}, fmt.Errorf("failed to reserve seats with reference %s: %w", ref, err)
	}

	return model.NewReservation(trainID, ref, seatIDs), nil
}
