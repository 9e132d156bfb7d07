package reservation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arunvm123/trainbooking/booking-service/model"
)

// fakeTrainData serves snapshots and reserve results from scripts. Once a script runs
// out its last entry repeats.
type fakeTrainData struct {
	mu           sync.Mutex
	snapshots    []*model.Train
	getErr       error
	reserveErrs  []error
	getCalls     int
	reserveCalls []reserveCall
}

type reserveCall struct {
	TrainID string
	Ref     string
	Seats   []string
}

func (f *fakeTrainData) GetTrain(ctx context.Context, trainID string) (*model.Train, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	i := f.getCalls - 1
	if i >= len(f.snapshots) {
		i = len(f.snapshots) - 1
	}
	return f.snapshots[i], nil
}

func (f *fakeTrainData) ReserveSeats(ctx context.Context, trainID, ref string, seatIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reserveCalls = append(f.reserveCalls, reserveCall{TrainID: trainID, Ref: ref, Seats: seatIDs})
	if len(f.reserveErrs) == 0 {
		return nil
	}
	i := len(f.reserveCalls) - 1
	if i >= len(f.reserveErrs) {
		i = len(f.reserveErrs) - 1
	}
	return f.reserveErrs[i]
}

func (f *fakeTrainData) ResetTrain(ctx context.Context, trainID string) (*model.Train, error) {
	return nil, fmt.Errorf("not implemented")
}

type fakeReferences struct {
	mu    sync.Mutex
	next  int
	err   error
	calls int
}

func (f *fakeReferences) CreateBookingReference(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return "", f.err
	}
	f.next++
	return fmt.Sprintf("ref%d", f.next), nil
}

type recordedOutcome struct {
	outcome  string
	duration time.Duration
}

type fakeRecorder struct {
	commits  []string
	outcomes []recordedOutcome
}

func (r *fakeRecorder) CommitAttempt(result string) {
	r.commits = append(r.commits, result)
}

func (r *fakeRecorder) Reservation(outcome string, d time.Duration) {
	r.outcomes = append(r.outcomes, recordedOutcome{outcome: outcome, duration: d})
}

// snapshot builds a train with the given seats per coach; reserved seats carry a reference.
func snapshot(coaches map[string]int, reserved ...string) *model.Train {
	train := &model.Train{ID: "express_2000", Seats: make(map[string]model.Seat)}
	for coach, n := range coaches {
		for i := 1; i <= n; i++ {
			train.Seats[fmt.Sprintf("%d%s", i, coach)] = model.Seat{SeatNumber: fmt.Sprint(i), Coach: coach}
		}
	}
	for _, id := range reserved {
		seat := train.Seats[id]
		seat.BookingReference = "other"
		train.Seats[id] = seat
	}
	return train
}
