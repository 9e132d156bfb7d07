package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/arunvm123/trainbooking/booking-service/model"
	"github.com/arunvm123/trainbooking/internal/logging"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanReader serves queued messages and then blocks until the context ends
type chanReader struct {
	msgs chan kafka.Message
}

func (r *chanReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case msg := <-r.msgs:
		return msg, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

type stubReserver struct {
	mu    sync.Mutex
	calls map[string]int
}

func (s *stubReserver) Reserve(ctx context.Context, trainID string, seatCount int) (model.Reservation, error) {
	s.mu.Lock()
	s.calls[trainID]++
	s.mu.Unlock()

	if trainID == "broken" {
		return model.Reservation{}, errors.New("backend unavailable")
	}
	return model.NewReservation(trainID, "ref-"+trainID, []string{"1A"}), nil
}

type finished struct {
	msg model.ReservationRequestMessage
	res model.Reservation
	err error
}

type stubTracker struct {
	mu   sync.Mutex
	done []finished
}

func (s *stubTracker) Finish(ctx context.Context, msg model.ReservationRequestMessage, res model.Reservation, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = append(s.done, finished{msg: msg, res: res, err: err})
}

func (s *stubTracker) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.done)
}

func encode(t *testing.T, msg model.ReservationRequestMessage) kafka.Message {
	t.Helper()
	value, err := json.Marshal(msg)
	require.NoError(t, err)
	return kafka.Message{Key: []byte(msg.RequestID), Value: value}
}

func TestReservationProcessor(t *testing.T) {
	reader := &chanReader{msgs: make(chan kafka.Message, 10)}
	reserver := &stubReserver{calls: map[string]int{}}
	tracker := &stubTracker{}

	reader.msgs <- encode(t, model.ReservationRequestMessage{RequestID: "r1", TrainID: "express_2000", SeatCount: 1})
	reader.msgs <- encode(t, model.ReservationRequestMessage{RequestID: "r2", TrainID: "local_1000", SeatCount: 1})
	reader.msgs <- encode(t, model.ReservationRequestMessage{RequestID: "r3", TrainID: "broken", SeatCount: 1})
	reader.msgs <- kafka.Message{Value: []byte("{not json")}

	p := NewReservationProcessor(reserver, tracker, reader, 3, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Start(ctx) }()

	require.Eventually(t, func() bool { return p.Processed() == 4 }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("processor did not stop")
	}

	// the malformed message never reaches the tracker
	require.Equal(t, 3, tracker.count())
	byID := map[string]finished{}
	for _, f := range tracker.done {
		byID[f.msg.RequestID] = f
	}
	assert.Equal(t, "ref-express_2000", byID["r1"].res.Reference())
	assert.NoError(t, byID["r2"].err)
	assert.Error(t, byID["r3"].err)
	assert.Equal(t, 1, reserver.calls["express_2000"])
}

func TestReservationProcessor_StopsWhenIdle(t *testing.T) {
	reader := &chanReader{msgs: make(chan kafka.Message)}
	p := NewReservationProcessor(&stubReserver{calls: map[string]int{}}, &stubTracker{}, reader, 0, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Start(ctx), context.Canceled)
	assert.Len(t, p.workers, 1)
}
