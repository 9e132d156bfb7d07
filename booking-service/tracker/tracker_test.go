package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/arunvm123/trainbooking/booking-service/cache"
	redisCache "github.com/arunvm123/trainbooking/booking-service/cache/redis"
	"github.com/arunvm123/trainbooking/booking-service/model"
	"github.com/arunvm123/trainbooking/booking-service/repository"
	"github.com/arunvm123/trainbooking/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	created   []model.CreateRecordRequest
	completed []model.CompleteRecordRequest
	err       error
}

func (f *fakeRepo) CreateRecord(ctx context.Context, req model.CreateRecordRequest) (*model.ReservationRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return &model.ReservationRecord{RequestID: req.RequestID}, nil
}

func (f *fakeRepo) CompleteRecord(ctx context.Context, req model.CompleteRecordRequest) error {
	if f.err != nil {
		return f.err
	}
	f.completed = append(f.completed, req)
	return nil
}

func (f *fakeRepo) GetByRequestID(ctx context.Context, requestID string) (*model.ReservationRecord, error) {
	return nil, repository.ErrRecordNotFound
}

func (f *fakeRepo) GetByBookingReference(ctx context.Context, ref string) (*model.ReservationRecord, error) {
	return nil, repository.ErrRecordNotFound
}

func (f *fakeRepo) Ping(ctx context.Context) error { return nil }

type fakeNotifier struct {
	sent []model.ReservationNotification
	err  error
}

func (f *fakeNotifier) PublishNotification(ctx context.Context, n model.ReservationNotification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func newTracker(t *testing.T, repo *fakeRepo, notifier *fakeNotifier) (*Tracker, cache.CacheRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := redisCache.NewRedisCacheRepository(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	tr := New(repo, c, notifier, logging.NewNop())
	tr.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return tr, c
}

var msg = model.ReservationRequestMessage{RequestID: "req-1", TrainID: "express_2000", SeatCount: 2, ContactEmail: "p@example.com"}

func TestStart(t *testing.T) {
	repo := &fakeRepo{}
	tr, c := newTracker(t, repo, &fakeNotifier{})
	ctx := context.Background()

	tr.Start(ctx, msg)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "p@example.com", repo.created[0].ContactEmail)

	status, err := c.GetReservationStatus(ctx, "req-1")
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, model.StatusProcessing, status.Status)
}

func TestFinish(t *testing.T) {
	tests := []struct {
		name         string
		res          model.Reservation
		err          error
		wantStatus   string
		wantNotified string
	}{
		{
			name:         "confirmed",
			res:          model.NewReservation("express_2000", "ref", []string{"1A", "2A"}),
			wantStatus:   model.StatusConfirmed,
			wantNotified: model.NotificationReservationConfirmed,
		},
		{
			name:         "unfulfilled",
			res:          model.EmptyReservation("express_2000"),
			wantStatus:   model.StatusUnfulfilled,
			wantNotified: model.NotificationReservationUnfulfilled,
		},
		{
			name:       "failed",
			err:        errors.New("backend unavailable"),
			wantStatus: model.StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			notifier := &fakeNotifier{}
			tr, c := newTracker(t, repo, notifier)
			ctx := context.Background()

			tr.Finish(ctx, msg, tt.res, tt.err)

			require.Len(t, repo.completed, 1)
			assert.Equal(t, tt.wantStatus, repo.completed[0].Status)

			status, err := c.GetReservationStatus(ctx, "req-1")
			require.NoError(t, err)
			require.NotNil(t, status)
			assert.Equal(t, tt.wantStatus, status.Status)

			if tt.wantNotified == "" {
				assert.Empty(t, notifier.sent)
				assert.Equal(t, "backend unavailable", *repo.completed[0].ErrorMessage)
				return
			}
			require.Len(t, notifier.sent, 1)
			assert.Equal(t, tt.wantNotified, notifier.sent[0].Type)
			assert.Equal(t, "p@example.com", notifier.sent[0].RecipientEmail)
		})
	}
}

func TestFinish_SideFailuresAreSwallowed(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	notifier := &fakeNotifier{err: errors.New("broker down")}
	tr, _ := newTracker(t, repo, notifier)

	assert.NotPanics(t, func() {
		tr.Start(context.Background(), msg)
		tr.Finish(context.Background(), msg, model.NewReservation("express_2000", "ref", []string{"1A"}), nil)
	})
}
