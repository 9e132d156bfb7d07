package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/arunvm123/trainbooking/booking-service/model"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestPublishRequest(t *testing.T) {
	requests := &recordingWriter{}
	p := NewPublisher(requests, &recordingWriter{})

	msg := model.ReservationRequestMessage{
		RequestID: "req-1",
		TrainID:   "express_2000",
		SeatCount: 2,
		Timestamp: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishRequest(context.Background(), msg))

	require.Len(t, requests.msgs, 1)
	assert.Equal(t, "req-1", string(requests.msgs[0].Key))

	var decoded model.ReservationRequestMessage
	require.NoError(t, json.Unmarshal(requests.msgs[0].Value, &decoded))
	assert.Equal(t, msg, decoded)
}

func TestPublishNotification(t *testing.T) {
	notifications := &recordingWriter{}
	p := NewPublisher(&recordingWriter{}, notifications)

	n := model.NewNotification(
		model.ReservationRequestMessage{RequestID: "req-2", SeatCount: 1, ContactEmail: "a@b.c"},
		model.NewReservation("express_2000", "ref", []string{"1A"}),
		time.Now(),
	)
	require.NoError(t, p.PublishNotification(context.Background(), n))

	require.Len(t, notifications.msgs, 1)
	assert.Equal(t, "req-2", string(notifications.msgs[0].Key))
	assert.Contains(t, string(notifications.msgs[0].Value), `"type":"reservation_confirmed"`)
}

func TestPublish_Errors(t *testing.T) {
	p := NewPublisher(&recordingWriter{err: errors.New("broker down")}, nil)

	assert.Error(t, p.PublishRequest(context.Background(), model.ReservationRequestMessage{RequestID: "x"}))
	assert.Error(t, p.PublishNotification(context.Background(), model.ReservationNotification{}))
}
