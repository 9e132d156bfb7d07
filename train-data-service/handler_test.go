package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arunvm123/trainbooking/internal/logging"
	"github.com/arunvm123/trainbooking/internal/serviceauth"
	"github.com/arunvm123/trainbooking/train-data-service/model"
	"github.com/arunvm123/trainbooking/train-data-service/repository/memory"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewTrainRepository()
	require.NoError(t, repo.Seed(context.Background(), map[string]model.TrainData{
		"express_2000": {Seats: map[string]model.SeatData{
			"1A": {SeatNumber: "1", Coach: "A"},
			"2A": {SeatNumber: "2", Coach: "A"},
			"3A": {SeatNumber: "3", Coach: "A", BookingReference: "abc"},
		}},
	}))

	logger := logging.NewNop()
	handler := NewTrainHandler(repo, "memory", logger)
	return newRouter(handler, serviceauth.NewTokenService(testSecret, "test"), logger)
}

func authHeader(t *testing.T) string {
	t.Helper()
	header, err := serviceauth.NewTokenService(testSecret, "booking-service").BearerHeader()
	require.NoError(t, err)
	return header
}

func doRequest(r *gin.Engine, method, path, body, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetTrain(t *testing.T) {
	r := setupTestRouter(t)

	w := doRequest(r, http.MethodGet, "/data_for_train/express_2000", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.TrainResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Seats, 3)
	assert.Equal(t, "A", resp.Seats["2A"].Coach)
	assert.Equal(t, "abc", resp.Seats["3A"].BookingReference)
}

func TestGetTrain_NotFound(t *testing.T) {
	r := setupTestRouter(t)

	w := doRequest(r, http.MethodGet, "/data_for_train/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "train_not_found")
}

func TestReserve(t *testing.T) {
	r := setupTestRouter(t)
	auth := authHeader(t)

	tests := []struct {
		name       string
		body       string
		auth       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing token",
			body:       `{"train_id":"express_2000","booking_reference":"75bcd15","seats":["1A"]}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "authorization_required",
		},
		{
			name:       "empty seats",
			body:       `{"train_id":"express_2000","booking_reference":"75bcd15","seats":[]}`,
			auth:       auth,
			wantStatus: http.StatusBadRequest,
			wantBody:   "validation_failed",
		},
		{
			name:       "unknown train",
			body:       `{"train_id":"nope","booking_reference":"75bcd15","seats":["1A"]}`,
			auth:       auth,
			wantStatus: http.StatusNotFound,
			wantBody:   "train_not_found",
		},
		{
			name:       "unknown seat",
			body:       `{"train_id":"express_2000","booking_reference":"75bcd15","seats":["1A","99Z"]}`,
			auth:       auth,
			wantStatus: http.StatusConflict,
			wantBody:   "seats_do_not_exist",
		},
		{
			name:       "taken seat",
			body:       `{"train_id":"express_2000","booking_reference":"75bcd15","seats":["1A","3A"]}`,
			auth:       auth,
			wantStatus: http.StatusConflict,
			wantBody:   "seats_already_reserved",
		},
		{
			name:       "success",
			body:       `{"train_id":"express_2000","booking_reference":"75bcd15","seats":["1A","2A"]}`,
			auth:       auth,
			wantStatus: http.StatusOK,
			wantBody:   "75bcd15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/reserve", tt.body, tt.auth)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestReserve_ConflictListsSeats(t *testing.T) {
	r := setupTestRouter(t)

	w := doRequest(r, http.MethodPost, "/reserve",
		`{"train_id":"express_2000","booking_reference":"x","seats":["1A","3A"]}`, authHeader(t))
	require.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Error   string `json:"error"`
		Details struct {
			Seats []string `json:"seats"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"3A"}, resp.Details.Seats)

	// the rejected request must not have touched 1A
	w = doRequest(r, http.MethodGet, "/data_for_train/express_2000", "", "")
	assert.NotContains(t, w.Body.String(), `"booking_reference":"x"`)
}

func TestReset(t *testing.T) {
	r := setupTestRouter(t)
	auth := authHeader(t)

	w := doRequest(r, http.MethodPost, "/reset/express_2000", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodPost, "/reset/express_2000", "", auth)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.TrainResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "", resp.Seats["3A"].BookingReference)
}

func TestHealthCheck(t *testing.T) {
	r := setupTestRouter(t)

	w := doRequest(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"storage":"memory"`)
}
