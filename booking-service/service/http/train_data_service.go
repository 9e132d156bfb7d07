package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/arunvm123/trainbooking/booking-service/config"
	"github.com/arunvm123/trainbooking/booking-service/model"
	"github.com/arunvm123/trainbooking/booking-service/service"
	"github.com/arunvm123/trainbooking/internal/serviceauth"
)

type HTTPTrainDataService struct {
	baseURL    string
	httpClient *http.Client
	tokens     *serviceauth.TokenService
}

// NewHTTPTrainDataService creates a train data client. Mutating calls are signed with tokens.
func NewHTTPTrainDataService(cfg *config.Upstream, tokens *serviceauth.TokenService) *HTTPTrainDataService {
	return &HTTPTrainDataService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: newHTTPClient(cfg),
		tokens:     tokens,
	}
}

// GetTrain retrieves the current seat ledger of a train
func (s *HTTPTrainDataService) GetTrain(ctx context.Context, trainID string) (*model.Train, error) {
	endpoint := fmt.Sprintf("%s/data_for_train/%s", s.baseURL, url.PathEscape(trainID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := do(s.httpClient, nil, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", service.ErrTrainNotFound, trainID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus(resp)
	}

	var data model.TrainDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: failed to decode train %s: %v", service.ErrBackendUnavailable, trainID, err)
	}
	if data.Seats == nil {
		return nil, fmt.Errorf("%w: train %s has no seats field", service.ErrBackendUnavailable, trainID)
	}

	return data.ToTrain(trainID), nil
}

// ReserveSeats writes a booking reference onto the given seats
func (s *HTTPTrainDataService) ReserveSeats(ctx context.Context, trainID, bookingReference string, seatIDs []string) error {
	body, err := json.Marshal(model.ReserveSeatsRequest{
		TrainID:          trainID,
		BookingReference: bookingReference,
		Seats:            seatIDs,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/reserve", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := do(s.httpClient, s.tokens, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusConflict:
		var errResp model.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return fmt.Errorf("%w: %s", service.ErrSeatsConflict, errResp.Error)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", service.ErrTrainNotFound, trainID)
	default:
		return unexpectedStatus(resp)
	}
}

// ResetTrain clears all booking references of a train
func (s *HTTPTrainDataService) ResetTrain(ctx context.Context, trainID string) (*model.Train, error) {
	endpoint := fmt.Sprintf("%s/reset/%s", s.baseURL, url.PathEscape(trainID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := do(s.httpClient, s.tokens, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", service.ErrTrainNotFound, trainID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus(resp)
	}

	var data model.TrainDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: failed to decode train %s: %v", service.ErrBackendUnavailable, trainID, err)
	}
	return data.ToTrain(trainID), nil
}

var _ service.TrainDataService = (*HTTPTrainDataService)(nil)
