package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/arunvm123/trainbooking/booking-service/config"
	"github.com/arunvm123/trainbooking/booking-service/service"
)

type HTTPBookingReferenceService struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPBookingReferenceService(cfg *config.Upstream) *HTTPBookingReferenceService {
	return &HTTPBookingReferenceService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: newHTTPClient(cfg),
	}
}

// CreateBookingReference asks the generator for a fresh reference
func (s *HTTPBookingReferenceService) CreateBookingReference(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/booking_reference", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := do(s.httpClient, nil, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", unexpectedStatus(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read booking reference: %v", service.ErrBackendUnavailable, err)
	}

	ref := strings.TrimSpace(string(body))
	if ref == "" {
		return "", fmt.Errorf("%w: empty booking reference", service.ErrBackendUnavailable)
	}
	return ref, nil
}

var _ service.BookingReferenceService = (*HTTPBookingReferenceService)(nil)
