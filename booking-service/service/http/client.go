package http

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arunvm123/trainbooking/booking-service/config"
	"github.com/arunvm123/trainbooking/booking-service/service"
	"github.com/arunvm123/trainbooking/internal/serviceauth"
)

// newHTTPClient creates an HTTP client with connection pooling
func newHTTPClient(cfg *config.Upstream) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		IdleConnTimeout:     time.Duration(cfg.IdleConnTimeout) * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{
		Timeout:   time.Duration(cfg.RequestTimeout) * time.Second,
		Transport: transport,
	}
}

// do sends the request with a service token when tokens is set. Transport errors are
// wrapped with ErrBackendUnavailable.
func do(client *http.Client, tokens *serviceauth.TokenService, req *http.Request) (*http.Response, error) {
	if tokens != nil {
		header, err := tokens.BearerHeader()
		if err != nil {
			return nil, fmt.Errorf("failed to sign service token: %w", err)
		}
		req.Header.Set("Authorization", header)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", service.ErrBackendUnavailable, req.Method, req.URL.Path, err)
	}
	return resp, nil
}

func unexpectedStatus(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("%w: %s %s returned status %d: %s",
		service.ErrBackendUnavailable, resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, string(body))
}
