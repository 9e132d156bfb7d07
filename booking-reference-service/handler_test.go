package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arunvm123/trainbooking/booking-reference-service/config"
	"github.com/arunvm123/trainbooking/booking-reference-service/generator/memory"
	"github.com/arunvm123/trainbooking/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type failingGenerator struct{}

func (failingGenerator) Next(ctx context.Context) (string, error) {
	return "", errors.New("redis down")
}

func (failingGenerator) Ping(ctx context.Context) error {
	return errors.New("redis down")
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNextReference(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logging.NewNop()
	r := newRouter(NewReferenceHandler(memory.NewCounter(123456789), config.CounterMemory, logger), logger)

	w := get(r, "/booking_reference")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "75bcd16", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = get(r, "/booking_reference")
	assert.Equal(t, "75bcd17", w.Body.String())
}

func TestNextReference_GeneratorDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logging.NewNop()
	r := newRouter(NewReferenceHandler(failingGenerator{}, config.CounterRedis, logger), logger)

	w := get(r, "/booking_reference")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = get(r, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unhealthy")
}

func TestNewGenerator_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Counter: config.Counter{Driver: "etcd"}}
	_, err := newGenerator(context.Background(), cfg)
	assert.Error(t, err)
}
