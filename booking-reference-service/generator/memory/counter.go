package memory

import (
	"context"
	"sync/atomic"

	"github.com/arunvm123/trainbooking/booking-reference-service/generator"
)

// Counter is a process-local reference generator. It restarts from the seed on every boot.
type Counter struct {
	value atomic.Uint64
}

func NewCounter(seed uint64) *Counter {
	c := &Counter{}
	c.value.Store(seed)
	return c
}

func (c *Counter) Next(ctx context.Context) (string, error) {
	return generator.Format(c.value.Add(1)), nil
}

func (c *Counter) Ping(ctx context.Context) error {
	return nil
}
