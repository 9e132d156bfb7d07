package generator

import (
	"context"
	"strconv"
)

// Generator hands out booking references. References are never reused, including
// references whose reservation later failed.
type Generator interface {
	Next(ctx context.Context) (string, error)

	// Health check
	Ping(ctx context.Context) error
}

// Format renders a counter value as a booking reference.
func Format(n uint64) string {
	return strconv.FormatUint(n, 16)
}
