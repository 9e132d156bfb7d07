package redis

import (
	"context"
	"fmt"

	"github.com/arunvm123/trainbooking/booking-reference-service/generator"
	"github.com/redis/go-redis/v9"
)

// Counter keeps the reference sequence in a redis key so it survives restarts and is
// shared between replicas.
type Counter struct {
	client *redis.Client
	key    string
}

func NewCounter(ctx context.Context, client *redis.Client, key string, seed uint64) (*Counter, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// Only the first replica to boot sets the starting point
	if err := client.SetNX(ctx, key, seed, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to seed counter: %w", err)
	}

	return &Counter{client: client, key: key}, nil
}

func (c *Counter) Next(ctx context.Context) (string, error) {
	n, err := c.client.Incr(ctx, c.key).Result()
	if err != nil {
		return "", fmt.Errorf("failed to increment counter: %w", err)
	}
	return generator.Format(uint64(n)), nil
}

func (c *Counter) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
