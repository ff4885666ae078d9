package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"licensure/internal/lookup"
	"licensure/pkg/platform/sentinel"
)

// Redis is the shared lookup cache for multi-node deployments. Results are
// stored as JSON; the client lifecycle is managed by the caller.
type Redis struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed lookup cache.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) (*lookup.Result, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("lookup cache: %w", sentinel.ErrCacheMiss)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup cache get: %w", err)
	}

	var result lookup.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("lookup cache decode: %w", err)
	}
	return &result, nil
}

func (r *Redis) Set(ctx context.Context, key string, result *lookup.Result, ttl time.Duration) error {
	if result == nil || ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("lookup cache encode: %w", err)
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("lookup cache set: %w", err)
	}
	return nil
}
