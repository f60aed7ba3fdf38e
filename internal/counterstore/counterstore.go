// internal/counterstore/counterstore.go
// Adapter over the external counter store: monotonic integer counters keyed
// by string, used for the hot tournament aggregates named in the data model.
// Missing keys read as 0; no scripting is required.

package counterstore

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store wraps the counter-store client
type Store struct {
	client *redis.Client
	logger *log.Logger
}

// New creates a counter-store adapter
func New(client *redis.Client, logger *log.Logger) *Store {
	return &Store{client: client, logger: logger}
}

// IncrBy atomically adds delta to key (delta may be negative, per the
// signed team-score deltas the ranking engine applies) and returns the new
// value
func (s *Store) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	val, err := s.client.IncrBy(ctx, key, delta).Result()
	if err != nil {
		return 0, fmt.Errorf("counterstore incrby %s: %w", key, err)
	}
	return val, nil
}

// Incr is IncrBy with delta 1
func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	return s.IncrBy(ctx, key, 1)
}

// IncrWithExpire increments key by one and (re)arms its expiration in a
// single pipeline, for sliding rate-limit windows rather than running totals
func (s *Store) IncrWithExpire(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("counterstore incrwithexpire %s: %w", key, err)
	}
	return incr.Val(), nil
}

// Get returns the current value of key, or 0 if absent
func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	val, err := s.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("counterstore get %s: %w", key, err)
	}
	return val, nil
}

// MGet returns the current values for several keys in one round trip,
// missing keys reading as 0
func (s *Store) MGet(ctx context.Context, keys ...string) ([]int64, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	raw, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("counterstore mget: %w", err)
	}
	out := make([]int64, len(raw))
	for i, v := range raw {
		if v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			fmt.Sscanf(t, "%d", &out[i])
		}
	}
	return out, nil
}
