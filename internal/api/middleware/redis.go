package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisIdemPrefix = "dealfeed:idem:"

// RedisIdempotencyStore shares replay state across API instances. Entries
// expire after TTL so keys can be safely reused by later, unrelated runs.
type RedisIdempotencyStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisIdempotencyStore(url string, ttl time.Duration) (*RedisIdempotencyStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisIdempotencyStore{Client: redis.NewClient(opt), TTL: ttl}, nil
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (StoredResponse, bool, error) {
	raw, err := s.Client.Get(ctx, redisIdemPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return StoredResponse{}, false, nil
	}
	if err != nil {
		return StoredResponse{}, false, fmt.Errorf("redis get: %w", err)
	}
	var resp StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return StoredResponse{}, false, fmt.Errorf("decode stored response: %w", err)
	}
	return resp, true, nil
}

func (s *RedisIdempotencyStore) Put(ctx context.Context, key string, resp StoredResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode stored response: %w", err)
	}
	if err := s.Client.Set(ctx, redisIdemPrefix+key, raw, s.TTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
