package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultIdempotencyTTL is used when no TTL is configured
const DefaultIdempotencyTTL = 24 * time.Hour

const (
	stateInProgress = "in_progress"
	stateCompleted  = "completed"
)

type idempotencyEntry struct {
	State  string          `json:"state"`
	Result json.RawMessage `json:"result,omitempty"`
}

// IdempotencyStore remembers confirm results by key.
// A reserved key stays in progress until it is completed, released or its TTL expires.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string) ([]byte, bool, error) {
	reserved, err := json.Marshal(idempotencyEntry{State: stateInProgress})
	if err != nil {
		return nil, false, err
	}

	// the key can expire between SetNX and Get, so try twice
	for i := 0; i < 2; i++ {
		ok, err := s.client.SetNX(ctx, IdempotencyKey(key), reserved, s.ttl).Result()
		if err != nil {
			return nil, false, fmt.Errorf("failed to reserve idempotency key: %w", err)
		}
		if ok {
			return nil, true, nil
		}

		data, err := s.client.Get(ctx, IdempotencyKey(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("failed to get idempotency key: %w", err)
		}

		var entry idempotencyEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, false, fmt.Errorf("failed to unmarshal idempotency entry: %w", err)
		}
		if entry.State == stateCompleted {
			return entry.Result, false, nil
		}
		return nil, false, nil
	}
	return nil, false, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key string, result []byte) error {
	data, err := json.Marshal(idempotencyEntry{State: stateCompleted, Result: result})
	if err != nil {
		return fmt.Errorf("failed to marshal idempotency entry: %w", err)
	}
	if err := s.client.Set(ctx, IdempotencyKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to complete idempotency key: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, IdempotencyKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}
