// Package redis stores preview drafts and idempotency keys in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/at-ishikawa/flashnote/internal/saving"
)

// DefaultDraftTTL is used when no TTL is configured
const DefaultDraftTTL = 2 * time.Hour

// DraftStore keeps preview drafts until they are confirmed, cancelled or expire.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &DraftStore{
		client: client,
		ttl:    ttl,
	}
}

// Put stores the draft and resets its TTL.
func (s *DraftStore) Put(ctx context.Context, draft *saving.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, DraftKey(draft.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Get returns the draft or saving.ErrNotFound when it does not exist or expired.
func (s *DraftStore) Get(ctx context.Context, id string) (*saving.Draft, error) {
	data, err := s.client.Get(ctx, DraftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("draft %s: %w", id, saving.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft saving.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, DraftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
