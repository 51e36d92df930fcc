package saving

import (
	"context"
)

//go:generate mockgen -source=idempotency.go -destination=../mocks/saving/mock_idempotency_store.go -package=mock_saving

// IdempotencyStore records confirm results by key so a retried confirm does not write twice.
type IdempotencyStore interface {
	// Reserve claims key. completed is the stored result when a confirm with key already finished;
	// acquired is false when another confirm holds the key.
	Reserve(ctx context.Context, key string) (completed []byte, acquired bool, err error)
	Complete(ctx context.Context, key string, result []byte) error
	Release(ctx context.Context, key string) error
}

// noopIdempotencyStore always grants the key and remembers nothing.
type noopIdempotencyStore struct{}

func (noopIdempotencyStore) Reserve(context.Context, string) ([]byte, bool, error) {
	return nil, true, nil
}

func (noopIdempotencyStore) Complete(context.Context, string, []byte) error { return nil }

func (noopIdempotencyStore) Release(context.Context, string) error { return nil }
