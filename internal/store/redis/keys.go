package redis

const (
	// KeyPrefixDraft is the prefix for preview drafts
	KeyPrefixDraft = "flashnote:draft:"
	// KeyPrefixIdempotency is the prefix for confirm idempotency keys
	KeyPrefixIdempotency = "flashnote:idempotency:"
)

// DraftKey returns the Redis key for a draft by ID
func DraftKey(id string) string {
	return KeyPrefixDraft + id
}

// IdempotencyKey returns the Redis key for an idempotency key
func IdempotencyKey(key string) string {
	return KeyPrefixIdempotency + key
}
