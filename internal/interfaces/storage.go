package interfaces

import (
	"context"
	"time"
)

// QueryStore holds encoded query results by key.
// Implementations can be swapped (in-process map now, Redis when shared).
type QueryStore interface {
	// Get returns the stored value, or false on a miss or an expired entry.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// InvalidatePrefix removes every entry whose key starts with prefix.
	InvalidatePrefix(ctx context.Context, prefix string)
	// Backend names the implementation for logs and metrics.
	Backend() string
	Close() error
}
