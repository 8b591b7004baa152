package liveness

import (
	"context"
	"time"
)

// ExpireFunc is invoked exactly once per key when its TTL lapses without a
// refresh. Implementations call it from a background goroutine.
type ExpireFunc func(key string)

// Cache is a TTL keeper for in-play fixtures. Refresh arms or re-arms the
// key's timer and stores the payload as the current value; Set stores a
// value with no expiry for caches that must never drive cleanup.
type Cache interface {
	Refresh(ctx context.Context, key, value string, ttl time.Duration) error
	Set(ctx context.Context, key, value string) error
	Close() error
}
