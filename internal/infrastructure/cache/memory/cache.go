package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/statsboard/internal/domain/liveness"
)

// Cache is a timer-based liveness cache for tests and runs without redis.
// Each Refresh re-arms a per-key timer; when a timer fires without having
// been replaced, the expiry callback runs exactly once for that key.
type Cache struct {
	onExpire liveness.ExpireFunc

	mu      sync.Mutex
	entries map[string]*entry
	closed  bool
}

type entry struct {
	value string
	gen   uint64
	timer *time.Timer
}

func New(onExpire liveness.ExpireFunc) *Cache {
	return &Cache{
		onExpire: onExpire,
		entries:  make(map[string]*entry),
	}
}

func (c *Cache) Refresh(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	e := c.touch(key, value)
	gen := e.gen
	e.timer = time.AfterFunc(ttl, func() {
		c.expire(key, gen)
	})

	return nil
}

func (c *Cache) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.touch(key, value)

	return nil
}

// touch stores the value and invalidates the key's armed timer, if any.
// Callers must hold c.mu.
func (c *Cache) touch(key, value string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.value = value
	e.gen++

	return e
}

// expire fires the callback only when gen still matches the entry's
// generation. A timer that lost a race with Refresh or Set sees a newer
// generation and backs off.
func (c *Cache) expire(key string, gen uint64) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if c.closed || !ok || e.gen != gen {
		c.mu.Unlock()
		return
	}
	delete(c.entries, key)
	c.mu.Unlock()

	if c.onExpire != nil {
		c.onExpire(key)
	}
}

// Value returns the current value for key, if present.
func (c *Cache) Value(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}

	return e.value, true
}

func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for key, e := range c.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(c.entries, key)
	}

	return nil
}
