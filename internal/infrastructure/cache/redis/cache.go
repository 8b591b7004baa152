package redis

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/riskibarqy/statsboard/internal/domain/liveness"
	"github.com/riskibarqy/statsboard/internal/platform/logging"
)

// Config holds the connection settings for the liveness cache.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Cache is a redis-backed liveness cache. Refresh writes the key with a
// TTL; expiry detection rides on redis keyspace notifications, so the
// constructor turns on expired-event notifications for the instance and
// subscribes to the expiry channel of its database.
//
// Keyspace notifications are fire-and-forget on the redis side: if the
// subscriber is down when a key lapses, that expiry is lost. The service
// tolerates this since a fixture delete also clears the row.
type Cache struct {
	client   *goredis.Client
	log      *logging.Logger
	onExpire liveness.ExpireFunc
	pubsub   *goredis.PubSub
	done     chan struct{}
}

func New(ctx context.Context, cfg Config, onExpire liveness.ExpireFunc, log *logging.Logger) (*Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrap(err, "ping redis")
	}

	c := &Cache{
		client:   client,
		log:      log,
		onExpire: onExpire,
	}

	if onExpire != nil {
		if err := client.ConfigSet(ctx, "notify-keyspace-events", "Ex").Err(); err != nil {
			_ = client.Close()
			return nil, crerr.Wrap(err, "enable keyspace expiry notifications")
		}

		channel := fmt.Sprintf("__keyevent@%d__:expired", cfg.DB)
		c.pubsub = client.PSubscribe(context.Background(), channel)
		c.done = make(chan struct{})
		go c.listen()
	}

	return c, nil
}

func (c *Cache) listen() {
	defer close(c.done)

	for msg := range c.pubsub.Channel() {
		c.onExpire(msg.Payload)
	}
}

func (c *Cache) Refresh(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return crerr.Wrapf(err, "refresh key %q", key)
	}

	return nil
}

func (c *Cache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, key, value, 0).Err(); err != nil {
		return crerr.Wrapf(err, "set key %q", key)
	}

	return nil
}

func (c *Cache) Close() error {
	if c.pubsub != nil {
		if err := c.pubsub.Close(); err != nil {
			c.log.Warn("closing expiry subscription failed", "error", err)
		}
		<-c.done
	}

	return c.client.Close()
}
