// Package viewcache holds cached dashboard views in Redis and emits the
// invalidation signal the presentation layer listens for after a
// mutation.
//
// Invalidation is one-way: keys are deleted and a notification is
// published, no acknowledgment is expected and failures are logged but
// never surfaced to the caller.
package viewcache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// InvalidationChannel is the pub/sub channel carrying invalidated
	// user ids.
	InvalidationChannel = "spendly:view-invalidations"

	// RootView is the dashboard view every mutation invalidates.
	RootView = "root"
)

// Cache stores rendered view payloads per user and broadcasts
// invalidations.
type Cache struct {
	client *redis.Client
	logger *zerolog.Logger
	ttl    time.Duration
}

// New creates a Cache. Cached views expire after ttl so a missed
// invalidation cannot go stale forever.
func New(client *redis.Client, logger *zerolog.Logger, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

func viewKey(view, userID string) string {
	return fmt.Sprintf("spendly:views:%s:%s", view, userID)
}

// InvalidateRootView drops every cached view for the user and publishes
// the user id on the invalidation channel. Fire and forget.
func (c *Cache) InvalidateRootView(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}

	pattern := viewKey("*", userID)
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("view cache invalidation scan failed")
		return
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn().Err(err).Str("user_id", userID).Msg("view cache invalidation failed")
		}
	}

	if err := c.client.Publish(ctx, InvalidationChannel, userID).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("view invalidation publish failed")
	}
}

// Store caches a rendered view payload for the user.
func (c *Cache) Store(ctx context.Context, view, userID string, payload []byte) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, viewKey(view, userID), payload, c.ttl).Err()
}

// Get returns the cached payload for a view, or redis.Nil when absent.
func (c *Cache) Get(ctx context.Context, view, userID string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, redis.Nil
	}
	return c.client.Get(ctx, viewKey(view, userID)).Bytes()
}
