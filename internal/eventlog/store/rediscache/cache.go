// Package rediscache decorates an eventlog.Store with a read-through Redis
// cache for the reporting lookups. Entries are TTL-bounded and invalidated
// wholesale on every append through a generation counter, so a cached
// result is never older than the last write plus the TTL. Cache failures
// degrade to the underlying store, never to the caller.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"stripelog/internal/eventlog"
)

const generationKey = "stripelog:lookup:gen"

// Cache implements eventlog.Store over an inner store and a Redis client.
type Cache struct {
	store  eventlog.Store
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// New wraps store with a Redis lookup cache.
func New(store eventlog.Store, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Cache{store: store, client: client, ttl: ttl, logger: logger}
}

// Append writes through to the store and bumps the generation counter so
// stale lookup entries are orphaned immediately.
func (c *Cache) Append(ctx context.Context, record eventlog.Record) error {
	if err := c.store.Append(ctx, record); err != nil {
		return err
	}
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.logger.Warn("cache invalidation failed; entries expire via TTL", "error", err)
	}
	return nil
}

// LookupByEmail serves from cache when possible.
func (c *Cache) LookupByEmail(ctx context.Context, email string) ([]eventlog.Record, error) {
	return c.cached(ctx, "email:"+email, func() ([]eventlog.Record, error) {
		return c.store.LookupByEmail(ctx, email)
	})
}

// LookupByType serves from cache when possible.
func (c *Cache) LookupByType(ctx context.Context, eventType string) ([]eventlog.Record, error) {
	return c.cached(ctx, "type:"+eventType, func() ([]eventlog.Record, error) {
		return c.store.LookupByType(ctx, eventType)
	})
}

// LookupByTimeRange serves from cache when possible.
func (c *Cache) LookupByTimeRange(ctx context.Context, start, end time.Time) ([]eventlog.Record, error) {
	key := fmt.Sprintf("range:%d:%d", start.UnixNano(), end.UnixNano())
	return c.cached(ctx, key, func() ([]eventlog.Record, error) {
		return c.store.LookupByTimeRange(ctx, start, end)
	})
}

// CountByType is an operator query; it always hits the store.
func (c *Cache) CountByType(ctx context.Context) (map[string]int64, error) {
	return c.store.CountByType(ctx)
}

// Bounds is an operator query; it always hits the store.
func (c *Cache) Bounds(ctx context.Context) (eventlog.Bounds, error) {
	return c.store.Bounds(ctx)
}

func (c *Cache) cached(ctx context.Context, suffix string, load func() ([]eventlog.Record, error)) ([]eventlog.Record, error) {
	key, ok := c.key(ctx, suffix)
	if ok {
		raw, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			var records []eventlog.Record
			if unmarshalErr := json.Unmarshal(raw, &records); unmarshalErr == nil {
				return records, nil
			}
			// Corrupt entry; fall through and overwrite it below.
		} else if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed; serving from store", "error", err)
			ok = false
		}
	}

	records, err := load()
	if err != nil {
		return nil, err
	}

	if ok {
		if encoded, marshalErr := json.Marshal(records); marshalErr == nil {
			if setErr := c.client.Set(ctx, key, encoded, c.ttl).Err(); setErr != nil {
				c.logger.Warn("cache write failed", "error", setErr)
			}
		}
	}
	return records, nil
}

// key builds a generation-scoped cache key. ok is false when the generation
// counter is unreachable, which disables caching for this call.
func (c *Cache) key(ctx context.Context, suffix string) (string, bool) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", false
	}
	return fmt.Sprintf("stripelog:lookup:%d:%s", gen, suffix), true
}
