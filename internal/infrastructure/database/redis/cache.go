package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// nullSentinel caches the absence of a value so repeated misses do not hammer
// the database.
const nullSentinel = "__null__"

// ErrCacheMiss is returned by Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// ErrNegativeEntry is returned when the key holds the null sentinel.
var ErrNegativeEntry = errors.New("cached negative entry")

// Cache is a JSON read-through cache with TTL jitter and singleflight
// protection against stampedes.
type Cache struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
	group  singleflight.Group
	log    logging.Logger
}

// NewCache builds a Cache whose keys are namespaced under prefix.
func NewCache(client *goredis.Client, prefix string, ttl time.Duration, log logging.Logger) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		log:    log.Named("cache"),
	}
}

// BuildKey joins parts under the cache prefix with colons.
func (c *Cache) BuildKey(parts ...string) string {
	return c.prefix + ":" + strings.Join(parts, ":")
}

// jitteredTTL spreads expiry by up to ±10% so hot keys do not all expire in
// the same instant.
func (c *Cache) jitteredTTL() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	spread := int64(float64(c.ttl) * 0.1)
	if spread == 0 {
		return c.ttl
	}
	return c.ttl + time.Duration(rand.Int63n(2*spread)-spread)
}

// Get unmarshals the cached JSON at key into dest.  Returns ErrCacheMiss when
// absent and ErrNegativeEntry when a negative result is cached.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	raw, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeCacheError, "cache get")
	}
	if raw == nullSentinel {
		return ErrNegativeEntry
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		// A corrupt entry is treated as a miss after eviction.
		c.client.Del(ctx, key)
		return ErrCacheMiss
	}
	return nil
}

// Set stores value as JSON under key with jittered TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeCacheError, "cache marshal")
	}
	if err := c.client.Set(ctx, key, raw, c.jitteredTTL()).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeCacheError, "cache set")
	}
	return nil
}

// SetNegative records that the key has no backing value.
func (c *Cache) SetNegative(ctx context.Context, key string) error {
	if err := c.client.Set(ctx, key, nullSentinel, c.jitteredTTL()).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeCacheError, "cache set negative")
	}
	return nil
}

// Delete removes keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeCacheError, "cache delete")
	}
	return nil
}

// GetOrSet returns the cached value at key, or loads it via loader, caches the
// result and returns it.  Concurrent callers for the same key share a single
// loader invocation.  Cache infrastructure failures degrade to calling loader
// directly rather than failing the request.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest any, loader func(ctx context.Context) (any, error)) error {
	err := c.Get(ctx, key, dest)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNegativeEntry):
		return appErrors.NotFound("cached negative entry").WithDetail("key=" + key)
	case errors.Is(err, ErrCacheMiss):
		// fall through to loader
	default:
		c.log.Warn("cache read degraded", logging.String("key", key), logging.Err(err))
	}

	val, loadErr, _ := c.group.Do(key, func() (any, error) {
		v, err := loader(ctx)
		if err != nil {
			if appErrors.IsNotFound(err) {
				_ = c.SetNegative(ctx, key)
			}
			return nil, err
		}
		if setErr := c.Set(ctx, key, v); setErr != nil {
			c.log.Warn("cache write degraded", logging.String("key", key), logging.Err(setErr))
		}
		return v, nil
	})
	if loadErr != nil {
		return loadErr
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeCacheError, "marshal loaded value")
	}
	return json.Unmarshal(raw, dest)
}
