package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"devhire-backend/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const generationKey = "search:gen"

// SearchCache keeps search pages and stats in Redis. Keys embed a
// generation counter; bumping it retires every cached entry at once.
// A nil client turns every call into a miss.
type SearchCache struct {
	client *redis.Client

	warnedUnavailable atomic.Bool
}

func NewSearchCache(client *redis.Client) *SearchCache {
	return &SearchCache{client: client}
}

func (c *SearchCache) unavailable() bool {
	return c == nil || c.client == nil
}

func (c *SearchCache) warnOnce(err error) {
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		logger.Log.Warn().Err(err).Msg("Redis unavailable, bypassing search cache")
	}
}

func (c *SearchCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if c.unavailable() {
		return false, nil
	}
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		c.warnOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *SearchCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.unavailable() {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, b, ttl).Err(); err != nil {
		c.warnOnce(err)
		return err
	}
	return nil
}

func (c *SearchCache) Generation(ctx context.Context) (int64, error) {
	if c.unavailable() {
		return 0, nil
	}
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		c.warnOnce(err)
		return 0, err
	}
	return gen, nil
}

func (c *SearchCache) Invalidate(ctx context.Context) error {
	if c.unavailable() {
		return nil
	}
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.warnOnce(err)
		return err
	}
	return nil
}
