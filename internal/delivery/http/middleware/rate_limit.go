package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"devhire-backend/internal/delivery/http/response"
	"devhire-backend/internal/domain"
	"devhire-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window, enforced in Redis
	Limit int
	// Time window duration
	Window time.Duration
	// Sustained requests per second of the in-process fallback
	RPS int
	// Key extractor (default: user id, else client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Redis returns the shared client; nil or a nil result selects the fallback
	Redis func() *goredis.Client
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// callerKey limits authenticated callers per user and everyone else per IP.
func callerKey(c *gin.Context) string {
	if id := c.GetString(string(domain.KeyUserID)); id != "" {
		return "user:" + id
	}
	return "ip:" + c.ClientIP()
}

// localLimiter is the per-key token bucket used when Redis is unavailable.
type localLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newLocalLimiter(rps int) *localLimiter {
	if rps < 1 {
		rps = 1
	}
	return &localLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    rps * 2,
	}
}

func (l *localLimiter) allow(key string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// reset drops all buckets; idle keys would otherwise accumulate forever.
func (l *localLimiter) reset() {
	l.mu.Lock()
	l.limiters = make(map[string]*rate.Limiter)
	l.mu.Unlock()
}

// RateLimitMiddleware creates a rate limiting middleware with the given config
// Uses a Redis fixed window when available, an in-process token bucket otherwise
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = callerKey
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rl:"
	}
	fallback := newLocalLimiter(config.RPS)
	lastReset := time.Now()
	var resetMu sync.Mutex

	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)

		var client *goredis.Client
		if config.Redis != nil {
			client = config.Redis()
		}

		if client != nil {
			count, resetAt, err := checkRateLimitRedis(c.Request.Context(), client, key, config.Window)
			if err == nil {
				remaining := max(0, config.Limit-count)
				c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
				c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
				c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

				if count > config.Limit {
					retryAfter := max(1, int(time.Until(resetAt).Seconds()))
					c.Header("Retry-After", strconv.Itoa(retryAfter))
					rejectRateLimited(c, key)
					return
				}
				c.Next()
				return
			}
			logger.Log.Warn().Err(err).Msg("Redis rate limit failed, using in-memory limiter")
		}

		resetMu.Lock()
		if time.Since(lastReset) > 5*time.Minute {
			fallback.reset()
			lastReset = time.Now()
		}
		resetMu.Unlock()

		if !fallback.allow(key) {
			c.Header("Retry-After", "1")
			rejectRateLimited(c, key)
			return
		}
		c.Next()
	}
}

func rejectRateLimited(c *gin.Context, key string) {
	logger.Log.Warn().
		Str("key", key).
		Str("path", c.FullPath()).
		Str("request_id", c.GetString(string(domain.KeyRequestID))).
		Msg("Rate limit exceeded")
	response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
	c.Abort()
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	ttlSeconds := max(1, int(window.Seconds()))

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}
