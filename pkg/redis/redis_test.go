package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	t.Run("requires a URL", func(t *testing.T) {
		_, err := Options(Config{})
		assert.ErrorContains(t, err, "REDIS_URL")
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		_, err := Options(Config{URL: "http://localhost"})
		assert.Error(t, err)
	})

	t.Run("plain URL", func(t *testing.T) {
		opts, err := Options(Config{URL: "redis://:secret@cache.local:6380/2"})
		require.NoError(t, err)
		assert.Equal(t, "cache.local:6380", opts.Addr)
		assert.Equal(t, "secret", opts.Password)
		assert.Equal(t, 2, opts.DB)
		assert.Nil(t, opts.TLSConfig)
		assert.Equal(t, 5*time.Second, opts.DialTimeout)
	})

	t.Run("explicit password wins and rediss enables TLS", func(t *testing.T) {
		opts, err := Options(Config{URL: "rediss://:fromurl@cache.local:6379", Password: "override"})
		require.NoError(t, err)
		assert.Equal(t, "override", opts.Password)
		require.NotNil(t, opts.TLSConfig)
	})
}

func TestSearchCacheWithoutClientIsAMiss(t *testing.T) {
	ctx := context.Background()
	c := NewSearchCache(nil)

	require.NoError(t, c.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var out map[string]int
	hit, err := c.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Zero(t, gen)
	assert.NoError(t, c.Invalidate(ctx))
}
