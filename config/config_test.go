package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SEARCH_CACHE_TTL", "not-a-duration")
	t.Setenv("RATE_LIMIT_REQUESTS", "abc")
	t.Setenv("FRONTEND_URL", "http://localhost:5173/, https://devhire.example.com ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.SearchCacheTTL)
	assert.Equal(t, 120, cfg.RateLimitRequests)
	assert.Equal(t, []string{"http://localhost:5173", "https://devhire.example.com"}, cfg.FrontendURLs)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SEARCH_CACHE_TTL", "45s")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("DB_MAX_CONNS", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.SearchCacheTTL)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 7, cfg.DBMaxConns)
}
