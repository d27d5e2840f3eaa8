package di

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finbar/internal/platform/cache"
	"finbar/internal/platform/config"
	"finbar/internal/platform/db/dbtest"
	"finbar/internal/platform/session"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT:       config.JWTConfig{Secret: "test-secret", AccessTTL: 15 * time.Minute},
		Auth:      config.AuthConfig{RefreshTTL: time.Hour, MaxSessions: 5},
		RateLimit: config.RateLimitConfig{RPS: 1, Burst: 5},
		Cache:     config.CacheConfig{PortfolioTTL: time.Minute},
	}
}

func TestNewSessionRepository(t *testing.T) {
	db := dbtest.Open(t, Models()...)

	repo := NewSessionRepository(nil, db)
	assert.NotNil(t, repo)
	_, isRedis := repo.(*session.SessionRedis)
	assert.False(t, isRedis)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	_, isRedis = NewSessionRepository(rdb, db).(*session.SessionRedis)
	assert.True(t, isRedis)
}

func TestNewPortfolioRepository_IsCached(t *testing.T) {
	db := dbtest.Open(t, Models()...)
	_, ok := NewPortfolioRepository(nil, db, 0).(*cache.CachingPortfolioRepository)
	assert.True(t, ok)
}

func TestBuild(t *testing.T) {
	db := dbtest.Open(t, Models()...)

	app, err := Build(testConfig(), db, nil)
	require.NoError(t, err)
	assert.NotNil(t, app.Auth)
	assert.NotNil(t, app.Portfolio)
	assert.NotNil(t, app.Action)
	assert.NotNil(t, app.Performance)
	assert.NotNil(t, app.Health)
	assert.Equal(t, "test-secret", app.JWTSecret)

	require.Len(t, app.Jobs, 2)
	for _, j := range app.Jobs {
		assert.NoError(t, j.Job.Run(context.Background()), j.Job.Name())
	}
}
