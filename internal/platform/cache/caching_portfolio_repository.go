// Package cache provides caching decorators for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"finbar/internal/feature/portfolio/domain/entity"
	"finbar/internal/feature/portfolio/usecase"
)

// CachingPortfolioRepository decorates a PortfolioRepository with a Redis
// cache of each user's portfolio list. Every write drops the user's entry.
type CachingPortfolioRepository struct {
	inner     usecase.PortfolioRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PortfolioRepository = (*CachingPortfolioRepository)(nil)

// NewCachingPortfolioRepository wraps inner. A nil rdb makes the decorator a
// pass-through. If ttl is 0, it defaults to 5 minutes. If namespace is empty,
// it uses "portfolios".
func NewCachingPortfolioRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PortfolioRepository, namespace string) *CachingPortfolioRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "portfolios"
	}
	return &CachingPortfolioRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// ListByUser checks the cache first and falls back to the inner repository.
func (c *CachingPortfolioRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Portfolio, error) {
	if c.rdb == nil {
		return c.inner.ListByUser(ctx, userID)
	}

	key := c.cacheKey(userID)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Portfolio
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 壊れたキャッシュは削除する
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Warn("portfolio cache write failed", "key", key, "error", err)
		}
	}
	return out, nil
}

// FindByID is never cached.
func (c *CachingPortfolioRepository) FindByID(ctx context.Context, userID uint, id string) (*entity.Portfolio, error) {
	return c.inner.FindByID(ctx, userID, id)
}

func (c *CachingPortfolioRepository) Create(ctx context.Context, p *entity.Portfolio) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.UserID)
	return nil
}

func (c *CachingPortfolioRepository) Update(ctx context.Context, p *entity.Portfolio) error {
	if err := c.inner.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.UserID)
	return nil
}

func (c *CachingPortfolioRepository) Delete(ctx context.Context, userID uint, id string) error {
	if err := c.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

// invalidate はユーザーのキャッシュを削除します。失敗しても書き込み自体は成功扱いです。
func (c *CachingPortfolioRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.cacheKey(userID)).Err(); err != nil {
		slog.Warn("portfolio cache invalidation failed", "user_id", userID, "error", err)
	}
}

func (c *CachingPortfolioRepository) cacheKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", c.namespace, userID)
}
