package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	portfolioadapters "finbar/internal/feature/portfolio/adapters"
	"finbar/internal/feature/portfolio/usecase"
	"finbar/internal/platform/cache"
)

// NewPortfolioRepository returns the gorm repository wrapped in the Redis
// list cache. Without Redis the wrapper passes every call through.
func NewPortfolioRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.PortfolioRepository {
	return cache.NewCachingPortfolioRepository(rdb, ttl, portfolioadapters.NewPortfolioGorm(db), "portfolios")
}
