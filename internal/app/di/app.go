// Package di wires repositories, usecases and handlers from configuration.
package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	actionadapters "finbar/internal/feature/action/adapters"
	actionhandler "finbar/internal/feature/action/transport/handler"
	actionusecase "finbar/internal/feature/action/usecase"
	authadapters "finbar/internal/feature/auth/adapters"
	authhandler "finbar/internal/feature/auth/transport/handler"
	authusecase "finbar/internal/feature/auth/usecase"
	performancehandler "finbar/internal/feature/performance/transport/handler"
	performanceusecase "finbar/internal/feature/performance/usecase"
	portfoliohandler "finbar/internal/feature/portfolio/transport/handler"
	portfoliousecase "finbar/internal/feature/portfolio/usecase"
	"finbar/internal/platform/config"
	platformhandler "finbar/internal/platform/http/handler"
	jwtmw "finbar/internal/platform/jwt"
	platformredis "finbar/internal/platform/redis"
	"finbar/internal/platform/scheduler"
	"finbar/internal/shared/ratelimiter"
)

// rateLimiterIdle is how long a client IP may stay silent before its bucket is dropped.
const rateLimiterIdle = 10 * time.Minute

// ScheduledJob pairs a background job with its cron schedule.
type ScheduledJob struct {
	Schedule string
	Job      scheduler.Job
}

// App holds everything the router and the scheduler need.
type App struct {
	Auth        *authhandler.AuthHandler
	Portfolio   *portfoliohandler.PortfolioHandler
	Action      *actionhandler.ActionHandler
	Performance *performancehandler.PerformanceHandler
	Health      *platformhandler.HealthHandler
	Limiter     *ratelimiter.KeyedLimiter

	JWTSecret   string
	CORSOrigins []string
	Jobs        []ScheduledJob
}

// Build wires the application. rdb may be nil.
func Build(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	sessionRepo := NewSessionRepository(rdb, db)
	portfolioRepo := NewPortfolioRepository(rdb, db, cfg.Cache.PortfolioTTL)
	actionRepo := actionadapters.NewActionGorm(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.AccessTTL), authusecase.Options{
		AccessTTL:   cfg.JWT.AccessTTL,
		RefreshTTL:  cfg.Auth.RefreshTTL,
		MaxSessions: cfg.Auth.MaxSessions,
	})
	portfolioUC := portfoliousecase.NewPortfolioUsecase(portfolioRepo)
	actionUC := actionusecase.NewActionUsecase(actionRepo, portfolioUC)
	performanceUC := performanceusecase.NewPerformanceUsecase(performanceusecase.NewSeriesGenerator(nil, nil))

	deps := map[string]platformhandler.Pinger{"db": sqlDB}
	if rdb != nil {
		deps["redis"] = platformredis.Pinger{Client: rdb}
	}
	limiter := ratelimiter.NewKeyedLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	return &App{
		Auth:        authhandler.NewAuthHandler(authUC),
		Portfolio:   portfoliohandler.NewPortfolioHandler(portfolioUC),
		Action:      actionhandler.NewActionHandler(actionUC),
		Performance: performancehandler.NewPerformanceHandler(performanceUC),
		Health:      platformhandler.NewHealthHandler(deps),
		Limiter:     limiter,
		JWTSecret:   cfg.JWT.Secret,
		CORSOrigins: cfg.Server.CORSOrigins,
		Jobs: []ScheduledJob{
			{Schedule: "@hourly", Job: scheduler.JobFunc{JobName: "purge-expired-sessions", Fn: func(ctx context.Context) error {
				n, err := authUC.PurgeExpiredSessions(ctx)
				if err != nil {
					return err
				}
				slog.Info("expired sessions purged", "count", n)
				return nil
			}}},
			{Schedule: "@every 10m", Job: scheduler.JobFunc{JobName: "sweep-rate-limiter", Fn: func(context.Context) error {
				slog.Debug("rate limiter swept", "dropped", limiter.Sweep(rateLimiterIdle))
				return nil
			}}},
		},
	}, nil
}
