// Package redis はアプリケーション用の go-redis クライアントを生成します。
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"finbar/internal/platform/config"
)

// NewRedisClient は設定からクライアントを生成し、疎通を確認します。
// Addr が空の場合は Redis を使わないものとして nil, nil を返します。
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		slog.Info("Redis disabled; using database-backed sessions and no cache")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr)
	return rdb, nil
}

// Pinger adapts a client to the health handler's PingContext.
type Pinger struct {
	Client *redis.Client
}

func (p Pinger) PingContext(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}
