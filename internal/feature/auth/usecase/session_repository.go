package usecase

import (
	"context"

	"finbar/internal/feature/auth/domain/entity"
)

// SessionRepository はセッションの永続化層を抽象化します。
// 実装はRedis（platform/session）とgorm（adapters）の2つです。
type SessionRepository interface {
	// Create は新しいセッションを保存します。
	Create(ctx context.Context, session *entity.Session) error

	// FindByID はリフレッシュトークン値でセッションを取得します。
	// 存在しない場合はErrSessionNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// FindByUserID はユーザーの有効なセッションを古い順に返します。
	FindByUserID(ctx context.Context, userID uint) ([]*entity.Session, error)

	// Revoke はセッションを失効させます。
	Revoke(ctx context.Context, id string) error

	// RevokeAllByUserID はユーザーの全セッションを失効させます。
	RevokeAllByUserID(ctx context.Context, userID uint) error

	// DeleteExpired は期限切れのセッションを削除し、削除件数を返します。
	DeleteExpired(ctx context.Context) (int64, error)

	// CountByUserID はユーザーの有効なセッション数を返します。
	CountByUserID(ctx context.Context, userID uint) (int64, error)

	// DeleteOldestByUserID はユーザーの最も古い有効なセッションを削除します。
	DeleteOldestByUserID(ctx context.Context, userID uint) error
}
