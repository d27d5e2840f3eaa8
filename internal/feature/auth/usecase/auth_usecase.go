// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"finbar/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数です。
	minPasswordLength = 6
	// minNameLength は表示名の最低文字数です。
	minNameLength = 2
	// refreshTokenBytes はリフレッシュトークンの乱数バイト数です（16進で64文字）。
	refreshTokenBytes = 32
	// dummyHash はユーザーが存在しない場合にもbcrypt比較を行うためのハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを保存します。メールアドレスが重複する場合はErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail はメールアドレスでユーザーを取得します。存在しない場合はErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID はIDでユーザーを取得します。存在しない場合はErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdateName は表示名を更新します。
	UpdateName(ctx context.Context, id uint, name string) error
}

// JWTGenerator はアクセストークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// ClientMeta はセッションに記録するクライアント情報です。
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

// Tokens はログイン・リフレッシュ成功時に返すトークンの組です。
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // アクセストークンの有効秒数
}

// Options はセッションポリシーです。
type Options struct {
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	MaxSessions int
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
	tokens   JWTGenerator
	opts     Options
	now      func() time.Time
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens JWTGenerator, opts Options) *authUsecase {
	if opts.MaxSessions < 1 {
		opts.MaxSessions = 1
	}
	return &authUsecase{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		opts:     opts,
		now:      time.Now,
	}
}

func validateSignup(name, email, password string) error {
	if n := strings.TrimSpace(name); n != "" && utf8.RuneCountInString(n) < minNameLength {
		return fmt.Errorf("%w: name must be at least %d characters long", ErrInvalidInput, minNameLength)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
// 名前が空の場合はentity.DefaultNameになります。
func (u *authUsecase) Signup(ctx context.Context, name, email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateSignup(name, email, password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Email:    email,
		Password: string(hashed),
		Name:     entity.DisplayName(name),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、アクセストークンと新しいリフレッシュセッションを発行します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string, meta ClientMeta) (*Tokens, error) {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	if err := u.enforceSessionLimit(ctx, user.ID); err != nil {
		return nil, err
	}
	return u.issue(ctx, user, meta)
}

// Refresh はリフレッシュトークンをローテーションします。
// 古いセッションは失効し、新しいトークンの組が返ります。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, meta ClientMeta) (*Tokens, error) {
	session, err := u.validSession(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}
	return u.issue(ctx, user, meta)
}

// Logout は呼び出し元ユーザーのリフレッシュセッションを1つ失効させます。
func (u *authUsecase) Logout(ctx context.Context, userID uint, refreshToken string) error {
	session, err := u.validSession(ctx, refreshToken)
	if err != nil {
		return err
	}
	if session.UserID != userID {
		return ErrInvalidRefreshToken
	}
	return u.sessions.Revoke(ctx, session.ID)
}

// LogoutAll はユーザーの全セッションを失効させます。
func (u *authUsecase) LogoutAll(ctx context.Context, userID uint) error {
	return u.sessions.RevokeAllByUserID(ctx, userID)
}

// Profile はユーザー情報を返します。
func (u *authUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateName は表示名を更新し、更新後のユーザーを返します。
func (u *authUsecase) UpdateName(ctx context.Context, userID uint, name string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minNameLength {
		return nil, fmt.Errorf("%w: name must be at least %d characters long", ErrInvalidInput, minNameLength)
	}
	if err := u.users.UpdateName(ctx, userID, name); err != nil {
		return nil, err
	}
	return u.users.FindByID(ctx, userID)
}

// PurgeExpiredSessions は期限切れセッションを削除します。スケジューラから定期的に呼ばれます。
func (u *authUsecase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx)
}

func (u *authUsecase) validSession(ctx context.Context, refreshToken string) (*entity.Session, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !session.IsValidAt(u.now()) {
		return nil, ErrInvalidRefreshToken
	}
	return session, nil
}

// enforceSessionLimit は新しいセッションを作る前に、上限に達していれば古いものから削除します。
func (u *authUsecase) enforceSessionLimit(ctx context.Context, userID uint) error {
	count, err := u.sessions.CountByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count sessions: %w", err)
	}
	for ; count >= int64(u.opts.MaxSessions); count-- {
		if err := u.sessions.DeleteOldestByUserID(ctx, userID); err != nil {
			return fmt.Errorf("failed to evict session: %w", err)
		}
	}
	return nil
}

func (u *authUsecase) issue(ctx context.Context, user *entity.User, meta ClientMeta) (*Tokens, error) {
	access, err := u.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}

	now := u.now()
	session := &entity.Session{
		ID:        refresh,
		UserID:    user.ID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.opts.RefreshTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &Tokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(u.opts.AccessTTL / time.Second),
	}, nil
}

func newRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
