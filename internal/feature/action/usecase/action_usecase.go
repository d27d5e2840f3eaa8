package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"finbar/internal/feature/action/domain/entity"
)

// ActionRepository はアクションの永続化層を抽象化します。
type ActionRepository interface {
	Create(ctx context.Context, a *entity.Action) error
	// ListByUser は日付の新しい順に返します。portfolioIDが空なら全ポートフォリオが対象です。
	ListByUser(ctx context.Context, userID uint, portfolioID string) ([]entity.Action, error)
}

// PortfolioOwnership はポートフォリオの所有者確認を行います。
// portfolioフィーチャーのユースケースが実装します。
type PortfolioOwnership interface {
	Owns(ctx context.Context, userID uint, portfolioID string) (bool, error)
}

type actionUsecase struct {
	repo       ActionRepository
	portfolios PortfolioOwnership
	newID      func() string
}

// NewActionUsecase はactionUsecaseを生成します。
func NewActionUsecase(repo ActionRepository, portfolios PortfolioOwnership) *actionUsecase {
	return &actionUsecase{repo: repo, portfolios: portfolios, newID: uuid.NewString}
}

// Record validates in, checks the portfolio belongs to userID and stores the action.
func (u *actionUsecase) Record(ctx context.Context, userID uint, in Input) (*entity.Action, error) {
	a, err := build(in)
	if err != nil {
		return nil, err
	}
	owns, err := u.portfolios.Owns(ctx, userID, a.PortfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to check portfolio: %w", err)
	}
	if !owns {
		return nil, ErrPortfolioNotFound
	}

	a.ID = u.newID()
	a.UserID = userID
	if err := u.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to record action: %w", err)
	}
	return a, nil
}

// List returns the caller's actions, newest date first, optionally for one portfolio.
func (u *actionUsecase) List(ctx context.Context, userID uint, portfolioID string) ([]entity.Action, error) {
	return u.repo.ListByUser(ctx, userID, portfolioID)
}
