package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finbar/internal/feature/portfolio/domain/entity"
)

// PortfolioRepository はポートフォリオの永続化層を抽象化します。
// すべての操作はユーザーIDでスコープされ、他人の行は存在しないものとして扱います。
type PortfolioRepository interface {
	// ListByUser はユーザーのポートフォリオを作成日時の昇順で返します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Portfolio, error)
	// FindByID は見つからない場合ErrNotFoundを返します。
	FindByID(ctx context.Context, userID uint, id string) (*entity.Portfolio, error)
	Create(ctx context.Context, p *entity.Portfolio) error
	// Update は見つからない場合ErrNotFoundを返します。
	Update(ctx context.Context, p *entity.Portfolio) error
	// Delete は見つからない場合ErrNotFoundを返します。
	Delete(ctx context.Context, userID uint, id string) error
}

// Input は作成・更新時の入力値です。
type Input struct {
	Name          string
	AccountNumber string
	Fee           decimal.Decimal
}

func (in Input) normalize() (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.AccountNumber = strings.TrimSpace(in.AccountNumber)
	switch {
	case in.Name == "":
		return in, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case in.AccountNumber == "":
		return in, fmt.Errorf("%w: account number is required", ErrInvalidInput)
	case in.Fee.IsNegative():
		return in, fmt.Errorf("%w: fee must not be negative", ErrInvalidInput)
	}
	return in, nil
}

type portfolioUsecase struct {
	repo  PortfolioRepository
	newID func() string
}

// NewPortfolioUsecase はportfolioUsecaseを生成します。
func NewPortfolioUsecase(repo PortfolioRepository) *portfolioUsecase {
	return &portfolioUsecase{repo: repo, newID: uuid.NewString}
}

// List returns the caller's portfolios, oldest first.
func (u *portfolioUsecase) List(ctx context.Context, userID uint) ([]entity.Portfolio, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Create validates the input and stores a new portfolio for userID.
func (u *portfolioUsecase) Create(ctx context.Context, userID uint, in Input) (*entity.Portfolio, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	p := &entity.Portfolio{
		ID:            u.newID(),
		UserID:        userID,
		Name:          in.Name,
		AccountNumber: in.AccountNumber,
		Fee:           in.Fee,
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}
	return p, nil
}

// Update replaces name, account number and fee of one of the caller's portfolios.
func (u *portfolioUsecase) Update(ctx context.Context, userID uint, id string, in Input) (*entity.Portfolio, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	p, err := u.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.AccountNumber = in.AccountNumber
	p.Fee = in.Fee
	if err := u.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes one of the caller's portfolios.
func (u *portfolioUsecase) Delete(ctx context.Context, userID uint, id string) error {
	return u.repo.Delete(ctx, userID, id)
}

// Owns reports whether the portfolio exists and belongs to userID.
func (u *portfolioUsecase) Owns(ctx context.Context, userID uint, id string) (bool, error) {
	_, err := u.repo.FindByID(ctx, userID, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
