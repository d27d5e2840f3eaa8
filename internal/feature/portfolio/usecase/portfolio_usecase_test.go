package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finbar/internal/feature/portfolio/domain/entity"
)

// mockPortfolioRepository はPortfolioRepositoryのモック実装です。
type mockPortfolioRepository struct {
	ListByUserFunc func(userID uint) ([]entity.Portfolio, error)
	FindByIDFunc   func(userID uint, id string) (*entity.Portfolio, error)
	CreateFunc     func(p *entity.Portfolio) error
	UpdateFunc     func(p *entity.Portfolio) error
	DeleteFunc     func(userID uint, id string) error
}

func (m *mockPortfolioRepository) ListByUser(_ context.Context, userID uint) ([]entity.Portfolio, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(userID)
	}
	return nil, nil
}

func (m *mockPortfolioRepository) FindByID(_ context.Context, userID uint, id string) (*entity.Portfolio, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(userID, id)
	}
	return nil, ErrNotFound
}

func (m *mockPortfolioRepository) Create(_ context.Context, p *entity.Portfolio) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(p)
	}
	return nil
}

func (m *mockPortfolioRepository) Update(_ context.Context, p *entity.Portfolio) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(p)
	}
	return nil
}

func (m *mockPortfolioRepository) Delete(_ context.Context, userID uint, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(userID, id)
	}
	return nil
}

func TestPortfolioUsecase_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      Input
		wantErr error
	}{
		{"valid", Input{Name: " Leumi Trade ", AccountNumber: " 123-456 ", Fee: decimal.RequireFromString("4.9")}, nil},
		{"zero fee is allowed", Input{Name: "IBI", AccountNumber: "1", Fee: decimal.Zero}, nil},
		{"blank name", Input{Name: "   ", AccountNumber: "1"}, ErrInvalidInput},
		{"blank account number", Input{Name: "IBI", AccountNumber: " "}, ErrInvalidInput},
		{"negative fee", Input{Name: "IBI", AccountNumber: "1", Fee: decimal.NewFromInt(-1)}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stored *entity.Portfolio
			uc := NewPortfolioUsecase(&mockPortfolioRepository{CreateFunc: func(p *entity.Portfolio) error {
				stored = p
				return nil
			}})
			uc.newID = func() string { return "fixed-id" }

			p, err := uc.Create(context.Background(), 5, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, stored, "repository must not be called")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "fixed-id", p.ID)
			assert.Equal(t, uint(5), p.UserID)
			assert.Equal(t, stored, p)
			assert.Equal(t, strings.TrimSpace(tt.in.Name), p.Name)
			assert.Equal(t, strings.TrimSpace(tt.in.AccountNumber), p.AccountNumber)
		})
	}
}

func TestPortfolioUsecase_Update(t *testing.T) {
	t.Parallel()

	existing := &entity.Portfolio{ID: "p1", UserID: 5, Name: "Old", AccountNumber: "1"}
	var updated *entity.Portfolio
	repo := &mockPortfolioRepository{
		FindByIDFunc: func(userID uint, id string) (*entity.Portfolio, error) {
			if userID == 5 && id == "p1" {
				cp := *existing
				return &cp, nil
			}
			return nil, ErrNotFound
		},
		UpdateFunc: func(p *entity.Portfolio) error {
			updated = p
			return nil
		},
	}
	uc := NewPortfolioUsecase(repo)
	ctx := context.Background()

	p, err := uc.Update(ctx, 5, "p1", Input{Name: "New", AccountNumber: "2", Fee: decimal.NewFromInt(3)})
	require.NoError(t, err)
	assert.Equal(t, "New", p.Name)
	assert.Equal(t, "2", updated.AccountNumber)
	assert.True(t, updated.Fee.Equal(decimal.NewFromInt(3)))

	_, err = uc.Update(ctx, 6, "p1", Input{Name: "Steal", AccountNumber: "9"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = uc.Update(ctx, 5, "p1", Input{Name: "", AccountNumber: "9"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPortfolioUsecase_Owns(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("db down")
	repo := &mockPortfolioRepository{FindByIDFunc: func(userID uint, id string) (*entity.Portfolio, error) {
		switch id {
		case "mine":
			return &entity.Portfolio{ID: id, UserID: userID}, nil
		case "broken":
			return nil, dbErr
		default:
			return nil, ErrNotFound
		}
	}}
	uc := NewPortfolioUsecase(repo)
	ctx := context.Background()

	ok, err := uc.Owns(ctx, 1, "mine")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.Owns(ctx, 1, "someone-elses")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = uc.Owns(ctx, 1, "broken")
	assert.ErrorIs(t, err, dbErr)
}

func TestPortfolioUsecase_ListAndDelete(t *testing.T) {
	t.Parallel()

	repo := &mockPortfolioRepository{
		ListByUserFunc: func(userID uint) ([]entity.Portfolio, error) {
			return []entity.Portfolio{{ID: "a", UserID: userID}, {ID: "b", UserID: userID}}, nil
		},
		DeleteFunc: func(userID uint, id string) error {
			if id == "a" {
				return nil
			}
			return ErrNotFound
		},
	}
	uc := NewPortfolioUsecase(repo)
	ctx := context.Background()

	list, err := uc.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.NoError(t, uc.Delete(ctx, 3, "a"))
	assert.ErrorIs(t, uc.Delete(ctx, 3, "zzz"), ErrNotFound)
}
