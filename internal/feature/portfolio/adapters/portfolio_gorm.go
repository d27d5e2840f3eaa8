// Package adapters はportfolioフィーチャーのgormリポジトリを提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finbar/internal/feature/portfolio/domain/entity"
	"finbar/internal/feature/portfolio/usecase"
)

// PortfolioModel はportfoliosテーブルのgormモデルです。
type PortfolioModel struct {
	ID            string          `gorm:"primaryKey;size:36"`
	UserID        uint            `gorm:"index;not null"`
	Name          string          `gorm:"size:255;not null"`
	AccountNumber string          `gorm:"size:64;not null"`
	Fee           decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time
}

func (PortfolioModel) TableName() string { return "portfolios" }

func (m *PortfolioModel) toEntity() entity.Portfolio {
	return entity.Portfolio{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		AccountNumber: m.AccountNumber,
		Fee:           m.Fee,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func modelFrom(p *entity.Portfolio) *PortfolioModel {
	return &PortfolioModel{
		ID:            p.ID,
		UserID:        p.UserID,
		Name:          p.Name,
		AccountNumber: p.AccountNumber,
		Fee:           p.Fee,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type portfolioGorm struct {
	db *gorm.DB
}

var _ usecase.PortfolioRepository = (*portfolioGorm)(nil)

// NewPortfolioGorm はgorm.DBを使うPortfolioRepositoryを生成します。
func NewPortfolioGorm(db *gorm.DB) *portfolioGorm {
	return &portfolioGorm{db: db}
}

func (r *portfolioGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Portfolio, error) {
	var models []PortfolioModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Portfolio, len(models))
	for i := range models {
		out[i] = models[i].toEntity()
	}
	return out, nil
}

func (r *portfolioGorm) FindByID(ctx context.Context, userID uint, id string) (*entity.Portfolio, error) {
	var m PortfolioModel
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	p := m.toEntity()
	return &p, nil
}

// Create はポートフォリオを保存し、タイムスタンプをpに書き戻します。
func (r *portfolioGorm) Create(ctx context.Context, p *entity.Portfolio) error {
	m := modelFrom(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	p.CreatedAt, p.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *portfolioGorm) Update(ctx context.Context, p *entity.Portfolio) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&PortfolioModel{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Updates(map[string]any{
			"name":           p.Name,
			"account_number": p.AccountNumber,
			"fee":            p.Fee,
			"updated_at":     now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotFound
	}
	p.UpdatedAt = now
	return nil
}

func (r *portfolioGorm) Delete(ctx context.Context, userID uint, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&PortfolioModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
