// Package adapters provides the gorm repository for actions.
package adapters

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finbar/internal/feature/action/domain/entity"
	"finbar/internal/feature/action/usecase"
)

// ActionModel is the GORM model for the actions table.
type ActionModel struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserID      uint      `gorm:"index:idx_actions_user_date,priority:1;not null"`
	PortfolioID string    `gorm:"size:36;index;not null"`
	Date        time.Time `gorm:"type:date;index:idx_actions_user_date,priority:2;not null"`
	Type        string    `gorm:"size:16;not null"`

	Symbol   string              `gorm:"size:32"`
	Quantity decimal.NullDecimal `gorm:"type:numeric(20,8)"`
	Price    decimal.NullDecimal `gorm:"type:numeric(20,8)"`

	SourceCurrency string              `gorm:"size:3"`
	TargetCurrency string              `gorm:"size:3"`
	ExchangeRate   decimal.NullDecimal `gorm:"type:numeric(20,8)"`

	Currency string              `gorm:"size:3"`
	Amount   decimal.NullDecimal `gorm:"type:numeric(20,8)"`

	CreatedAt time.Time
}

func (ActionModel) TableName() string { return "actions" }

func (m *ActionModel) toEntity() entity.Action {
	y, mo, d := m.Date.Date()
	return entity.Action{
		ID:             m.ID,
		UserID:         m.UserID,
		PortfolioID:    m.PortfolioID,
		Date:           time.Date(y, mo, d, 0, 0, 0, 0, time.UTC),
		Type:           entity.Type(m.Type),
		Symbol:         m.Symbol,
		Quantity:       m.Quantity,
		Price:          m.Price,
		SourceCurrency: m.SourceCurrency,
		TargetCurrency: m.TargetCurrency,
		ExchangeRate:   m.ExchangeRate,
		Currency:       m.Currency,
		Amount:         m.Amount,
		CreatedAt:      m.CreatedAt,
	}
}

type actionGorm struct {
	db *gorm.DB
}

var _ usecase.ActionRepository = (*actionGorm)(nil)

// NewActionGorm creates an ActionRepository on db.
func NewActionGorm(db *gorm.DB) *actionGorm {
	return &actionGorm{db: db}
}

func (r *actionGorm) Create(ctx context.Context, a *entity.Action) error {
	m := &ActionModel{
		ID:             a.ID,
		UserID:         a.UserID,
		PortfolioID:    a.PortfolioID,
		Date:           a.Date,
		Type:           string(a.Type),
		Symbol:         a.Symbol,
		Quantity:       a.Quantity,
		Price:          a.Price,
		SourceCurrency: a.SourceCurrency,
		TargetCurrency: a.TargetCurrency,
		ExchangeRate:   a.ExchangeRate,
		Currency:       a.Currency,
		Amount:         a.Amount,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	a.CreatedAt = m.CreatedAt
	return nil
}

func (r *actionGorm) ListByUser(ctx context.Context, userID uint, portfolioID string) ([]entity.Action, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if portfolioID != "" {
		q = q.Where("portfolio_id = ?", portfolioID)
	}
	var models []ActionModel
	if err := q.Order("date DESC").Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Action, len(models))
	for i := range models {
		out[i] = models[i].toEntity()
	}
	return out, nil
}
