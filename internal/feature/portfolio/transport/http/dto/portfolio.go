// Package dto defines the JSON shapes of the portfolio endpoints.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"finbar/internal/feature/portfolio/domain/entity"
)

// PortfolioReq is the body of POST /portfolios and PUT /portfolios/:id.
// Fee accepts either a JSON number or a numeric string.
type PortfolioReq struct {
	Name          string          `json:"name" binding:"required,max=255"`
	AccountNumber string          `json:"account_number" binding:"required,max=64"`
	Fee           decimal.Decimal `json:"fee"`
}

// PortfolioRes is one portfolio in a response.
type PortfolioRes struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	AccountNumber string    `json:"account_number"`
	Fee           float64   `json:"fee"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromEntity converts a portfolio for output.
func FromEntity(p entity.Portfolio) PortfolioRes {
	return PortfolioRes{
		ID:            p.ID,
		Name:          p.Name,
		AccountNumber: p.AccountNumber,
		Fee:           p.Fee.InexactFloat64(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// FromEntities converts a list, never returning nil so the JSON is [] when empty.
func FromEntities(ps []entity.Portfolio) []PortfolioRes {
	out := make([]PortfolioRes, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromEntity(p))
	}
	return out
}
