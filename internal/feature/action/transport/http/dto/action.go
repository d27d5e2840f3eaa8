// Package dto defines the JSON shapes of the action endpoints.
package dto

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"finbar/internal/feature/action/domain/entity"
	"finbar/internal/feature/action/usecase"
)

// CreateActionReq is the body of POST /actions. Dates are "YYYY-MM-DD";
// numbers may be JSON numbers or numeric strings.
type CreateActionReq struct {
	PortfolioID string     `json:"portfolio_id"`
	Date        types.Date `json:"date"`
	Type        string     `json:"type"`

	Symbol   string          `json:"symbol,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`

	SourceCurrency string          `json:"source_currency,omitempty"`
	TargetCurrency string          `json:"target_currency,omitempty"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`

	Currency string          `json:"currency,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

// ToInput converts the request for the usecase.
func (r CreateActionReq) ToInput() usecase.Input {
	return usecase.Input{
		PortfolioID:    r.PortfolioID,
		Date:           r.Date.Time,
		Type:           entity.Type(r.Type),
		Symbol:         r.Symbol,
		Quantity:       r.Quantity,
		Price:          r.Price,
		SourceCurrency: r.SourceCurrency,
		TargetCurrency: r.TargetCurrency,
		ExchangeRate:   r.ExchangeRate,
		Currency:       r.Currency,
		Amount:         r.Amount,
	}
}

// ActionRes is one action in a response. Only the fields of its type are present.
type ActionRes struct {
	ID          string     `json:"id"`
	PortfolioID string     `json:"portfolio_id"`
	Date        types.Date `json:"date"`
	Type        string     `json:"type"`

	Symbol   string   `json:"symbol,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`

	SourceCurrency string   `json:"source_currency,omitempty"`
	TargetCurrency string   `json:"target_currency,omitempty"`
	ExchangeRate   *float64 `json:"exchange_rate,omitempty"`

	Currency string   `json:"currency,omitempty"`
	Amount   *float64 `json:"amount,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func optional(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

// FromEntity converts an action for output.
func FromEntity(a entity.Action) ActionRes {
	return ActionRes{
		ID:             a.ID,
		PortfolioID:    a.PortfolioID,
		Date:           types.Date{Time: a.Date},
		Type:           string(a.Type),
		Symbol:         a.Symbol,
		Quantity:       optional(a.Quantity),
		Price:          optional(a.Price),
		SourceCurrency: a.SourceCurrency,
		TargetCurrency: a.TargetCurrency,
		ExchangeRate:   optional(a.ExchangeRate),
		Currency:       a.Currency,
		Amount:         optional(a.Amount),
		CreatedAt:      a.CreatedAt,
	}
}

// FromEntities converts a list; an empty list encodes as [].
func FromEntities(as []entity.Action) []ActionRes {
	out := make([]ActionRes, 0, len(as))
	for _, a := range as {
		out = append(out, FromEntity(a))
	}
	return out
}
