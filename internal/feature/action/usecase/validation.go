package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"finbar/internal/feature/action/domain/entity"
)

// Input is a new action as submitted. Fields that do not belong to the
// action's type are ignored.
type Input struct {
	PortfolioID string
	Date        time.Time
	Type        entity.Type

	Symbol   string
	Quantity decimal.Decimal
	Price    decimal.Decimal

	SourceCurrency string
	TargetCurrency string
	ExchangeRate   decimal.Decimal

	Currency string
	Amount   decimal.Decimal
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidAction, msg)
}

// currencyCode はISO 4217コードとして正規化し、未知のコードを拒否します。
func currencyCode(code, field string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", invalid(field + " is required")
	}
	if money.GetCurrency(code) == nil {
		return "", invalid(fmt.Sprintf("%s %q is not a known currency", field, code))
	}
	return code, nil
}

func positive(v decimal.Decimal, field string) (decimal.NullDecimal, error) {
	if !v.IsPositive() {
		return decimal.NullDecimal{}, invalid(field + " must be greater than zero")
	}
	return decimal.NewNullDecimal(v), nil
}

func symbol(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", invalid("symbol is required")
	}
	return s, nil
}

// build validates in and produces the action to store. Checks run in the
// order the entry form shows them: portfolio, date, type, then type fields.
func build(in Input) (*entity.Action, error) {
	portfolioID := strings.TrimSpace(in.PortfolioID)
	if portfolioID == "" {
		return nil, invalid("portfolio is required")
	}
	if in.Date.IsZero() {
		return nil, invalid("date is required")
	}
	if !in.Type.Valid() {
		return nil, invalid(fmt.Sprintf("unknown action type %q", in.Type))
	}

	y, m, d := in.Date.Date()
	a := &entity.Action{
		PortfolioID: portfolioID,
		Date:        time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Type:        in.Type,
	}

	var err error
	switch in.Type {
	case entity.TypeBuy, entity.TypeSell:
		if a.Symbol, err = symbol(in.Symbol); err != nil {
			return nil, err
		}
		if a.Quantity, err = positive(in.Quantity, "quantity"); err != nil {
			return nil, err
		}
		if a.Price, err = positive(in.Price, "price"); err != nil {
			return nil, err
		}
	case entity.TypeConvert:
		if a.SourceCurrency, err = currencyCode(in.SourceCurrency, "source currency"); err != nil {
			return nil, err
		}
		if a.TargetCurrency, err = currencyCode(in.TargetCurrency, "target currency"); err != nil {
			return nil, err
		}
		if a.SourceCurrency == a.TargetCurrency {
			return nil, invalid("source and target currency must differ")
		}
		if a.ExchangeRate, err = positive(in.ExchangeRate, "exchange rate"); err != nil {
			return nil, err
		}
	case entity.TypeDeposit, entity.TypeWithdraw:
		if a.Currency, err = currencyCode(in.Currency, "currency"); err != nil {
			return nil, err
		}
		if a.Amount, err = positive(in.Amount, "amount"); err != nil {
			return nil, err
		}
	case entity.TypeDividend:
		if a.Symbol, err = symbol(in.Symbol); err != nil {
			return nil, err
		}
		if a.Amount, err = positive(in.Amount, "amount"); err != nil {
			return nil, err
		}
	}
	return a, nil
}
