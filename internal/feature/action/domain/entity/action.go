// Package entity defines portfolio actions (trades and cash movements).
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type is the kind of an action.
type Type string

const (
	TypeBuy      Type = "buy"
	TypeSell     Type = "sell"
	TypeConvert  Type = "convert"
	TypeDeposit  Type = "deposit"
	TypeWithdraw Type = "withdraw"
	TypeDividend Type = "dividend"
)

// Types lists every action type in display order.
var Types = []Type{TypeBuy, TypeSell, TypeConvert, TypeDeposit, TypeWithdraw, TypeDividend}

// Valid reports whether t is a known action type.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Action は1件の取引・入出金の記録です。
// 型ごとに使うフィールドが異なり、使わないフィールドは空（Validでない）になります。
//   - buy/sell: Symbol, Quantity, Price
//   - convert: SourceCurrency, TargetCurrency, ExchangeRate
//   - deposit/withdraw: Currency, Amount
//   - dividend: Symbol, Amount
type Action struct {
	ID          string
	UserID      uint
	PortfolioID string
	Date        time.Time // 日付のみ（UTCの0時）
	Type        Type

	Symbol   string
	Quantity decimal.NullDecimal
	Price    decimal.NullDecimal

	SourceCurrency string
	TargetCurrency string
	ExchangeRate   decimal.NullDecimal

	Currency string
	Amount   decimal.NullDecimal

	CreatedAt time.Time
}
