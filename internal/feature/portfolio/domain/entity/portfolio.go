// Package entity defines the portfolio domain entity.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio はユーザーが管理する証券口座1つを表します。
type Portfolio struct {
	ID            string          `json:"id"`
	UserID        uint            `json:"user_id"`
	Name          string          `json:"name"`
	AccountNumber string          `json:"account_number"`
	Fee           decimal.Decimal `json:"fee"` // 取引手数料（0以上）
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
