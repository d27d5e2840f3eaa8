// Package usecase implements portfolio management scoped to a single user.
package usecase

import "errors"

var (
	// ErrNotFound is returned when the portfolio does not exist or belongs to another user.
	ErrNotFound = errors.New("portfolio not found")

	// ErrInvalidInput wraps validation failures of name, account number or fee.
	ErrInvalidInput = errors.New("invalid portfolio")
)
