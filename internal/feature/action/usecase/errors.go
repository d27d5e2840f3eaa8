// Package usecase implements recording and listing portfolio actions.
package usecase

import "errors"

var (
	// ErrInvalidAction wraps every validation failure of a new action.
	ErrInvalidAction = errors.New("invalid action")

	// ErrPortfolioNotFound is returned when the target portfolio is missing or not the caller's.
	ErrPortfolioNotFound = errors.New("portfolio not found")
)
