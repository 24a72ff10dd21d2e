package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates a value that could not be parsed as money.
	ErrInvalidAmount = errors.New("invalid monetary amount")
	// ErrNegativePrice indicates a price below zero.
	ErrNegativePrice = errors.New("price cannot be negative")
	// ErrNonPositiveAmount indicates a contribution of zero or less.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
)

// ParsePrice parses an item price. Prices may be zero (unknown or
// unpriced items) but never negative.
func ParsePrice(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativePrice
	}
	return d, nil
}

// ParseAmount parses a contribution amount, which must be strictly
// positive.
func ParseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	return d, nil
}
