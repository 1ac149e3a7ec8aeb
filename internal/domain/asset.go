package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset represents a held security.
// CurrentPrice is a valuation snapshot, not a time series: historical wealth
// is always valued at the current price.
type Asset struct {
	ID           uuid.UUID
	Name         string
	Ticker       string
	CurrentPrice decimal.Decimal
}

// Validate ensures the asset adheres to domain rules
func (a *Asset) Validate() error {
	if a.Name == "" {
		return errors.New("asset name cannot be empty")
	}

	if a.CurrentPrice.IsNegative() {
		return errors.New("current price must not be negative")
	}

	return nil
}
