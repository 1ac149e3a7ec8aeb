package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a ledger transaction
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

// ParseTransactionType converts a wire or storage value to a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionTypeBuy, TransactionTypeSell:
		return TransactionType(s), nil
	default:
		return "", errors.New("invalid transaction type: must be BUY or SELL")
	}
}

// Transaction represents a buy or sell of an asset in the ledger.
// Transactions are immutable once created; ordering by Date is significant
// and ties keep insertion order.
type Transaction struct {
	ID        uuid.UUID
	AssetID   uuid.UUID
	Type      TransactionType
	Quantity  decimal.Decimal // units, always >= 0; direction comes from Type
	UnitPrice decimal.Decimal
	Fee       decimal.Decimal
	Date      time.Time
}

// SignedQuantity returns the quantity with the sign of the transaction direction (BUY:+, SELL:-)
func (t *Transaction) SignedQuantity() decimal.Decimal {
	if t.Type == TransactionTypeSell {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

// Cost returns quantity * unit price + fee
func (t *Transaction) Cost() decimal.Decimal {
	return t.Quantity.Mul(t.UnitPrice).Add(t.Fee)
}

// Validate ensures the transaction adheres to domain rules
// Returns an error if validation fails
func (t *Transaction) Validate() error {
	if t.AssetID == uuid.Nil {
		return errors.New("transaction must reference an asset")
	}

	if t.Type != TransactionTypeBuy && t.Type != TransactionTypeSell {
		return errors.New("invalid transaction type: must be BUY or SELL")
	}

	if t.Quantity.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction quantity must be positive")
	}

	if t.UnitPrice.IsNegative() {
		return errors.New("unit price must not be negative")
	}

	if t.Fee.IsNegative() {
		return errors.New("fee must not be negative")
	}

	if t.Date.IsZero() {
		return errors.New("transaction must have a date")
	}

	return nil
}
