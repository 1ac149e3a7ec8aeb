package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validTransaction() Transaction {
	return Transaction{
		ID:        uuid.New(),
		AssetID:   uuid.New(),
		Type:      TransactionTypeBuy,
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: decimal.NewFromFloat(200.5),
		Fee:       decimal.NewFromInt(5),
		Date:      time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tx *Transaction)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "Valid BUY should pass",
			mutate:  func(tx *Transaction) {},
			wantErr: false,
		},
		{
			name:    "Valid SELL should pass",
			mutate:  func(tx *Transaction) { tx.Type = TransactionTypeSell },
			wantErr: false,
		},
		{
			name:    "Zero unit price should pass (gifted shares)",
			mutate:  func(tx *Transaction) { tx.UnitPrice = decimal.Zero },
			wantErr: false,
		},
		{
			name:    "Missing asset should fail",
			mutate:  func(tx *Transaction) { tx.AssetID = uuid.Nil },
			wantErr: true,
			errMsg:  "transaction must reference an asset",
		},
		{
			name:    "Unknown type should fail",
			mutate:  func(tx *Transaction) { tx.Type = "DIVIDEND" },
			wantErr: true,
			errMsg:  "invalid transaction type: must be BUY or SELL",
		},
		{
			name:    "Zero quantity should fail",
			mutate:  func(tx *Transaction) { tx.Quantity = decimal.Zero },
			wantErr: true,
			errMsg:  "transaction quantity must be positive",
		},
		{
			name:    "Negative quantity should fail",
			mutate:  func(tx *Transaction) { tx.Quantity = decimal.NewFromInt(-3) },
			wantErr: true,
			errMsg:  "transaction quantity must be positive",
		},
		{
			name:    "Negative unit price should fail",
			mutate:  func(tx *Transaction) { tx.UnitPrice = decimal.NewFromInt(-1) },
			wantErr: true,
			errMsg:  "unit price must not be negative",
		},
		{
			name:    "Negative fee should fail",
			mutate:  func(tx *Transaction) { tx.Fee = decimal.NewFromInt(-1) },
			wantErr: true,
			errMsg:  "fee must not be negative",
		},
		{
			name:    "Missing date should fail",
			mutate:  func(tx *Transaction) { tx.Date = time.Time{} },
			wantErr: true,
			errMsg:  "transaction must have a date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)

			err := tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_SignedQuantityAndCost(t *testing.T) {
	tx := validTransaction()

	assert.True(t, decimal.NewFromInt(10).Equal(tx.SignedQuantity()))
	assert.True(t, decimal.NewFromInt(2010).Equal(tx.Cost()), "10 * 200.5 + 5")

	tx.Type = TransactionTypeSell
	assert.True(t, decimal.NewFromInt(-10).Equal(tx.SignedQuantity()))
}

func TestParseTransactionType(t *testing.T) {
	got, err := ParseTransactionType("SELL")
	assert.NoError(t, err)
	assert.Equal(t, TransactionTypeSell, got)

	_, err = ParseTransactionType("buy")
	assert.Error(t, err)
}
