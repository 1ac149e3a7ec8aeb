package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-projection/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a transaction to the ledger
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, asset_id, type, quantity, unit_price, fee, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.AssetID,
		string(tx.Type),
		tx.Quantity.String(),
		tx.UnitPrice.String(),
		tx.Fee.String(),
		tx.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// List retrieves all transactions ordered by date, ties in insertion order
func (r *transactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	query := `
		SELECT id, asset_id, type, quantity, unit_price, fee, date
		FROM transactions
		ORDER BY date, seq
	`
	return r.query(ctx, query)
}

// ListByAsset retrieves the transactions of one asset
func (r *transactionRepository) ListByAsset(ctx context.Context, assetID uuid.UUID) ([]*domain.Transaction, error) {
	query := `
		SELECT id, asset_id, type, quantity, unit_price, fee, date
		FROM transactions
		WHERE asset_id = $1
		ORDER BY date, seq
	`
	return r.query(ctx, query, assetID)
}

func (r *transactionRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*domain.Transaction{}
	for rows.Next() {
		var tx domain.Transaction
		var txType, quantityStr, priceStr, feeStr string

		if err := rows.Scan(&tx.ID, &tx.AssetID, &txType, &quantityStr, &priceStr, &feeStr, &tx.Date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if tx.Type, err = domain.ParseTransactionType(txType); err != nil {
			return nil, fmt.Errorf("transaction %s: %w", tx.ID, err)
		}

		// Parse NUMERIC columns
		if tx.Quantity, err = decimal.NewFromString(quantityStr); err != nil {
			return nil, fmt.Errorf("failed to parse quantity: %w", err)
		}
		if tx.UnitPrice, err = decimal.NewFromString(priceStr); err != nil {
			return nil, fmt.Errorf("failed to parse unit_price: %w", err)
		}
		if tx.Fee, err = decimal.NewFromString(feeStr); err != nil {
			return nil, fmt.Errorf("failed to parse fee: %w", err)
		}
		tx.Date = tx.Date.UTC()

		transactions = append(transactions, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}
