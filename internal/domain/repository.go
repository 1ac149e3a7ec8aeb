package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by repositories when a record does not exist
var ErrNotFound = errors.New("not found")

// AssetRepository defines the interface for asset persistence operations
type AssetRepository interface {
	// GetByID retrieves an asset by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)

	// Create creates a new asset
	Create(ctx context.Context, asset *Asset) error

	// List retrieves all assets
	List(ctx context.Context) ([]*Asset, error)

	// UpdatePrice replaces the current price snapshot of an asset
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error
}

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	// Create creates a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// List retrieves all transactions ordered by date, ties in insertion order
	List(ctx context.Context) ([]*Transaction, error)

	// ListByAsset retrieves the transactions of one asset, same ordering as List
	ListByAsset(ctx context.Context, assetID uuid.UUID) ([]*Transaction, error)
}

// ObjectiveRepository defines the interface for objective persistence operations
type ObjectiveRepository interface {
	// GetByID retrieves an objective by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Objective, error)

	// Save creates or replaces an objective
	Save(ctx context.Context, objective *Objective) error
}
