package investment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/wealthflow-projection/internal/domain"
	"github.com/simaogato/wealthflow-projection/internal/projection"
)

// InvestmentService handles investment-related operations
type InvestmentService struct {
	AssetRepo       domain.AssetRepository
	TransactionRepo domain.TransactionRepository
	log             *zap.Logger
}

// NewInvestmentService creates a new InvestmentService instance
func NewInvestmentService(assetRepo domain.AssetRepository, transactionRepo domain.TransactionRepository, log *zap.Logger) *InvestmentService {
	return &InvestmentService{
		AssetRepo:       assetRepo,
		TransactionRepo: transactionRepo,
		log:             log.With(zap.String("service", "investment")),
	}
}

// UpdateCurrentPrice replaces the valuation snapshot of an asset
// Logic: the price is a snapshot, no history is kept and no transaction is created
// Returns the updated asset
func (s *InvestmentService) UpdateCurrentPrice(ctx context.Context, assetID uuid.UUID, price decimal.Decimal) (*domain.Asset, error) {
	if price.IsNegative() {
		return nil, errors.New("current price must not be negative")
	}

	asset, err := s.AssetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if err := s.AssetRepo.UpdatePrice(ctx, assetID, price); err != nil {
		return nil, err
	}

	s.log.Info("asset price updated",
		zap.Stringer("asset_id", assetID),
		zap.String("old_price", asset.CurrentPrice.String()),
		zap.String("new_price", price.String()),
	)

	asset.CurrentPrice = price
	return asset, nil
}

// CalculateProfit calculates the unrealized profit/loss of an asset
// Logic: Profit = MarketValue - CostBasis
// MarketValue = net quantity * current price
// CostBasis = weighted-average cost of the units still held
func (s *InvestmentService) CalculateProfit(ctx context.Context, assetID uuid.UUID, today time.Time) (decimal.Decimal, error) {
	asset, err := s.AssetRepo.GetByID(ctx, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	transactions, err := s.TransactionRepo.ListByAsset(ctx, assetID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list transactions: %w", err)
	}

	holdings := projection.Holdings(today, []*domain.Asset{asset}, transactions)
	if len(holdings) == 0 {
		// Never traded: nothing to gain or lose
		return decimal.Zero, nil
	}

	return decimal.NewFromFloat(holdings[0].UnrealizedGain).Round(2), nil
}
