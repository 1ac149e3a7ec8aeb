package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/wealthflow-projection/internal/domain"
	"github.com/simaogato/wealthflow-projection/internal/projection"
)

// NetWorthResult represents the calculated net worth
type NetWorthResult struct {
	Total          decimal.Decimal // market value at current prices
	Invested       decimal.Decimal // weighted-average cost basis of open positions
	UnrealizedGain decimal.Decimal
	Holdings       []projection.Position
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	AssetRepo       domain.AssetRepository
	TransactionRepo domain.TransactionRepository
	log             *zap.Logger
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(
	assetRepo domain.AssetRepository,
	transactionRepo domain.TransactionRepository,
	log *zap.Logger,
) *DashboardService {
	return &DashboardService{
		AssetRepo:       assetRepo,
		TransactionRepo: transactionRepo,
		log:             log.With(zap.String("service", "dashboard")),
	}
}

// GetNetWorth calculates the net worth as of today
// Logic:
//   - Total: Σ max(net quantity, 0) * current price over all assets
//   - Invested: Σ remaining weighted-average cost basis
//   - UnrealizedGain: Total - Invested
func (s *DashboardService) GetNetWorth(ctx context.Context, today time.Time) (*NetWorthResult, error) {
	assets, err := s.AssetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	transactions, err := s.TransactionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	holdings := projection.Holdings(today, assets, transactions)

	var invested float64
	for _, pos := range holdings {
		invested += pos.Invested
	}
	total := projection.WealthAt(today, assets, transactions)

	s.log.Debug("net worth computed", zap.Int("holdings", len(holdings)), zap.Float64("total", total))

	return &NetWorthResult{
		Total:          money(total),
		Invested:       money(invested),
		UnrealizedGain: money(total - invested),
		Holdings:       holdings,
	}, nil
}

// money rounds an engine float to cents
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
