package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/wealthflow-projection/internal/domain"
	"github.com/simaogato/wealthflow-projection/internal/projection"
)

// ProgressService computes objective progress reports and chart series
type ProgressService struct {
	AssetRepo       domain.AssetRepository
	TransactionRepo domain.TransactionRepository
	ObjectiveRepo   domain.ObjectiveRepository
	log             *zap.Logger
}

// NewProgressService creates a new ProgressService instance
func NewProgressService(
	assetRepo domain.AssetRepository,
	transactionRepo domain.TransactionRepository,
	objectiveRepo domain.ObjectiveRepository,
	log *zap.Logger,
) *ProgressService {
	return &ProgressService{
		AssetRepo:       assetRepo,
		TransactionRepo: transactionRepo,
		ObjectiveRepo:   objectiveRepo,
		log:             log.With(zap.String("service", "progress")),
	}
}

// GetProgress returns the insight report of an objective as of today.
// A nil report with a nil error means the ledger is empty.
func (s *ProgressService) GetProgress(ctx context.Context, objectiveID uuid.UUID, today time.Time) (*projection.InsightReport, error) {
	snap, err := s.loadSnapshot(ctx, objectiveID)
	if err != nil {
		return nil, err
	}

	report := snap.Progress(today)
	if report == nil {
		s.log.Debug("no transactions, progress report skipped", zap.Stringer("objective_id", objectiveID))
		return nil, nil
	}

	s.log.Debug("progress computed",
		zap.Stringer("objective_id", objectiveID),
		zap.String("status", string(report.Status.Level)),
		zap.Float64("delta_percent", report.DeltaPercent),
	)
	return report, nil
}

// GetChart returns the chart series of an objective for a display range (3M, 6M, 1Y, 3Y, MAX).
// granularity overrides the range default when not empty.
func (s *ProgressService) GetChart(ctx context.Context, objectiveID uuid.UUID, rangeKey, granularity string, today time.Time) (*projection.Chart, error) {
	r, ok := projection.LookupRange(rangeKey)
	if !ok {
		return nil, fmt.Errorf("invalid range: %q", rangeKey)
	}
	if granularity != "" {
		r.Granularity = projection.ParseGranularity(granularity)
	}

	snap, err := s.loadSnapshot(ctx, objectiveID)
	if err != nil {
		return nil, err
	}

	chart := snap.Chart(r, today)
	s.log.Debug("chart computed",
		zap.Stringer("objective_id", objectiveID),
		zap.String("range", rangeKey),
		zap.Int("points", len(chart.Objective)),
	)
	return &chart, nil
}

// loadSnapshot reads the records one computation works on
func (s *ProgressService) loadSnapshot(ctx context.Context, objectiveID uuid.UUID) (*projection.Snapshot, error) {
	objective, err := s.ObjectiveRepo.GetByID(ctx, objectiveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get objective: %w", err)
	}

	assets, err := s.AssetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	transactions, err := s.TransactionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	if oversold := projection.OversoldAssets(transactions); len(oversold) > 0 {
		s.log.Warn("ledger sells more than it holds, positions floored at zero",
			zap.Int("assets", len(oversold)))
	}

	return &projection.Snapshot{
		Assets:       assets,
		Transactions: transactions,
		Objective:    objective,
	}, nil
}
