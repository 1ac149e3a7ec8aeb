package ledger

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

// oversellEpsilon absorbs float noise on fully sold positions
const oversellEpsilon = 1e-9

// RecordTransactionInput represents the input for recording a buy or sell
type RecordTransactionInput struct {
	AssetID   uuid.UUID
	Type      domain.TransactionType
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Fee       decimal.Decimal
	Date      time.Time
}

// RegisterAssetInput represents the input for registering an asset
type RegisterAssetInput struct {
	Name         string
	Ticker       string
	CurrentPrice decimal.Decimal
}

// SetObjectiveInput represents the input for creating or replacing an objective.
// A nil ID creates a new objective.
type SetObjectiveInput struct {
	ID                  *uuid.UUID
	Name                string
	TargetAmount        decimal.Decimal
	TargetYears         float64
	InterestRatePercent float64
	StartDate           *time.Time
}

// LedgerService handles writes to the transaction ledger and objectives
type LedgerService struct {
	AssetRepo       domain.AssetRepository
	TransactionRepo domain.TransactionRepository
	ObjectiveRepo   domain.ObjectiveRepository
	log             *zap.Logger
}

// NewLedgerService creates a new LedgerService instance
func NewLedgerService(
	assetRepo domain.AssetRepository,
	transactionRepo domain.TransactionRepository,
	objectiveRepo domain.ObjectiveRepository,
	log *zap.Logger,
) *LedgerService {
	return &LedgerService{
		AssetRepo:       assetRepo,
		TransactionRepo: transactionRepo,
		ObjectiveRepo:   objectiveRepo,
		log:             log.With(zap.String("service", "ledger")),
	}
}

// RegisterAsset creates a new asset with a fresh ID
func (s *LedgerService) RegisterAsset(ctx context.Context, input RegisterAssetInput) (*domain.Asset, error) {
	asset := &domain.Asset{
		ID:           uuid.New(),
		Name:         input.Name,
		Ticker:       input.Ticker,
		CurrentPrice: input.CurrentPrice,
	}
	if err := asset.Validate(); err != nil {
		return nil, err
	}

	if err := s.AssetRepo.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	s.log.Info("asset registered", zap.Stringer("asset_id", asset.ID), zap.String("name", asset.Name))
	return asset, nil
}

// RecordTransaction appends a buy or sell to the ledger
// Logic:
//  1. Fetch the asset (must exist)
//  2. Build and validate the transaction, the date is truncated to the day
//  3. Replay the asset's ledger with the new transaction: a sell that takes the
//     position below zero from its date on is accepted but logged, valuations
//     floor it at zero
//  4. Persist
func (s *LedgerService) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*domain.Transaction, error) {
	if input.AssetID == uuid.Nil {
		return nil, errors.New("transaction must reference an asset")
	}

	// 1. Fetch asset
	if _, err := s.AssetRepo.GetByID(ctx, input.AssetID); err != nil {
		return nil, err
	}

	// 2. Build transaction
	tx := &domain.Transaction{
		ID:        uuid.New(),
		AssetID:   input.AssetID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		Fee:       input.Fee,
		Date:      projection.Day(input.Date),
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	// 3. Over-sell check
	if tx.Type == domain.TransactionTypeSell {
		existing, err := s.TransactionRepo.ListByAsset(ctx, input.AssetID)
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}
		replay := append(append([]*domain.Transaction{}, existing...), tx)
		before := projection.LowestQuantitySince(tx.AssetID, tx.Date, existing)
		after := projection.LowestQuantitySince(tx.AssetID, tx.Date, replay)
		// Only the sell that drives the position negative is flagged
		if after < -oversellEpsilon && before >= -oversellEpsilon {
			s.log.Warn("sell takes position below zero",
				zap.Stringer("asset_id", tx.AssetID),
				zap.String("quantity", tx.Quantity.String()),
				zap.Time("date", tx.Date),
			)
		}
	}

	// 4. Persist
	if err := s.TransactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.log.Info("transaction recorded",
		zap.Stringer("transaction_id", tx.ID),
		zap.String("type", string(tx.Type)),
		zap.Stringer("asset_id", tx.AssetID),
	)
	return tx, nil
}

// SetObjective creates or replaces an objective
func (s *LedgerService) SetObjective(ctx context.Context, input SetObjectiveInput) (*domain.Objective, error) {
	id := uuid.New()
	if input.ID != nil && *input.ID != uuid.Nil {
		id = *input.ID
	}

	objective := &domain.Objective{
		ID:                  id,
		Name:                input.Name,
		TargetAmount:        input.TargetAmount,
		TargetYears:         input.TargetYears,
		InterestRatePercent: input.InterestRatePercent,
	}
	if input.StartDate != nil && !input.StartDate.IsZero() {
		start := projection.Day(*input.StartDate)
		objective.StartDate = &start
	}

	if err := objective.Validate(); err != nil {
		return nil, err
	}

	if err := s.ObjectiveRepo.Save(ctx, objective); err != nil {
		return nil, fmt.Errorf("failed to save objective: %w", err)
	}

	s.log.Info("objective saved", zap.Stringer("objective_id", objective.ID), zap.String("target", objective.TargetAmount.String()))
	return objective, nil
}
