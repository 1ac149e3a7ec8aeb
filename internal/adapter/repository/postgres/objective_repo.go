package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-projection/internal/domain"
)

// objectiveRepository implements domain.ObjectiveRepository
type objectiveRepository struct {
	db *DB
}

// NewObjectiveRepository creates a new objective repository
func NewObjectiveRepository(db *DB) domain.ObjectiveRepository {
	return &objectiveRepository{db: db}
}

// GetByID retrieves an objective by its ID
func (r *objectiveRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Objective, error) {
	query := `
		SELECT id, name, target_amount, target_years, interest_rate_percent, start_date
		FROM objectives
		WHERE id = $1
	`

	var objective domain.Objective
	var targetStr string
	var startDate sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&objective.ID,
		&objective.Name,
		&targetStr,
		&objective.TargetYears,
		&objective.InterestRatePercent,
		&startDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("objective %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get objective by ID: %w", err)
	}

	// Parse target_amount (NUMERIC)
	target, err := decimal.NewFromString(targetStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target_amount: %w", err)
	}
	objective.TargetAmount = target

	// start_date is nullable
	if startDate.Valid {
		start := startDate.Time.UTC()
		objective.StartDate = &start
	}

	return &objective, nil
}

// Save creates or replaces an objective
func (r *objectiveRepository) Save(ctx context.Context, objective *domain.Objective) error {
	query := `
		INSERT INTO objectives (id, name, target_amount, target_years, interest_rate_percent, start_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			target_amount = EXCLUDED.target_amount,
			target_years = EXCLUDED.target_years,
			interest_rate_percent = EXCLUDED.interest_rate_percent,
			start_date = EXCLUDED.start_date
	`

	var startDate interface{}
	if objective.StartDate != nil {
		startDate = *objective.StartDate
	}

	_, err := r.db.ExecContext(ctx, query,
		objective.ID,
		objective.Name,
		objective.TargetAmount.String(),
		objective.TargetYears,
		objective.InterestRatePercent,
		startDate,
	)
	if err != nil {
		return fmt.Errorf("failed to save objective: %w", err)
	}

	return nil
}
