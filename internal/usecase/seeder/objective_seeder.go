package seeder

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/simaogato/wealthflow-projection/internal/domain"
)

// ObjectiveSeeder makes sure the default objective exists
type ObjectiveSeeder struct {
	repo domain.ObjectiveRepository
	log  *zap.Logger
}

// NewObjectiveSeeder creates a new ObjectiveSeeder instance
func NewObjectiveSeeder(repo domain.ObjectiveRepository, log *zap.Logger) *ObjectiveSeeder {
	return &ObjectiveSeeder{
		repo: repo,
		log:  log.With(zap.String("component", "seeder")),
	}
}

// Seed creates the default objective from defaults when it doesn't exist yet.
// An existing default objective is never overwritten: it may have been edited through SetObjective.
func (s *ObjectiveSeeder) Seed(ctx context.Context, defaults domain.Objective) error {
	_, err := s.repo.GetByID(ctx, domain.DefaultObjectiveID)
	if err == nil {
		// Already seeded, no action needed
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to look up default objective: %w", err)
	}

	objective := defaults
	objective.ID = domain.DefaultObjectiveID
	if objective.Name == "" {
		objective.Name = "Default objective"
	}

	// Validate before creating
	if err := objective.Validate(); err != nil {
		return fmt.Errorf("invalid default objective: %w", err)
	}

	if err := s.repo.Save(ctx, &objective); err != nil {
		return err
	}

	s.log.Info("default objective seeded",
		zap.String("target", objective.TargetAmount.String()),
		zap.Float64("years", objective.TargetYears),
	)
	return nil
}
