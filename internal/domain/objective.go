package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultObjectiveID identifies the objective used when a request names none
var DefaultObjectiveID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Objective represents a savings goal: reach TargetAmount after TargetYears,
// assuming InterestRatePercent annual return (8 means 8%).
type Objective struct {
	ID                  uuid.UUID
	Name                string
	TargetAmount        decimal.Decimal
	TargetYears         float64
	InterestRatePercent float64
	StartDate           *time.Time // nil means "date of the earliest transaction"
}

// Validate ensures the objective adheres to domain rules
func (o *Objective) Validate() error {
	if o.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return errors.New("target amount must be positive")
	}

	// Negated comparisons so NaN fails them
	if !(o.TargetYears > 0) || math.IsInf(o.TargetYears, 0) {
		return errors.New("target years must be positive")
	}

	if !(o.InterestRatePercent >= 0) || math.IsInf(o.InterestRatePercent, 0) {
		return errors.New("interest rate must not be negative")
	}

	return nil
}

// ResolveStartDate returns the objective start date, falling back to
// firstTransaction when the objective has none.
func (o *Objective) ResolveStartDate(firstTransaction time.Time) time.Time {
	if o.StartDate != nil && !o.StartDate.IsZero() {
		return *o.StartDate
	}
	return firstTransaction
}
