package domain

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestObjective_Validate(t *testing.T) {
	tests := []struct {
		name      string
		objective Objective
		wantErr   bool
		errMsg    string
	}{
		{
			name: "Valid objective should pass",
			objective: Objective{
				ID:                  uuid.New(),
				TargetAmount:        decimal.NewFromInt(10000),
				TargetYears:         2,
				InterestRatePercent: 5,
			},
			wantErr: false,
		},
		{
			name: "Zero rate should pass",
			objective: Objective{
				TargetAmount: decimal.NewFromInt(10000),
				TargetYears:  2,
			},
			wantErr: false,
		},
		{
			name: "Zero target should fail",
			objective: Objective{
				TargetAmount: decimal.Zero,
				TargetYears:  2,
			},
			wantErr: true,
			errMsg:  "target amount must be positive",
		},
		{
			name: "Zero horizon should fail",
			objective: Objective{
				TargetAmount: decimal.NewFromInt(10000),
				TargetYears:  0,
			},
			wantErr: true,
			errMsg:  "target years must be positive",
		},
		{
			name: "Negative rate should fail",
			objective: Objective{
				TargetAmount:        decimal.NewFromInt(10000),
				TargetYears:         2,
				InterestRatePercent: -1,
			},
			wantErr: true,
			errMsg:  "interest rate must not be negative",
		},
		{
			name: "NaN horizon should fail",
			objective: Objective{
				TargetAmount: decimal.NewFromInt(10000),
				TargetYears:  math.NaN(),
			},
			wantErr: true,
			errMsg:  "target years must be positive",
		},
		{
			name: "Infinite horizon should fail",
			objective: Objective{
				TargetAmount: decimal.NewFromInt(10000),
				TargetYears:  math.Inf(1),
			},
			wantErr: true,
			errMsg:  "target years must be positive",
		},
		{
			name: "NaN rate should fail",
			objective: Objective{
				TargetAmount:        decimal.NewFromInt(10000),
				TargetYears:         2,
				InterestRatePercent: math.NaN(),
			},
			wantErr: true,
			errMsg:  "interest rate must not be negative",
		},
		{
			name: "Infinite rate should fail",
			objective: Objective{
				TargetAmount:        decimal.NewFromInt(10000),
				TargetYears:         2,
				InterestRatePercent: math.Inf(1),
			},
			wantErr: true,
			errMsg:  "interest rate must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.objective.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestObjective_ResolveStartDate(t *testing.T) {
	firstTx := time.Date(2023, 1, 27, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	withStart := Objective{StartDate: &start}
	assert.Equal(t, start, withStart.ResolveStartDate(firstTx))

	withoutStart := Objective{}
	assert.Equal(t, firstTx, withoutStart.ResolveStartDate(firstTx))
}

func TestAsset_Validate(t *testing.T) {
	asset := Asset{ID: uuid.New(), Name: "World ETF", CurrentPrice: decimal.NewFromInt(100)}
	assert.NoError(t, asset.Validate())

	asset.CurrentPrice = decimal.NewFromInt(-1)
	assert.EqualError(t, asset.Validate(), "current price must not be negative")

	asset.Name = ""
	assert.EqualError(t, asset.Validate(), "asset name cannot be empty")
}
