package projection

import (
	"testing"

	"github.com/google/uuid"
	"github.com/simaogato/wealthflow-projection/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ledger totaling 2295 invested over 34 months before 2025-11-27
func scenarioLedger(assetID uuid.UUID) []*domain.Transaction {
	return []*domain.Transaction{
		buy(assetID, 10, 200, 5, date(2023, 1, 27)),
		buy(assetID, 1, 285, 5, date(2024, 6, 15)),
	}
}

func TestAnalyze_ObjectiveJustStartedWithInsufficientPace(t *testing.T) {
	start := date(2025, 11, 1)
	in := InsightInput{
		CurrentWealth: 2500,
		StartWealth:   2500,
		Plan:          Plan{TargetAmount: 10000, TargetYears: 2, InterestRatePercent: 5},
		StartDate:     start,
		Today:         date(2025, 11, 27),
		Transactions:  scenarioLedger(uuid.New()),
	}

	report := Analyze(in)

	require.NotNil(t, report)
	assert.InDelta(t, 2295.0/34, report.HistoricalMonthlyInvestment, 1e-9)
	assert.Greater(t, report.RequiredMonthlyInvestment, 200.0)
	assert.Less(t, report.RequiredMonthlyInvestment, 1000.0)
	assert.Greater(t, report.RequiredMonthlyInvestment, report.HistoricalMonthlyInvestment)
	assert.Equal(t, StatusWarning, report.Status.Level)
	assert.Equal(t, "existing wealth, insufficient pace", report.Status.Message)
	assert.Equal(t, 2500.0, report.CurrentWealth)
}

func TestAnalyze_ObjectiveJustStartedWithSufficientPace(t *testing.T) {
	in := InsightInput{
		CurrentWealth: 2500,
		StartWealth:   2500,
		Plan:          Plan{TargetAmount: 3000, TargetYears: 2, InterestRatePercent: 5},
		StartDate:     date(2025, 11, 20),
		Today:         date(2025, 11, 27),
		Transactions:  scenarioLedger(uuid.New()),
	}

	report := Analyze(in)

	require.NotNil(t, report)
	assert.Less(t, report.RequiredMonthlyInvestment, report.HistoricalMonthlyInvestment)
	assert.Equal(t, StatusGood, report.Status.Level)
}

func TestAnalyze_StatusByDelta(t *testing.T) {
	// Zero-rate plan started 6 months ago from nothing: 1000/month, theoretical 6000 today
	base := InsightInput{
		StartWealth:  0,
		Plan:         Plan{TargetAmount: 12000, TargetYears: 1, InterestRatePercent: 0},
		StartDate:    date(2025, 1, 1),
		Today:        date(2025, 7, 1),
		Transactions: []*domain.Transaction{buy(uuid.New(), 1, 1000, 0, date(2025, 1, 1))},
	}

	tests := []struct {
		name      string
		wealth    float64
		wantLevel StatusLevel
		wantDelta float64
	}{
		{name: "Well ahead by ratio", wealth: 9000, wantLevel: StatusExcellent, wantDelta: 50},
		{name: "Ahead", wealth: 6900, wantLevel: StatusExcellent, wantDelta: 15},
		{name: "On track", wealth: 6000, wantLevel: StatusGood, wantDelta: 0},
		{name: "Slightly behind", wealth: 5700, wantLevel: StatusWarning, wantDelta: -5},
		{name: "Behind", wealth: 4800, wantLevel: StatusCritical, wantDelta: -20},
		{name: "Far behind", wealth: 3000, wantLevel: StatusBehind, wantDelta: -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.CurrentWealth = tt.wealth

			report := Analyze(in)

			require.NotNil(t, report)
			assert.InDelta(t, 6000.0, report.TheoreticalWealth, 1e-9)
			assert.InDelta(t, tt.wantDelta, report.DeltaPercent, 1e-9)
			assert.Equal(t, tt.wantLevel, report.Status.Level)
		})
	}
}

func TestAnalyze_ObjectiveAlreadyMet(t *testing.T) {
	in := InsightInput{
		CurrentWealth: 15000,
		StartWealth:   1000,
		Plan:          Plan{TargetAmount: 10000, TargetYears: 5, InterestRatePercent: 5},
		StartDate:     date(2023, 1, 27),
		Today:         date(2025, 11, 27),
		Transactions:  scenarioLedger(uuid.New()),
	}

	report := Analyze(in)

	require.NotNil(t, report)
	assert.Equal(t, 0.0, report.RequiredMonthlyInvestment)
	assert.Equal(t, StatusExcellent, report.Status.Level)
}

func TestAnalyze_EmptyLedger(t *testing.T) {
	in := InsightInput{
		CurrentWealth: 0,
		Plan:          Plan{TargetAmount: 10000, TargetYears: 2, InterestRatePercent: 5},
		StartDate:     date(2025, 11, 1),
		Today:         date(2025, 11, 27),
	}

	assert.Nil(t, Analyze(in))
}

func TestAnalyze_NoTheoreticalWealth(t *testing.T) {
	// Plan starts today with nothing saved: theoretical wealth is 0, no division
	in := InsightInput{
		CurrentWealth: 0,
		Plan:          Plan{TargetAmount: 10000, TargetYears: 2, InterestRatePercent: 5},
		StartDate:     date(2025, 11, 27),
		Today:         date(2025, 11, 27),
		Transactions:  scenarioLedger(uuid.New()),
	}

	report := Analyze(in)

	require.NotNil(t, report)
	assert.Equal(t, 0.0, report.TheoreticalWealth)
	assert.Equal(t, 0.0, report.DeltaPercent)
	assert.Equal(t, StatusGood, report.Status.Level)
}

func TestAnalyze_RealizedCAGR(t *testing.T) {
	assetID := uuid.New()
	in := InsightInput{
		CurrentWealth: 1210,
		StartWealth:   1000,
		Plan:          Plan{TargetAmount: 10000, TargetYears: 10, InterestRatePercent: 5},
		StartDate:     date(2023, 1, 1),
		Today:         date(2025, 1, 1),
		Transactions:  []*domain.Transaction{buy(assetID, 10, 100, 0, date(2023, 1, 1))},
	}

	report := Analyze(in)

	require.NotNil(t, report)
	assert.InDelta(t, 10.0, report.RealizedCAGR, 1e-9)
	assert.InDelta(t, 1000.0/24, report.HistoricalMonthlyInvestment, 1e-9)
}
