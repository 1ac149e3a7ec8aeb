package projection

import (
	"time"

	"github.com/simaogato/wealthflow-projection/internal/domain"
)

// Snapshot is the read-only input of one computation
type Snapshot struct {
	Assets       []*domain.Asset
	Transactions []*domain.Transaction
	Objective    *domain.Objective
}

// Chart holds the series drawn for one display range
type Chart struct {
	Historical []domain.ChartPoint
	Objective  []domain.ChartPoint
	Capital    []domain.ChartPoint
	Interest   []domain.ChartPoint
}

// FirstTransactionDate returns the earliest transaction day, or the zero time for an empty ledger
func (s Snapshot) FirstTransactionDate() time.Time {
	if len(s.Transactions) == 0 {
		return time.Time{}
	}
	return Day(SortTransactions(s.Transactions)[0].Date)
}

// StartDate returns the objective start, falling back to the first transaction, then to today
func (s Snapshot) StartDate(today time.Time) time.Time {
	first := s.FirstTransactionDate()
	if first.IsZero() {
		first = today
	}
	return Day(s.Objective.ResolveStartDate(first))
}

// CurveInput anchors the objective curve on the wealth held today
func (s Snapshot) CurveInput(today time.Time) CurveInput {
	return CurveInput{
		CurrentWealth: WealthAt(today, s.Assets, s.Transactions),
		Plan:          PlanFromObjective(s.Objective),
		StartDate:     s.StartDate(today),
		Today:         Day(today),
	}
}

// Progress analyzes the snapshot. It returns nil when the ledger is empty.
func (s Snapshot) Progress(today time.Time) *InsightReport {
	if len(s.Transactions) == 0 {
		return nil
	}

	start := s.StartDate(today)
	return Analyze(InsightInput{
		CurrentWealth: WealthAt(today, s.Assets, s.Transactions),
		StartWealth:   WealthAt(start, s.Assets, s.Transactions),
		Plan:          PlanFromObjective(s.Objective),
		StartDate:     start,
		Today:         today,
		Transactions:  s.Transactions,
	})
}

// Chart builds the historical, objective, capital and interest series over r
func (s Snapshot) Chart(r Range, today time.Time) Chart {
	in := s.CurveInput(today)
	dates := Buckets(r, today, Bounds{
		FirstTransaction: s.FirstTransactionDate(),
		ObjectiveEnd:     ObjectiveEnd(in.StartDate, in.Plan.TargetYears),
	})

	objective := ObjectiveCurve(in, dates)
	capital, interest := Decompose(in, objective)

	return Chart{
		Historical: HistoricalSeries(s.Assets, s.Transactions, dates[0], in.Today, in.Today),
		Objective:  objective,
		Capital:    capital,
		Interest:   interest,
	}
}
