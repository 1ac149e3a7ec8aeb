package projection

import (
	"time"

	"github.com/simaogato/wealthflow-projection/internal/domain"
)

// StatusLevel classifies actual progress against the objective curve
type StatusLevel string

const (
	StatusExcellent StatusLevel = "excellent"
	StatusGood      StatusLevel = "good"
	StatusWarning   StatusLevel = "warning"
	StatusCritical  StatusLevel = "critical"
	StatusBehind    StatusLevel = "behind"
)

// Classification thresholds
const (
	excellentRatio      = 1.5
	excellentDelta      = 10.0
	warningDelta        = -10.0
	criticalDelta       = -25.0
	paceShortfall       = 0.2
	justStartedMonths   = 1.0
	minHistoricalMonths = 1.0
)

// TrajectoryStatus is the classified progress with a human-readable reason
type TrajectoryStatus struct {
	Level   StatusLevel
	Message string
}

// InsightReport compares real wealth with the objective plan
type InsightReport struct {
	CurrentWealth               float64
	TheoreticalWealth           float64
	DeltaPercent                float64 // signed
	RequiredMonthlyInvestment   float64
	HistoricalMonthlyInvestment float64
	RealizedCAGR                float64 // percent, invested capital -> current wealth
	Status                      TrajectoryStatus
}

// InsightInput is the snapshot Analyze works on
type InsightInput struct {
	CurrentWealth float64
	StartWealth   float64 // wealth held at StartDate
	Plan          Plan
	StartDate     time.Time
	Today         time.Time
	Transactions  []*domain.Transaction
}

// Analyze builds the progress report. It returns nil when the ledger is empty.
//
// The theoretical wealth is the objective curve anchored at the start date on
// the wealth held then, read at today.
func Analyze(in InsightInput) *InsightReport {
	if len(in.Transactions) == 0 {
		return nil
	}

	today := Day(in.Today)
	current := floor(in.CurrentWealth)

	theoretical := theoreticalWealth(in)

	var delta float64
	if theoretical > 0 {
		delta = (current - theoretical) / theoretical * 100
	}

	var required float64
	if current < in.Plan.TargetAmount {
		remaining := CurveInput{CurrentWealth: current, Plan: in.Plan, StartDate: in.StartDate, Today: today}.YearsRemaining()
		required = RequiredMonthlyPayment(current, in.Plan.TargetAmount, in.Plan.InterestRatePercent, remaining)
	}

	invested, first := totalBought(in.Transactions)
	months := MonthsBetween(first, today)
	if months < minHistoricalMonths {
		months = minHistoricalMonths
	}
	historical := invested / months

	report := &InsightReport{
		CurrentWealth:               current,
		TheoreticalWealth:           theoretical,
		DeltaPercent:                delta,
		RequiredMonthlyInvestment:   required,
		HistoricalMonthlyInvestment: floor(historical),
		RealizedCAGR:                CAGR(invested, current, YearsBetween(first, today)),
	}

	justStarted := MonthsBetween(in.StartDate, today) < justStartedMonths
	report.Status = classify(report, justStarted)

	return report
}

func theoreticalWealth(in InsightInput) float64 {
	start := Day(in.StartDate)
	anchored := CurveInput{
		CurrentWealth: floor(in.StartWealth),
		Plan:          in.Plan,
		StartDate:     start,
		Today:         start,
	}
	curve := ObjectiveCurve(anchored, []time.Time{in.Today})
	return curve[0].Value
}

// totalBought returns the cost of every BUY (fees included) and the first transaction date
func totalBought(txs []*domain.Transaction) (float64, time.Time) {
	var total float64
	first := Day(txs[0].Date)

	for _, tx := range txs {
		if d := Day(tx.Date); d.Before(first) {
			first = d
		}
		if tx.Type == domain.TransactionTypeBuy {
			total += tx.Cost().InexactFloat64()
		}
	}
	return total, first
}

func classify(r *InsightReport, justStarted bool) TrajectoryStatus {
	if justStarted && r.CurrentWealth > 0 {
		if r.HistoricalMonthlyInvestment < r.RequiredMonthlyInvestment*(1-paceShortfall) {
			return TrajectoryStatus{Level: StatusWarning, Message: "existing wealth, insufficient pace"}
		}
		return TrajectoryStatus{Level: StatusGood, Message: "existing wealth, pace on track"}
	}

	switch {
	case r.TheoreticalWealth > 0 && r.CurrentWealth >= excellentRatio*r.TheoreticalWealth:
		return TrajectoryStatus{Level: StatusExcellent, Message: "well ahead of plan"}
	case r.DeltaPercent >= excellentDelta:
		return TrajectoryStatus{Level: StatusExcellent, Message: "ahead of plan"}
	case r.DeltaPercent >= 0:
		return TrajectoryStatus{Level: StatusGood, Message: "on track"}
	case r.DeltaPercent >= warningDelta:
		return TrajectoryStatus{Level: StatusWarning, Message: "slightly behind plan"}
	case r.DeltaPercent >= criticalDelta:
		return TrajectoryStatus{Level: StatusCritical, Message: "behind plan"}
	default:
		return TrajectoryStatus{Level: StatusBehind, Message: "far behind plan"}
	}
}
