package projection

import (
	"math"
	"time"

	"github.com/simaogato/wealthflow-projection/internal/domain"
)

// Plan is the float view of an objective used by the engine
type Plan struct {
	TargetAmount        float64
	TargetYears         float64
	InterestRatePercent float64
}

// PlanFromObjective converts a stored objective to a Plan
func PlanFromObjective(o *domain.Objective) Plan {
	return Plan{
		TargetAmount:        o.TargetAmount.InexactFloat64(),
		TargetYears:         o.TargetYears,
		InterestRatePercent: o.InterestRatePercent,
	}
}

// CurveInput anchors an objective curve on the wealth held today
type CurveInput struct {
	CurrentWealth float64
	Plan          Plan
	StartDate     time.Time // objective start, or the first transaction date
	Today         time.Time
}

// YearsRemaining returns the time left before the objective deadline, possibly negative
func (in CurveInput) YearsRemaining() float64 {
	return in.Plan.TargetYears - YearsBetween(in.StartDate, in.Today)
}

// MonthlyPayment returns the constant monthly contribution that takes the current
// wealth to the target exactly at the deadline. It is shared by every sample of a curve.
func MonthlyPayment(in CurveInput) float64 {
	return RequiredMonthlyPayment(in.CurrentWealth, in.Plan.TargetAmount, in.Plan.InterestRatePercent, in.YearsRemaining())
}

// ObjectiveCurve returns the theoretical wealth at each date.
//
// Dates up to today discount the current wealth back at the monthly rate, as if it
// were the terminal value of a plan running since that date. Later dates compound
// the current wealth forward and add MonthlyPayment every month. Both branches
// return exactly CurrentWealth at today.
func ObjectiveCurve(in CurveInput, dates []time.Time) []domain.ChartPoint {
	pmt := MonthlyPayment(in)

	curve := make([]domain.ChartPoint, 0, len(dates))
	for _, d := range dates {
		d = Day(d)
		curve = append(curve, domain.ChartPoint{
			Date:  d,
			Value: floor(objectiveValue(in, pmt, d)),
		})
	}
	return curve
}

func objectiveValue(in CurveInput, pmt float64, d time.Time) float64 {
	i := monthlyRate(in.Plan.InterestRatePercent)
	today := Day(in.Today)

	if !d.After(today) {
		monthsAgo := MonthsBetween(d, today)
		if i == 0 {
			return in.CurrentWealth
		}
		return in.CurrentWealth / math.Pow(1+i, monthsAgo)
	}

	monthsAhead := MonthsBetween(today, d)
	if i == 0 {
		return in.CurrentWealth + pmt*monthsAhead
	}
	growth := math.Pow(1+i, monthsAhead)
	return in.CurrentWealth*growth + pmt*(growth-1)/i
}
