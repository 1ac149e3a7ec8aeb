package projection

import (
	"math"

	"github.com/simaogato/wealthflow-projection/internal/domain"
)

// Decompose splits an objective curve built from in into contributed capital and
// accrued interest. For every sample capital + interest equals the objective value
// and both are >= 0.
//
// Past capital is the current wealth discounted back to the start date plus the
// plan's contributions since then. Future capital is the current wealth plus the
// contributions still to come. Capital never exceeds the objective value.
func Decompose(in CurveInput, objective []domain.ChartPoint) (capital, interest []domain.ChartPoint) {
	pmt := MonthlyPayment(in)
	i := monthlyRate(in.Plan.InterestRatePercent)
	today := Day(in.Today)

	elapsed := math.Max(MonthsBetween(in.StartDate, today), 0)
	principal := in.CurrentWealth
	if i != 0 {
		principal = in.CurrentWealth / math.Pow(1+i, elapsed)
	}

	capital = make([]domain.ChartPoint, 0, len(objective))
	interest = make([]domain.ChartPoint, 0, len(objective))

	for _, p := range objective {
		var c float64
		if !p.Date.After(today) {
			sinceStart := math.Min(math.Max(MonthsBetween(in.StartDate, p.Date), 0), elapsed)
			c = principal + pmt*sinceStart
		} else {
			c = in.CurrentWealth + pmt*MonthsBetween(today, p.Date)
		}
		c = math.Min(floor(c), p.Value)

		capital = append(capital, domain.ChartPoint{Date: p.Date, Value: c})
		interest = append(interest, domain.ChartPoint{Date: p.Date, Value: floor(p.Value - c)})
	}

	return capital, interest
}
