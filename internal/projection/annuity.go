// Package projection reconstructs portfolio wealth from a transaction ledger and
// projects it against a savings objective.
//
// Every function is pure: callers pass read-only snapshots and an explicit
// "today", nothing reads the wall clock, and nothing returns an error.
// Degenerate numeric inputs are clamped instead.
package projection

import "math"

// monthlyRate converts an annual percentage (8 means 8%) to a decimal monthly rate
func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}

// FutureValue returns the value after years of a lump sum pv growing at
// annualRatePercent plus a monthly contribution pmt compounding monthly.
func FutureValue(pv, pmt, annualRatePercent, years float64) float64 {
	r := annualRatePercent / 100
	i := r / 12
	n := years * 12

	if i == 0 {
		return pv + pmt*n
	}

	return pv*math.Pow(1+r, years) + pmt*(math.Pow(1+i, n)-1)/i
}

// RequiredMonthlyPayment is the inverse of FutureValue: the monthly contribution
// needed for pv to reach fv after years. The result is never negative; 0 means
// growth of the principal alone already reaches fv.
func RequiredMonthlyPayment(pv, fv, annualRatePercent, years float64) float64 {
	if years <= 0 {
		return 0
	}

	r := annualRatePercent / 100
	i := r / 12
	n := years * 12

	var pmt float64
	if i == 0 {
		pmt = (fv - pv) / n
	} else {
		pmt = ((fv - pv*math.Pow(1+r, years)) * i) / (math.Pow(1+i, n) - 1)
	}

	return floor(pmt)
}

// CAGR returns the compound annual growth rate, in percent, between initial and final
func CAGR(initial, final, years float64) float64 {
	if initial <= 0 || years <= 0 {
		return 0
	}
	return (math.Pow(final/initial, 1/years) - 1) * 100
}

// floor clamps negative and NaN values to 0
func floor(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
