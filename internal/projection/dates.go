package projection

import "time"

// Day truncates t to midnight UTC of its calendar day
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of t's month
func EndOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
}

// EndOfWeek returns the Sunday on or after t
func EndOfWeek(t time.Time) time.Time {
	t = Day(t)
	offset := (7 - int(t.Weekday())) % 7
	return t.AddDate(0, 0, offset)
}

// AddMonths steps t by n calendar months, clamping the day to the target
// month's length (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	t = Day(t)
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := t.Day()
	if last := EndOfMonth(first).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns the number of calendar months from -> to. Whole months
// are counted by calendar stepping and the remainder is the elapsed fraction of
// the following month. Negative when to is before from.
func MonthsBetween(from, to time.Time) float64 {
	from, to = Day(from), Day(to)
	if to.Before(from) {
		return -MonthsBetween(to, from)
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
	anchor := AddMonths(from, months)
	if anchor.After(to) {
		months--
		anchor = AddMonths(from, months)
	}
	if anchor.Equal(to) {
		return float64(months)
	}

	next := AddMonths(from, months+1)
	return float64(months) + to.Sub(anchor).Hours()/next.Sub(anchor).Hours()
}

// YearsBetween returns MonthsBetween(from, to) expressed in years
func YearsBetween(from, to time.Time) float64 {
	return MonthsBetween(from, to) / 12
}

// monthIndex numbers calendar months consecutively
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func monthFromIndex(idx int) time.Time {
	return time.Date(idx/12, time.Month(idx%12+1), 1, 0, 0, 0, 0, time.UTC)
}
