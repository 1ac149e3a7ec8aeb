package projection

import (
	"math"
	"strings"
	"time"
)

// Granularity is the spacing of sampled dates in a display range
type Granularity string

const (
	GranularityMonthly Granularity = "monthly"
	GranularityWeekly  Granularity = "weekly"
)

// ParseGranularity converts a user value to a Granularity, defaulting to monthly
func ParseGranularity(s string) Granularity {
	if strings.EqualFold(s, string(GranularityWeekly)) {
		return GranularityWeekly
	}
	return GranularityMonthly
}

// Range describes a display window around today
type Range struct {
	PastMonths   int
	FutureMonths int
	Granularity  Granularity
	IsFullRange  bool // MAX: from the first transaction to the objective deadline
}

// Presets are the display ranges offered to users, keyed by label
var Presets = map[string]Range{
	"3M":  {PastMonths: 3, FutureMonths: 3, Granularity: GranularityWeekly},
	"6M":  {PastMonths: 6, FutureMonths: 6, Granularity: GranularityWeekly},
	"1Y":  {PastMonths: 12, FutureMonths: 12, Granularity: GranularityMonthly},
	"3Y":  {PastMonths: 36, FutureMonths: 36, Granularity: GranularityMonthly},
	"MAX": {Granularity: GranularityMonthly, IsFullRange: true},
}

// LookupRange returns the preset for key (case-insensitive)
func LookupRange(key string) (Range, bool) {
	r, ok := Presets[strings.ToUpper(key)]
	return r, ok
}

// Bounds carries the ledger and objective dates a full range spans
type Bounds struct {
	FirstTransaction time.Time
	ObjectiveEnd     time.Time
}

// ObjectiveEnd returns start + targetYears, rounded to whole calendar months
func ObjectiveEnd(start time.Time, targetYears float64) time.Time {
	return AddMonths(start, int(math.Round(targetYears*12)))
}

// Buckets returns the strictly increasing sample dates of r around today.
//
// Monthly buckets are dated on the last day of each month and weekly buckets on
// Sunday, except the bucket containing today which is dated today, so every
// curve built on these dates ends exactly at the present.
func Buckets(r Range, today time.Time, b Bounds) []time.Time {
	today = Day(today)

	var start, end time.Time
	if r.IsFullRange {
		start, end = Day(b.FirstTransaction), Day(b.ObjectiveEnd)
		if b.FirstTransaction.IsZero() || start.After(today) {
			start = today
		}
		if b.ObjectiveEnd.IsZero() || end.Before(today) {
			end = today
		}
	} else {
		start = AddMonths(today, -r.PastMonths)
		end = AddMonths(today, r.FutureMonths)
	}

	if r.Granularity == GranularityWeekly {
		return weeklyBuckets(start, end, today)
	}
	return monthlyBuckets(start, end, today)
}

func monthlyBuckets(start, end, today time.Time) []time.Time {
	todayIdx := monthIndex(today)
	dates := make([]time.Time, 0, monthIndex(end)-monthIndex(start)+1)

	for idx := monthIndex(start); idx <= monthIndex(end); idx++ {
		if idx == todayIdx {
			dates = append(dates, today)
			continue
		}
		dates = append(dates, EndOfMonth(monthFromIndex(idx)))
	}
	return dates
}

func weeklyBuckets(start, end, today time.Time) []time.Time {
	todayWeek := EndOfWeek(today)
	last := EndOfWeek(end)

	var dates []time.Time
	for sunday := EndOfWeek(start); !sunday.After(last); sunday = sunday.AddDate(0, 0, 7) {
		if sunday.Equal(todayWeek) {
			dates = append(dates, today)
			continue
		}
		dates = append(dates, sunday)
	}
	return dates
}
