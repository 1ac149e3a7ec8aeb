package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want float64
	}{
		{name: "Same day", from: date(2025, 11, 27), to: date(2025, 11, 27), want: 0},
		{name: "Whole months", from: date(2025, 1, 15), to: date(2025, 7, 15), want: 6},
		{name: "Across years", from: date(2023, 1, 27), to: date(2025, 11, 27), want: 34},
		{name: "Clamped month end", from: date(2025, 1, 31), to: date(2025, 2, 28), want: 1},
		{name: "Partial month", from: date(2025, 11, 1), to: date(2025, 11, 16), want: 0.5},
		{name: "Backwards", from: date(2025, 7, 15), to: date(2025, 1, 15), want: -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MonthsBetween(tt.from, tt.to), 1e-9)
		})
	}
}

func TestMonthsBetween_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 0.0, MonthsBetween(from, to))
}

func TestEndOfMonthAndWeek(t *testing.T) {
	assert.Equal(t, date(2024, 2, 29), EndOfMonth(date(2024, 2, 3)))
	assert.Equal(t, date(2025, 12, 31), EndOfMonth(date(2025, 12, 31)))

	// 2025-11-27 is a Thursday
	assert.Equal(t, date(2025, 11, 30), EndOfWeek(date(2025, 11, 27)))
	assert.Equal(t, date(2025, 11, 30), EndOfWeek(date(2025, 11, 30)))
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, date(2025, 2, 28), AddMonths(date(2025, 1, 31), 1))
	assert.Equal(t, date(2024, 11, 27), AddMonths(date(2025, 11, 27), -12))
	assert.Equal(t, date(2027, 11, 1), AddMonths(date(2025, 11, 1), 24))
}
