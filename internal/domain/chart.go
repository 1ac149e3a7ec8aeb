package domain

import "time"

// TimeKeyFormat is the layout of ChartPoint time keys
const TimeKeyFormat = "2006-01-02"

// ChartPoint is a single sample of a wealth series. Output only, never persisted.
type ChartPoint struct {
	Date  time.Time
	Value float64
}

// TimeKey returns the sample date as YYYY-MM-DD
func (p ChartPoint) TimeKey() string {
	return p.Date.Format(TimeKeyFormat)
}
