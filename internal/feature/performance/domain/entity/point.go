package entity

import "time"

// Point is one day's synthetic portfolio value.
type Point struct {
	Date  time.Time // calendar day, midnight UTC
	Value float64
}

// Summary は系列から導出した損益です。保存はしません。
type Summary struct {
	ProfitAndLoss        float64
	ProfitAndLossPercent float64
	CurrentValue         float64
	InitialValue         float64
	// PercentUndefined is set when the initial value is zero and the
	// percentage is reported as 0.
	PercentUndefined bool
}

// Chart is a generated series with its summary and extremes.
type Chart struct {
	Window  Window
	Points  []Point
	Summary Summary
	High    float64
	Low     float64
}
