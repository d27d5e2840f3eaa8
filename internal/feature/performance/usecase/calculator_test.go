package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"finbar/internal/feature/performance/domain/entity"
)

func pts(values ...float64) []entity.Point {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]entity.Point, len(values))
	for i, v := range values {
		out[i] = entity.Point{Date: day.AddDate(0, 0, i), Value: v}
	}
	return out
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		points []entity.Point
		want   entity.Summary
	}{
		{"empty", nil, entity.Summary{}},
		{"gain", pts(100, 150), entity.Summary{ProfitAndLoss: 50, ProfitAndLossPercent: 50, CurrentValue: 150, InitialValue: 100}},
		{"loss", pts(100, 50), entity.Summary{ProfitAndLoss: -50, ProfitAndLossPercent: -50, CurrentValue: 50, InitialValue: 100}},
		{"single point", pts(50050), entity.Summary{CurrentValue: 50050, InitialValue: 50050}},
		{"only ends count", pts(100, 9000, 1, 120), entity.Summary{ProfitAndLoss: 20, ProfitAndLossPercent: 20, CurrentValue: 120, InitialValue: 100}},
		{"zero initial", pts(0, 100), entity.Summary{ProfitAndLoss: 100, CurrentValue: 100, PercentUndefined: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.points))
		})
	}
}

func TestExtremes(t *testing.T) {
	high, low := Extremes(pts(100, 9000, 1, 120))
	assert.Equal(t, 9000.0, high)
	assert.Equal(t, 1.0, low)

	high, low = Extremes(nil)
	assert.Zero(t, high)
	assert.Zero(t, low)
}
