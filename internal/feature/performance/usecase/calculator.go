package usecase

import (
	"gonum.org/v1/gonum/floats"

	"finbar/internal/feature/performance/domain/entity"
)

// Summarize reduces a series to its profit and loss. An empty series gives
// the zero summary. A zero initial value reports 0% with PercentUndefined.
func Summarize(points []entity.Point) entity.Summary {
	if len(points) == 0 {
		return entity.Summary{}
	}

	initial := points[0].Value
	current := points[len(points)-1].Value
	s := entity.Summary{
		ProfitAndLoss: current - initial,
		CurrentValue:  current,
		InitialValue:  initial,
	}
	if initial == 0 {
		s.PercentUndefined = true
		return s
	}
	s.ProfitAndLossPercent = s.ProfitAndLoss / initial * 100
	return s
}

// Extremes returns the highest and lowest value, or zeros for an empty series.
func Extremes(points []entity.Point) (high, low float64) {
	if len(points) == 0 {
		return 0, 0
	}
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return floats.Max(values), floats.Min(values)
}
