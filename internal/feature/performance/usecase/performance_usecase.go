package usecase

import (
	"context"

	"finbar/internal/feature/performance/domain/entity"
)

// Generator is the part of SeriesGenerator the chart usecase needs.
type Generator interface {
	Generate(w entity.Window) ([]entity.Point, error)
}

type performanceUsecase struct {
	gen Generator
}

// NewPerformanceUsecase はチャート用ユースケースを生成します。
func NewPerformanceUsecase(gen Generator) *performanceUsecase {
	return &performanceUsecase{gen: gen}
}

// Chart generates a series for w and derives its summary and extremes.
func (uc *performanceUsecase) Chart(ctx context.Context, w entity.Window) (*entity.Chart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	points, err := uc.gen.Generate(w)
	if err != nil {
		return nil, err
	}
	high, low := Extremes(points)
	return &entity.Chart{
		Window:  w,
		Points:  points,
		Summary: Summarize(points),
		High:    high,
		Low:     low,
	}, nil
}
