// Package dto defines the JSON shape of the performance endpoint.
package dto

import (
	"github.com/oapi-codegen/runtime/types"

	"finbar/internal/feature/performance/domain/entity"
	"finbar/internal/shared/format"
)

type PointRes struct {
	Date  types.Date `json:"date"`
	Value float64    `json:"value"`
}

type SummaryRes struct {
	PnL              float64 `json:"pnl"`
	PnLPercent       float64 `json:"pnlPercent"`
	CurrentValue     float64 `json:"currentValue"`
	InitialValue     float64 `json:"initialValue"`
	PercentUndefined bool    `json:"percentUndefined"`
}

// DisplayRes holds the summary rendered for a shekel dashboard.
type DisplayRes struct {
	PnL          string `json:"pnl"`
	PnLPercent   string `json:"pnlPercent"`
	CurrentValue string `json:"currentValue"`
	InitialValue string `json:"initialValue"`
}

// PerformanceRes is the body of GET /performance.
type PerformanceRes struct {
	Range   string     `json:"range"`
	Points  []PointRes `json:"points"`
	Summary SummaryRes `json:"summary"`
	High    float64    `json:"high"`
	Low     float64    `json:"low"`
	Display DisplayRes `json:"display"`
}

// FromChart converts a chart for output.
func FromChart(c *entity.Chart) PerformanceRes {
	points := make([]PointRes, 0, len(c.Points))
	for _, p := range c.Points {
		points = append(points, PointRes{Date: types.Date{Time: p.Date}, Value: p.Value})
	}
	s := c.Summary
	return PerformanceRes{
		Range:  c.Window.String(),
		Points: points,
		Summary: SummaryRes{
			PnL:              s.ProfitAndLoss,
			PnLPercent:       s.ProfitAndLossPercent,
			CurrentValue:     s.CurrentValue,
			InitialValue:     s.InitialValue,
			PercentUndefined: s.PercentUndefined,
		},
		High: c.High,
		Low:  c.Low,
		Display: DisplayRes{
			PnL:          format.ILS(s.ProfitAndLoss),
			PnLPercent:   format.Percent(s.ProfitAndLossPercent),
			CurrentValue: format.ILS(s.CurrentValue),
			InitialValue: format.ILS(s.InitialValue),
		},
	}
}
