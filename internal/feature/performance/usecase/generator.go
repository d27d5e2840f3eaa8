// Package usecase はデモ用の評価額系列の生成と損益計算を提供します。
package usecase

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/distuv"

	"finbar/internal/feature/performance/domain/entity"
)

const (
	StartValue = 50000.0
	FloorValue = 10000.0
	Trend      = 0.001
	Volatility = 0.02
)

// Clock は「今日」を決める時刻源です。
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SourceFunc returns the random source for one generation.
type SourceFunc func() rand.Source

// NewTimeSeededSource は呼び出しごとに独立したPCGソースを返します。
func NewTimeSeededSource() rand.Source {
	return rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())
}

// SeriesGenerator produces a random-walk valuation series for a window.
type SeriesGenerator struct {
	clock     Clock
	newSource SourceFunc
}

// NewSeriesGenerator は時刻源と乱数源を注入してジェネレーターを生成します。
// nil の場合はそれぞれ time.Now と NewTimeSeededSource を使います。
func NewSeriesGenerator(clock Clock, newSource SourceFunc) *SeriesGenerator {
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	if newSource == nil {
		newSource = NewTimeSeededSource
	}
	return &SeriesGenerator{clock: clock, newSource: newSource}
}

// Generate は start..today の各日に1点ずつ、日付昇順で返します。
// 「今日」は時刻源のロケーションでの暦日で、各点の日付はUTCの0時で表します。
//   - 評価額は毎日 (1 + Trend + U(-Volatility, +Volatility)) 倍
//   - FloorValue を下回らない
//   - 出力は小数2桁に丸めるが、累積値は丸めない
func (g *SeriesGenerator) Generate(w entity.Window) ([]entity.Point, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidWindow, string(w))
	}

	today := entity.Day(g.clock.Now())
	start := w.Start(today)
	steps := max(entity.DaysBetween(start, today), 1)

	noise := distuv.Uniform{Min: -Volatility, Max: Volatility, Src: g.newSource()}
	value := StartValue

	points := make([]entity.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		date := start.AddDate(0, 0, i)
		if date.After(today) {
			break
		}
		value *= 1 + Trend + noise.Rand()
		value = math.Max(value, FloorValue)
		points = append(points, entity.Point{Date: date, Value: round2(value)})
	}
	return points, nil
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
