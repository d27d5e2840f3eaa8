package main

import (
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"finbar/internal/feature/performance/domain/entity"
	"finbar/internal/feature/performance/transport/http/dto"
	"finbar/internal/feature/performance/usecase"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print a generated performance chart as JSON",
	Long: `Generate a demo valuation series and its summary without a database.

Examples:
  finbar demo --range 3M
  finbar demo --range YTD --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rng, _ := cmd.Flags().GetString("range")
		seed, _ := cmd.Flags().GetUint64("seed")
		return runDemo(cmd.Context(), cmd.OutOrStdout(), rng, seed, time.Now)
	},
}

func init() {
	demoCmd.Flags().String("range", string(entity.DefaultWindow), "chart range: 1D, 7D, 1M, 3M, YTD or ALL")
	demoCmd.Flags().Uint64("seed", 0, "random seed for a reproducible series (0 = random)")
}

func runDemo(ctx context.Context, w io.Writer, rng string, seed uint64, now func() time.Time) error {
	window, err := entity.ParseWindow(rng)
	if err != nil {
		return err
	}

	var source usecase.SourceFunc
	if seed != 0 {
		source = func() rand.Source { return rand.NewPCG(seed, seed) }
	}
	uc := usecase.NewPerformanceUsecase(usecase.NewSeriesGenerator(usecase.ClockFunc(now), source))

	chart, err := uc.Chart(ctx, window)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(dto.FromChart(chart))
}
