package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/staybase/demandcast/internal/export"
	"github.com/staybase/demandcast/internal/forecast"
	"github.com/staybase/demandcast/internal/optimize"
	"github.com/staybase/demandcast/pkg/models"
)

type OptimizeOptions struct {
	InputFile  string
	Horizon    int
	Capacity   int
	Pricing    float64
	OutputFile string
}

func NewOptimizeCmd() *cobra.Command {
	opts := &OptimizeOptions{}

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Recommend capacity, pricing and staffing from a forecast",
		Long: `Forecast demand from historical observations, then derive capacity,
pricing, staffing, peak-period and inventory recommendations.`,
		Example: `  # Recommendations for the next 30 days
  demandcast optimize --input history.csv --capacity 60 --pricing 100

  # Shorter planning window
  demandcast optimize --input history.csv --horizon 14 --pricing 85`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input CSV file of demand observations (required)")
	cmd.Flags().IntVar(&opts.Horizon, "horizon", 30, "Number of periods to forecast")
	cmd.Flags().IntVar(&opts.Capacity, "capacity", 0, "Current capacity")
	cmd.Flags().Float64Var(&opts.Pricing, "pricing", 0, "Current price per unit (required)")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "-", "Output file (- for stdout)")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("pricing")

	return cmd
}

func runOptimize(opts *OptimizeOptions) error {
	series, err := loadSeries(opts.InputFile)
	if err != nil {
		return err
	}

	logger := newLogger()
	engine, err := forecast.NewEngine(nil, logger, nil)
	if err != nil {
		return err
	}

	result, err := engine.Forecast(context.Background(), &models.ForecastRequest{
		ID:      fmt.Sprintf("cli-%d", time.Now().Unix()),
		Horizon: opts.Horizon,
		Series:  series,
	})
	if err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}

	optimizer := optimize.New(nil, logger)
	recommendation, err := optimizer.Optimize(&models.OptimizationRequest{
		PropertyID:      series.PropertyID,
		ServiceType:     series.ServiceType,
		Forecast:        result.Points,
		CurrentCapacity: opts.Capacity,
		CurrentPricing:  opts.Pricing,
	})
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	output, closeOutput, err := openOutput(opts.OutputFile)
	if err != nil {
		return err
	}
	defer closeOutput()
	return export.WriteJSON(output, recommendation)
}
