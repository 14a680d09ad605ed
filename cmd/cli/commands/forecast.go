package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/staybase/demandcast/internal/export"
	"github.com/staybase/demandcast/internal/forecast"
	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/models"
)

type ForecastOptions struct {
	InputFile  string
	Method     string
	Horizon    int
	OutputFile string
	Format     string
	Factors    []string
	Seed       int64
}

func NewForecastCmd() *cobra.Command {
	opts := &ForecastOptions{}

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast demand from historical observations",
		Long: `Forecast demand for future periods from a CSV of historical
observations, using a single strategy or the blended ensemble.`,
		Example: `  # 30-day ensemble forecast
  demandcast forecast --input history.csv --horizon 30

  # Single-strategy forecast with known future factors
  demandcast forecast --input history.csv --method arima --factor weather=5 --factor events=10

  # JSON output to a file
  demandcast forecast --input history.csv --format json --output forecast.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForecast(opts)
		},
	}

	methods := strings.Join(constants.ForecastMethods(), ", ")
	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input CSV file of demand observations (required)")
	cmd.Flags().StringVarP(&opts.Method, "method", "m", constants.DefaultMethod, fmt.Sprintf("Forecast method (%s)", methods))
	cmd.Flags().IntVar(&opts.Horizon, "horizon", 30, "Number of periods to forecast")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "-", "Output file (- for stdout)")
	cmd.Flags().StringVar(&opts.Format, "format", "csv", "Output format (csv, json)")
	cmd.Flags().StringArrayVar(&opts.Factors, "factor", nil, "Future factor as name=value, applied to every forecast period (repeatable)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Random seed for stochastic strategies (0 = time-based)")
	cmd.MarkFlagRequired("input")

	return cmd
}

func runForecast(opts *ForecastOptions) error {
	series, err := loadSeries(opts.InputFile)
	if err != nil {
		return err
	}

	factors, err := parseFactors(opts.Factors)
	if err != nil {
		return err
	}
	var futureFactors []models.ExogenousFactors
	if factors != nil {
		futureFactors = make([]models.ExogenousFactors, opts.Horizon)
		for i := range futureFactors {
			futureFactors[i] = factors
		}
	}

	config := forecast.DefaultConfig()
	config.Seed = opts.Seed
	engine, err := forecast.NewEngine(config, newLogger(), nil)
	if err != nil {
		return err
	}

	result, err := engine.Forecast(context.Background(), &models.ForecastRequest{
		ID:            fmt.Sprintf("cli-%d", time.Now().Unix()),
		Method:        opts.Method,
		Horizon:       opts.Horizon,
		Series:        series,
		FutureFactors: futureFactors,
	})
	if err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}

	output, closeOutput, err := openOutput(opts.OutputFile)
	if err != nil {
		return err
	}
	defer closeOutput()

	switch opts.Format {
	case "csv":
		return export.WriteForecastCSV(output, result)
	case "json":
		return export.WriteJSON(output, result)
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}
