package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/staybase/demandcast/internal/accuracy"
	"github.com/staybase/demandcast/internal/export"
)

type EvaluateOptions struct {
	ActualFile    string
	PredictedFile string
	OutputFile    string
}

func NewEvaluateCmd() *cobra.Command {
	opts := &EvaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a past forecast against realized demand",
		Long: `Compare realized demand against a past forecast of the same periods
and report MAE, MSE, RMSE, MAPE and R².`,
		Example: `  demandcast evaluate --actual realized.csv --predicted forecast.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ActualFile, "actual", "", "CSV file of realized demand (required)")
	cmd.Flags().StringVar(&opts.PredictedFile, "predicted", "", "CSV file of predicted demand (required)")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "-", "Output file (- for stdout)")
	cmd.MarkFlagRequired("actual")
	cmd.MarkFlagRequired("predicted")

	return cmd
}

func runEvaluate(opts *EvaluateOptions) error {
	actual, err := loadDemandValues(opts.ActualFile)
	if err != nil {
		return err
	}
	predicted, err := loadDemandValues(opts.PredictedFile)
	if err != nil {
		return err
	}

	report, err := accuracy.Evaluate(actual, predicted)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	output, closeOutput, err := openOutput(opts.OutputFile)
	if err != nil {
		return err
	}
	defer closeOutput()
	return export.WriteJSON(output, report)
}

func loadDemandValues(path string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	observations, err := export.LoadDemandCSV(file)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(observations))
	for i, obs := range observations {
		values[i] = obs.Demand
	}
	return values, nil
}
