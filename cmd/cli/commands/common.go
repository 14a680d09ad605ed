package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/staybase/demandcast/internal/export"
	"github.com/staybase/demandcast/pkg/models"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	if viper.GetBool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

func loadSeries(path string) (*models.DemandSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	observations, err := export.LoadDemandCSV(file)
	if err != nil {
		return nil, err
	}
	return models.NewDemandSeries(observations), nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, func() { file.Close() }, nil
}

// parseFactors parses repeated name=value flags into exogenous factors.
func parseFactors(pairs []string) (models.ExogenousFactors, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	factors := models.ExogenousFactors{}
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("factor %q must be name=value", pair)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("factor %q has a non-numeric value: %w", name, err)
		}
		factors[name] = value
	}
	return factors, nil
}
