// Package arima implements the autoregressive/integrated forecast
// strategy.
package arima

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/staybase/demandcast/internal/stats"
	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/errors"
	"github.com/staybase/demandcast/pkg/models"
)

// Config contains the strategy coefficients. These are fixed operating
// defaults rather than fitted estimates; a calling system may tune them
// without code changes.
type Config struct {
	AR          float64 `json:"ar"`          // autoregressive coefficient
	MA          float64 `json:"ma"`          // moving-average coefficient
	Integration float64 `json:"integration"` // integration coefficient
}

// DefaultConfig returns the reference coefficients.
func DefaultConfig() *Config {
	return &Config{
		AR:          constants.DefaultARCoefficient,
		MA:          constants.DefaultMACoefficient,
		Integration: constants.DefaultIntegrationCoefficient,
	}
}

// Strategy projects the last first-difference forward recursively.
type Strategy struct {
	logger *logrus.Logger
	config *Config
}

// New creates an ARIMA strategy.
func New(config *Config, logger *logrus.Logger) *Strategy {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Strategy{logger: logger, config: config}
}

// Name returns the method name.
func (s *Strategy) Name() string {
	return constants.MethodARIMA
}

// Deterministic reports that repeated runs produce identical output.
func (s *Strategy) Deterministic() bool {
	return true
}

// Forecast produces horizon points by recursive projection of the last
// first-difference. The MA term multiplies a zero residual placeholder,
// so it contributes nothing; it is retained as a configured coefficient
// for callers that estimate residuals upstream.
func (s *Strategy) Forecast(ctx context.Context, series *models.DemandSeries, horizon int) ([]models.ForecastPoint, error) {
	if horizon <= 0 {
		return nil, errors.NewValidationError(errors.CodeInvalidHorizon, "forecast horizon must be positive")
	}
	values := series.Values()
	if len(values) < 2 {
		return nil, errors.NewInsufficientDataError(len(values), 2)
	}

	diffs := stats.FirstDifferences(values)
	variance := stats.Variance(diffs)
	lastDiff := diffs[len(diffs)-1]
	level := values[len(values)-1]

	timestamps := models.ForecastTimestamps(series.LastTimestamp(), horizon)
	points := make([]models.ForecastPoint, horizon)

	for i := 0; i < horizon; i++ {
		const residual = 0.0 // no residual history beyond the sample
		step := s.config.AR*lastDiff + s.config.MA*residual + s.config.Integration*lastDiff

		level += step
		predicted := math.Max(0, level)

		// Interval widens with the horizon step.
		spread := math.Sqrt(variance * float64(i+1))
		halfWidth := constants.ConfidenceZScore * spread

		points[i] = models.ForecastPoint{
			Timestamp:       timestamps[i],
			PredictedDemand: predicted,
			Confidence: models.ConfidenceInterval{
				Lower: math.Max(0, predicted-halfWidth),
				Upper: predicted + halfWidth,
			},
			Volatility: spread,
			Trend:      step,
		}

		lastDiff = step
	}

	s.logger.WithFields(logrus.Fields{
		"strategy": s.Name(),
		"horizon":  horizon,
	}).Debug("Completed ARIMA projection")

	return points, nil
}
