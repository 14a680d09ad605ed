// Package smoothing implements the Holt-Winters-style exponential
// smoothing forecast strategy.
package smoothing

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/staybase/demandcast/internal/stats"
	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/errors"
	"github.com/staybase/demandcast/pkg/models"
)

// Config contains the smoothing parameters.
//
// Gamma is declared for completeness but not applied during the
// recursive pass: the seasonal component comes from a static weekly
// index table computed once up front, not from a third smoothing
// equation. Callers wanting full three-equation Holt-Winters should
// treat this strategy as level+trend with a static seasonal overlay.
type Config struct {
	Alpha  float64 `json:"alpha"`  // level smoothing
	Beta   float64 `json:"beta"`   // trend smoothing
	Gamma  float64 `json:"gamma"`  // seasonal smoothing (declared, unused)
	Period int     `json:"period"` // seasonal index period
}

// DefaultConfig returns the reference smoothing parameters.
func DefaultConfig() *Config {
	return &Config{
		Alpha:  constants.DefaultLevelSmoothing,
		Beta:   constants.DefaultTrendSmoothing,
		Gamma:  constants.DefaultSeasonalSmoothing,
		Period: constants.WeeklySeasonalPeriod,
	}
}

// Strategy tracks level and trend recursively and multiplies each
// forecast by a static weekly seasonal index.
type Strategy struct {
	logger *logrus.Logger
	config *Config
}

// New creates an exponential smoothing strategy.
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
	return constants.MethodExponential
}

// Deterministic reports that repeated runs produce identical output.
func (s *Strategy) Deterministic() bool {
	return true
}

// Forecast smooths level and trend over the history, then projects
// (level + trend*(i+1)) scaled by the matching seasonal index.
func (s *Strategy) Forecast(ctx context.Context, series *models.DemandSeries, horizon int) ([]models.ForecastPoint, error) {
	if horizon <= 0 {
		return nil, errors.NewValidationError(errors.CodeInvalidHorizon, "forecast horizon must be positive")
	}
	values := series.Values()
	if len(values) < 2 {
		return nil, errors.NewInsufficientDataError(len(values), 2)
	}

	indices := stats.SeasonalIndices(values, s.config.Period)
	variance := stats.Variance(values)

	level := values[0]
	trend := values[1] - values[0]
	for i := 1; i < len(values); i++ {
		prevLevel := level
		level = s.config.Alpha*values[i] + (1-s.config.Alpha)*(level+trend)
		trend = s.config.Beta*(level-prevLevel) + (1-s.config.Beta)*trend
	}

	timestamps := models.ForecastTimestamps(series.LastTimestamp(), horizon)
	points := make([]models.ForecastPoint, horizon)

	for i := 0; i < horizon; i++ {
		base := level + trend*float64(i+1)
		index := indices[(len(values)+i)%s.config.Period]
		predicted := math.Max(0, base*index)

		spread := math.Sqrt(variance * float64(i+1))
		halfWidth := constants.ConfidenceZScore * spread

		points[i] = models.ForecastPoint{
			Timestamp:       timestamps[i],
			PredictedDemand: predicted,
			Confidence: models.ConfidenceInterval{
				Lower: math.Max(0, predicted-halfWidth),
				Upper: predicted + halfWidth,
			},
			Volatility:  spread,
			Seasonality: predicted - math.Max(0, base),
			Trend:       trend * float64(i+1),
		}
	}

	s.logger.WithFields(logrus.Fields{
		"strategy": s.Name(),
		"horizon":  horizon,
		"level":    level,
		"trend":    trend,
	}).Debug("Completed exponential smoothing projection")

	return points, nil
}
