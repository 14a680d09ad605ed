// Package garch implements the GARCH(1,1)-style volatility model and
// the volatility-driven forecast strategy.
package garch

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/staybase/demandcast/internal/stats"
	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/errors"
	"github.com/staybase/demandcast/pkg/models"
)

// Config contains the volatility model coefficients and the random
// seed for shock draws. The coefficients are fixed hyperparameters, not
// maximum-likelihood estimates.
type Config struct {
	Omega float64 `json:"omega"`
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Seed  int64   `json:"seed"` // 0 seeds from the wall clock
}

// DefaultConfig returns the reference GARCH(1,1) coefficients.
func DefaultConfig() *Config {
	return &Config{
		Omega: constants.DefaultGARCHOmega,
		Alpha: constants.DefaultGARCHAlpha,
		Beta:  constants.DefaultGARCHBeta,
	}
}

// BuildModel computes the return series and the conditional variance
// recursion h[0] = r[0]^2, h[i] = omega + alpha*r[i-1]^2 + beta*h[i-1].
// Zero-valued denominators in the return calculation contribute zero
// returns (see stats.Returns).
func BuildModel(values []float64, config *Config) *models.VolatilityModel {
	if config == nil {
		config = DefaultConfig()
	}

	returns := stats.Returns(values)
	variance := make([]float64, len(returns))
	if len(returns) > 0 {
		variance[0] = returns[0] * returns[0]
		for i := 1; i < len(returns); i++ {
			variance[i] = config.Omega + config.Alpha*returns[i-1]*returns[i-1] + config.Beta*variance[i-1]
		}
	}

	return &models.VolatilityModel{
		Omega:    config.Omega,
		Alpha:    config.Alpha,
		Beta:     config.Beta,
		Returns:  returns,
		Variance: variance,
	}
}

// Strategy simulates demand paths from projected conditional variance.
type Strategy struct {
	logger     *logrus.Logger
	config     *Config
	randSource *rand.Rand
}

// New creates a volatility-driven strategy. A zero seed falls back to
// the wall clock, so production runs are stochastic while tests can
// pin a seed for reproducibility.
func New(config *Config, logger *logrus.Logger) *Strategy {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logrus.New()
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Strategy{
		logger:     logger,
		config:     config,
		randSource: rand.New(rand.NewSource(seed)),
	}
}

// Name returns the method name.
func (s *Strategy) Name() string {
	return constants.MethodGARCH
}

// Deterministic reports that the shock draws make repeated runs differ.
func (s *Strategy) Deterministic() bool {
	return false
}

// Forecast projects one-step-ahead conditional variance, draws a normal
// shock scaled by its square root, and applies the simulated return
// multiplicatively to the running level. The interval half-width is
// 1.96*sqrt(predicted variance) with no horizon widening.
func (s *Strategy) Forecast(ctx context.Context, series *models.DemandSeries, horizon int) ([]models.ForecastPoint, error) {
	if horizon <= 0 {
		return nil, errors.NewValidationError(errors.CodeInvalidHorizon, "forecast horizon must be positive")
	}
	values := series.Values()
	if len(values) < 2 {
		return nil, errors.NewInsufficientDataError(len(values), 2)
	}

	model := BuildModel(values, s.config)
	level := values[len(values)-1]
	lastReturn := model.LastReturn()
	lastVariance := model.CurrentVariance()

	timestamps := models.ForecastTimestamps(series.LastTimestamp(), horizon)
	points := make([]models.ForecastPoint, horizon)

	for i := 0; i < horizon; i++ {
		predictedVariance := s.config.Omega + s.config.Alpha*lastReturn*lastReturn + s.config.Beta*lastVariance
		volatility := math.Sqrt(predictedVariance)

		simulatedReturn := s.randSource.NormFloat64() * volatility
		level = math.Max(0, level*(1+simulatedReturn))

		halfWidth := constants.ConfidenceZScore * volatility

		points[i] = models.ForecastPoint{
			Timestamp:       timestamps[i],
			PredictedDemand: level,
			Confidence: models.ConfidenceInterval{
				Lower: math.Max(0, level-halfWidth),
				Upper: level + halfWidth,
			},
			Volatility: volatility,
		}

		lastReturn = simulatedReturn
		lastVariance = predictedVariance
	}

	s.logger.WithFields(logrus.Fields{
		"strategy": s.Name(),
		"horizon":  horizon,
	}).Debug("Completed volatility-driven simulation")

	return points, nil
}
