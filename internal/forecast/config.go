package forecast

import (
	"time"

	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/errors"
)

// EnsembleWeights blends the four strategies. The weights must sum to 1.
type EnsembleWeights struct {
	ARIMA       float64 `json:"arima"`
	Exponential float64 `json:"exponential"`
	GARCH       float64 `json:"garch"`
	Neural      float64 `json:"neural"`
}

// Sum returns the total weight.
func (w EnsembleWeights) Sum() float64 {
	return w.ARIMA + w.Exponential + w.GARCH + w.Neural
}

// Config contains engine-level settings. Strategy coefficients live in
// the per-strategy configs; this covers validation, blending and the
// model cache.
type Config struct {
	MinObservations int             `json:"min_observations"`
	Weights         EnsembleWeights `json:"ensemble_weights"`
	CacheSize       int             `json:"cache_size"`
	CacheTTL        time.Duration   `json:"cache_ttl"`

	// Seed fixes the random source of the stochastic strategies for
	// reproducible runs. 0 seeds from the wall clock.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns the reference engine settings.
func DefaultConfig() *Config {
	return &Config{
		MinObservations: constants.MinObservations,
		Weights: EnsembleWeights{
			ARIMA:       constants.EnsembleWeightARIMA,
			Exponential: constants.EnsembleWeightExponential,
			GARCH:       constants.EnsembleWeightGARCH,
			Neural:      constants.EnsembleWeightNeural,
		},
		CacheSize: constants.DefaultCacheSize,
		CacheTTL:  constants.DefaultCacheTTL,
	}
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if c.MinObservations < 2 {
		return errors.NewValidationError(errors.CodeInvalidConfiguration, "min_observations must be at least 2")
	}
	if c.CacheSize <= 0 {
		return errors.NewValidationError(errors.CodeInvalidConfiguration, "cache_size must be positive")
	}
	sum := c.Weights.Sum()
	if sum < 0.999 || sum > 1.001 {
		return errors.NewValidationError(errors.CodeInvalidConfiguration, "ensemble weights must sum to 1").
			WithContext("sum", sum)
	}
	return nil
}
