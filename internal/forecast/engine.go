// Package forecast implements the demand forecasting engine: request
// validation, strategy dispatch, ensemble blending, seasonal and
// exogenous post-processing, and model memoization.
package forecast

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/staybase/demandcast/internal/seasonal"
	"github.com/staybase/demandcast/internal/strategies"
	"github.com/staybase/demandcast/internal/strategies/garch"
	"github.com/staybase/demandcast/internal/strategies/neural"
	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/errors"
	"github.com/staybase/demandcast/pkg/interfaces"
	"github.com/staybase/demandcast/pkg/models"
)

// Engine is the forecasting entry point. It is safe for concurrent use.
type Engine struct {
	logger   *logrus.Logger
	config   *Config
	registry interfaces.StrategyRegistry
	detector *seasonal.Detector
	cache    *modelCache
	metrics  *Metrics
}

// NewEngine creates a forecasting engine. A nil config uses the
// defaults; a nil metrics disables collection.
func NewEngine(config *Config, logger *logrus.Logger, metrics *Metrics) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logrus.New()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cache, err := newModelCache(config.CacheSize, config.CacheTTL)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeInternal, errors.CodeInternalError, "failed to create model cache")
	}

	registry := strategies.NewRegistry(logger)
	if config.Seed != 0 {
		err := registry.Register(constants.MethodGARCH, func() interfaces.Strategy {
			return garch.New(&garch.Config{
				Omega: constants.DefaultGARCHOmega,
				Alpha: constants.DefaultGARCHAlpha,
				Beta:  constants.DefaultGARCHBeta,
				Seed:  config.Seed,
			}, logger)
		})
		if err == nil {
			err = registry.Register(constants.MethodNeural, func() interfaces.Strategy {
				return neural.New(&neural.Config{
					Window: constants.DefaultNeuralWindow,
					Hidden: constants.DefaultNeuralHidden,
					Seed:   config.Seed,
				}, logger)
			})
		}
		if err != nil {
			return nil, err
		}
	}

	return &Engine{
		logger:   logger,
		config:   config,
		registry: registry,
		detector: seasonal.NewDetector(logger),
		cache:    cache,
		metrics:  metrics,
	}, nil
}

// Registry exposes the strategy registry so callers can add custom
// strategies.
func (e *Engine) Registry() interfaces.StrategyRegistry {
	return e.registry
}

// Forecast runs one forecast request end to end: validation, side
// information, strategy execution, then shared post-processing. The
// call either fully succeeds or fully fails; no partial result is
// returned.
func (e *Engine) Forecast(ctx context.Context, req *models.ForecastRequest) (*models.ForecastResult, error) {
	if req == nil {
		return nil, errors.NewValidationError(errors.CodeInvalidInput, "forecast request is required")
	}
	if req.Series == nil {
		return nil, errors.NewValidationError(errors.CodeInvalidSeries, "demand series is required")
	}
	if req.Horizon <= 0 {
		return nil, errors.NewValidationError(errors.CodeInvalidHorizon, "forecast horizon must be positive")
	}

	method := req.Method
	if method == "" {
		method = constants.DefaultMethod
	}
	if !constants.IsValidMethod(method) {
		return nil, errors.NewUnknownMethodError(method)
	}
	if req.Series.Len() < e.config.MinObservations {
		return nil, errors.NewInsufficientDataError(req.Series.Len(), e.config.MinObservations)
	}
	for i, obs := range req.Series.Observations {
		if obs.Demand < 0 {
			return nil, errors.NewValidationError(errors.CodeInvalidSeries, "demand values must be non-negative").
				WithContext("index", i)
		}
	}

	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	e.logger.WithFields(logrus.Fields{
		"request_id":   req.ID,
		"method":       method,
		"horizon":      req.Horizon,
		"observations": req.Series.Len(),
		"property_id":  req.Series.PropertyID,
		"service_type": req.Series.ServiceType,
	}).Info("Starting demand forecast")

	start := time.Now()
	e.metrics.forecastStarted()

	pattern, model, cacheHit := e.sideInformation(req.Series)

	points, err := e.run(ctx, method, req.Series, req.Horizon)
	if err != nil {
		e.metrics.forecastFinished(method, "error", time.Since(start))
		return nil, err
	}

	applySeasonalPattern(points, pattern)
	applyExternalImpact(points, req.FutureFactors)

	duration := time.Since(start)
	e.metrics.forecastFinished(method, "completed", duration)

	e.logger.WithFields(logrus.Fields{
		"request_id": req.ID,
		"method":     method,
		"points":     len(points),
		"duration":   duration,
	}).Info("Completed demand forecast")

	return &models.ForecastResult{
		ID:          req.ID,
		Method:      method,
		PropertyID:  req.Series.PropertyID,
		ServiceType: req.Series.ServiceType,
		Points:      points,
		Pattern:     pattern,
		Duration:    duration,
		GeneratedAt: time.Now(),
		Metadata: map[string]interface{}{
			"observations":     req.Series.Len(),
			"cache_hit":        cacheHit,
			"current_variance": model.CurrentVariance(),
		},
	}, nil
}

// run dispatches to a single strategy or the ensemble.
func (e *Engine) run(ctx context.Context, method string, series *models.DemandSeries, horizon int) ([]models.ForecastPoint, error) {
	if method == constants.MethodEnsemble {
		return e.runEnsemble(ctx, series, horizon)
	}

	strategy, err := e.registry.Create(method)
	if err != nil {
		return nil, err
	}
	points, err := strategy.Forecast(ctx, series, horizon)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeForecast, errors.CodeStrategyFailed,
			"strategy "+method+" failed")
	}
	return points, nil
}

// sideInformation returns the seasonal pattern and volatility model for
// the series, memoized per (propertyID, serviceType). The cache is an
// optimization only; a fresh computation is always substitutable.
func (e *Engine) sideInformation(series *models.DemandSeries) (*models.SeasonalPattern, *models.VolatilityModel, bool) {
	key := cacheKey(series.PropertyID, series.ServiceType)
	if entry, ok := e.cache.get(key); ok {
		e.metrics.cacheHit()
		return entry.pattern, entry.model, true
	}
	e.metrics.cacheMiss()

	values := series.Values()
	pattern := e.detector.Detect(values, series.Timestamps())
	model := garch.BuildModel(values, nil)
	e.cache.set(key, pattern, model)
	return pattern, model, false
}
