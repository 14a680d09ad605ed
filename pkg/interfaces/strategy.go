package interfaces

import (
	"context"

	"github.com/staybase/demandcast/pkg/models"
)

// Strategy is a single forecasting method. Implementations consume a
// historical demand series and produce exactly horizon forecast points,
// in chronological order, with predicted demand and interval lower
// bounds floored at zero.
//
// Strategies do not apply exogenous-factor impact; that is overlaid once
// by the engine's shared post-processing step.
type Strategy interface {
	// Name returns the method name used for dispatch (e.g. "arima").
	Name() string

	// Deterministic reports whether repeated calls with identical
	// inputs produce identical output. Stochastic strategies (GARCH
	// shock draws, random weight initialization) return false.
	Deterministic() bool

	// Forecast produces horizon points following the series' last
	// observation at the daily cadence.
	Forecast(ctx context.Context, series *models.DemandSeries, horizon int) ([]models.ForecastPoint, error)
}

// StrategyCreateFunc creates a new strategy instance.
type StrategyCreateFunc func() Strategy

// StrategyRegistry manages the available forecast strategies.
type StrategyRegistry interface {
	// Create returns a new strategy for the given method name, or an
	// unknown-method error.
	Create(method string) (Strategy, error)

	// Register adds a strategy creator under a method name.
	Register(method string, create StrategyCreateFunc) error

	// Available lists the registered method names.
	Available() []string
}
