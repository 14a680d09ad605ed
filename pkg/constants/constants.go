package constants

import "time"

// Application constants
const (
	// Application metadata
	AppName        = "demandcast"
	AppDescription = "Hospitality Demand Forecasting Engine"
	AppVersion     = "0.1.0"

	// Forecast methods
	MethodARIMA       = "arima"
	MethodExponential = "exponential"
	MethodGARCH       = "garch"
	MethodNeural      = "neural"
	MethodEnsemble    = "ensemble"
	DefaultMethod     = MethodEnsemble

	// Forecast input requirements
	MinObservations = 20

	// Forecast cadence: the engine assumes daily observations and emits
	// one point per day after the last historical timestamp.
	ForecastStep = 24 * time.Hour

	// Confidence intervals use a 95% normal quantile.
	ConfidenceZScore = 1.96

	// Ensemble weights (must sum to 1.0)
	EnsembleWeightARIMA       = 0.30
	EnsembleWeightExponential = 0.25
	EnsembleWeightGARCH       = 0.25
	EnsembleWeightNeural      = 0.20

	// ARIMA defaults
	DefaultARCoefficient          = 0.3
	DefaultMACoefficient          = 0.2
	DefaultIntegrationCoefficient = 0.1

	// Exponential smoothing defaults (Holt-Winters style)
	DefaultLevelSmoothing    = 0.3
	DefaultTrendSmoothing    = 0.2
	DefaultSeasonalSmoothing = 0.1
	WeeklySeasonalPeriod     = 7
	MonthlySeasonalPeriod    = 30

	// GARCH(1,1) defaults
	DefaultGARCHOmega = 0.01
	DefaultGARCHAlpha = 0.10
	DefaultGARCHBeta  = 0.85

	// Neural strategy defaults
	DefaultNeuralWindow = 7
	DefaultNeuralHidden = 10

	// Optimizer defaults
	DefaultCapacityBuffer    = 1.2
	DefaultDemandElasticity  = -0.5
	DefaultMarginAssumption  = 0.30
	DefaultPeakStaffRatio    = 0.8
	DefaultOffPeakStaffRatio = 0.4
	DefaultPeakPeriodCount   = 8

	// Model cache defaults
	DefaultCacheSize = 128
	DefaultCacheTTL  = 30 * time.Minute
)

// Exogenous factor names
const (
	FactorWeather     = "weather"
	FactorEvents      = "events"
	FactorSeasonality = "seasonality"
	FactorHolidays    = "holidays"
	FactorEconomic    = "economic"
	FactorCompetitor  = "competitor"
)

// Exogenous factor weights. Absent factors contribute zero; weights are
// not renormalized over the factors that are present.
const (
	FactorWeightWeather     = 0.30
	FactorWeightEvents      = 0.25
	FactorWeightSeasonality = 0.20
	FactorWeightHolidays    = 0.15
	FactorWeightEconomic    = 0.10
)

// Service types with rule-based inventory guidance
const (
	ServiceTypeRestaurant = "restaurant"
	ServiceTypeSpa        = "spa"
)

// ForecastMethods returns all supported method names.
func ForecastMethods() []string {
	return []string{MethodARIMA, MethodExponential, MethodGARCH, MethodNeural, MethodEnsemble}
}

// IsValidMethod checks whether a forecast method name is supported.
func IsValidMethod(method string) bool {
	switch method {
	case MethodARIMA, MethodExponential, MethodGARCH, MethodNeural, MethodEnsemble:
		return true
	default:
		return false
	}
}
