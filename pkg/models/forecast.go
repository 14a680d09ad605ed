package models

import (
	"time"

	"github.com/staybase/demandcast/pkg/constants"
)

// ForecastTimestamps returns horizon timestamps at the daily cadence,
// starting one period after last.
func ForecastTimestamps(last time.Time, horizon int) []time.Time {
	timestamps := make([]time.Time, horizon)
	for i := 0; i < horizon; i++ {
		timestamps[i] = last.Add(time.Duration(i+1) * constants.ForecastStep)
	}
	return timestamps
}

// ConfidenceInterval bounds a forecast point at the 95% level. The lower
// bound is floored at zero.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ForecastPoint is one predicted period. Points are emitted in
// chronological order, one per period, spaced at the input cadence.
type ForecastPoint struct {
	Timestamp       time.Time          `json:"timestamp"`
	PredictedDemand float64            `json:"predicted_demand"`
	Confidence      ConfidenceInterval `json:"confidence_interval"`
	Volatility      float64            `json:"volatility"`
	Seasonality     float64            `json:"seasonality"`
	Trend           float64            `json:"trend"`
	ExternalImpact  float64            `json:"external_impact"`
}

// ForecastRequest contains everything needed for one forecast run.
type ForecastRequest struct {
	ID      string        `json:"id,omitempty"`
	Method  string        `json:"method,omitempty"` // defaults to ensemble
	Horizon int           `json:"horizon"`
	Series  *DemandSeries `json:"series"`

	// FutureFactors supplies exogenous factor sets for the forecast
	// periods, index-aligned with the horizon. Periods beyond the
	// provided list receive zero external impact.
	FutureFactors []ExogenousFactors `json:"future_factors,omitempty"`

	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ForecastResult is the output of one forecast run.
type ForecastResult struct {
	ID          string                 `json:"id"`
	Method      string                 `json:"method"`
	PropertyID  string                 `json:"property_id"`
	ServiceType string                 `json:"service_type"`
	Points      []ForecastPoint        `json:"points"`
	Pattern     *SeasonalPattern       `json:"seasonal_pattern,omitempty"`
	Duration    time.Duration          `json:"duration"`
	GeneratedAt time.Time              `json:"generated_at"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// SeasonalPattern describes the strongest periodic signal found in a
// historical series.
type SeasonalPattern struct {
	Period     int     `json:"period"`     // 7 for weekly, 30 for monthly
	Amplitude  float64 `json:"amplitude"`  // strongest sub-period average / overall average
	Phase      int     `json:"phase"`      // index of the strongest sub-period
	Confidence float64 `json:"confidence"` // normalized amplitude spread in [0,1]
}

// VolatilityModel holds a GARCH(1,1)-style conditional variance model.
// The coefficients are fixed hyperparameters, not maximum-likelihood
// estimates.
type VolatilityModel struct {
	Omega    float64   `json:"omega"`
	Alpha    float64   `json:"alpha"`
	Beta     float64   `json:"beta"`
	Returns  []float64 `json:"returns"`
	Variance []float64 `json:"variance"`
}

// CurrentVariance returns the most recent conditional variance, or zero
// for an empty model.
func (m *VolatilityModel) CurrentVariance() float64 {
	if len(m.Variance) == 0 {
		return 0
	}
	return m.Variance[len(m.Variance)-1]
}

// LastReturn returns the most recent realized return, or zero for an
// empty model.
func (m *VolatilityModel) LastReturn() float64 {
	if len(m.Returns) == 0 {
		return 0
	}
	return m.Returns[len(m.Returns)-1]
}

// OptimizationRequest pairs a completed forecast with current operating
// parameters.
type OptimizationRequest struct {
	PropertyID      string          `json:"property_id"`
	ServiceType     string          `json:"service_type"`
	Forecast        []ForecastPoint `json:"forecast"`
	CurrentCapacity int             `json:"current_capacity"`
	CurrentPricing  float64         `json:"current_pricing"`
}

// OptimizationRecommendation is the optimizer's output.
type OptimizationRecommendation struct {
	PropertyID           string      `json:"property_id"`
	ServiceType          string      `json:"service_type"`
	RecommendedCapacity  int         `json:"recommended_capacity"`
	OptimalPrice         float64     `json:"optimal_price"`
	PeakStaffing         int         `json:"peak_staffing"`
	OffPeakStaffing      int         `json:"off_peak_staffing"`
	PeakPeriods          []time.Time `json:"peak_periods"`
	InventorySuggestions []string    `json:"inventory_suggestions"`
	RevenueImpact        float64     `json:"revenue_impact"`
	GeneratedAt          time.Time   `json:"generated_at"`
}

// AccuracyReport holds standard forecast-error metrics for a paired
// actual/predicted comparison.
type AccuracyReport struct {
	MAE        float64 `json:"mae"`
	MSE        float64 `json:"mse"`
	RMSE       float64 `json:"rmse"`
	MAPE       float64 `json:"mape"`
	RSquared   float64 `json:"r_squared"`
	SampleSize int     `json:"sample_size"`
}
