// Package optimize derives operational recommendations (capacity,
// pricing, staffing, inventory) from a completed demand forecast.
package optimize

import (
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/errors"
	"github.com/staybase/demandcast/pkg/models"
)

// Config contains the optimization parameters. Elasticity and margin
// are fixed operating assumptions, not estimates from data.
type Config struct {
	CapacityBuffer    float64 `json:"capacity_buffer"`
	Elasticity        float64 `json:"elasticity"` // demand elasticity, negative
	Margin            float64 `json:"margin"`     // assumed margin fraction
	PeakStaffRatio    float64 `json:"peak_staff_ratio"`
	OffPeakStaffRatio float64 `json:"off_peak_staff_ratio"`
	PeakPeriodCount   int     `json:"peak_period_count"`
	DemandThreshold   float64 `json:"demand_threshold"` // inventory rule cutoff
}

// DefaultConfig returns the reference optimization parameters.
func DefaultConfig() *Config {
	return &Config{
		CapacityBuffer:    constants.DefaultCapacityBuffer,
		Elasticity:        constants.DefaultDemandElasticity,
		Margin:            constants.DefaultMarginAssumption,
		PeakStaffRatio:    constants.DefaultPeakStaffRatio,
		OffPeakStaffRatio: constants.DefaultOffPeakStaffRatio,
		PeakPeriodCount:   constants.DefaultPeakPeriodCount,
		DemandThreshold:   50,
	}
}

// Optimizer computes recommendations from forecast output.
type Optimizer struct {
	logger *logrus.Logger
	config *Config
}

// New creates a demand optimizer.
func New(config *Config, logger *logrus.Logger) *Optimizer {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Optimizer{logger: logger, config: config}
}

// Optimize derives a recommendation from a forecast and the current
// operating parameters.
func (o *Optimizer) Optimize(req *models.OptimizationRequest) (*models.OptimizationRecommendation, error) {
	if req == nil {
		return nil, errors.NewValidationError(errors.CodeInvalidInput, "optimization request is required")
	}
	if len(req.Forecast) == 0 {
		return nil, errors.NewOptimizationError(errors.CodeEmptyForecast, "forecast contains no points")
	}
	if req.CurrentPricing <= 0 {
		return nil, errors.NewNumericalDegeneracyError("current pricing must be positive for elasticity math")
	}

	maxDemand := 0.0
	totalDemand := 0.0
	for _, p := range req.Forecast {
		totalDemand += p.PredictedDemand
		if p.PredictedDemand > maxDemand {
			maxDemand = p.PredictedDemand
		}
	}
	if maxDemand == 0 {
		return nil, errors.NewNumericalDegeneracyError("forecast demand is zero for every period")
	}
	avgDemand := totalDemand / float64(len(req.Forecast))

	recommendedCapacity := int(math.Ceil(maxDemand * o.config.CapacityBuffer))
	optimalPrice := o.optimalPrice(req.CurrentPricing)

	recommendation := &models.OptimizationRecommendation{
		PropertyID:           req.PropertyID,
		ServiceType:          req.ServiceType,
		RecommendedCapacity:  recommendedCapacity,
		OptimalPrice:         optimalPrice,
		PeakStaffing:         int(math.Ceil(float64(recommendedCapacity) * o.config.PeakStaffRatio)),
		OffPeakStaffing:      int(math.Ceil(float64(recommendedCapacity) * o.config.OffPeakStaffRatio)),
		PeakPeriods:          o.peakPeriods(req.Forecast),
		InventorySuggestions: o.inventorySuggestions(req.ServiceType, avgDemand),
		RevenueImpact:        avgDemand * (optimalPrice - req.CurrentPricing),
		GeneratedAt:          time.Now(),
	}

	o.logger.WithFields(logrus.Fields{
		"property_id":          req.PropertyID,
		"service_type":         req.ServiceType,
		"recommended_capacity": recommendedCapacity,
		"optimal_price":        optimalPrice,
	}).Info("Completed demand optimization")

	return recommendation, nil
}

// optimalPrice backs cost out of the current price via the margin
// assumption, then prices against the fixed demand elasticity.
func (o *Optimizer) optimalPrice(currentPricing float64) float64 {
	cost := currentPricing * (1 - o.config.Margin)
	return cost / (1 + 1/math.Abs(o.config.Elasticity))
}

// peakPeriods returns the timestamps of the top forecast periods by
// predicted demand, in chronological order.
func (o *Optimizer) peakPeriods(forecast []models.ForecastPoint) []time.Time {
	sorted := make([]models.ForecastPoint, len(forecast))
	copy(sorted, forecast)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PredictedDemand > sorted[j].PredictedDemand
	})

	count := o.config.PeakPeriodCount
	if count > len(sorted) {
		count = len(sorted)
	}
	periods := make([]time.Time, count)
	for i := 0; i < count; i++ {
		periods[i] = sorted[i].Timestamp
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })
	return periods
}

// inventorySuggestions applies coarse service-type rules. Unrecognized
// service types yield no suggestions.
func (o *Optimizer) inventorySuggestions(serviceType string, avgDemand float64) []string {
	switch serviceType {
	case constants.ServiceTypeRestaurant:
		if avgDemand > o.config.DemandThreshold {
			return []string{
				"increase perishable ingredient orders",
				"expand beverage stock",
				"schedule additional prep shifts",
			}
		}
		return []string{"maintain standard ingredient stock"}
	case constants.ServiceTypeSpa:
		if avgDemand > o.config.DemandThreshold {
			return []string{
				"stock additional massage oils and linens",
				"extend treatment room availability",
			}
		}
		return []string{"maintain standard treatment supplies"}
	default:
		return []string{}
	}
}
