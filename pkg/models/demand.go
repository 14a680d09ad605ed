package models

import (
	"sort"
	"time"

	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/errors"
)

// ExogenousFactors is a sparse set of external influences for one period,
// keyed by factor name. Absent factors contribute zero impact.
type ExogenousFactors map[string]float64

// factorWeights maps each recognized factor to its fixed impact weight.
// Weights are not renormalized when factors are missing.
var factorWeights = map[string]float64{
	constants.FactorWeather:     constants.FactorWeightWeather,
	constants.FactorEvents:      constants.FactorWeightEvents,
	constants.FactorSeasonality: constants.FactorWeightSeasonality,
	constants.FactorHolidays:    constants.FactorWeightHolidays,
	constants.FactorEconomic:    constants.FactorWeightEconomic,
}

// Impact returns the weighted sum of the factors that are present.
// Unrecognized factor names (e.g. competitor activity, which carries no
// assigned weight) contribute zero.
func (f ExogenousFactors) Impact() float64 {
	if len(f) == 0 {
		return 0
	}
	impact := 0.0
	for name, value := range f {
		if weight, ok := factorWeights[name]; ok {
			impact += weight * value
		}
	}
	return impact
}

// DemandObservation is one historical data point supplied by the caller.
// Observations are immutable inputs; the engine never mutates them.
type DemandObservation struct {
	Timestamp   time.Time        `json:"timestamp"`
	Demand      float64          `json:"demand"`
	PropertyID  string           `json:"property_id"`
	ServiceType string           `json:"service_type"`
	Factors     ExogenousFactors `json:"factors,omitempty"`
}

// DemandSeries is an ordered sequence of observations for one property and
// service type.
type DemandSeries struct {
	PropertyID   string              `json:"property_id"`
	ServiceType  string              `json:"service_type"`
	Observations []DemandObservation `json:"observations"`
}

// NewDemandSeries builds a series from observations, taking property and
// service identifiers from the first observation and sorting by timestamp.
func NewDemandSeries(observations []DemandObservation) *DemandSeries {
	series := &DemandSeries{
		Observations: make([]DemandObservation, len(observations)),
	}
	copy(series.Observations, observations)
	sort.Slice(series.Observations, func(i, j int) bool {
		return series.Observations[i].Timestamp.Before(series.Observations[j].Timestamp)
	})
	if len(series.Observations) > 0 {
		series.PropertyID = series.Observations[0].PropertyID
		series.ServiceType = series.Observations[0].ServiceType
	}
	return series
}

// Len returns the number of observations.
func (s *DemandSeries) Len() int {
	return len(s.Observations)
}

// Values returns the demand values in timestamp order.
func (s *DemandSeries) Values() []float64 {
	values := make([]float64, len(s.Observations))
	for i, obs := range s.Observations {
		values[i] = obs.Demand
	}
	return values
}

// Timestamps returns the observation timestamps in order.
func (s *DemandSeries) Timestamps() []time.Time {
	timestamps := make([]time.Time, len(s.Observations))
	for i, obs := range s.Observations {
		timestamps[i] = obs.Timestamp
	}
	return timestamps
}

// LastTimestamp returns the timestamp of the most recent observation.
func (s *DemandSeries) LastTimestamp() time.Time {
	if len(s.Observations) == 0 {
		return time.Time{}
	}
	return s.Observations[len(s.Observations)-1].Timestamp
}

// Validate checks the series invariants: enough observations for a
// forecast and no negative demand values.
func (s *DemandSeries) Validate() error {
	if len(s.Observations) < constants.MinObservations {
		return errors.NewInsufficientDataError(len(s.Observations), constants.MinObservations)
	}
	for i, obs := range s.Observations {
		if obs.Demand < 0 {
			return errors.NewValidationError(errors.CodeInvalidSeries, "demand values must be non-negative").
				WithContext("index", i).
				WithContext("demand", obs.Demand)
		}
	}
	return nil
}
