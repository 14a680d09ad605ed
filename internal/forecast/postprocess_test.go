package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/models"
)

func flatPoints(n int, demand float64) []models.ForecastPoint {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.ForecastPoint, n)
	for i := range points {
		points[i] = models.ForecastPoint{
			Timestamp:       start.Add(time.Duration(i) * 24 * time.Hour),
			PredictedDemand: demand,
			Confidence:      models.ConfidenceInterval{Lower: demand * 0.8, Upper: demand * 1.2},
		}
	}
	return points
}

func TestApplySeasonalPattern(t *testing.T) {
	points := flatPoints(14, 100)
	pattern := &models.SeasonalPattern{
		Period:     7,
		Amplitude:  1.5,
		Phase:      0,
		Confidence: 1.0,
	}

	applySeasonalPattern(points, pattern)

	varied := false
	for i, p := range points {
		assert.GreaterOrEqual(t, p.PredictedDemand, 0.0, "point %d", i)
		assert.GreaterOrEqual(t, p.Confidence.Lower, 0.0, "point %d", i)
		if p.PredictedDemand != 100 {
			varied = true
			// The seasonality field records the overlay contribution.
			assert.InDelta(t, p.PredictedDemand-100, p.Seasonality, 1e-9, "point %d", i)
		}
	}
	assert.True(t, varied, "a confident pattern must reshape the forecast")
}

func TestApplySeasonalPatternNeutral(t *testing.T) {
	points := flatPoints(7, 100)

	applySeasonalPattern(points, nil)
	applySeasonalPattern(points, &models.SeasonalPattern{Period: 7, Amplitude: 1, Confidence: 0})

	for _, p := range points {
		assert.Equal(t, 100.0, p.PredictedDemand)
		assert.Equal(t, 0.0, p.Seasonality)
	}
}

func TestApplyExternalImpact(t *testing.T) {
	points := flatPoints(3, 50)
	factors := []models.ExogenousFactors{
		{constants.FactorWeather: 10},                            // 0.30*10 = 3
		{constants.FactorHolidays: 20, constants.FactorEconomic: 10}, // 0.15*20 + 0.10*10 = 4
	}

	applyExternalImpact(points, factors)

	assert.InDelta(t, 53.0, points[0].PredictedDemand, 1e-9)
	assert.InDelta(t, 3.0, points[0].ExternalImpact, 1e-9)
	assert.InDelta(t, 54.0, points[1].PredictedDemand, 1e-9)
	assert.InDelta(t, 4.0, points[1].ExternalImpact, 1e-9)

	// No factor set for the third period.
	assert.Equal(t, 50.0, points[2].PredictedDemand)
	assert.Equal(t, 0.0, points[2].ExternalImpact)
}

func TestApplyExternalImpactNegativeFloor(t *testing.T) {
	points := flatPoints(1, 2)
	factors := []models.ExogenousFactors{
		{constants.FactorWeather: -100}, // impact -30
	}

	applyExternalImpact(points, factors)

	assert.Equal(t, 0.0, points[0].PredictedDemand)
	assert.Equal(t, 0.0, points[0].Confidence.Lower)
}

func TestApplyExternalImpactUnweightedFactor(t *testing.T) {
	points := flatPoints(1, 50)
	factors := []models.ExogenousFactors{
		{constants.FactorCompetitor: 40}, // carries no weight
	}

	applyExternalImpact(points, factors)

	assert.Equal(t, 50.0, points[0].PredictedDemand)
	assert.Equal(t, 0.0, points[0].ExternalImpact)
}
