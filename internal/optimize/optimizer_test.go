package optimize

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybase/demandcast/pkg/errors"
	"github.com/staybase/demandcast/pkg/models"
)

func forecastPoints(demands []float64) []models.ForecastPoint {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.ForecastPoint, len(demands))
	for i, d := range demands {
		points[i] = models.ForecastPoint{
			Timestamp:       start.Add(time.Duration(i) * 24 * time.Hour),
			PredictedDemand: d,
		}
	}
	return points
}

func TestOptimizeCapacityAndStaffing(t *testing.T) {
	optimizer := New(nil, nil)

	req := &models.OptimizationRequest{
		PropertyID:      "prop-1",
		ServiceType:     "restaurant",
		Forecast:        forecastPoints([]float64{40, 55, 70, 65, 50}),
		CurrentCapacity: 60,
		CurrentPricing:  100,
	}
	rec, err := optimizer.Optimize(req)
	require.NoError(t, err)

	// ceil(70 * 1.2) = 84
	assert.Equal(t, 84, rec.RecommendedCapacity)
	assert.Equal(t, int(math.Ceil(84*0.8)), rec.PeakStaffing)
	assert.Equal(t, int(math.Ceil(84*0.4)), rec.OffPeakStaffing)

	// Capacity never drops below the single largest forecast period.
	assert.GreaterOrEqual(t, float64(rec.RecommendedCapacity), 70.0)
}

func TestOptimizePricing(t *testing.T) {
	optimizer := New(nil, nil)

	rec, err := optimizer.Optimize(&models.OptimizationRequest{
		ServiceType:    "restaurant",
		Forecast:       forecastPoints([]float64{60, 60, 60}),
		CurrentPricing: 100,
	})
	require.NoError(t, err)

	// cost = 100*(1-0.30) = 70; price = 70 / (1 + 1/0.5) = 70/3
	assert.InDelta(t, 70.0/3.0, rec.OptimalPrice, 1e-9)
	assert.InDelta(t, 60*(70.0/3.0-100), rec.RevenueImpact, 1e-9)
}

func TestOptimizePeakPeriods(t *testing.T) {
	optimizer := New(nil, nil)

	demands := []float64{10, 90, 20, 80, 30, 70, 40, 60, 50, 55, 45, 35}
	rec, err := optimizer.Optimize(&models.OptimizationRequest{
		ServiceType:    "spa",
		Forecast:       forecastPoints(demands),
		CurrentPricing: 80,
	})
	require.NoError(t, err)

	// Top 8 by demand, returned chronologically.
	require.Len(t, rec.PeakPeriods, 8)
	for i := 1; i < len(rec.PeakPeriods); i++ {
		assert.True(t, rec.PeakPeriods[i].After(rec.PeakPeriods[i-1]))
	}

	// The two weakest periods (10 and 20) are at indices 0 and 2;
	// index 11 (35) and index 4 (30) also miss the cut.
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	excluded := map[time.Time]bool{
		start:                            true,
		start.Add(2 * 24 * time.Hour):    true,
		start.Add(4 * 24 * time.Hour):    true,
		start.Add(11 * 24 * time.Hour):   true,
	}
	for _, ts := range rec.PeakPeriods {
		assert.False(t, excluded[ts], "period %v should not be a peak", ts)
	}
}

func TestOptimizeShortForecast(t *testing.T) {
	optimizer := New(nil, nil)

	rec, err := optimizer.Optimize(&models.OptimizationRequest{
		ServiceType:    "spa",
		Forecast:       forecastPoints([]float64{20, 30, 25}),
		CurrentPricing: 80,
	})
	require.NoError(t, err)
	assert.Len(t, rec.PeakPeriods, 3, "fewer forecast periods than the peak count")
}

func TestOptimizeInventoryRules(t *testing.T) {
	optimizer := New(nil, nil)

	highDemand := forecastPoints([]float64{80, 90, 100})
	lowDemand := forecastPoints([]float64{10, 20, 15})

	cases := []struct {
		serviceType string
		forecast    []models.ForecastPoint
		wantEmpty   bool
		wantBusy    bool
	}{
		{"restaurant", highDemand, false, true},
		{"restaurant", lowDemand, false, false},
		{"spa", highDemand, false, true},
		{"spa", lowDemand, false, false},
		{"conference", highDemand, true, false},
	}

	for _, tc := range cases {
		rec, err := optimizer.Optimize(&models.OptimizationRequest{
			ServiceType:    tc.serviceType,
			Forecast:       tc.forecast,
			CurrentPricing: 90,
		})
		require.NoError(t, err)
		if tc.wantEmpty {
			assert.Empty(t, rec.InventorySuggestions, tc.serviceType)
		} else {
			assert.NotEmpty(t, rec.InventorySuggestions, tc.serviceType)
			if tc.wantBusy {
				assert.Greater(t, len(rec.InventorySuggestions), 1, tc.serviceType)
			}
		}
	}
}

func TestOptimizeAllZeroForecast(t *testing.T) {
	optimizer := New(nil, nil)

	rec, err := optimizer.Optimize(&models.OptimizationRequest{
		ServiceType:    "restaurant",
		Forecast:       forecastPoints([]float64{0, 0, 0}),
		CurrentPricing: 100,
	})
	require.Error(t, err)
	assert.Nil(t, rec)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNumericalDegeneracy, appErr.Code)
}

func TestOptimizeValidation(t *testing.T) {
	optimizer := New(nil, nil)

	_, err := optimizer.Optimize(nil)
	assert.Error(t, err)

	_, err = optimizer.Optimize(&models.OptimizationRequest{
		ServiceType:    "spa",
		CurrentPricing: 80,
	})
	assert.Error(t, err)

	_, err = optimizer.Optimize(&models.OptimizationRequest{
		ServiceType:    "spa",
		Forecast:       forecastPoints([]float64{10, 20}),
		CurrentPricing: 0,
	})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNumericalDegeneracy, appErr.Code)
}
