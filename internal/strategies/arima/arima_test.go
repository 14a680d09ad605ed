package arima

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybase/demandcast/pkg/models"
)

func testSeries(values []float64) *models.DemandSeries {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	observations := make([]models.DemandObservation, len(values))
	for i, v := range values {
		observations[i] = models.DemandObservation{
			Timestamp:   start.Add(time.Duration(i) * 24 * time.Hour),
			Demand:      v,
			PropertyID:  "prop-1",
			ServiceType: "restaurant",
		}
	}
	return models.NewDemandSeries(observations)
}

func risingValues(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = 50 + 2*float64(i)
	}
	return values
}

func TestForecastHorizonAndOrdering(t *testing.T) {
	strategy := New(nil, nil)
	series := testSeries(risingValues(30))

	points, err := strategy.Forecast(context.Background(), series, 14)
	require.NoError(t, err)
	require.Len(t, points, 14)

	last := series.LastTimestamp()
	for i, p := range points {
		expected := last.Add(time.Duration(i+1) * 24 * time.Hour)
		assert.True(t, p.Timestamp.Equal(expected), "point %d timestamp", i)
	}
}

func TestForecastNonNegative(t *testing.T) {
	strategy := New(nil, nil)

	// Steeply falling series drives the projection below zero.
	values := make([]float64, 30)
	for i := range values {
		values[i] = 300 - 10*float64(i)
	}
	points, err := strategy.Forecast(context.Background(), testSeries(values), 30)
	require.NoError(t, err)

	for i, p := range points {
		assert.GreaterOrEqual(t, p.PredictedDemand, 0.0, "point %d demand", i)
		assert.GreaterOrEqual(t, p.Confidence.Lower, 0.0, "point %d lower bound", i)
		assert.GreaterOrEqual(t, p.Confidence.Upper, p.Confidence.Lower, "point %d bounds ordering", i)
	}
}

func TestForecastDeterministic(t *testing.T) {
	strategy := New(nil, nil)
	series := testSeries(risingValues(25))

	first, err := strategy.Forecast(context.Background(), series, 10)
	require.NoError(t, err)
	second, err := strategy.Forecast(context.Background(), series, 10)
	require.NoError(t, err)

	assert.True(t, strategy.Deterministic())
	assert.Equal(t, first, second)
}

func TestForecastRecursiveProjection(t *testing.T) {
	strategy := New(&Config{AR: 0.3, MA: 0.2, Integration: 0.1}, nil)
	series := testSeries([]float64{10, 12}) // last diff = 2

	points, err := strategy.Forecast(context.Background(), series, 2)
	require.NoError(t, err)

	// step1 = (0.3+0.1)*2 = 0.8, step2 = (0.3+0.1)*0.8 = 0.32
	assert.InDelta(t, 12.8, points[0].PredictedDemand, 1e-9)
	assert.InDelta(t, 13.12, points[1].PredictedDemand, 1e-9)
	assert.InDelta(t, 0.8, points[0].Trend, 1e-9)
}

func TestForecastInvalidInput(t *testing.T) {
	strategy := New(nil, nil)
	series := testSeries(risingValues(30))

	_, err := strategy.Forecast(context.Background(), series, 0)
	assert.Error(t, err)

	_, err = strategy.Forecast(context.Background(), testSeries([]float64{5}), 3)
	assert.Error(t, err)
}
