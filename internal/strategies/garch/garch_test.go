package garch

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

func TestBuildModelVarianceRecursion(t *testing.T) {
	config := &Config{Omega: 0.01, Alpha: 0.10, Beta: 0.85}
	model := BuildModel([]float64{100, 110, 99, 108.9}, config)

	require.Len(t, model.Returns, 3)
	assert.InDelta(t, 0.10, model.Returns[0], 1e-9)
	assert.InDelta(t, -0.10, model.Returns[1], 1e-9)
	assert.InDelta(t, 0.10, model.Returns[2], 1e-9)

	// h[0] = r[0]^2, h[1] = omega + alpha*r[0]^2 + beta*h[0]
	require.Len(t, model.Variance, 3)
	assert.InDelta(t, 0.01, model.Variance[0], 1e-9)
	assert.InDelta(t, 0.01+0.10*0.01+0.85*0.01, model.Variance[1], 1e-9)
	assert.InDelta(t, 0.01+0.10*0.01+0.85*model.Variance[1], model.Variance[2], 1e-9)
}

func TestBuildModelConstantSeries(t *testing.T) {
	model := BuildModel([]float64{50, 50, 50, 50}, nil)

	for _, r := range model.Returns {
		assert.Equal(t, 0.0, r)
	}
	// With zero returns the recursion reduces to h[i] = omega + beta*h[i-1].
	assert.Equal(t, 0.0, model.Variance[0])
	assert.InDelta(t, 0.01, model.Variance[1], 1e-9)
	assert.InDelta(t, 0.01+0.85*0.01, model.Variance[2], 1e-9)
}

func TestBuildModelZeroDenominator(t *testing.T) {
	model := BuildModel([]float64{0, 10, 20}, nil)

	// The zero starting value contributes a neutral zero return.
	assert.Equal(t, 0.0, model.Returns[0])
	assert.InDelta(t, 1.0, model.Returns[1], 1e-9)
}

func TestForecastStructuralProperties(t *testing.T) {
	strategy := New(&Config{Omega: 0.01, Alpha: 0.10, Beta: 0.85, Seed: 42}, nil)

	values := make([]float64, 30)
	for i := range values {
		values[i] = 80 + float64(i%5)*3
	}
	series := testSeries(values)

	points, err := strategy.Forecast(context.Background(), series, 15)
	require.NoError(t, err)
	require.Len(t, points, 15)

	for i, p := range points {
		assert.GreaterOrEqual(t, p.PredictedDemand, 0.0, "point %d", i)
		assert.GreaterOrEqual(t, p.Confidence.Lower, 0.0, "point %d", i)
		assert.GreaterOrEqual(t, p.Confidence.Upper, p.Confidence.Lower, "point %d", i)
		assert.Greater(t, p.Volatility, 0.0, "point %d", i)
		if i > 0 {
			assert.True(t, p.Timestamp.After(points[i-1].Timestamp))
		}
	}
}

func TestForecastSeededReproducibility(t *testing.T) {
	// The strategy is stochastic across fresh instances with clock
	// seeds, but a pinned seed reproduces the path.
	values := make([]float64, 25)
	for i := range values {
		values[i] = 100 + float64(i)
	}
	series := testSeries(values)

	first, err := New(&Config{Omega: 0.01, Alpha: 0.10, Beta: 0.85, Seed: 7}, nil).
		Forecast(context.Background(), series, 10)
	require.NoError(t, err)
	second, err := New(&Config{Omega: 0.01, Alpha: 0.10, Beta: 0.85, Seed: 7}, nil).
		Forecast(context.Background(), series, 10)
	require.NoError(t, err)

	assert.False(t, New(nil, nil).Deterministic())
	assert.Equal(t, first, second)
}
