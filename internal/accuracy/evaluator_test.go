package accuracy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybase/demandcast/pkg/errors"
)

func TestEvaluatePerfectForecast(t *testing.T) {
	report, err := Evaluate([]float64{10, 20, 30}, []float64{10, 20, 30})
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.MAE)
	assert.Equal(t, 0.0, report.MSE)
	assert.Equal(t, 0.0, report.RMSE)
	assert.Equal(t, 0.0, report.MAPE)
	assert.Equal(t, 1.0, report.RSquared)
	assert.Equal(t, 3, report.SampleSize)
}

func TestEvaluateHandVerified(t *testing.T) {
	report, err := Evaluate([]float64{10, 20, 30}, []float64{12, 18, 33})
	require.NoError(t, err)

	// MAE = (2+2+3)/3
	assert.InDelta(t, 7.0/3.0, report.MAE, 1e-9)
	// MSE = (4+4+9)/3
	assert.InDelta(t, 17.0/3.0, report.MSE, 1e-9)
	assert.InDelta(t, report.RMSE*report.RMSE, report.MSE, 1e-9)
	// MAPE = (2/10 + 2/20 + 3/30)/3 * 100
	assert.InDelta(t, (0.2+0.1+0.1)/3*100, report.MAPE, 1e-9)
	// R² = 1 - 17/200
	assert.InDelta(t, 1-17.0/200.0, report.RSquared, 1e-9)
}

func TestEvaluateLengthMismatch(t *testing.T) {
	report, err := Evaluate([]float64{1, 2, 3}, []float64{1, 2})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.IsLengthMismatch(err))
}

func TestEvaluateZeroActualTerms(t *testing.T) {
	// Zero-actual periods contribute nothing to MAPE.
	report, err := Evaluate([]float64{0, 10}, []float64{5, 10})
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.MAPE)
	assert.InDelta(t, 2.5, report.MAE, 1e-9)
}

func TestEvaluateConstantActual(t *testing.T) {
	// Zero total variance: exact match gives R²=1, any error gives 0.
	exact, err := Evaluate([]float64{5, 5, 5}, []float64{5, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, exact.RSquared)

	off, err := Evaluate([]float64{5, 5, 5}, []float64{5, 6, 5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, off.RSquared)
}

func TestEvaluateEmptyInput(t *testing.T) {
	_, err := Evaluate(nil, nil)
	assert.Error(t, err)
}
