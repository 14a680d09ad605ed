package forecast

import (
	"context"
	"sync"

	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/errors"
	"github.com/staybase/demandcast/pkg/models"
)

// ensembleMethods lists the constituent strategies in blend order.
var ensembleMethods = []string{
	constants.MethodARIMA,
	constants.MethodExponential,
	constants.MethodGARCH,
	constants.MethodNeural,
}

// runEnsemble executes the four strategies concurrently and blends the
// per-period outputs with the configured weights. Any strategy error
// aborts the whole run; there is no degrade-and-continue path.
func (e *Engine) runEnsemble(ctx context.Context, series *models.DemandSeries, horizon int) ([]models.ForecastPoint, error) {
	results := make(map[string][]models.ForecastPoint, len(ensembleMethods))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, method := range ensembleMethods {
		strategy, err := e.registry.Create(method)
		if err != nil {
			return nil, err
		}

		wg.Add(1)
		go func(method string) {
			defer wg.Done()
			points, err := strategy.Forecast(ctx, series, horizon)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = errors.WrapError(err, errors.ErrorTypeForecast, errors.CodeEnsembleAborted,
						"ensemble constituent "+method+" failed")
				}
				return
			}
			results[method] = points
		}(method)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return e.blend(results, horizon), nil
}

// blend combines the constituent forecasts. Predicted demand,
// volatility and both interval bounds are blended independently with
// the configured weights; seasonality passes through from the
// exponential strategy and trend from the ARIMA strategy.
func (e *Engine) blend(results map[string][]models.ForecastPoint, horizon int) []models.ForecastPoint {
	weights := map[string]float64{
		constants.MethodARIMA:       e.config.Weights.ARIMA,
		constants.MethodExponential: e.config.Weights.Exponential,
		constants.MethodGARCH:       e.config.Weights.GARCH,
		constants.MethodNeural:      e.config.Weights.Neural,
	}

	blended := make([]models.ForecastPoint, horizon)
	for i := 0; i < horizon; i++ {
		point := models.ForecastPoint{
			Timestamp:   results[constants.MethodARIMA][i].Timestamp,
			Seasonality: results[constants.MethodExponential][i].Seasonality,
			Trend:       results[constants.MethodARIMA][i].Trend,
		}
		for method, points := range results {
			w := weights[method]
			point.PredictedDemand += w * points[i].PredictedDemand
			point.Volatility += w * points[i].Volatility
			point.Confidence.Lower += w * points[i].Confidence.Lower
			point.Confidence.Upper += w * points[i].Confidence.Upper
		}
		blended[i] = point
	}
	return blended
}
