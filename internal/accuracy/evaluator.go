// Package accuracy computes standard forecast-error metrics over
// paired actual/predicted sequences.
package accuracy

import (
	"math"

	"github.com/staybase/demandcast/pkg/errors"
	"github.com/staybase/demandcast/pkg/models"
)

// Evaluate compares actual demand against predictions of equal length
// and returns MAE, MSE, RMSE, MAPE and R².
//
// MAPE terms with a zero actual contribute zero rather than being
// skipped; this avoids division by zero but understates error for
// zero-demand periods. R² degenerates to 1 for a constant actual
// series matched exactly, and 0 otherwise.
func Evaluate(actual, predicted []float64) (*models.AccuracyReport, error) {
	if len(actual) != len(predicted) {
		return nil, errors.NewLengthMismatchError(len(actual), len(predicted))
	}
	if len(actual) == 0 {
		return nil, errors.NewValidationError(errors.CodeInvalidInput, "at least one observation required")
	}

	n := float64(len(actual))
	var sumAbs, sumSq, sumPct, sumActual float64
	for i := range actual {
		err := actual[i] - predicted[i]
		sumAbs += math.Abs(err)
		sumSq += err * err
		if actual[i] != 0 {
			sumPct += math.Abs(err / actual[i])
		}
		sumActual += actual[i]
	}

	mae := sumAbs / n
	mse := sumSq / n
	mape := sumPct / n * 100

	meanActual := sumActual / n
	var ssTot float64
	for _, a := range actual {
		ssTot += (a - meanActual) * (a - meanActual)
	}

	rSquared := 0.0
	if ssTot > 0 {
		rSquared = 1 - sumSq/ssTot
	} else if sumSq == 0 {
		rSquared = 1
	}

	return &models.AccuracyReport{
		MAE:        mae,
		MSE:        mse,
		RMSE:       math.Sqrt(mse),
		MAPE:       mape,
		RSquared:   rSquared,
		SampleSize: len(actual),
	}, nil
}
