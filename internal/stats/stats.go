// Package stats provides the numeric helpers shared by the forecast
// strategies: summary statistics, return and difference series, and
// seasonal index tables.
package stats

import (
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of values, or zero for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// Variance returns the sample variance of values. Fewer than two values
// yield zero.
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.Variance(values, nil)
}

// Returns computes simple period-over-period returns
// (v[i] - v[i-1]) / v[i-1]. A zero denominator contributes a zero return
// rather than letting Inf/NaN propagate.
func Returns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	returns := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			returns[i-1] = 0
			continue
		}
		returns[i-1] = (values[i] - prev) / prev
	}
	return returns
}

// FirstDifferences computes v[i] - v[i-1] for each consecutive pair.
func FirstDifferences(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	diffs := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		diffs[i-1] = values[i] - values[i-1]
	}
	return diffs
}

// SeasonalIndices partitions values by index modulo period and returns
// the ratio of each partition's average to the overall average. Empty
// partitions and a zero overall average yield a neutral index of 1.
func SeasonalIndices(values []float64, period int) []float64 {
	indices := make([]float64, period)
	for i := range indices {
		indices[i] = 1
	}
	if period <= 0 || len(values) == 0 {
		return indices
	}

	overall := Mean(values)
	if overall == 0 {
		return indices
	}

	sums := make([]float64, period)
	counts := make([]int, period)
	for i, v := range values {
		bucket := i % period
		sums[bucket] += v
		counts[bucket]++
	}

	for i := 0; i < period; i++ {
		if counts[i] == 0 {
			continue
		}
		indices[i] = (sums[i] / float64(counts[i])) / overall
	}
	return indices
}

// Max returns the largest value, or zero for an empty slice.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Clamp01 clamps v to the closed interval [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
