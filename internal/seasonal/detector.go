// Package seasonal detects weekly and monthly periodicity in demand
// series and reports the stronger signal.
package seasonal

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/staybase/demandcast/internal/stats"
	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/models"
)

// Detector analyzes a historical series for periodic structure.
type Detector struct {
	logger *logrus.Logger
}

// NewDetector creates a seasonal pattern detector.
func NewDetector(logger *logrus.Logger) *Detector {
	if logger == nil {
		logger = logrus.New()
	}
	return &Detector{logger: logger}
}

// Detect computes weekly and monthly candidate patterns and returns
// whichever has the higher confidence; ties favor weekly. A zero-mean
// series yields a neutral weekly pattern with confidence zero.
func (d *Detector) Detect(values []float64, timestamps []time.Time) *models.SeasonalPattern {
	overall := stats.Mean(values)
	if overall == 0 {
		return &models.SeasonalPattern{
			Period:     constants.WeeklySeasonalPeriod,
			Amplitude:  1,
			Confidence: 0,
		}
	}

	weekly := patternFromAmplitudes(constants.WeeklySeasonalPeriod, weeklyAmplitudes(values, overall))
	monthly := patternFromAmplitudes(constants.MonthlySeasonalPeriod, monthlyAmplitudes(values, timestamps, overall))

	pattern := weekly
	if monthly.Confidence > weekly.Confidence {
		pattern = monthly
	}

	d.logger.WithFields(logrus.Fields{
		"period":     pattern.Period,
		"amplitude":  pattern.Amplitude,
		"phase":      pattern.Phase,
		"confidence": pattern.Confidence,
	}).Debug("Detected seasonal pattern")

	return pattern
}

// weeklyAmplitudes partitions values by index modulo 7 and returns the
// per-day-of-week amplitude ratios.
func weeklyAmplitudes(values []float64, overall float64) []float64 {
	sums := make([]float64, constants.WeeklySeasonalPeriod)
	counts := make([]int, constants.WeeklySeasonalPeriod)
	for i, v := range values {
		bucket := i % constants.WeeklySeasonalPeriod
		sums[bucket] += v
		counts[bucket]++
	}
	return amplitudeRatios(sums, counts, overall)
}

// monthlyAmplitudes partitions values by the calendar month of the
// corresponding timestamp.
func monthlyAmplitudes(values []float64, timestamps []time.Time, overall float64) []float64 {
	sums := make([]float64, 12)
	counts := make([]int, 12)
	for i, v := range values {
		if i >= len(timestamps) {
			break
		}
		bucket := int(timestamps[i].Month()) - 1
		sums[bucket] += v
		counts[bucket]++
	}
	return amplitudeRatios(sums, counts, overall)
}

// amplitudeRatios divides each partition average by the overall average.
// Empty partitions contribute a neutral amplitude of 1.
func amplitudeRatios(sums []float64, counts []int, overall float64) []float64 {
	ratios := make([]float64, len(sums))
	for i := range sums {
		if counts[i] == 0 {
			ratios[i] = 1
			continue
		}
		ratios[i] = (sums[i] / float64(counts[i])) / overall
	}
	return ratios
}

// patternFromAmplitudes derives amplitude, phase and confidence from a
// set of amplitude ratios. Confidence is (max-min)/max clamped to [0,1].
func patternFromAmplitudes(period int, ratios []float64) *models.SeasonalPattern {
	maxRatio := ratios[0]
	minRatio := ratios[0]
	phase := 0
	for i, r := range ratios {
		if r > maxRatio {
			maxRatio = r
			phase = i
		}
		if r < minRatio {
			minRatio = r
		}
	}

	confidence := 0.0
	if maxRatio > 0 {
		confidence = stats.Clamp01((maxRatio - minRatio) / maxRatio)
	}

	return &models.SeasonalPattern{
		Period:     period,
		Amplitude:  maxRatio,
		Phase:      phase,
		Confidence: confidence,
	}
}
