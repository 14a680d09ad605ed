package seasonal

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyTimestamps(start time.Time, n int) []time.Time {
	timestamps := make([]time.Time, n)
	for i := 0; i < n; i++ {
		timestamps[i] = start.Add(time.Duration(i) * 24 * time.Hour)
	}
	return timestamps
}

func TestDetectWeeklyPattern(t *testing.T) {
	detector := NewDetector(logrus.New())

	// Four weeks with a pronounced weekend spike on day index 5.
	var values []float64
	for week := 0; week < 4; week++ {
		values = append(values, 10, 10, 10, 10, 10, 40, 12)
	}
	timestamps := dailyTimestamps(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), len(values))

	pattern := detector.Detect(values, timestamps)
	require.NotNil(t, pattern)

	assert.Equal(t, 7, pattern.Period)
	assert.Equal(t, 5, pattern.Phase)
	assert.Greater(t, pattern.Amplitude, 1.0)
	assert.GreaterOrEqual(t, pattern.Confidence, 0.0)
	assert.LessOrEqual(t, pattern.Confidence, 1.0)
}

func TestDetectConfidenceBounds(t *testing.T) {
	detector := NewDetector(nil)

	cases := [][]float64{
		{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
		{1, 100, 1, 100, 1, 100, 1, 100, 1, 100, 1, 100, 1, 100},
		{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	}
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, values := range cases {
		pattern := detector.Detect(values, dailyTimestamps(start, len(values)))
		require.NotNil(t, pattern)
		assert.GreaterOrEqual(t, pattern.Confidence, 0.0)
		assert.LessOrEqual(t, pattern.Confidence, 1.0)
	}
}

func TestDetectFlatSeriesFavorsWeekly(t *testing.T) {
	detector := NewDetector(nil)

	// A flat series has zero spread for both candidates; the weekly
	// pattern wins the tie.
	values := make([]float64, 28)
	for i := range values {
		values[i] = 25
	}
	pattern := detector.Detect(values, dailyTimestamps(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), len(values)))

	assert.Equal(t, 7, pattern.Period)
	assert.Equal(t, 0.0, pattern.Confidence)
}

func TestDetectZeroMeanSeries(t *testing.T) {
	detector := NewDetector(nil)

	values := make([]float64, 21)
	pattern := detector.Detect(values, dailyTimestamps(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), len(values)))

	require.NotNil(t, pattern)
	assert.Equal(t, 7, pattern.Period)
	assert.Equal(t, 1.0, pattern.Amplitude)
	assert.Equal(t, 0.0, pattern.Confidence)
}

func TestDetectMonthlyPattern(t *testing.T) {
	detector := NewDetector(nil)

	// Two months of daily data where August demand doubles July demand.
	// The monthly partition separates them cleanly; the weekly partition
	// mixes both months in every bucket, so the monthly signal is
	// stronger.
	var values []float64
	var timestamps []time.Time
	julStart := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 62; i++ {
		ts := julStart.Add(time.Duration(i) * 24 * time.Hour)
		timestamps = append(timestamps, ts)
		if ts.Month() == time.July {
			values = append(values, 10)
		} else {
			values = append(values, 20)
		}
	}

	pattern := detector.Detect(values, timestamps)
	require.NotNil(t, pattern)
	assert.Equal(t, 30, pattern.Period)
	assert.Equal(t, int(time.August)-1, pattern.Phase)
}
