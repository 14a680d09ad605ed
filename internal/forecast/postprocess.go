package forecast

import (
	"math"

	"github.com/staybase/demandcast/pkg/models"
)

// applySeasonalPattern overlays a sinusoidal seasonal term derived from
// the detected pattern onto the raw strategy output. The multiplier is
// scaled by the pattern's confidence, so a weak or neutral pattern
// leaves the forecast untouched.
func applySeasonalPattern(points []models.ForecastPoint, pattern *models.SeasonalPattern) {
	if pattern == nil || pattern.Period <= 0 || pattern.Confidence == 0 {
		return
	}

	for i := range points {
		phase := 2 * math.Pi * float64(i+pattern.Phase) / float64(pattern.Period)
		factor := 1 + (pattern.Amplitude-1)*pattern.Confidence*math.Sin(phase)

		before := points[i].PredictedDemand
		after := math.Max(0, before*factor)

		points[i].PredictedDemand = after
		points[i].Seasonality += after - before
		points[i].Confidence.Lower = math.Max(0, points[i].Confidence.Lower+after-before)
		points[i].Confidence.Upper = math.Max(points[i].Confidence.Lower, points[i].Confidence.Upper+after-before)
	}
}

// applyExternalImpact adds the weighted exogenous-factor impact for each
// forecast period. Strategies never apply this internally, so the
// impact lands on the forecast exactly once. Periods past the supplied
// factor sets receive zero impact.
func applyExternalImpact(points []models.ForecastPoint, factors []models.ExogenousFactors) {
	for i := range points {
		if i >= len(factors) {
			return
		}
		impact := factors[i].Impact()
		if impact == 0 {
			continue
		}

		points[i].ExternalImpact = impact
		points[i].PredictedDemand = math.Max(0, points[i].PredictedDemand+impact)
		points[i].Confidence.Lower = math.Max(0, points[i].Confidence.Lower+impact)
		points[i].Confidence.Upper = math.Max(points[i].Confidence.Lower, points[i].Confidence.Upper+impact)
	}
}
