package forecast

import (
	"math"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
)

// Confidence scoring constants. Confidence grows with the number of
// same-weekday samples, shrinks when those samples are noisy, and is always
// clamped to [0,100]. With at least one sample it never drops below 20.
const (
	confidenceBase      = 40
	confidencePerSample = 10
	confidenceCap       = 95
	confidenceFloor     = 20
	cvPenaltyScale      = 30
)

// Factor labels attached to a forecast when applicable.
const (
	FactorWeekend        = "weekend"
	FactorTrendingUp     = "trending-up"
	FactorTrendingDown   = "trending-down"
	FactorLimitedHistory = "limited-history"
)

// limitedHistorySamples is the same-weekday sample count below which the
// limited-history factor is attached.
const limitedHistorySamples = 3

// ForecastDay projects revenue and order volume for the target date. The
// baseline is the historical average for the target's day of week, falling
// back to the overall mean when that weekday has no samples; the trend
// adjustment scales the baseline by (1 + trendPct/100), clamped so it can
// never turn revenue negative.
func ForecastDay(points []domain.SalesDataPoint, target time.Time, trendPct float64, cfg Config) domain.NextDayForecast {
	targetDay := int(target.Weekday())

	var dayRevenues, dayOrders []float64
	var totalRevenue, totalOrders float64
	for _, p := range points {
		totalRevenue += p.Revenue
		totalOrders += float64(p.OrderCount)
		if p.DayOfWeek == targetDay {
			dayRevenues = append(dayRevenues, p.Revenue)
			dayOrders = append(dayOrders, float64(p.OrderCount))
		}
	}

	sampleCount := len(dayRevenues)
	var baseRevenue, baseOrders float64
	if sampleCount > 0 {
		baseRevenue = mean(dayRevenues)
		baseOrders = mean(dayOrders)
	} else if len(points) > 0 {
		baseRevenue = totalRevenue / float64(len(points))
		baseOrders = totalOrders / float64(len(points))
	}

	factor := 1 + trendPct/100
	if factor < 0 {
		factor = 0
	}

	predictedRevenue := math.Round(baseRevenue*factor*100) / 100
	if predictedRevenue < 0 {
		predictedRevenue = 0
	}
	predictedOrders := int(math.Round(baseOrders * factor))
	if predictedOrders < 0 {
		predictedOrders = 0
	}

	confidence := confidenceBase + confidencePerSample*sampleCount
	if confidence > confidenceCap {
		confidence = confidenceCap
	}
	if sampleCount >= 2 {
		cv := coefficientOfVariation(dayRevenues)
		confidence -= int(math.Round(cv * cvPenaltyScale))
	}
	if sampleCount >= 1 && confidence < confidenceFloor {
		confidence = confidenceFloor
	}
	confidence = clampConfidence(confidence)

	factors := make([]string, 0, 3)
	if targetDay == int(time.Saturday) || targetDay == int(time.Sunday) {
		factors = append(factors, FactorWeekend)
	}
	if trendPct > cfg.TrendUpThreshold {
		factors = append(factors, FactorTrendingUp)
	} else if trendPct < cfg.TrendDownThreshold {
		factors = append(factors, FactorTrendingDown)
	}
	if sampleCount < limitedHistorySamples {
		factors = append(factors, FactorLimitedHistory)
	}

	return domain.NextDayForecast{
		Date:             target.Format("2006-01-02"),
		PredictedRevenue: predictedRevenue,
		PredictedOrders:  predictedOrders,
		Confidence:       confidence,
		Factors:          factors,
	}
}

// WeeklyForecast sums the per-day projections for the next 7 calendar dates.
// Each day is projected the same way as the next-day forecast, so the
// weekday mix shapes the total instead of a flat nextDay*7.
func WeeklyForecast(points []domain.SalesDataPoint, from time.Time, trendPct float64, cfg Config) float64 {
	var total float64
	for i := 1; i <= 7; i++ {
		f := ForecastDay(points, from.AddDate(0, 0, i), trendPct, cfg)
		total += f.PredictedRevenue
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if m <= 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq/float64(len(values))) / m
}

func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
