package forecast

import "github.com/Toyz-Mini/abangbob-forecast/internal/domain"

// trendWindowDays is the comparison window for the trend estimate: the mean
// revenue of the most recent 7 days against the preceding 7 days.
const trendWindowDays = 7

// EstimateTrend classifies the short-term revenue direction. With fewer than
// 14 points the series is split in half instead. The classification
// thresholds come from cfg; the defaults (+5 / -5 percent) are the values
// the dashboard copy documents.
func EstimateTrend(points []domain.SalesDataPoint, cfg Config) (string, float64) {
	window := trendWindowDays
	if len(points) < 2*window {
		window = len(points) / 2
	}
	if window == 0 {
		return domain.TrendStable, 0
	}

	recent := points[len(points)-window:]
	prior := points[len(points)-2*window : len(points)-window]

	recentMean := meanRevenue(recent)
	priorMean := meanRevenue(prior)
	if priorMean == 0 {
		return domain.TrendStable, 0
	}

	pct := (recentMean - priorMean) / priorMean * 100

	switch {
	case pct > cfg.TrendUpThreshold:
		return domain.TrendUp, pct
	case pct < cfg.TrendDownThreshold:
		return domain.TrendDown, pct
	default:
		return domain.TrendStable, pct
	}
}

func meanRevenue(points []domain.SalesDataPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Revenue
	}
	return sum / float64(len(points))
}
