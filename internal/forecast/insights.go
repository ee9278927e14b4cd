package forecast

import (
	"fmt"
	"math"

	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
)

// GenerateInsights produces plain-language insights for the dashboard. Each
// rule contributes at most one line, in a fixed order (trend, stock,
// forecast), so the output stays bounded and predictable.
func GenerateInsights(trend string, trendPct float64, critical []domain.CriticalItem, next *domain.NextDayForecast) []string {
	insights := make([]string, 0, 3)

	switch trend {
	case domain.TrendUp:
		insights = append(insights, fmt.Sprintf("Revenue trending up %.1f%% this week", trendPct))
	case domain.TrendDown:
		insights = append(insights, fmt.Sprintf("Revenue trending down %.1f%% this week", math.Abs(trendPct)))
	default:
		insights = append(insights, "Revenue stable compared to last week")
	}

	if len(critical) > 0 {
		urgent := 0
		for _, item := range critical {
			if item.Urgency == domain.UrgencyCritical {
				urgent++
			}
		}
		if urgent > 0 {
			insights = append(insights, fmt.Sprintf("%d items need urgent reorder", urgent))
		} else {
			insights = append(insights, fmt.Sprintf("%d items approaching reorder point", len(critical)))
		}
	}

	if next != nil {
		insights = append(insights, fmt.Sprintf(
			"Projected revenue tomorrow: %.2f (%d%% confidence)",
			next.PredictedRevenue, next.Confidence))
	}

	return insights
}
