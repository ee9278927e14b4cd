package forecast

import (
	"fmt"
	"testing"

	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
	"github.com/stretchr/testify/assert"
)

// seriesWithWeeks builds a 14-point series: the first 7 days at priorRevenue,
// the last 7 at recentRevenue.
func seriesWithWeeks(priorRevenue, recentRevenue float64) []domain.SalesDataPoint {
	points := make([]domain.SalesDataPoint, 0, 14)
	for i := 0; i < 14; i++ {
		revenue := priorRevenue
		if i >= 7 {
			revenue = recentRevenue
		}
		points = append(points, domain.SalesDataPoint{
			Date:      fmt.Sprintf("2024-01-%02d", i+1),
			DayOfWeek: i % 7,
			Revenue:   revenue,
		})
	}
	return points
}

func TestEstimateTrend(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name      string
		points    []domain.SalesDataPoint
		wantTrend string
		wantPct   float64
	}{
		{"up at ten percent", seriesWithWeeks(100, 110), domain.TrendUp, 10},
		{"down at minus six percent", seriesWithWeeks(100, 94), domain.TrendDown, -6},
		{"stable within thresholds", seriesWithWeeks(100, 104), domain.TrendStable, 4},
		{"stable at exactly five percent", seriesWithWeeks(100, 105), domain.TrendStable, 5},
		{"zero prior mean yields zero", seriesWithWeeks(0, 50), domain.TrendStable, 0},
		{"empty series", nil, domain.TrendStable, 0},
		{"single point", seriesWithWeeks(100, 100)[:1], domain.TrendStable, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			trend, pct := EstimateTrend(tc.points, cfg)
			assert.Equal(t, tc.wantTrend, trend)
			assert.InDelta(t, tc.wantPct, pct, 1e-9)
		})
	}
}

func TestEstimateTrend_ShortSeriesUsesHalvedWindow(t *testing.T) {
	// 6 points: first 3 at 100, last 3 at 120 -> window of 3, +20%.
	points := seriesWithWeeks(100, 120)[4:10]
	for i := range points {
		if i < 3 {
			points[i].Revenue = 100
		} else {
			points[i].Revenue = 120
		}
	}

	trend, pct := EstimateTrend(points, DefaultConfig())
	assert.Equal(t, domain.TrendUp, trend)
	assert.InDelta(t, 20, pct, 1e-9)
}
