// Package forecast implements the demand-forecasting and inventory-reorder
// engine. Every function here is a pure computation over the input snapshot:
// no I/O, no internal state, safe to call from concurrent requests.
package forecast

import (
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
)

// Config carries the engine constants. The defaults are a contract with the
// dashboard: the reorder formulas and trend thresholds are documented in
// terms of these exact values.
type Config struct {
	ConsumptionWindowDays int     // trailing window for average daily usage
	LeadTimeDays          int     // days between ordering and receiving stock
	SafetyStockFactor     float64 // buffer on top of lead-time demand
	CoverageDays          int     // days of demand one order should cover
	TrendUpThreshold      float64 // trend percentage above which trend = up
	TrendDownThreshold    float64 // trend percentage below which trend = down
}

// DefaultConfig returns the contract constants.
func DefaultConfig() Config {
	return Config{
		ConsumptionWindowDays: 30,
		LeadTimeDays:          3,
		SafetyStockFactor:     0.2,
		CoverageDays:          7,
		TrendUpThreshold:      5,
		TrendDownThreshold:    -5,
	}
}

// minSeriesPoints is the smallest sales series the forecaster will project
// from. Below this the summary omits the forecast facet entirely.
const minSeriesPoints = 3

// Input is the read-only snapshot one engine invocation consumes. Callers
// must not mutate it while Summarize is running.
type Input struct {
	Orders      []domain.Order
	Inventory   []domain.StockItem
	Consumption []domain.ConsumptionLog

	// Now anchors "tomorrow" and the consumption window. Zero means wall
	// clock; callers wanting reproducible output should pin it.
	Now time.Time

	// Location resolves order timestamps to business days. Nil means the
	// process-local zone.
	Location *time.Location
}

// Engine assembles the forecast summary from the individual stages.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine, filling unset config fields from the defaults.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.ConsumptionWindowDays <= 0 {
		cfg.ConsumptionWindowDays = def.ConsumptionWindowDays
	}
	if cfg.LeadTimeDays <= 0 {
		cfg.LeadTimeDays = def.LeadTimeDays
	}
	if cfg.SafetyStockFactor <= 0 {
		cfg.SafetyStockFactor = def.SafetyStockFactor
	}
	if cfg.CoverageDays <= 0 {
		cfg.CoverageDays = def.CoverageDays
	}
	if cfg.TrendUpThreshold == 0 {
		cfg.TrendUpThreshold = def.TrendUpThreshold
	}
	if cfg.TrendDownThreshold == 0 {
		cfg.TrendDownThreshold = def.TrendDownThreshold
	}
	return &Engine{cfg: cfg}
}

// Config returns the effective engine constants.
func (e *Engine) Config() Config {
	return e.cfg
}

// Summarize runs the full pipeline: aggregate sales, estimate the trend,
// project demand, and derive reorder suggestions and critical items. The
// forecast facet and the reorder facet are independently available: a sales
// series shorter than three points omits the forecast but still yields
// reorder suggestions.
func (e *Engine) Summarize(in Input) domain.ForecastResult {
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.In(loc)

	points, diags := AggregateSalesHistory(in.Orders, loc)
	trend, trendPct := EstimateTrend(points, e.cfg)

	usage := AverageDailyUsage(in.Consumption, now, e.cfg.ConsumptionWindowDays)
	suggestions := SuggestReorders(in.Inventory, usage, e.cfg)
	critical := ClassifyCriticalItems(in.Inventory, usage, e.cfg)

	var next *domain.NextDayForecast
	var weekly float64
	if len(points) >= minSeriesPoints {
		f := ForecastDay(points, now.AddDate(0, 0, 1), trendPct, e.cfg)
		next = &f
		weekly = WeeklyForecast(points, now, trendPct, e.cfg)
	}

	return domain.ForecastResult{
		Summary: domain.ForecastSummary{
			NextDayForecast: next,
			WeeklyForecast:  weekly,
			Trend:           trend,
			TrendPercentage: trendPct,
			CriticalItems:   critical,
			Insights:        GenerateInsights(trend, trendPct, critical, next),
		},
		Suggestions: suggestions,
		Diagnostics: diags,
	}
}
