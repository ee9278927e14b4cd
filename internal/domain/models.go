// internal/domain/models.go
package domain

import "time"

// Order represents a completed order from the order-management subsystem.
// CreatedAt is kept as the raw feed timestamp so corrupt values can be
// reported instead of silently failing upstream.
type Order struct {
	ID        string      `json:"id" db:"id"`
	Status    string      `json:"status" db:"status"`
	CreatedAt string      `json:"created_at" db:"created_at"`
	Total     float64     `json:"total" db:"total"`
	Items     []OrderItem `json:"items"`
}

// OrderItem is a single line item within an order.
type OrderItem struct {
	ItemID   string  `json:"item_id" db:"item_id"`
	Name     string  `json:"name" db:"name"`
	Quantity float64 `json:"quantity" db:"quantity"`
}

// StockItem is a read-only view of one inventory item.
type StockItem struct {
	ID              string  `json:"id" db:"id"`
	Name            string  `json:"name" db:"name"`
	CurrentQuantity float64 `json:"current_quantity" db:"current_quantity"`
	MinQuantity     float64 `json:"min_quantity" db:"min_quantity"`
	UnitCost        float64 `json:"unit_cost" db:"unit_cost"`
	Supplier        string  `json:"supplier,omitempty" db:"supplier_name"`
}

// ConsumptionLog is one stock movement record. Type is "in" or "out";
// only "out" movements count toward usage.
type ConsumptionLog struct {
	StockItemID string    `json:"stock_item_id" db:"stock_item_id"`
	Type        string    `json:"type" db:"type"`
	Quantity    float64   `json:"quantity" db:"quantity"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// SalesDataPoint is the per-day aggregate of completed orders. Days with no
// completed order are simply absent from the series.
type SalesDataPoint struct {
	Date       string      `json:"date"`
	DayOfWeek  int         `json:"day_of_week"`
	Revenue    float64     `json:"revenue"`
	OrderCount int         `json:"order_count"`
	LineItems  []OrderItem `json:"line_items"`
}

// NextDayForecast is the projection for the next calendar day.
type NextDayForecast struct {
	Date             string   `json:"date"`
	PredictedRevenue float64  `json:"predicted_revenue"`
	PredictedOrders  int      `json:"predicted_orders"`
	Confidence       int      `json:"confidence"`
	Factors          []string `json:"factors"`
}

// Trend direction labels.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Urgency tiers for critical items.
const (
	UrgencyCritical = "critical"
	UrgencyWarning  = "warning"
)

// Reasons for critical items, derived from the same thresholds as the
// urgency tier so the text stays testable.
const (
	ReasonOutOfStock        = "out-of-stock"
	ReasonBelowSafetyMargin = "below-safety-margin"
	ReasonBelowReorderPoint = "below-reorder-point"
)

// CriticalItem flags a stock item below its reorder point.
type CriticalItem struct {
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	CurrentStock float64 `json:"current_stock"`
	MinStock     float64 `json:"min_stock"`
	Urgency      string  `json:"urgency"`
	Reason       string  `json:"reason"`
}

// StockSuggestion is a per-item reorder recommendation.
type StockSuggestion struct {
	StockID                string  `json:"stock_id"`
	StockName              string  `json:"stock_name"`
	CurrentQuantity        float64 `json:"current_quantity"`
	AverageDailyUsage      float64 `json:"average_daily_usage"`
	SuggestedReorderPoint  float64 `json:"suggested_reorder_point"`
	SuggestedOrderQuantity int     `json:"suggested_order_quantity"`
	EstimatedCost          float64 `json:"estimated_cost"`
	Supplier               string  `json:"supplier,omitempty"`
}

// ForecastSummary is the dashboard-facing composite result. NextDayForecast
// is nil when the sales series is too short to forecast; the reorder facet
// is still populated in that case.
type ForecastSummary struct {
	NextDayForecast *NextDayForecast `json:"next_day_forecast,omitempty"`
	WeeklyForecast  float64          `json:"weekly_forecast"`
	Trend           string           `json:"trend"`
	TrendPercentage float64          `json:"trend_percentage"`
	CriticalItems   []CriticalItem   `json:"critical_items"`
	Insights        []string         `json:"insights"`
}

// Diagnostic reports a skipped input record. Diagnostics ride alongside the
// result; they are never fatal.
type Diagnostic struct {
	Code     string `json:"code"`
	RecordID string `json:"record_id,omitempty"`
	Detail   string `json:"detail"`
}

// Diagnostic codes.
const (
	DiagMalformedRecord = "malformed-record"
)

// ForecastResult bundles everything one engine invocation produces.
type ForecastResult struct {
	Summary     ForecastSummary   `json:"summary"`
	Suggestions []StockSuggestion `json:"suggestions"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty"`
}
