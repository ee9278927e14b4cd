package forecast

import (
	"fmt"
	"sort"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
	"github.com/rs/zerolog/log"
)

// orderTimeLayouts are the timestamp formats the order feed is known to emit.
var orderTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseOrderTime(raw string, loc *time.Location) (time.Time, bool) {
	for _, layout := range orderTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AggregateSalesHistory groups completed orders into one SalesDataPoint per
// local calendar day, ordered by date. Zero and negative totals are summed
// as-is so financial anomalies stay visible downstream. Orders with
// unparseable timestamps are skipped into the diagnostics list; a single
// corrupt record never aborts the aggregation.
func AggregateSalesHistory(orders []domain.Order, loc *time.Location) ([]domain.SalesDataPoint, []domain.Diagnostic) {
	if loc == nil {
		loc = time.Local
	}

	type dayAggregate struct {
		revenue   float64
		orders    int
		itemOrder []string
		items     map[string]*domain.OrderItem
	}

	byDate := make(map[string]*dayAggregate)
	var diags []domain.Diagnostic

	for _, order := range orders {
		if order.Status != "" && order.Status != "completed" {
			continue
		}

		t, ok := parseOrderTime(order.CreatedAt, loc)
		if !ok {
			log.Warn().
				Str("order_id", order.ID).
				Str("created_at", order.CreatedAt).
				Msg("skipping order with malformed timestamp")
			diags = append(diags, domain.Diagnostic{
				Code:     domain.DiagMalformedRecord,
				RecordID: order.ID,
				Detail:   fmt.Sprintf("unparseable timestamp %q", order.CreatedAt),
			})
			continue
		}

		key := t.In(loc).Format("2006-01-02")
		agg := byDate[key]
		if agg == nil {
			agg = &dayAggregate{items: make(map[string]*domain.OrderItem)}
			byDate[key] = agg
		}

		agg.revenue += order.Total
		agg.orders++
		for _, item := range order.Items {
			if existing, seen := agg.items[item.ItemID]; seen {
				existing.Quantity += item.Quantity
				continue
			}
			copied := item
			agg.items[item.ItemID] = &copied
			agg.itemOrder = append(agg.itemOrder, item.ItemID)
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	points := make([]domain.SalesDataPoint, 0, len(dates))
	for _, date := range dates {
		agg := byDate[date]
		day, _ := time.ParseInLocation("2006-01-02", date, loc)

		lineItems := make([]domain.OrderItem, 0, len(agg.itemOrder))
		for _, id := range agg.itemOrder {
			lineItems = append(lineItems, *agg.items[id])
		}

		points = append(points, domain.SalesDataPoint{
			Date:       date,
			DayOfWeek:  int(day.Weekday()),
			Revenue:    agg.revenue,
			OrderCount: agg.orders,
			LineItems:  lineItems,
		})
	}

	return points, diags
}
