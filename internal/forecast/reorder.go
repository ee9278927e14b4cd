package forecast

import (
	"math"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
)

// consumptionOut is the movement type that counts toward usage.
const consumptionOut = "out"

// AverageDailyUsage sums each item's outbound movements over the trailing
// window and divides by the window length. Items with no outbound movement
// in the window are absent from the map.
func AverageDailyUsage(logs []domain.ConsumptionLog, now time.Time, windowDays int) map[string]float64 {
	if windowDays <= 0 {
		windowDays = DefaultConfig().ConsumptionWindowDays
	}
	cutoff := now.AddDate(0, 0, -windowDays)

	totals := make(map[string]float64)
	for _, entry := range logs {
		if entry.Type != consumptionOut {
			continue
		}
		if entry.CreatedAt.Before(cutoff) {
			continue
		}
		totals[entry.StockItemID] += math.Abs(entry.Quantity)
	}

	usage := make(map[string]float64, len(totals))
	for id, total := range totals {
		usage[id] = total / float64(windowDays)
	}
	return usage
}

// ReorderPoint is the stock level below which a replenishment order should
// be placed: lead-time demand plus the safety-stock buffer.
func ReorderPoint(averageDailyUsage float64, cfg Config) float64 {
	return averageDailyUsage * float64(cfg.LeadTimeDays) * (1 + cfg.SafetyStockFactor)
}

// SuggestReorders emits one suggestion per item whose current quantity sits
// below its reorder point. The order quantity covers CoverageDays of demand
// net of stock on hand, rounded up, never negative. Items with zero average
// daily usage carry no reorder signal and are excluded.
func SuggestReorders(items []domain.StockItem, usage map[string]float64, cfg Config) []domain.StockSuggestion {
	suggestions := make([]domain.StockSuggestion, 0)
	for _, item := range items {
		adu := usage[item.ID]
		if adu == 0 {
			continue
		}

		reorderPoint := ReorderPoint(adu, cfg)
		if item.CurrentQuantity >= reorderPoint {
			continue
		}

		rawQty := adu*float64(cfg.CoverageDays) - item.CurrentQuantity
		qty := int(math.Ceil(rawQty))
		if qty < 0 {
			qty = 0
		}

		suggestions = append(suggestions, domain.StockSuggestion{
			StockID:                item.ID,
			StockName:              item.Name,
			CurrentQuantity:        item.CurrentQuantity,
			AverageDailyUsage:      adu,
			SuggestedReorderPoint:  reorderPoint,
			SuggestedOrderQuantity: qty,
			EstimatedCost:          float64(qty) * item.UnitCost,
			Supplier:               item.Supplier,
		})
	}
	return suggestions
}
