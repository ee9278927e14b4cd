package forecast

import "github.com/Toyz-Mini/abangbob-forecast/internal/domain"

// ClassifyCriticalItems flags every item whose current quantity is below its
// reorder point. Urgency is critical when the item is out of stock or below
// half the reorder point, warning otherwise; the reason label is derived
// from the same thresholds so the text stays testable.
func ClassifyCriticalItems(items []domain.StockItem, usage map[string]float64, cfg Config) []domain.CriticalItem {
	critical := make([]domain.CriticalItem, 0)
	for _, item := range items {
		reorderPoint := ReorderPoint(usage[item.ID], cfg)
		if item.CurrentQuantity >= reorderPoint {
			continue
		}

		urgency := domain.UrgencyWarning
		reason := domain.ReasonBelowReorderPoint
		switch {
		case item.CurrentQuantity == 0:
			urgency = domain.UrgencyCritical
			reason = domain.ReasonOutOfStock
		case item.CurrentQuantity < reorderPoint*0.5:
			urgency = domain.UrgencyCritical
			reason = domain.ReasonBelowSafetyMargin
		}

		critical = append(critical, domain.CriticalItem{
			ItemID:       item.ID,
			ItemName:     item.Name,
			CurrentStock: item.CurrentQuantity,
			MinStock:     item.MinQuantity,
			Urgency:      urgency,
			Reason:       reason,
		})
	}
	return critical
}
