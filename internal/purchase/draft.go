// internal/purchase/draft.go
package purchase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// StatusDraft marks an order that has been generated but not yet sent to
	// the supplier.
	StatusDraft = "draft"

	// UnassignedSupplier groups suggestions whose stock item carries no
	// supplier so they still land in a draft somebody can triage.
	UnassignedSupplier = "General Supplier (Unassigned)"
)

// DraftLine is one item on a draft purchase order.
type DraftLine struct {
	StockID   string          `json:"stock_id"`
	StockName string          `json:"stock_name"`
	Quantity  int             `json:"quantity"`
	LineCost  decimal.Decimal `json:"line_cost"`
}

// Draft is a per-supplier purchase order assembled from reorder suggestions.
// Money fields are decimals so supplier totals never drift from the sum of
// their lines.
type Draft struct {
	Supplier string          `json:"supplier"`
	Status   string          `json:"status"`
	Lines    []DraftLine     `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// BuildDrafts groups reorder suggestions by supplier into draft purchase
// orders. Suggestions with a zero order quantity are skipped; drafts are
// returned sorted by supplier name.
func BuildDrafts(suggestions []domain.StockSuggestion, taxRate decimal.Decimal) []Draft {
	grouped := make(map[string][]DraftLine)
	for _, s := range suggestions {
		if s.SuggestedOrderQuantity <= 0 {
			continue
		}
		supplier := s.Supplier
		if supplier == "" {
			supplier = UnassignedSupplier
		}
		grouped[supplier] = append(grouped[supplier], DraftLine{
			StockID:   s.StockID,
			StockName: s.StockName,
			Quantity:  s.SuggestedOrderQuantity,
			LineCost:  decimal.NewFromFloat(s.EstimatedCost),
		})
	}

	drafts := make([]Draft, 0, len(grouped))
	for supplier, lines := range grouped {
		sort.Slice(lines, func(i, j int) bool { return lines[i].StockName < lines[j].StockName })

		subtotal := decimal.Zero
		for _, line := range lines {
			subtotal = subtotal.Add(line.LineCost)
		}
		tax := subtotal.Mul(taxRate).Round(2)

		drafts = append(drafts, Draft{
			Supplier: supplier,
			Status:   StatusDraft,
			Lines:    lines,
			Subtotal: subtotal,
			Tax:      tax,
			Total:    subtotal.Add(tax),
		})
	}

	sort.Slice(drafts, func(i, j int) bool { return drafts[i].Supplier < drafts[j].Supplier })
	return drafts
}

// SupplierMessage renders a draft as a plain-text order message ready to
// paste into a chat with the supplier.
func SupplierMessage(d Draft) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order request for %s\n\n", d.Supplier)
	for _, line := range d.Lines {
		fmt.Fprintf(&b, "- %s x%d\n", line.StockName, line.Quantity)
	}
	fmt.Fprintf(&b, "\nEstimated total: %s\n", d.Total.StringFixed(2))
	return b.String()
}
