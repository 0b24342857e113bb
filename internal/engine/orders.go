package engine

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Ambition09/meeshodashboard/internal/model"
)

var hundred = decimal.NewFromInt(100)

// OrderAggregator turns order rows into per-SKU sales summaries.
type OrderAggregator struct {
	costs *CostTable
	rules Ruleset
}

// NewOrderAggregator creates an aggregator. A nil cost table prices every SKU at zero.
func NewOrderAggregator(costs *CostTable, rules Ruleset) *OrderAggregator {
	return &OrderAggregator{costs: costs, rules: rules}
}

type orderGroup struct {
	summary  model.OrderSummary
	realized int64
}

// RowProfit is the profit of a single order row. Realized sales deduct the unit cost,
// anything else contributes its settlement as is.
func (a *OrderAggregator) RowProfit(status string, settlement, unitCost decimal.Decimal) decimal.Decimal {
	if a.rules.IsRealized(status) {
		return settlement.Sub(unitCost)
	}
	return settlement
}

// Aggregate groups records by normalized SKU. Summaries keep the order in which SKUs first appear.
func (a *OrderAggregator) Aggregate(records []model.OrderRecord) *model.OrderReport {
	report := &model.OrderReport{
		Summaries: []model.OrderSummary{},
		Statuses:  append([]string(nil), model.KnownOrderStatuses...),
	}
	seenStatus := make(map[string]bool, len(model.KnownOrderStatuses))
	for _, s := range model.KnownOrderStatuses {
		seenStatus[s] = true
	}

	groups := make(map[string]*orderGroup)
	var keys []string

	for _, rec := range records {
		sku := strings.TrimSpace(rec.SKU)
		status := strings.TrimSpace(rec.Status)
		if sku == "" || status == "" {
			report.Dropped++
			continue
		}

		key := NormalizeSKU(sku)
		g, ok := groups[key]
		if !ok {
			g = &orderGroup{summary: newOrderSummary(sku, a.costs.CostFor(key))}
			groups[key] = g
			keys = append(keys, key)
		}

		if !seenStatus[status] {
			seenStatus[status] = true
			report.Statuses = append(report.Statuses, status)
		}
		g.summary.StatusCounts[status]++

		if a.rules.IsRealized(status) {
			g.summary.Revenue = g.summary.Revenue.Add(rec.Settlement)
			g.realized++
		}
		g.summary.NetProfit = g.summary.NetProfit.Add(a.RowProfit(status, rec.Settlement, g.summary.PurchaseCost))
	}

	for _, key := range keys {
		g := groups[key]
		s := g.summary
		s.TotalPurchase = s.PurchaseCost.Mul(decimal.NewFromInt(g.realized))
		s.ReturnPercent = ReturnPercent(s.Count(model.StatusReturn), s.Count(model.StatusDelivered))
		report.Summaries = append(report.Summaries, s)
	}
	return report
}

func newOrderSummary(sku string, cost decimal.Decimal) model.OrderSummary {
	counts := make(map[string]int, len(model.KnownOrderStatuses))
	for _, s := range model.KnownOrderStatuses {
		counts[s] = 0
	}
	return model.OrderSummary{
		SKU:           sku,
		StatusCounts:  counts,
		Revenue:       decimal.Zero,
		NetProfit:     decimal.Zero,
		PurchaseCost:  cost,
		TotalPurchase: decimal.Zero,
		ReturnPercent: decimal.Zero,
	}
}

// ReturnPercent is returned / (returned + delivered) * 100 rounded to two places.
// A zero denominator is treated as one.
func ReturnPercent(returned, delivered int) decimal.Decimal {
	denom := int64(returned + delivered)
	if denom == 0 {
		denom = 1
	}
	return decimal.NewFromInt(int64(returned)).
		Div(decimal.NewFromInt(denom)).
		Mul(hundred).
		Round(2)
}
