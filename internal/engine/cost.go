package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CostTable maps normalized SKUs to their unit purchase cost. It is read-only after construction.
type CostTable struct {
	costs map[string]decimal.Decimal
}

// NewCostTable builds a cost table. Keys are normalized, so callers may pass raw SKUs.
// Negative costs are clamped to zero.
func NewCostTable(entries map[string]decimal.Decimal) *CostTable {
	costs := make(map[string]decimal.Decimal, len(entries))
	for sku, cost := range entries {
		if cost.IsNegative() {
			cost = decimal.Zero
		}
		costs[NormalizeSKU(sku)] = cost
	}
	return &CostTable{costs: costs}
}

// CostFor returns the unit cost of sku, or zero when the SKU is not in the table.
func (t *CostTable) CostFor(sku string) decimal.Decimal {
	if t == nil {
		return decimal.Zero
	}
	cost, ok := t.costs[NormalizeSKU(sku)]
	if !ok {
		return decimal.Zero
	}
	return cost
}

// Has reports whether sku has an explicit entry.
func (t *CostTable) Has(sku string) bool {
	if t == nil {
		return false
	}
	_, ok := t.costs[NormalizeSKU(sku)]
	return ok
}

// Len returns the number of entries.
func (t *CostTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.costs)
}

// Entries returns a copy of the table sorted by SKU.
func (t *CostTable) Entries() []CostEntry {
	if t == nil {
		return nil
	}
	out := make([]CostEntry, 0, len(t.costs))
	for sku, cost := range t.costs {
		out = append(out, CostEntry{SKU: sku, UnitCost: cost})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// CostEntry one row of the cost table
type CostEntry struct {
	SKU      string          `json:"sku"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// DefaultCosts returns the seeded product variants and their unit costs.
func DefaultCosts() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"HB-221 Purple":     decimal.NewFromInt(850),
		"MIRROR YELLOW":     decimal.NewFromInt(850),
		"mirror - blue":     decimal.NewFromInt(850),
		"HB-221 Red":        decimal.NewFromInt(850),
		"PS124 Rama":        decimal.NewFromInt(650),
		"PS124 Black":       decimal.NewFromInt(650),
		"PS124 Pink":        decimal.NewFromInt(650),
		"HB-103 YELLOW NEW": decimal.NewFromInt(550),
		"HB-103 INDIGO NEW": decimal.NewFromInt(550),
		"HB-103 PINK NEW":   decimal.NewFromInt(550),
		"HB-103 RAMA NEW":   decimal.NewFromInt(550),
		"HB-103 WINE NEW":   decimal.NewFromInt(550),
	}
}
