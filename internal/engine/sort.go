package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Ambition09/meeshodashboard/internal/model"
)

// SortBy names a sort key for order summaries.
type SortBy string

const (
	SortNone      SortBy = ""
	SortSKU       SortBy = "sku"
	SortNetProfit SortBy = "net-profit"
	SortRevenue   SortBy = "revenue"
)

// ParseSortBy validates a sort key.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortNone:
		return SortNone, nil
	case SortSKU:
		return SortSKU, nil
	case SortNetProfit:
		return SortNetProfit, nil
	case SortRevenue:
		return SortRevenue, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q", s)
}

// SortOrderSummaries sorts in place. SKUs ascend, money columns descend. SortNone keeps input order.
func SortOrderSummaries(rows []model.OrderSummary, by SortBy) {
	switch by {
	case SortSKU:
		sort.SliceStable(rows, func(i, j int) bool { return NormalizeSKU(rows[i].SKU) < NormalizeSKU(rows[j].SKU) })
	case SortNetProfit:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].NetProfit.GreaterThan(rows[j].NetProfit) })
	case SortRevenue:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Revenue.GreaterThan(rows[j].Revenue) })
	}
}

// SortClaimSummaries sorts claims by SKU, or by net claim descending.
func SortClaimSummaries(rows []model.ClaimSummary, by SortBy) {
	switch by {
	case SortSKU:
		sort.SliceStable(rows, func(i, j int) bool { return NormalizeSKU(rows[i].SKU) < NormalizeSKU(rows[j].SKU) })
	case SortNetProfit, SortRevenue:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].NetClaim.GreaterThan(rows[j].NetClaim) })
	}
}
