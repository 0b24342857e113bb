// Package engine reconciles seller order and claims exports against a purchase cost table.
package engine

import "strings"

// NormalizeSKU returns the lookup key for a raw SKU: surrounding whitespace trimmed, lower-cased.
func NormalizeSKU(sku string) string {
	return strings.ToLower(strings.TrimSpace(sku))
}
