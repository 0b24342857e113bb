package model

import "github.com/shopspring/decimal"

// OrderSummary per-SKU sales summary
type OrderSummary struct {
	SKU           string          `json:"sku"`
	StatusCounts  map[string]int  `json:"status_counts"`
	Revenue       decimal.Decimal `json:"revenue"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	PurchaseCost  decimal.Decimal `json:"purchase_cost"`
	TotalPurchase decimal.Decimal `json:"total_purchase"`
	ReturnPercent decimal.Decimal `json:"return_percent"`
}

// Count returns the number of rows with the given status.
func (s OrderSummary) Count(status string) int {
	return s.StatusCounts[status]
}

// OrderReport result of one order aggregation pass
type OrderReport struct {
	Summaries []OrderSummary `json:"summaries"`
	// Statuses lists every status column of the report, known statuses first.
	Statuses []string `json:"statuses"`
	// Dropped counts records discarded for a missing SKU or status.
	Dropped int `json:"dropped"`
}

// ClaimSummary per-SKU claims summary
type ClaimSummary struct {
	SKU            string          `json:"sku"`
	ApprovedQty    int             `json:"approved_qty"`
	RejectedQty    int             `json:"rejected_qty"`
	ClaimReceived  decimal.Decimal `json:"claim_received"`
	PurchaseCost   decimal.Decimal `json:"purchase_cost"`
	ApprovedProfit decimal.Decimal `json:"approved_profit"`
	RejectedLoss   decimal.Decimal `json:"rejected_loss"`
	NetClaim       decimal.Decimal `json:"net_claim"`
}

// ClaimReport result of one claims aggregation pass
type ClaimReport struct {
	Summaries []ClaimSummary `json:"summaries"`
	// Ignored counts claims whose ticket status is neither Approved nor Rejected.
	Ignored int `json:"ignored"`
	// Dropped counts claims without a SKU.
	Dropped int `json:"dropped"`
}

// OrderKPI headline figures of the sales stage
type OrderKPI struct {
	Delivered int             `json:"delivered"`
	Revenue   decimal.Decimal `json:"revenue"`
	Purchase  decimal.Decimal `json:"purchase"`
	Profit    decimal.Decimal `json:"profit"`
	Return    int             `json:"return"`
	RTO       int             `json:"rto"`
}

// ClaimKPI headline figures of the claims stage
type ClaimKPI struct {
	ClaimReceived decimal.Decimal `json:"claim_received"`
	RejectedLoss  decimal.Decimal `json:"rejected_loss"`
	NetClaim      decimal.Decimal `json:"net_claim"`
}
