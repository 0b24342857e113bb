package model

import "github.com/shopspring/decimal"

// Column headers of the seller exports.
const (
	ColumnSupplierSKU     = "Supplier SKU"
	ColumnLiveOrderStatus = "Live Order Status"
	ColumnSettlement      = "Final Settlement Amount"

	ColumnClaimSKU     = "SKU"
	ColumnTicketStatus = "Ticket Status"
	ColumnLastUpdate   = "Last Update"
)

// Order statuses reported by the carrier.
const (
	StatusDelivered = "Delivered"
	StatusShipped   = "Shipped"
	StatusReturn    = "Return"
	StatusRTO       = "RTO"
)

// KnownOrderStatuses are always present in the status counts, even when zero.
var KnownOrderStatuses = []string{StatusDelivered, StatusShipped, StatusReturn, StatusRTO}

// Claim ticket statuses.
const (
	TicketApproved = "Approved"
	TicketRejected = "Rejected"
)

// OrderRecord one row of the orders export
type OrderRecord struct {
	SKU        string          `json:"sku"`
	Status     string          `json:"status"`
	Settlement decimal.Decimal `json:"settlement"`
}

// ClaimRecord one row of the claims export
type ClaimRecord struct {
	SKU          string `json:"sku"`
	TicketStatus string `json:"ticket_status"`
	UpdateText   string `json:"update_text"`
}
