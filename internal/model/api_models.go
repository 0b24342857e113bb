package model

import "github.com/shopspring/decimal"

// RequestForReport request for a reconciliation report
type RequestForReport struct {
	RequestId  string `json:"request_id"`
	OrdersFile string `json:"orders_file"`
	ClaimsFile string `json:"claims_file"`
}

// ResponseForReport response for report request
type ResponseForReport struct {
	RequestId      string           `json:"request_id"`
	Status         string           `json:"status"`
	ReportFilename string           `json:"report_filename"`
	GrandTotal     *decimal.Decimal `json:"grand_total,omitempty"`
	Error          string           `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// ReportResult is the body returned by the upload API.
type ReportResult struct {
	ReportFilename string           `json:"report_filename"`
	Orders         *OrderReport     `json:"orders,omitempty"`
	Claims         *ClaimReport     `json:"claims,omitempty"`
	OrderKPI       *OrderKPI        `json:"order_kpi,omitempty"`
	ClaimKPI       *ClaimKPI        `json:"claim_kpi,omitempty"`
	GrandTotal     *decimal.Decimal `json:"grand_total,omitempty"`
}
