package engine

import (
	"github.com/shopspring/decimal"

	"github.com/Ambition09/meeshodashboard/internal/model"
)

// GrandTotal is the sum of order net profit plus the sum of net claims.
func GrandTotal(orders []model.OrderSummary, claims []model.ClaimSummary) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.NetProfit)
	}
	for _, c := range claims {
		total = total.Add(c.NetClaim)
	}
	return total
}

// Reconcile computes the grand total only when both aggregations ran.
func Reconcile(orders *model.OrderReport, claims *model.ClaimReport) (decimal.Decimal, bool) {
	if orders == nil || claims == nil {
		return decimal.Zero, false
	}
	return GrandTotal(orders.Summaries, claims.Summaries), true
}

// SummarizeOrders computes the sales KPIs.
func SummarizeOrders(report *model.OrderReport) model.OrderKPI {
	kpi := model.OrderKPI{Revenue: decimal.Zero, Purchase: decimal.Zero, Profit: decimal.Zero}
	if report == nil {
		return kpi
	}
	for _, s := range report.Summaries {
		kpi.Delivered += s.Count(model.StatusDelivered)
		kpi.Return += s.Count(model.StatusReturn)
		kpi.RTO += s.Count(model.StatusRTO)
		kpi.Revenue = kpi.Revenue.Add(s.Revenue)
		kpi.Purchase = kpi.Purchase.Add(s.TotalPurchase)
		kpi.Profit = kpi.Profit.Add(s.NetProfit)
	}
	return kpi
}

// SummarizeClaims computes the claims KPIs.
func SummarizeClaims(report *model.ClaimReport) model.ClaimKPI {
	kpi := model.ClaimKPI{ClaimReceived: decimal.Zero, RejectedLoss: decimal.Zero, NetClaim: decimal.Zero}
	if report == nil {
		return kpi
	}
	for _, s := range report.Summaries {
		kpi.ClaimReceived = kpi.ClaimReceived.Add(s.ClaimReceived)
		kpi.RejectedLoss = kpi.RejectedLoss.Add(s.RejectedLoss)
		kpi.NetClaim = kpi.NetClaim.Add(s.NetClaim)
	}
	return kpi
}
