package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ambition09/meeshodashboard/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixtureCosts() *CostTable {
	return NewCostTable(map[string]decimal.Decimal{"A": decimal.NewFromInt(850)})
}

func TestNormalizeSKU(t *testing.T) {
	cases := map[string]string{
		"HB-221 Purple":     "hb-221 purple",
		"  hb-221 purple ":  "hb-221 purple",
		"":                  "",
		"\tMIRROR YELLOW\n": "mirror yellow",
	}
	for in, want := range cases {
		got := NormalizeSKU(in)
		assert.Equal(t, want, got, "input %q", in)
		assert.Equal(t, got, NormalizeSKU(got), "normalize must be idempotent for %q", in)
	}
}

func TestCostTable_CostFor(t *testing.T) {
	costs := NewCostTable(DefaultCosts())

	for _, sku := range []string{"hb-221 purple", "HB-221 Purple ", "HB-221 PURPLE"} {
		assert.True(t, decimal.NewFromInt(850).Equal(costs.CostFor(sku)), "sku %q", sku)
	}
	assert.True(t, decimal.NewFromInt(550).Equal(costs.CostFor("hb-103 wine new")))
	assert.True(t, costs.CostFor("unknown sku").IsZero())
	assert.True(t, costs.CostFor("").IsZero())
	assert.Equal(t, 12, costs.Len())
	assert.True(t, costs.Has(" Mirror - Blue"))
}

func TestCostTable_NilAndNegative(t *testing.T) {
	var nilTable *CostTable
	assert.True(t, nilTable.CostFor("A").IsZero())
	assert.Equal(t, 0, nilTable.Len())

	costs := NewCostTable(map[string]decimal.Decimal{"X": decimal.NewFromInt(-5)})
	assert.True(t, costs.CostFor("x").IsZero())

	entries := NewCostTable(map[string]decimal.Decimal{"b": decimal.NewFromInt(2), "A": decimal.NewFromInt(1)}).Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].SKU)
}

func TestAmountExtractor_Extract(t *testing.T) {
	e := MustAmountExtractor(DefaultAmountPattern())

	assert.True(t, dec("150").Equal(e.Extract("Rs. 100 and Rs50")))
	assert.True(t, e.Extract("").IsZero())
	assert.True(t, e.Extract("no amount here").IsZero())
	assert.True(t, dec("1250.75").Equal(e.Extract("Claim revised from Rs 1000.25 to Rs.250.50")))
	// prefix is case-sensitive unless configured otherwise
	assert.True(t, e.Extract("rs 100 RS 200").IsZero())
}

func TestAmountExtractor_Configurable(t *testing.T) {
	e, err := NewAmountExtractor(AmountPattern{Prefix: "Rs", CaseInsensitive: true})
	require.NoError(t, err)
	assert.True(t, dec("300").Equal(e.Extract("rs 100 RS 200")))

	e, err = NewAmountExtractor(AmountPattern{Prefix: "INR", DecimalSeparator: ","})
	require.NoError(t, err)
	assert.True(t, dec("12.5").Equal(e.Extract("paid INR 12,5")))

	_, err = NewAmountExtractor(AmountPattern{DecimalSeparator: "1"})
	assert.Error(t, err)
}

func TestOrderAggregator_Aggregate(t *testing.T) {
	agg := NewOrderAggregator(fixtureCosts(), BaselineRuleset())
	report := agg.Aggregate([]model.OrderRecord{
		{SKU: "A", Status: model.StatusDelivered, Settlement: decimal.NewFromInt(500)},
		{SKU: "A", Status: model.StatusReturn, Settlement: decimal.Zero},
		{SKU: "A", Status: model.StatusDelivered, Settlement: decimal.NewFromInt(600)},
	})

	require.Len(t, report.Summaries, 1)
	s := report.Summaries[0]
	assert.Equal(t, "A", s.SKU)
	assert.Equal(t, 2, s.Count(model.StatusDelivered))
	assert.Equal(t, 1, s.Count(model.StatusReturn))
	assert.Equal(t, 0, s.Count(model.StatusRTO))
	assert.Equal(t, 0, s.Count(model.StatusShipped))
	assert.True(t, dec("1100").Equal(s.Revenue), s.Revenue.String())
	assert.True(t, dec("-600").Equal(s.NetProfit), s.NetProfit.String())
	assert.True(t, dec("850").Equal(s.PurchaseCost))
	assert.True(t, dec("1700").Equal(s.TotalPurchase), s.TotalPurchase.String())
	assert.True(t, dec("33.33").Equal(s.ReturnPercent), s.ReturnPercent.String())
	assert.Equal(t, 0, report.Dropped)
}

func TestOrderAggregator_DropsIncompleteRows(t *testing.T) {
	agg := NewOrderAggregator(fixtureCosts(), BaselineRuleset())
	report := agg.Aggregate([]model.OrderRecord{
		{SKU: "", Status: model.StatusDelivered, Settlement: decimal.NewFromInt(500)},
		{SKU: "A", Status: "  ", Settlement: decimal.NewFromInt(500)},
		{SKU: "B", Status: model.StatusRTO, Settlement: decimal.NewFromInt(-80)},
	})

	assert.Equal(t, 2, report.Dropped)
	require.Len(t, report.Summaries, 1)
	s := report.Summaries[0]
	assert.Equal(t, "B", s.SKU)
	// unrealized rows keep their settlement and are not charged the unit cost
	assert.True(t, dec("-80").Equal(s.NetProfit))
	assert.True(t, s.Revenue.IsZero())
	assert.True(t, s.TotalPurchase.IsZero())
	assert.True(t, s.ReturnPercent.IsZero(), "zero delivered and zero returned must not divide by zero")
}

func TestOrderAggregator_ExtendedRuleset(t *testing.T) {
	records := []model.OrderRecord{
		{SKU: "A", Status: model.StatusShipped, Settlement: decimal.NewFromInt(900)},
		{SKU: "a ", Status: model.StatusDelivered, Settlement: decimal.NewFromInt(900)},
	}

	baseline := NewOrderAggregator(fixtureCosts(), BaselineRuleset()).Aggregate(records)
	extended := NewOrderAggregator(fixtureCosts(), ExtendedRuleset()).Aggregate(records)

	require.Len(t, baseline.Summaries, 1, "SKU casing and spacing must not split groups")
	require.Len(t, extended.Summaries, 1)

	assert.True(t, dec("950").Equal(baseline.Summaries[0].NetProfit))
	assert.True(t, dec("900").Equal(baseline.Summaries[0].Revenue))
	assert.True(t, dec("850").Equal(baseline.Summaries[0].TotalPurchase))

	assert.True(t, dec("100").Equal(extended.Summaries[0].NetProfit))
	assert.True(t, dec("1800").Equal(extended.Summaries[0].Revenue))
	assert.True(t, dec("1700").Equal(extended.Summaries[0].TotalPurchase))
}

func TestOrderAggregator_ExtraStatuses(t *testing.T) {
	report := NewOrderAggregator(nil, BaselineRuleset()).Aggregate([]model.OrderRecord{
		{SKU: "A", Status: "Cancelled", Settlement: decimal.Zero},
		{SKU: "B", Status: "Lost", Settlement: decimal.NewFromInt(10)},
	})
	assert.Equal(t, []string{"Delivered", "Shipped", "Return", "RTO", "Cancelled", "Lost"}, report.Statuses)
	require.Len(t, report.Summaries, 2)
	assert.Equal(t, "A", report.Summaries[0].SKU)
	assert.Equal(t, 1, report.Summaries[0].Count("Cancelled"))
	assert.True(t, report.Summaries[1].PurchaseCost.IsZero())
}

func TestReturnPercent(t *testing.T) {
	assert.True(t, ReturnPercent(0, 0).IsZero())
	assert.True(t, dec("100").Equal(ReturnPercent(3, 0)))
	assert.True(t, dec("25").Equal(ReturnPercent(1, 3)))
}

func TestClaimsAggregator_Aggregate(t *testing.T) {
	agg := NewClaimsAggregator(fixtureCosts(), nil)
	report := agg.Aggregate([]model.ClaimRecord{
		{SKU: "A", TicketStatus: model.TicketApproved, UpdateText: "Rs 900"},
		{SKU: "A", TicketStatus: model.TicketRejected, UpdateText: ""},
	})

	require.Len(t, report.Summaries, 1)
	s := report.Summaries[0]
	assert.Equal(t, 1, s.ApprovedQty)
	assert.Equal(t, 1, s.RejectedQty)
	assert.True(t, dec("900").Equal(s.ClaimReceived))
	assert.True(t, dec("850").Equal(s.PurchaseCost))
	assert.True(t, dec("50").Equal(s.ApprovedProfit))
	assert.True(t, dec("850").Equal(s.RejectedLoss))
	assert.True(t, dec("-800").Equal(s.NetClaim))
}

func TestClaimsAggregator_OuterJoinAndIgnored(t *testing.T) {
	agg := NewClaimsAggregator(fixtureCosts(), nil)
	report := agg.Aggregate([]model.ClaimRecord{
		{SKU: "A", TicketStatus: model.TicketRejected},
		{SKU: "B", TicketStatus: model.TicketApproved, UpdateText: "Rs. 120"},
		{SKU: "B", TicketStatus: "Pending", UpdateText: "Rs 5000"},
		{SKU: " ", TicketStatus: model.TicketApproved, UpdateText: "Rs 1"},
	})

	assert.Equal(t, 1, report.Ignored)
	assert.Equal(t, 1, report.Dropped)
	require.Len(t, report.Summaries, 2)

	rejectedOnly := report.Summaries[0]
	assert.Equal(t, "A", rejectedOnly.SKU)
	assert.Equal(t, 0, rejectedOnly.ApprovedQty)
	assert.True(t, rejectedOnly.ClaimReceived.IsZero())
	assert.True(t, dec("-850").Equal(rejectedOnly.NetClaim))

	approvedOnly := report.Summaries[1]
	assert.Equal(t, 0, approvedOnly.RejectedQty)
	assert.True(t, dec("120").Equal(approvedOnly.ClaimReceived))
	assert.True(t, dec("120").Equal(approvedOnly.NetClaim), "unmapped SKU has zero cost")
}

func TestGrandTotal(t *testing.T) {
	costs := fixtureCosts()
	orders := NewOrderAggregator(costs, BaselineRuleset()).Aggregate([]model.OrderRecord{
		{SKU: "A", Status: model.StatusDelivered, Settlement: decimal.NewFromInt(500)},
		{SKU: "A", Status: model.StatusReturn, Settlement: decimal.Zero},
		{SKU: "A", Status: model.StatusDelivered, Settlement: decimal.NewFromInt(600)},
	})
	claims := NewClaimsAggregator(costs, nil).Aggregate([]model.ClaimRecord{
		{SKU: "A", TicketStatus: model.TicketApproved, UpdateText: "Rs 900"},
		{SKU: "A", TicketStatus: model.TicketRejected},
	})

	assert.True(t, dec("-1400").Equal(GrandTotal(orders.Summaries, claims.Summaries)))

	total, ok := Reconcile(orders, claims)
	assert.True(t, ok)
	assert.True(t, dec("-1400").Equal(total))

	_, ok = Reconcile(orders, nil)
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	orders := &model.OrderReport{Summaries: []model.OrderSummary{
		{StatusCounts: map[string]int{"Delivered": 2, "Return": 1}, Revenue: dec("100"), NetProfit: dec("10"), TotalPurchase: dec("90")},
		{StatusCounts: map[string]int{"Delivered": 1, "RTO": 4}, Revenue: dec("50"), NetProfit: dec("-5"), TotalPurchase: dec("55")},
	}}
	kpi := SummarizeOrders(orders)
	assert.Equal(t, 3, kpi.Delivered)
	assert.Equal(t, 1, kpi.Return)
	assert.Equal(t, 4, kpi.RTO)
	assert.True(t, dec("150").Equal(kpi.Revenue))
	assert.True(t, dec("145").Equal(kpi.Purchase))
	assert.True(t, dec("5").Equal(kpi.Profit))

	ckpi := SummarizeClaims(&model.ClaimReport{Summaries: []model.ClaimSummary{
		{ClaimReceived: dec("900"), RejectedLoss: dec("850"), NetClaim: dec("-800")},
	}})
	assert.True(t, dec("-800").Equal(ckpi.NetClaim))
	assert.True(t, SummarizeClaims(nil).NetClaim.IsZero())
}

func TestSortOrderSummaries(t *testing.T) {
	rows := []model.OrderSummary{
		{SKU: "b", NetProfit: dec("1"), Revenue: dec("30")},
		{SKU: "A", NetProfit: dec("3"), Revenue: dec("10")},
		{SKU: "c", NetProfit: dec("2"), Revenue: dec("20")},
	}
	SortOrderSummaries(rows, SortSKU)
	assert.Equal(t, []string{"A", "b", "c"}, []string{rows[0].SKU, rows[1].SKU, rows[2].SKU})

	SortOrderSummaries(rows, SortNetProfit)
	assert.Equal(t, []string{"A", "c", "b"}, []string{rows[0].SKU, rows[1].SKU, rows[2].SKU})

	SortOrderSummaries(rows, SortRevenue)
	assert.Equal(t, []string{"b", "c", "A"}, []string{rows[0].SKU, rows[1].SKU, rows[2].SKU})

	_, err := ParseSortBy("price")
	assert.Error(t, err)
	by, err := ParseSortBy(" Net-Profit ")
	require.NoError(t, err)
	assert.Equal(t, SortNetProfit, by)
}

func TestRulesetByName(t *testing.T) {
	r, ok := RulesetByName("extended")
	require.True(t, ok)
	assert.True(t, r.IsRealized(model.StatusShipped))

	r, ok = RulesetByName("")
	require.True(t, ok)
	assert.False(t, r.IsRealized(model.StatusShipped))
	assert.False(t, r.IsRealized("delivered"))

	_, ok = RulesetByName("custom")
	assert.False(t, ok)
}
