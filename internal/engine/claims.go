package engine

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Ambition09/meeshodashboard/internal/model"
)

// ClaimsAggregator turns claim tickets into per-SKU recovery and loss figures.
type ClaimsAggregator struct {
	costs     *CostTable
	extractor *AmountExtractor
}

// NewClaimsAggregator creates an aggregator. A nil extractor uses the default "Rs" pattern.
func NewClaimsAggregator(costs *CostTable, extractor *AmountExtractor) *ClaimsAggregator {
	if extractor == nil {
		extractor = MustAmountExtractor(DefaultAmountPattern())
	}
	return &ClaimsAggregator{costs: costs, extractor: extractor}
}

// Aggregate partitions claims into approved and rejected tickets and outer-joins both sides by SKU.
// Tickets with any other status are counted in Ignored and contribute nothing.
func (a *ClaimsAggregator) Aggregate(records []model.ClaimRecord) *model.ClaimReport {
	report := &model.ClaimReport{Summaries: []model.ClaimSummary{}}

	groups := make(map[string]*model.ClaimSummary)
	var keys []string

	group := func(sku string) *model.ClaimSummary {
		key := NormalizeSKU(sku)
		s, ok := groups[key]
		if !ok {
			s = &model.ClaimSummary{
				SKU:            sku,
				ClaimReceived:  decimal.Zero,
				PurchaseCost:   a.costs.CostFor(key),
				ApprovedProfit: decimal.Zero,
				RejectedLoss:   decimal.Zero,
				NetClaim:       decimal.Zero,
			}
			groups[key] = s
			keys = append(keys, key)
		}
		return s
	}

	for _, rec := range records {
		sku := strings.TrimSpace(rec.SKU)
		if sku == "" {
			report.Dropped++
			continue
		}
		switch strings.TrimSpace(rec.TicketStatus) {
		case model.TicketApproved:
			s := group(sku)
			s.ApprovedQty++
			s.ClaimReceived = s.ClaimReceived.Add(a.extractor.Extract(rec.UpdateText))
		case model.TicketRejected:
			group(sku).RejectedQty++
		default:
			report.Ignored++
		}
	}

	for _, key := range keys {
		s := groups[key]
		s.ApprovedProfit = s.ClaimReceived.Sub(s.PurchaseCost.Mul(decimal.NewFromInt(int64(s.ApprovedQty))))
		s.RejectedLoss = s.PurchaseCost.Mul(decimal.NewFromInt(int64(s.RejectedQty)))
		s.NetClaim = s.ApprovedProfit.Sub(s.RejectedLoss)
		report.Summaries = append(report.Summaries, *s)
	}
	return report
}
