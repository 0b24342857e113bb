package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const selectPurchaseCosts = `SELECT sku, unit_cost FROM sku_purchase_cost WHERE deleted = 0`

type purchaseCostRow struct {
	SKU      string          `db:"sku"`
	UnitCost decimal.Decimal `db:"unit_cost"`
}

// CostRepository reads unit purchase costs maintained in MySQL
type CostRepository struct {
	db *sqlx.DB
}

// NewCostRepository creates a repository on db
func NewCostRepository(db *sqlx.DB) *CostRepository {
	return &CostRepository{db: db}
}

// LoadPurchaseCosts returns every active SKU cost. Rows with a negative cost are skipped.
func (r *CostRepository) LoadPurchaseCosts(ctx context.Context) (map[string]decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var rows []purchaseCostRow
	if err := r.db.SelectContext(ctx, &rows, selectPurchaseCosts); err != nil {
		return nil, fmt.Errorf("query sku_purchase_cost: %w", err)
	}

	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		if row.UnitCost.IsNegative() {
			log.Warnf("skip sku %q with negative cost %s", row.SKU, row.UnitCost)
			continue
		}
		out[row.SKU] = row.UnitCost
	}
	log.Debugf("loaded %d purchase costs from database", len(out))
	return out, nil
}
