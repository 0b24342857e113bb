package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPurchaseCosts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(selectPurchaseCosts)).
		WillReturnRows(sqlmock.NewRows([]string{"sku", "unit_cost"}).
			AddRow("HB-221 Purple", "850.00").
			AddRow("PS124 Rama", "650").
			AddRow("BAD", "-1"))

	repo := NewCostRepository(sqlx.NewDb(db, "sqlmock"))
	costs, err := repo.LoadPurchaseCosts(context.Background())
	require.NoError(t, err)

	assert.Len(t, costs, 2)
	assert.True(t, decimal.NewFromInt(850).Equal(costs["HB-221 Purple"]))
	assert.True(t, decimal.NewFromInt(650).Equal(costs["PS124 Rama"]))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadPurchaseCosts_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT sku, unit_cost").WillReturnError(errors.New("table missing"))

	repo := NewCostRepository(sqlx.NewDb(db, "sqlmock"))
	_, err = repo.LoadPurchaseCosts(context.Background())
	assert.ErrorContains(t, err, "table missing")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDB_Uninitialized(t *testing.T) {
	assert.Nil(t, GetDB())
	assert.NoError(t, CloseDB())
}
