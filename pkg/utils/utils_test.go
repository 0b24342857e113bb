package utils

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringToDecimal(t *testing.T) {
	assert.True(t, decimal.NewFromInt(500).Equal(StringToDecimal(" 500 ")))
	assert.True(t, decimal.RequireFromString("-12.5").Equal(StringToDecimal("-12.5")))
	assert.True(t, StringToDecimal("").IsZero())
	assert.True(t, StringToDecimal("N/A").IsZero())
}

func TestParseDecimalStrict(t *testing.T) {
	v, err := ParseDecimalStrict("42.10")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("42.1").Equal(v))

	v, err = ParseDecimalStrict("")
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	_, err = ParseDecimalStrict("abc")
	assert.Error(t, err)
}

func TestHeaderIndex(t *testing.T) {
	row := []string{"\ufeffSKU", " Ticket Status ", "Last Update", "SKU"}
	index, missing := HeaderIndex(row, "SKU", "Ticket Status", "Last Update", "Other")
	assert.Equal(t, 0, index["SKU"])
	assert.Equal(t, 1, index["Ticket Status"])
	assert.Equal(t, 2, index["Last Update"])
	assert.Equal(t, []string{"Other"}, missing)

	assert.Equal(t, "", GetStringValue(row, 10))
	assert.Equal(t, "Ticket Status", GetStringValue(row, 1))
}

func TestGetFilePathByFilename(t *testing.T) {
	path, err := GetFilePathByFilename("/tmp/reports", "REPORT_ab12_20220909153131.xlsx", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/reports", "2022", "9", "REPORT_ab12_20220909153131.xlsx"), path)

	_, err = GetFilePathByFilename("/tmp/reports", "REPORT_nodate.xlsx", "")
	assert.Error(t, err)

	_, err = GetFilePathByFilename("/tmp/reports", "../REPORT_ab12_20220909153131.xlsx", "")
	assert.Error(t, err)
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 33.33, RoundMoney(decimal.RequireFromString("33.3333")))
}

func TestCellNames(t *testing.T) {
	assert.Equal(t, "C4", CellName(3, 4))
	assert.Equal(t, "AA", ColumnName(27))
}
