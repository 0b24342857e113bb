package utils

import (
	"github.com/shopspring/decimal"
)

// RoundMoney 金额保留两位小数，用于写入Excel
func RoundMoney(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
