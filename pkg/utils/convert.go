package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// StringToDecimal safely converts string to decimal, falling back to zero
func StringToDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	val, err := decimal.NewFromString(s)
	if err != nil {
		log.Warnf("Failed to convert string '%s' to decimal, using 0: %v", s, err)
		return decimal.Zero
	}
	return val
}

// ParseDecimalStrict converts string to decimal and reports non-numeric input as an error
func ParseDecimalStrict(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	val, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("'%s' is not a number", s)
	}
	return val, nil
}

// GetStringValue safely gets string value from row with bounds checking
func GetStringValue(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// HeaderIndex maps each wanted header to its column index in row. Headers are matched after trimming.
// Missing headers are returned in the second result.
func HeaderIndex(row []string, headers ...string) (map[string]int, []string) {
	index := make(map[string]int, len(headers))
	for i, cell := range row {
		name := strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
		for _, h := range headers {
			if _, ok := index[h]; !ok && name == h {
				index[h] = i
			}
		}
	}
	var missing []string
	for _, h := range headers {
		if _, ok := index[h]; !ok {
			missing = append(missing, h)
		}
	}
	return index, missing
}
