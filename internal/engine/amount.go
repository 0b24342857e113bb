package engine

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPattern describes how currency mentions look in claim update notes.
type AmountPattern struct {
	// Prefix is the currency token, "Rs" by default.
	Prefix string
	// DecimalSeparator separates the fractional part, "." by default.
	DecimalSeparator string
	// CaseInsensitive matches the prefix regardless of case. The exports use "Rs", so this is off by default.
	CaseInsensitive bool
}

// DefaultAmountPattern matches "Rs 100", "Rs. 100", "Rs100.50".
func DefaultAmountPattern() AmountPattern {
	return AmountPattern{Prefix: "Rs", DecimalSeparator: "."}
}

// AmountExtractor sums every currency amount mentioned in a free-text note.
type AmountExtractor struct {
	re        *regexp.Regexp
	separator string
}

// NewAmountExtractor compiles the pattern. Empty fields fall back to the defaults.
func NewAmountExtractor(p AmountPattern) (*AmountExtractor, error) {
	def := DefaultAmountPattern()
	if p.Prefix == "" {
		p.Prefix = def.Prefix
	}
	if p.DecimalSeparator == "" {
		p.DecimalSeparator = def.DecimalSeparator
	}
	if strings.ContainsAny(p.DecimalSeparator, "0123456789") {
		return nil, errors.New("decimal separator must not contain digits")
	}

	prefix := regexp.QuoteMeta(p.Prefix)
	if p.CaseInsensitive {
		prefix = "(?i:" + prefix + ")"
	}
	expr := prefix + `\.?\s*(\d+(?:` + regexp.QuoteMeta(p.DecimalSeparator) + `\d+)?)`
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &AmountExtractor{re: re, separator: p.DecimalSeparator}, nil
}

// MustAmountExtractor is like NewAmountExtractor but panics on an invalid pattern.
func MustAmountExtractor(p AmountPattern) *AmountExtractor {
	e, err := NewAmountExtractor(p)
	if err != nil {
		panic(err)
	}
	return e
}

// Extract returns the sum of all amounts found in text, zero when there are none.
func (e *AmountExtractor) Extract(text string) decimal.Decimal {
	total := decimal.Zero
	if text == "" {
		return total
	}
	for _, m := range e.re.FindAllStringSubmatch(text, -1) {
		num := m[1]
		if e.separator != "." {
			num = strings.Replace(num, e.separator, ".", 1)
		}
		v, err := decimal.NewFromString(num)
		if err != nil {
			continue
		}
		total = total.Add(v)
	}
	return total
}
