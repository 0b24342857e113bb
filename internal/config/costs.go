package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Ambition09/meeshodashboard/internal/engine"
)

// CostValueError a cost entry whose value is not a number
type CostValueError struct {
	SKU   string
	Value string
	Err   error
}

func (e *CostValueError) Error() string {
	return fmt.Sprintf("cost of sku %q: %q is not a number: %v", e.SKU, e.Value, e.Err)
}

func (e *CostValueError) Unwrap() error { return e.Err }

// costsFile is the layout of a costs YAML file:
//
//	costs:
//	  - sku: HB-221 Purple
//	    cost: 850
type costsFile struct {
	Costs []costEntry `yaml:"costs"`
}

type costEntry struct {
	SKU  string    `yaml:"sku"`
	Cost costValue `yaml:"cost"`
}

// costValue a cost read from the YAML scalar text, so 650.1 stays exactly 650.1
type costValue struct {
	decimal.Decimal
}

func (v *costValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: cost must be a number", node.Line)
	}
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: cost %q is not a number", node.Line, node.Value)
	}
	v.Decimal = d
	return nil
}

func (v costValue) MarshalYAML() (interface{}, error) {
	tag := "!!float"
	if v.IsInteger() {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}, nil
}

// LoadCostsFile reads SKU costs from a YAML file
func LoadCostsFile(path string) (map[string]decimal.Decimal, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read costs file: %w", err)
	}

	var doc costsFile
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse costs file %s: %w", path, err)
	}

	out := make(map[string]decimal.Decimal, len(doc.Costs))
	for i, c := range doc.Costs {
		if c.SKU == "" {
			return nil, fmt.Errorf("costs file %s: entry %d has no sku", path, i)
		}
		if c.Cost.IsNegative() {
			return nil, fmt.Errorf("costs file %s: sku %q has a negative cost", path, c.SKU)
		}
		out[c.SKU] = c.Cost.Decimal
	}
	return out, nil
}

// MarshalCostsFile renders entries in the layout LoadCostsFile reads
func MarshalCostsFile(entries []engine.CostEntry) ([]byte, error) {
	doc := costsFile{Costs: make([]costEntry, 0, len(entries))}
	for _, e := range entries {
		doc.Costs = append(doc.Costs, costEntry{SKU: e.SKU, Cost: costValue{e.UnitCost}})
	}
	return yaml.Marshal(&doc)
}

// BuildCostTable 合并成本来源：内置默认值 < 配置文件 costs < costs-file < extra（通常来自数据库）
func (c *Config) BuildCostTable(extra map[string]decimal.Decimal) (*engine.CostTable, error) {
	merged := make(map[string]decimal.Decimal)
	put := func(src map[string]decimal.Decimal) {
		for sku, v := range src {
			merged[engine.NormalizeSKU(sku)] = v
		}
	}

	put(engine.DefaultCosts())

	seed, errs := c.SeedCosts()
	for _, err := range errs {
		log.Warnf("skip cost entry: %v", err)
	}
	put(seed)

	if c.CostsFile != "" {
		fromFile, err := LoadCostsFile(c.CostsFile)
		if err != nil {
			return nil, err
		}
		put(fromFile)
	}

	put(extra)

	table := engine.NewCostTable(merged)
	log.Infof("cost table ready with %d skus", table.Len())
	return table, nil
}

// BuildRuleset resolves the realized-sale statuses
func (c *Config) BuildRuleset() (engine.Ruleset, error) {
	if len(c.Rules.RealizedStatuses) > 0 {
		return engine.Ruleset{RealizedStatuses: c.Rules.RealizedStatuses}, nil
	}
	r, ok := engine.RulesetByName(c.Rules.Ruleset)
	if !ok {
		return engine.Ruleset{}, fmt.Errorf("unknown ruleset %q, want baseline or extended", c.Rules.Ruleset)
	}
	return r, nil
}

// BuildAmountExtractor compiles the claim amount pattern
func (c *Config) BuildAmountExtractor() (*engine.AmountExtractor, error) {
	return engine.NewAmountExtractor(engine.AmountPattern{
		Prefix:           c.Amount.Prefix,
		DecimalSeparator: c.Amount.DecimalSeparator,
		CaseInsensitive:  c.Amount.CaseInsensitive,
	})
}
