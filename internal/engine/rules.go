package engine

import (
	"strings"

	"github.com/Ambition09/meeshodashboard/internal/model"
)

// Ruleset decides which order statuses count as realized sales.
type Ruleset struct {
	RealizedStatuses []string
}

// BaselineRuleset treats only delivered orders as sales.
func BaselineRuleset() Ruleset {
	return Ruleset{RealizedStatuses: []string{model.StatusDelivered}}
}

// ExtendedRuleset also recognizes shipped orders.
func ExtendedRuleset() Ruleset {
	return Ruleset{RealizedStatuses: []string{model.StatusDelivered, model.StatusShipped}}
}

// RulesetByName resolves "baseline" or "extended". Unknown names yield false.
func RulesetByName(name string) (Ruleset, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "baseline":
		return BaselineRuleset(), true
	case "extended":
		return ExtendedRuleset(), true
	}
	return Ruleset{}, false
}

// IsRealized reports whether status is a realized sale. Statuses match exactly.
func (r Ruleset) IsRealized(status string) bool {
	for _, s := range r.RealizedStatuses {
		if s == status {
			return true
		}
	}
	return false
}
