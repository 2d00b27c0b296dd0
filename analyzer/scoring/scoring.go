package scoring

import (
	"github.com/viant/diffgate/analyzer/change"
	"github.com/viant/diffgate/config"
	"github.com/viant/diffgate/inspector/graph"
)

// Limit names reported in violations
const (
	LimitMaxProdUnits     = "max_prod_units"
	LimitMaxWeightedScore = "max_weighted_score"
	LimitMaxProdLines     = "max_prod_lines"
	limitPerKindPrefix    = "per_kind."
)

// Score aggregates changes into a summary and evaluates limits.
// Each production change contributes its unit weight once.
func Score(changes []*change.Change, weights config.Weights, limits config.Limits) change.Summary {
	summary := change.Summary{
		Totals:    map[change.Classification]change.Totals{},
		ProdKinds: map[graph.Kind]int{},
	}
	for _, aChange := range changes {
		totals := summary.Totals[aChange.Classification]
		totals.Units++
		totals.LinesAdded += aChange.LinesAdded
		totals.LinesRemoved += aChange.LinesRemoved
		summary.Totals[aChange.Classification] = totals
		if !aChange.IsProduction() || aChange.Unit == nil {
			continue
		}
		unit := aChange.Unit
		summary.ProdKinds[unit.Kind]++
		summary.WeightedScore += weights.Lookup(unit.Kind, unit.Visibility)
		switch unit.Kind {
		case graph.KindFunction:
			summary.ProdFunctions++
		case graph.KindStruct, graph.KindEnum:
			summary.ProdStructs++
		default:
			summary.ProdOther++
		}
	}
	summary.Violations = Evaluate(&summary, limits)
	summary.ExceedsLimit = len(summary.Violations) > 0
	return summary
}

// Evaluate checks limits in a fixed order: production units, weighted score, production lines added,
// then per kind limits in kind declaration order. A limit fires when observed exceeds its threshold.
func Evaluate(summary *change.Summary, limits config.Limits) []change.Violation {
	var result []change.Violation
	check := func(name string, threshold *int, observed int) {
		if threshold != nil && observed > *threshold {
			result = append(result, change.Violation{Name: name, Threshold: *threshold, Observed: observed})
		}
	}
	production := summary.Total(change.Production)
	check(LimitMaxProdUnits, limits.MaxProdUnits, production.Units)
	check(LimitMaxWeightedScore, limits.MaxWeightedScore, summary.WeightedScore)
	check(LimitMaxProdLines, limits.MaxProdLines, production.LinesAdded)
	for _, kind := range graph.Kinds {
		if threshold, ok := limits.PerKind[kind]; ok {
			check(limitPerKindPrefix+string(kind), &threshold, summary.ProdKinds[kind])
		}
	}
	return result
}
