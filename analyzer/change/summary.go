package change

import "github.com/viant/diffgate/inspector/graph"

// Totals aggregates changes of one classification
type Totals struct {
	Units        int `json:"units"`
	LinesAdded   int `json:"linesAdded"`
	LinesRemoved int `json:"linesRemoved"`
}

// Violation is a limit the change set exceeded
type Violation struct {
	Name      string `json:"name"`
	Threshold int    `json:"threshold"`
	Observed  int    `json:"observed"`
}

// Summary holds aggregated scores and limit violations
type Summary struct {
	Totals map[Classification]Totals `json:"totals"`
	// ProdKinds counts production units per kind
	ProdKinds     map[graph.Kind]int `json:"prodKinds"`
	ProdFunctions int                `json:"prodFunctions"`
	ProdStructs   int                `json:"prodStructs"`
	ProdOther     int                `json:"prodOther"`
	WeightedScore int                `json:"weightedScore"`
	ExceedsLimit  bool               `json:"exceedsLimit"`
	Violations    []Violation        `json:"violations"`
}

// Total returns totals of classification
func (s *Summary) Total(classification Classification) Totals {
	return s.Totals[classification]
}

// NonProduction returns totals of every classification except production
func (s *Summary) NonProduction() Totals {
	var result Totals
	for _, classification := range Classifications {
		if classification == Production {
			continue
		}
		totals := s.Totals[classification]
		result.Units += totals.Units
		result.LinesAdded += totals.LinesAdded
		result.LinesRemoved += totals.LinesRemoved
	}
	return result
}
