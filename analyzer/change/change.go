package change

import "github.com/viant/diffgate/inspector/graph"

// Classification tells production code apart from the rest
type Classification string

const (
	Production  Classification = "production"
	Test        Classification = "test"
	Benchmark   Classification = "benchmark"
	Example     Classification = "example"
	BuildScript Classification = "build_script"
)

// Classifications lists every classification in declaration order
var Classifications = []Classification{Production, Test, Benchmark, Example, BuildScript}

// Change represents a code unit touched by the diff
type Change struct {
	Path           string         `json:"path"`
	Unit           *graph.Unit    `json:"unit"`
	Classification Classification `json:"classification"`
	LinesAdded     int            `json:"linesAdded"`
	LinesRemoved   int            `json:"linesRemoved"`
}

// IsProduction returns true for production changes
func (c *Change) IsProduction() bool {
	return c.Classification == Production
}
