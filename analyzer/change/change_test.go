package change_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/diffgate/analyzer/change"
	"github.com/viant/diffgate/inspector/graph"
)

func sampleResult() *change.Result {
	return &change.Result{
		Changes: []*change.Change{
			{Path: "src/lib.rs", Unit: &graph.Unit{Kind: graph.KindFunction, Name: "a", QualifiedName: "a", Span: graph.Span{Start: 1, End: 3}}, Classification: change.Production, LinesAdded: 2, LinesRemoved: 1},
			{Path: "tests/it.rs", Unit: &graph.Unit{Kind: graph.KindFunction, Name: "t", QualifiedName: "t", Span: graph.Span{Start: 1, End: 5}}, Classification: change.Test, LinesAdded: 4},
		},
		Scope: change.Scope{
			AnalyzedFiles: []string{"src/lib.rs", "tests/it.rs"},
			Files:         []*change.FileRecord{{Path: "src/lib.rs", Units: 1, UntrackedAdded: 1}, {Path: "tests/it.rs", Units: 1}},
			SkippedFiles:  []*change.SkippedFile{{Path: "logo.png", Reason: change.SkipBinary}, {Path: "src/bad.rs", Reason: change.SkipParseFailed, LinesAdded: 3, LinesRemoved: 2}},
		},
		Summary: change.Summary{
			Totals: map[change.Classification]change.Totals{
				change.Production: {Units: 1, LinesAdded: 2, LinesRemoved: 1},
				change.Test:       {Units: 1, LinesAdded: 4},
				change.Benchmark:  {Units: 2, LinesAdded: 1, LinesRemoved: 1},
			},
		},
	}
}

func TestResult_Digest(t *testing.T) {
	first, err := sampleResult().Digest()
	require.NoError(t, err)
	second, err := sampleResult().Digest()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	modified := sampleResult()
	modified.Changes[0].LinesAdded++
	third, err := modified.Digest()
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestResult_Lines(t *testing.T) {
	result := sampleResult()
	assert.Equal(t, 6, result.LinesAdded())
	assert.Equal(t, 1, result.LinesRemoved())
	added, removed := result.Scope.Untracked()
	assert.Equal(t, 4, added)
	assert.Equal(t, 2, removed)
}

func TestScope(t *testing.T) {
	scope := &change.Scope{}
	scope.AddIgnoredPattern("vendor/")
	scope.AddIgnoredPattern("target/")
	scope.AddIgnoredPattern("vendor/")
	assert.Equal(t, []string{"vendor/", "target/"}, scope.IgnoredPatterns)

	result := sampleResult()
	require.NotNil(t, result.Scope.Skipped("src/bad.rs"))
	assert.Equal(t, change.SkipParseFailed, result.Scope.Skipped("src/bad.rs").Reason)
	assert.Nil(t, result.Scope.Skipped("src/lib.rs"))
}

func TestSummary_NonProduction(t *testing.T) {
	summary := sampleResult().Summary
	assert.Equal(t, change.Totals{Units: 3, LinesAdded: 5, LinesRemoved: 1}, summary.NonProduction())
	assert.Equal(t, change.Totals{}, summary.Total(change.Example))
}
