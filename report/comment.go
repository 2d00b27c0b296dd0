package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/viant/diffgate/analyzer/change"
	"github.com/viant/diffgate/config"
	"github.com/viant/diffgate/inspector/graph"
)

// CommentMarker identifies a previously posted review comment so it can be updated in place
const CommentMarker = "<!-- diffgate-comment -->"

// maxSkippedListed bounds the skipped file list of the scope section
const maxSkippedListed = 10

// WriteComment writes a markdown review comment: verdict, limits with status, a production/test
// breakdown, optionally the changed units, and the analysis scope
func WriteComment(writer io.Writer, result *change.Result, limits config.Limits, includeDetails bool) error {
	summary := &result.Summary
	production := summary.Total(change.Production)
	other := summary.NonProduction()

	var b strings.Builder
	b.WriteString(CommentMarker + "\n")
	b.WriteString("## Rust Diff Analysis\n\n")
	if summary.ExceedsLimit {
		b.WriteString("> [!CAUTION]\n")
		b.WriteString("> **Change set exceeds configured limits.** Consider splitting it into smaller changes.\n")
		if len(summary.Violations) > 0 {
			b.WriteString(">\n")
			for _, violation := range summary.Violations {
				fmt.Fprintf(&b, "> - **%d** %s (limit: %d)\n", violation.Observed, violation.Name, violation.Threshold)
			}
		}
	} else {
		b.WriteString("> [!TIP]\n")
		b.WriteString("> **Change set is within limits.**\n")
	}

	b.WriteString("\n<details>\n")
	b.WriteString("<summary><strong>Limits</strong></summary>\n\n")
	b.WriteString("| Metric | Value | Limit | Status |\n")
	b.WriteString("|--------|------:|------:|:------:|\n")
	limitRow(&b, "Production Units", production.Units, limits.MaxProdUnits)
	limitRow(&b, "Weighted Score", summary.WeightedScore, limits.MaxWeightedScore)
	limitRow(&b, "Lines Added", production.LinesAdded, limits.MaxProdLines)
	for _, kind := range graph.Kinds {
		if threshold, ok := limits.PerKind[kind]; ok {
			limitRow(&b, "Units: "+string(kind), summary.ProdKinds[kind], &threshold)
		}
	}
	b.WriteString("\n</details>\n")

	b.WriteString("\n<details>\n")
	b.WriteString("<summary><strong>Summary</strong></summary>\n\n")
	b.WriteString("| Metric | Production | Test |\n")
	b.WriteString("|--------|----------:|-----:|\n")
	fmt.Fprintf(&b, "| Functions | %d | - |\n", summary.ProdFunctions)
	fmt.Fprintf(&b, "| Structs/Enums | %d | - |\n", summary.ProdStructs)
	fmt.Fprintf(&b, "| Other | %d | - |\n", summary.ProdOther)
	fmt.Fprintf(&b, "| Lines added | +%d | +%d |\n", production.LinesAdded, other.LinesAdded)
	fmt.Fprintf(&b, "| Lines removed | -%d | -%d |\n", production.LinesRemoved, other.LinesRemoved)
	fmt.Fprintf(&b, "| **Total units** | **%d** | %d |\n", production.Units, other.Units)
	fmt.Fprintf(&b, "| Weighted score | %d | - |\n", summary.WeightedScore)
	b.WriteString("\n</details>\n")

	if includeDetails {
		var prodChanges, otherChanges []*change.Change
		for _, aChange := range result.Changes {
			if aChange.IsProduction() {
				prodChanges = append(prodChanges, aChange)
			} else {
				otherChanges = append(otherChanges, aChange)
			}
		}
		changeTable(&b, "Production Changes", prodChanges)
		changeTable(&b, "Test Changes", otherChanges)
	}

	scopeSection(&b, &result.Scope)

	_, err := io.WriteString(writer, b.String())
	return err
}

func limitRow(b *strings.Builder, metric string, observed int, threshold *int) {
	if threshold == nil {
		return
	}
	status := "✅"
	if observed > *threshold {
		status = "❌"
	}
	fmt.Fprintf(b, "| %s | %d | %d | %s |\n", metric, observed, *threshold, status)
}

func changeTable(b *strings.Builder, title string, changes []*change.Change) {
	if len(changes) == 0 {
		return
	}
	b.WriteString("\n<details>\n")
	fmt.Fprintf(b, "<summary><strong>%s</strong> (%d units)</summary>\n\n", title, len(changes))
	b.WriteString("| File | Unit | Kind | Classification | Changes |\n")
	b.WriteString("|------|------|:----:|:--------------:|--------:|\n")
	for _, aChange := range changes {
		fmt.Fprintf(b, "| `%s:%d-%d` | `%s` | %s | %s | +%d -%d |\n",
			aChange.Path,
			aChange.Unit.Span.Start,
			aChange.Unit.Span.End,
			aChange.Unit.QualifiedName,
			aChange.Unit.Kind,
			aChange.Classification,
			aChange.LinesAdded,
			aChange.LinesRemoved)
	}
	b.WriteString("\n</details>\n")
}

func scopeSection(b *strings.Builder, scope *change.Scope) {
	if len(scope.AnalyzedFiles) == 0 && len(scope.SkippedFiles) == 0 && len(scope.IgnoredPatterns) == 0 {
		return
	}
	b.WriteString("\n<details>\n")
	b.WriteString("<summary>Analysis Scope</summary>\n\n")
	if len(scope.AnalyzedFiles) > 0 {
		fmt.Fprintf(b, "**Analyzed:** %d files\n\n", len(scope.AnalyzedFiles))
	}
	if len(scope.IgnoredPatterns) > 0 {
		b.WriteString("**Ignored patterns:**\n")
		for _, pattern := range scope.IgnoredPatterns {
			fmt.Fprintf(b, "- `%s`\n", pattern)
		}
		b.WriteString("\n")
	}
	if len(scope.SkippedFiles) > 0 {
		counts := map[change.SkipReason]int{}
		var reasons []change.SkipReason
		for _, skipped := range scope.SkippedFiles {
			if counts[skipped.Reason] == 0 {
				reasons = append(reasons, skipped.Reason)
			}
			counts[skipped.Reason]++
		}
		b.WriteString("**Skipped files:**\n")
		for _, reason := range reasons {
			fmt.Fprintf(b, "- %d %s\n", counts[reason], reason)
		}
		b.WriteString("\n")
		if len(scope.SkippedFiles) <= maxSkippedListed {
			b.WriteString("**Skipped file list:**\n")
			for _, skipped := range scope.SkippedFiles {
				fmt.Fprintf(b, "- `%s` (%s)\n", skipped.Path, skipped.Reason)
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("</details>\n")
}
