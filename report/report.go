// Package report renders analysis results for CI and humans.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/viant/diffgate/analyzer/change"
	"github.com/viant/diffgate/config"
)

// Write renders result in the configured output format; include_details adds per unit changes
// to json, human and comment output
func Write(writer io.Writer, result *change.Result, cfg *config.Config) error {
	includeDetails := cfg.Output.IncludeDetails
	switch cfg.Output.Format {
	case config.FormatGithub:
		return WriteGithub(writer, result)
	case config.FormatJSON:
		return WriteJSON(writer, result, includeDetails)
	case config.FormatHuman:
		return WriteHuman(writer, result, includeDetails)
	case config.FormatComment:
		return WriteComment(writer, result, cfg.Limits, includeDetails)
	}
	return fmt.Errorf("unsupported output format: %q", cfg.Output.Format)
}

// WriteGithub writes key=value lines suitable for $GITHUB_OUTPUT
func WriteGithub(writer io.Writer, result *change.Result) error {
	digest, err := result.Digest()
	if err != nil {
		return fmt.Errorf("digest result: %w", err)
	}
	summary := &result.Summary
	production := summary.Total(change.Production)
	other := summary.NonProduction()
	pairs := []struct {
		key   string
		value interface{}
	}{
		{"prod_functions_changed", summary.ProdFunctions},
		{"prod_structs_changed", summary.ProdStructs},
		{"prod_other_changed", summary.ProdOther},
		{"test_units_changed", other.Units},
		{"prod_lines_added", production.LinesAdded},
		{"prod_lines_removed", production.LinesRemoved},
		{"test_lines_added", other.LinesAdded},
		{"test_lines_removed", other.LinesRemoved},
		{"weighted_score", summary.WeightedScore},
		{"exceeds_limit", summary.ExceedsLimit},
		{"digest", fmt.Sprintf("%016x", digest)},
	}
	for _, pair := range pairs {
		if _, err := fmt.Fprintf(writer, "%s=%v\n", pair.key, pair.value); err != nil {
			return err
		}
	}
	return nil
}

type jsonOutput struct {
	Summary change.Summary   `json:"summary"`
	Scope   change.Scope     `json:"scope"`
	Changes []*change.Change `json:"changes"`
	Digest  string           `json:"digest"`
}

// WriteJSON writes the result as indented JSON
func WriteJSON(writer io.Writer, result *change.Result, includeDetails bool) error {
	digest, err := result.Digest()
	if err != nil {
		return fmt.Errorf("digest result: %w", err)
	}
	output := jsonOutput{
		Summary: result.Summary,
		Scope:   result.Scope,
		Changes: []*change.Change{},
		Digest:  fmt.Sprintf("%016x", digest),
	}
	if includeDetails && result.Changes != nil {
		output.Changes = result.Changes
	}
	content, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := writer.Write(append(content, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteHuman writes a text summary, the violations and optionally every changed unit
func WriteHuman(writer io.Writer, result *change.Result, includeDetails bool) error {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	summary := &result.Summary

	if _, err := fmt.Fprintln(tw, "CLASSIFICATION\tUNITS\tADDED\tREMOVED"); err != nil {
		return err
	}
	for _, classification := range change.Classifications {
		totals := summary.Total(classification)
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", classification, totals.Units, totals.LinesAdded, totals.LinesRemoved); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(tw, "\nWEIGHTED SCORE\t%d\n", summary.WeightedScore); err != nil {
		return err
	}
	verdict := "within limits"
	if summary.ExceedsLimit {
		verdict = "exceeds limits"
	}
	if _, err := fmt.Fprintf(tw, "VERDICT\t%s\n", verdict); err != nil {
		return err
	}

	if len(summary.Violations) > 0 {
		if _, err := fmt.Fprintln(tw, "\nLIMIT\tTHRESHOLD\tOBSERVED"); err != nil {
			return err
		}
		for _, violation := range summary.Violations {
			if _, err := fmt.Fprintf(tw, "%s\t%d\t%d\n", violation.Name, violation.Threshold, violation.Observed); err != nil {
				return err
			}
		}
	}

	if includeDetails && len(result.Changes) > 0 {
		if _, err := fmt.Fprintln(tw, "\nFILE\tUNIT\tKIND\tVISIBILITY\tCLASSIFICATION\tADDED\tREMOVED"); err != nil {
			return err
		}
		for _, aChange := range result.Changes {
			if _, err := fmt.Fprintf(
				tw,
				"%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
				aChange.Path,
				aChange.Unit.QualifiedName,
				aChange.Unit.Kind,
				aChange.Unit.Visibility,
				aChange.Classification,
				aChange.LinesAdded,
				aChange.LinesRemoved,
			); err != nil {
				return err
			}
		}
	}

	if len(result.Scope.SkippedFiles) > 0 {
		if _, err := fmt.Fprintln(tw, "\nSKIPPED FILE\tREASON"); err != nil {
			return err
		}
		for _, skipped := range result.Scope.SkippedFiles {
			if _, err := fmt.Fprintf(tw, "%s\t%s\n", skipped.Path, skipped.Reason); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}
