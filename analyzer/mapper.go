package analyzer

import (
	"context"
	"errors"

	"github.com/viant/diffgate/analyzer/change"
	"github.com/viant/diffgate/analyzer/classifier"
	"github.com/viant/diffgate/config"
	"github.com/viant/diffgate/diff"
	"github.com/viant/diffgate/inspector/graph"
	"github.com/viant/diffgate/inspector/info"
	"github.com/viant/diffgate/source"
)

// partial is the outcome of mapping a single file; exactly one of record, skipped or err is set
type partial struct {
	path    string
	ignored string
	record  *change.FileRecord
	changes []*change.Change
	skipped *change.SkippedFile
	err     error
}

type lineCount struct {
	added   int
	removed int
}

func (a *Analyzer) mapFile(ctx context.Context, file *diff.FileDiff, accessor source.Accessor) *partial {
	filePath := file.Path()
	ret := &partial{path: filePath}
	if err := ctx.Err(); err != nil {
		ret.err = err
		return ret
	}
	skip := func(reason change.SkipReason, detail string) *partial {
		ret.skipped = &change.SkippedFile{
			Path:         filePath,
			Reason:       reason,
			Detail:       detail,
			LinesAdded:   file.Added(),
			LinesRemoved: file.Removed(),
		}
		return ret
	}

	if file.Binary {
		a.logger.Debug("skipping binary file", "path", filePath)
		return skip(change.SkipBinary, "")
	}
	if pattern, ok := classifier.Match(filePath, a.config.Classification.IgnorePaths); ok {
		a.logger.Debug("skipping ignored file", "path", filePath, "pattern", pattern)
		ret.ignored = pattern
		return skip(change.SkipIgnored, pattern)
	}
	inspector, err := a.factory.GetInspector(filePath)
	if err != nil {
		a.logger.Debug("skipping file", "path", filePath, "reason", change.SkipUnsupported)
		return skip(change.SkipUnsupported, "")
	}
	if file.Status == diff.StatusDeleted {
		ret.record = &change.FileRecord{
			Path:             filePath,
			Deleted:          true,
			UntrackedAdded:   file.Added(),
			UntrackedRemoved: file.Removed(),
		}
		return ret
	}

	content, err := accessor.Content(ctx, filePath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			ret.err = ctxErr
			return ret
		}
		accessErr := &SourceAccessError{Path: filePath, Err: err}
		if a.config.OnAccessError == config.AccessAbort {
			ret.err = accessErr
			return ret
		}
		a.logger.Warn("skipping unreadable file", "path", filePath, "error", err)
		return skip(change.SkipAccessError, accessErr.Error())
	}

	forest, err := inspector.InspectSource(ctx, content)
	if err != nil {
		var parseErr *info.ParseError
		if errors.As(err, &parseErr) && parseErr.FilePath == "" {
			parseErr.FilePath = filePath
		}
		a.logger.Warn("skipping unparsable file", "path", filePath, "error", err)
		return skip(change.SkipParseFailed, err.Error())
	}

	record := &change.FileRecord{Path: filePath}
	counts := make(map[int]*lineCount)
	hit := func(line int) *lineCount {
		index := forest.Locate(line)
		if index == -1 {
			return nil
		}
		count, ok := counts[index]
		if !ok {
			count = &lineCount{}
			counts[index] = count
		}
		return count
	}
	for _, hunk := range file.Hunks {
		next := hunk.NewStart
		if hunk.NewCount == 0 {
			next = hunk.NewStart + 1
		}
		for _, line := range hunk.Lines {
			switch line.Kind {
			case diff.LineContext:
				next = line.NewLine + 1
			case diff.LineAdded:
				next = line.NewLine + 1
				if count := hit(line.NewLine); count != nil {
					count.added++
				} else {
					record.UntrackedAdded++
				}
			case diff.LineRemoved:
				if count := hit(next); count != nil {
					count.removed++
				} else {
					record.UntrackedRemoved++
				}
			}
		}
	}

	ret.record = record
	ret.changes = a.changes(filePath, forest, counts)
	record.Units = len(ret.changes)
	return ret
}

// changes emits a change per touched unit in forest pre-order, i.e. ascending span start
func (a *Analyzer) changes(filePath string, forest *graph.Forest, counts map[int]*lineCount) []*change.Change {
	var result []*change.Change
	for i, unit := range forest.Units {
		count, ok := counts[i]
		if !ok {
			continue
		}
		result = append(result, &change.Change{
			Path:           filePath,
			Unit:           unit,
			Classification: a.classifier.Classify(filePath, unit),
			LinesAdded:     count.added,
			LinesRemoved:   count.removed,
		})
	}
	return result
}
